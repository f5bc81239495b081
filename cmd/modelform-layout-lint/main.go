// modelform-layout-lint validates form layout documents before they ship.
// Structural problems (bad columns, empty groups, duplicate forms) and
// visibility rules that do not compile are always checked; with -schema and
// -component the documents are also replayed against a scaffolded builder,
// catching references to fields the schema does not define.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goliatone/go-modelform/pkg/form"
	"github.com/goliatone/go-modelform/pkg/layoutdoc"
	"github.com/goliatone/go-modelform/pkg/model"
	"github.com/goliatone/go-modelform/pkg/reactive"
	"github.com/goliatone/go-modelform/pkg/scaffold"
)

type violation struct {
	file    string
	form    string
	message string
}

func main() {
	var (
		schemaFlag    = flag.String("schema", "", "OpenAPI document whose component schema defines the form fields")
		componentFlag = flag.String("component", "", "component schema name inside -schema")
		formFlag      = flag.String("form", "", "lint a single form id instead of every form")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] [paths...]\n", filepath.Base(os.Args[0]))
		fmt.Fprintf(flag.CommandLine.Output(), "\nLint form layout documents. Paths may be files or directories;\nthe current directory is linted when none are given.\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		paths = []string{"."}
	}

	ctx := context.Background()

	var descriptors []*model.Descriptor
	if *schemaFlag != "" {
		if *componentFlag == "" {
			fmt.Fprintln(os.Stderr, "-schema requires -component")
			os.Exit(2)
		}
		var err error
		descriptors, err = scaffold.New().LoadSchemaFile(ctx, *schemaFlag, *componentFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "schema: %v\n", err)
			os.Exit(1)
		}
	}

	var violations []violation
	for _, path := range paths {
		linted, err := lintPath(path, *formFlag, descriptors)
		if err != nil {
			fmt.Fprintf(os.Stderr, "lint %s: %v\n", path, err)
			os.Exit(1)
		}
		violations = append(violations, linted...)
	}

	if len(violations) == 0 {
		return
	}

	sort.Slice(violations, func(i, j int) bool {
		if violations[i].file != violations[j].file {
			return violations[i].file < violations[j].file
		}
		if violations[i].form != violations[j].form {
			return violations[i].form < violations[j].form
		}
		return violations[i].message < violations[j].message
	})
	for _, v := range violations {
		if v.form == "" {
			fmt.Fprintf(os.Stderr, "%s: %s\n", v.file, v.message)
			continue
		}
		fmt.Fprintf(os.Stderr, "%s: form %s: %s\n", v.file, v.form, v.message)
	}
	os.Exit(1)
}

func lintPath(path, formID string, descriptors []*model.Descriptor) ([]violation, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	var doc *layoutdoc.Document
	if info.IsDir() {
		doc, err = layoutdoc.LoadFS(os.DirFS(path))
	} else {
		raw, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil, readErr
		}
		doc, err = layoutdoc.Load(raw)
	}
	if err != nil {
		// Parse and validation failures are findings, not tool errors.
		return []violation{{file: path, message: err.Error()}}, nil
	}

	if formID != "" {
		f, ok := doc.Form(formID)
		if !ok {
			return []violation{{file: path, form: formID, message: "form not found in document"}}, nil
		}
		return lintForm(path, f, descriptors), nil
	}

	var out []violation
	for _, id := range doc.IDs() {
		f, _ := doc.Form(id)
		out = append(out, lintForm(path, f, descriptors)...)
	}
	return out, nil
}

// lintForm replays the document against a builder scaffolded from the
// schema when one was given, or just compiles its visibility rules when
// linting documents on their own.
func lintForm(path string, f layoutdoc.FormDoc, descriptors []*model.Descriptor) []violation {
	if len(descriptors) > 0 {
		b, err := form.FromDescriptors(reactive.NewState(map[string]any{}), cloneDescriptors(descriptors))
		if err != nil {
			return []violation{{file: path, form: f.ID, message: err.Error()}}
		}
		if err := layoutdoc.ApplyForm(f, b); err != nil {
			return []violation{{file: path, form: f.ID, message: err.Error()}}
		}
		return nil
	}

	names := make([]string, 0, len(f.Fields))
	for name := range f.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	var out []violation
	for _, name := range names {
		rule := f.Fields[name].VisibleWhen
		if strings.TrimSpace(rule) == "" {
			continue
		}
		if _, err := layoutdoc.CompileRule(rule); err != nil {
			out = append(out, violation{file: path, form: f.ID, message: fmt.Sprintf("field %s: %v", name, err)})
		}
	}
	return out
}

// cloneDescriptors hands every lint pass its own table; replaying a
// document mutates the descriptors it touches.
func cloneDescriptors(in []*model.Descriptor) []*model.Descriptor {
	out := make([]*model.Descriptor, 0, len(in))
	for _, d := range in {
		out = append(out, d.Clone())
	}
	return out
}
