// modelform-render scaffolds a form from an OpenAPI component schema and
// renders it. The html renderer writes markup for embedding; the tui
// renderer runs an interactive prompt session and prints the submitted
// values. An optional layout document rearranges the scaffolded form
// before rendering.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	modelform "github.com/goliatone/go-modelform"
	"github.com/goliatone/go-modelform/pkg/form"
	"github.com/goliatone/go-modelform/pkg/layoutdoc"
	"github.com/goliatone/go-modelform/pkg/reactive"
	"github.com/goliatone/go-modelform/pkg/renderers/tui"
	"github.com/goliatone/go-modelform/pkg/scaffold"
)

func main() {
	var (
		schemaFlag    = flag.String("schema", "", "OpenAPI document path")
		componentFlag = flag.String("component", "", "component schema name inside -schema")
		layoutFlag    = flag.String("layout", "", "layout document applied before rendering")
		formFlag      = flag.String("form", "", "form id inside -layout (defaults to the only form)")
		rendererFlag  = flag.String("renderer", "html", "renderer to use")
		outputFlag    = flag.String("output", "", "output file (stdout if empty)")
		titleFlag     = flag.String("title", "", "form title override")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s -schema doc.json -component Name [flags]\n\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	if *schemaFlag == "" || *componentFlag == "" {
		flag.Usage()
		os.Exit(2)
	}

	ctx := context.Background()

	descriptors, err := scaffold.New().LoadSchemaFile(ctx, *schemaFlag, *componentFlag)
	if err != nil {
		log.Fatalf("schema: %v", err)
	}

	b, err := form.FromDescriptors(reactive.NewState(map[string]any{}), descriptors)
	if err != nil {
		log.Fatalf("scaffold: %v", err)
	}
	if *layoutFlag != "" {
		if err := applyLayout(b, *layoutFlag, *formFlag); err != nil {
			log.Fatalf("layout: %v", err)
		}
	}
	if *titleFlag != "" {
		b.Title(*titleFlag)
	}

	f, session, err := b.Build(ctx)
	if err != nil {
		log.Fatalf("build form: %v", err)
	}
	defer session.Close()

	registry, err := modelform.DefaultRenderers()
	if err != nil {
		log.Fatalf("renderers: %v", err)
	}
	terminal, err := tui.New()
	if err != nil {
		log.Fatalf("renderers: %v", err)
	}
	registry.MustRegister(terminal)

	renderer, err := registry.Get(*rendererFlag)
	if err != nil {
		log.Fatalf("%v (have: %s)", err, strings.Join(registry.List(), ", "))
	}

	out, err := renderer.Render(ctx, f)
	if err != nil {
		log.Fatalf("render: %v", err)
	}

	if *outputFlag != "" {
		if err := os.WriteFile(*outputFlag, out, 0o644); err != nil {
			log.Fatalf("write output: %v", err)
		}
		fmt.Printf("form written to %s\n", *outputFlag)
		return
	}
	fmt.Println(string(out))
}

// applyLayout loads the document at path and replays one of its forms
// onto the builder. With no -form flag the document must hold exactly
// one form.
func applyLayout[T any](b *form.Builder[T], path, formID string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	doc, err := layoutdoc.Load(raw)
	if err != nil {
		return err
	}
	if formID == "" {
		ids := doc.IDs()
		if len(ids) != 1 {
			return fmt.Errorf("document holds %d forms, pick one with -form", len(ids))
		}
		formID = ids[0]
	}
	return layoutdoc.Apply(doc, formID, b)
}
