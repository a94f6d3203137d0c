package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goliatone/go-formsync/pkg/page"
	"github.com/goliatone/go-formsync/pkg/queryparams"
)

func main() {
	var (
		specPath    = flag.String("spec", "", "OpenAPI document (JSON or YAML)")
		operationID = flag.String("operation", "", "operation id whose query parameters become the form")
		outputPath  = flag.String("out", "", "output HTML file (stdout when empty)")
		stylesheet  = flag.String("stylesheet", "", "stylesheet URL linked from the page")
	)
	flag.Parse()

	if *specPath == "" || *operationID == "" {
		fmt.Fprintln(os.Stderr, "usage: generate-openapi-form -spec FILE -operation ID [-out FILE]")
		os.Exit(2)
	}

	form, err := queryparams.FormFromFile(context.Background(), *specPath, *operationID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build form: %v\n", err)
		os.Exit(1)
	}
	renderer, err := page.New(page.WithStylesheet(*stylesheet))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load templates: %v\n", err)
		os.Exit(1)
	}
	html, err := renderer.RenderString(page.Data{Form: form})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to render form: %v\n", err)
		os.Exit(1)
	}

	if *outputPath == "" {
		fmt.Print(html)
		return
	}
	if err := os.MkdirAll(filepath.Dir(*outputPath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create output directory: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*outputPath, []byte(html), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write output: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Form written to %s\n", *outputPath)
}
