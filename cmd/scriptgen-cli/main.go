package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	scriptgen "github.com/goliatone/go-scriptgen"
	"github.com/goliatone/go-scriptgen/pkg/manifest"
	"github.com/goliatone/go-scriptgen/pkg/prompt"
	"github.com/goliatone/go-scriptgen/pkg/runner"
	"github.com/goliatone/go-scriptgen/pkg/source"
)

func main() {
	manifestPath := flag.String("manifest", "scriptgen.yaml", "assembly manifest path or URL")
	output := flag.String("output", "", "output file (stdout if empty)")
	templateName := flag.String("template", "", "render or run a single named template instead of the full assembly")
	run := flag.Bool("run", false, "execute the selected template with the interpreter")
	interpreter := flag.String("interpreter", "rust-script", "interpreter used with -run")
	fill := flag.Bool("fill", false, "prompt for unbound placeholders before rendering")
	flag.Parse()

	ctx := context.Background()

	src := parseSource(*manifestPath)
	if src == nil {
		log.Fatalf("invalid manifest source: %q", *manifestPath)
	}

	loader := scriptgen.NewLoader(source.WithHTTPFallback(30 * time.Second))

	raw, err := loader.Load(ctx, src)
	if err != nil {
		log.Fatalf("Failed to load manifest: %v", err)
	}

	doc, err := manifest.Parse([]byte(raw))
	if err != nil {
		log.Fatalf("Failed to parse manifest: %v", err)
	}

	assembler, registry, err := manifest.Build(ctx, doc, loader)
	if err != nil {
		log.Fatalf("Failed to build manifest: %v", err)
	}

	if *fill {
		driver := prompt.NewSurveyDriver()
		if err := prompt.FillAll(ctx, driver, assembler); err != nil {
			log.Fatalf("Failed to fill placeholders: %v", err)
		}
	}

	if *run {
		name := *templateName
		if name == "" {
			log.Fatal("-run requires -template to select a registered template")
		}
		handle, err := registry.Get(name)
		if err != nil {
			log.Fatalf("Unknown template: %v", err)
		}
		out, err := runner.New(runner.WithInterpreter(*interpreter)).Run(ctx, handle)
		if err != nil {
			log.Fatalf("Execution failed: %v", err)
		}
		fmt.Print(out)
		return
	}

	var rendered string
	if *templateName != "" {
		handle, err := registry.Get(*templateName)
		if err != nil {
			log.Fatalf("Unknown template: %v", err)
		}
		rendered, err = handle.Render()
		if err != nil {
			log.Fatalf("Failed to render template: %v", err)
		}
	} else {
		rendered, err = assembler.RenderAll()
		if err != nil {
			log.Fatalf("Failed to render assembly: %v", err)
		}
	}

	if *output != "" {
		if err := os.WriteFile(*output, []byte(rendered), 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Output written to %s\n", *output)
	} else {
		fmt.Print(rendered)
	}
}

func parseSource(raw string) source.Source {
	path := strings.TrimSpace(raw)
	if path == "" {
		return nil
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return source.FromURL(path)
	}
	return source.FromFile(path)
}
