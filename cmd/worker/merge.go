package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/docmerge-svc/docmerge-backend/config"
	"github.com/docmerge-svc/docmerge-backend/internal/merge"
	"github.com/docmerge-svc/docmerge-backend/internal/merge/convert"
	"github.com/docmerge-svc/docmerge-backend/internal/merge/engines"
)

// RunMerge renders a template file with JSON data from disk and writes the
// result to stdout, using the same pipeline as the HTTP surface. Useful for
// checking a template before uploading it.
func RunMerge(args []string) {
	if len(args) < 3 {
		log.Fatal("usage: worker merge <templateFile> <engineID> <dataFile.json> [convertFormat]")
	}
	templatePath, engineID, dataPath := args[0], args[1], args[2]

	content, err := os.ReadFile(templatePath)
	if err != nil {
		log.Fatalf("read template: %v", err)
	}

	raw, err := os.ReadFile(dataPath)
	if err != nil {
		log.Fatalf("read data: %v", err)
	}
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		log.Fatalf("parse data: %v", err)
	}

	engine, err := engines.Get(engineID, content)
	if err != nil {
		log.Fatalf("engine: %v", err)
	}

	transformed := merge.Walk(data, merge.RichTextRule).(map[string]any)

	ext := strings.TrimPrefix(filepath.Ext(templatePath), ".")
	sink, err := engine.Merge(transformed, engines.NewSink("application/octet-stream"))
	if err != nil {
		log.Fatalf("merge: %v", err)
	}
	if sink.Extension != "" {
		ext = sink.Extension
	}

	body := sink.Bytes()
	if len(args) > 3 {
		format := args[3]
		cfg, err := config.Load()
		if err != nil {
			log.Fatalf("config: %v", err)
		}

		formats := convert.DefaultFormats()
		if cfg.Unoconv.FormatsFile != "" {
			if formats, err = convert.LoadFormats(cfg.Unoconv.FormatsFile); err != nil {
				log.Fatalf("formats: %v", err)
			}
		}

		var converter convert.Converter
		if cfg.Unoconv.Local {
			converter = convert.NewLocal(cfg.Unoconv.PythonPath, cfg.Unoconv.Path, formats)
		} else {
			converter = convert.NewRemote(cfg.Unoconv.URL, formats)
		}

		result, err := converter.Convert(context.Background(), body, format)
		if err != nil {
			log.Fatalf("convert: %v", err)
		}
		if result.Status != 200 {
			log.Fatalf("convert: converter returned status %d: %s", result.Status, result.Content)
		}
		body = result.Content
		ext = result.Extension
	}

	log.Printf("rendered %s (%d bytes, .%s)", templatePath, len(body), ext)
	if _, err := os.Stdout.Write(body); err != nil {
		log.Fatal(err)
	}
}
