package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"tabreport/internal/export"
	"tabreport/internal/report"
	"tabreport/pkg/config"
	"tabreport/pkg/logger"
)

func main() {
	var (
		inputPath  = flag.String("input", "", "input file (csv, tsv or xlsx)")
		outputPath = flag.String("output", "report.pdf", "output PDF path")
		template   = flag.String("template", "", "layout template: classic or cover")
		geometry   = flag.String("geometry", "", "page geometry: a4, a4-landscape, wide or custom")
		title      = flag.String("title", "", "report title override")
		intro      = flag.String("intro", "", "introductory text")
		statement  = flag.String("statement", "", "top-left statement line")
		imagePath  = flag.String("image", "", "logo or banner image path")
		delimiter  = flag.String("delimiter", "", "field delimiter for delimited input")
		exports    = flag.String("export", "", "extra formats, comma-separated: xlsx,csv,markdown")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger.InitWithConfig(logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		FilePath:   cfg.Log.FilePath,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
		Compress:   cfg.Log.Compress,
	})

	formats := cfg.Report.Exports
	if *exports != "" {
		formats = strings.Split(*exports, ",")
	}

	match := report.KeywordMatcher(cfg.Report.NumericKeywords)
	var exporters []report.Exporter
	for _, f := range formats {
		exp, err := export.New(strings.TrimSpace(f), match)
		if err != nil {
			logger.Fatal("unknown export format", "format", f, "error", err)
		}
		exporters = append(exporters, exp)
	}

	var delim rune
	if *delimiter != "" {
		delim = []rune(*delimiter)[0]
	}

	gen := report.New(cfg, exporters...)
	result, err := gen.Generate(context.Background(), report.Request{
		InputPath:  *inputPath,
		OutputPath: *outputPath,
		Template:   *template,
		Geometry:   *geometry,
		Title:      *title,
		Intro:      *intro,
		Statement:  *statement,
		ImagePath:  *imagePath,
		Delimiter:  delim,
	})
	if err != nil {
		logger.Log.Error("report generation failed", "error", err)
		os.Exit(1)
	}

	for _, w := range result.Warnings {
		logger.Log.Warn("generation warning", "report_id", result.ReportID, "warning", w)
	}

	fmt.Printf("report %s: %s (%d records, %d pages)\n",
		result.ReportID, result.OutputPath, result.Records, result.Pages)
	for _, p := range result.Exports {
		fmt.Printf("export: %s\n", p)
	}
}
