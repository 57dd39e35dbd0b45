package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/jd-extractor/internal/analysis"
	"github.com/jonathan/jd-extractor/internal/observability"
	"github.com/jonathan/jd-extractor/internal/pipeline"
)

var analyzeJDCmd = &cobra.Command{
	Use:   "analyze-jd",
	Short: "Analyze a job posting into a structured record",
	Long:  "Extract a job posting (from a URL or an already cleaned text file) and run LLM analysis to produce responsibilities, skills, tools, and ATS keywords as JSON.",
	RunE:  runAnalyzeJD,
}

var (
	analyzeURL      string
	analyzeTextFile string
	analyzeMode     string
	analyzeOut      string
	analyzeVerbose  bool
)

func init() {
	analyzeJDCmd.Flags().StringVarP(&analyzeURL, "url", "u", "", "Job posting URL to extract and analyze")
	analyzeJDCmd.Flags().StringVarP(&analyzeTextFile, "text-file", "t", "", "Path to file containing already extracted job posting text")
	analyzeJDCmd.Flags().StringVarP(&analyzeMode, "mode", "m", "", "Fetch mode: auto, static, or rendered (default auto)")
	analyzeJDCmd.Flags().StringVarP(&analyzeOut, "out", "o", "", "Output directory for the analysis JSON")
	analyzeJDCmd.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Print detailed progress information")

	rootCmd.AddCommand(analyzeJDCmd)
}

func runAnalyzeJD(cmd *cobra.Command, args []string) error {
	if analyzeURL == "" && analyzeTextFile == "" {
		return fmt.Errorf("either --url or --text-file must be provided")
	}
	if analyzeURL != "" && analyzeTextFile != "" {
		return fmt.Errorf("--url and --text-file are mutually exclusive; provide only one")
	}

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	ctx := context.Background()
	printer := observability.NewPrinter(os.Stdout)

	var text string
	if analyzeTextFile != "" {
		data, err := os.ReadFile(analyzeTextFile)
		if err != nil {
			return fmt.Errorf("failed to read text file: %w", err)
		}
		text = string(data)
	} else {
		orchestrator := pipeline.New(&pipeline.Config{Verbose: analyzeVerbose})
		result, err := orchestrator.Extract(ctx, analyzeURL, analyzeMode)
		if err != nil {
			return err
		}
		if result.Source == pipeline.SourceNone {
			return fmt.Errorf("extraction failed: %s", result.Error)
		}
		if analyzeVerbose {
			printer.PrintExtractionResult(result)
		}
		text = result.Text
	}

	record, err := analysis.Analyze(ctx, text, apiKey)
	if err != nil {
		return err
	}

	printer.PrintAnalysis(record)

	if analyzeOut != "" {
		if err := os.MkdirAll(analyzeOut, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		data, err := json.MarshalIndent(record, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal analysis: %w", err)
		}
		outPath := filepath.Join(analyzeOut, "jd_analysis.json")
		if err := os.WriteFile(outPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write analysis file: %w", err)
		}
		fmt.Fprintf(os.Stdout, "Analysis: %s\n", outPath)
	}

	return nil
}
