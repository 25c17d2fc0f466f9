package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"MisinfoScanner/internal/app"
	"MisinfoScanner/internal/config"
	"MisinfoScanner/internal/domain"
	"MisinfoScanner/internal/logging"
	"MisinfoScanner/internal/sanitize"
	"MisinfoScanner/internal/usecase"
)

type analyzeFlags struct {
	file string
	url  string
}

func newAnalyzeCmd() *cobra.Command {
	f := &analyzeFlags{}

	cmd := &cobra.Command{
		Use:   "analyze [text]",
		Short: "Analyze a single text and print the result as JSON",
		Long: "Analyze a single text and print the result as JSON.\n" +
			"The text comes from the argument, --file, or stdin, in that order.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args, f)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.file, "file", "", "Read the text from a file")
	flags.StringVar(&f.url, "url", "", "Source URL used by the credibility check")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string, f *analyzeFlags) error {
	raw, err := readText(args, f.file, cmd.InOrStdin())
	if err != nil {
		return err
	}

	cfg := config.Load()

	text, err := sanitize.Text(raw, cfg.Analysis.MaxTextLength)
	if err != nil {
		return err
	}

	logger := logging.NewWithWriter(cmd.ErrOrStderr(), cfg.Logging.Level)
	analyzer := app.BuildAnalyzer(cfg, logger)

	result, err := analyzer.Analyze(cmd.Context(), text, domain.Metadata{URL: f.url})
	if errors.Is(err, usecase.ErrAnalysisTimeout) {
		fmt.Fprintln(cmd.ErrOrStderr(), "analysis timed out, showing fallback result")
	} else if err != nil {
		return err
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func readText(args []string, file string, stdin io.Reader) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	if file != "" {
		raw, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("read text file: %w", err)
		}
		return string(raw), nil
	}
	raw, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(raw), nil
}
