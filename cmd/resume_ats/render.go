package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/resume-ats/internal/rendering"
	"github.com/jonathan/resume-ats/internal/schemas"
	"github.com/jonathan/resume-ats/internal/types"
	"github.com/spf13/cobra"
)

var (
	renderFormat string
	renderOut    string
)

var renderCmd = &cobra.Command{
	Use:   "render <resume_document.json>",
	Short: "Render a résumé document as plain text or LaTeX",
	Long: `Render a résumé document JSON file. The file is validated against the
resume_document schema before rendering; missing fields get placeholders.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", string(types.FormatPlain), "Output format: PLAIN or LATEX")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "Output file (default stdout)")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	path := args[0]
	if err := schemas.ValidateFile(schemas.ResumeDocument, path); err != nil {
		return fmt.Errorf("invalid résumé document: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read résumé document: %w", err)
	}
	var doc types.ResumeDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse résumé document: %w", err)
	}

	generated, err := rendering.Render(types.ParseFormat(renderFormat), doc)
	if err != nil {
		return fmt.Errorf("failed to render résumé: %w", err)
	}

	if renderOut == "" {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), generated.Content)
		return err
	}
	if err := os.WriteFile(renderOut, []byte(generated.Content), 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Rendered %s résumé to %s\n", generated.Format, renderOut)
	return nil
}
