package main

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/resume-ats/internal/ingestion"
	"github.com/jonathan/resume-ats/internal/observability"
	"github.com/jonathan/resume-ats/internal/types"
	"github.com/spf13/cobra"
)

var (
	analyzeRole    string
	analyzeCompany string
	analyzeJDFile  string
	analyzeJDURL   string
	analyzeFormat  string
	analyzeJSON    bool
	analyzeOut     string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <resume.pdf|resume.docx|resume.txt>",
	Short: "Score a local résumé and print the report",
	Long: `Run the full analysis on a résumé file without starting the server.
PDF and DOCX files go through the same upload checks as the API; any other
extension is read as plain text.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeRole, "role", "r", "", "Target job role (required)")
	analyzeCmd.Flags().StringVarP(&analyzeCompany, "company", "c", "", "Target company (required)")
	analyzeCmd.Flags().StringVar(&analyzeJDFile, "jd", "", "Path to a job description text file")
	analyzeCmd.Flags().StringVar(&analyzeJDURL, "jd-url", "", "URL of a job posting to fetch")
	analyzeCmd.Flags().StringVarP(&analyzeFormat, "format", "f", string(types.FormatPlain), "Output résumé format: PLAIN or LATEX")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print the full analysis as JSON")
	analyzeCmd.Flags().StringVarP(&analyzeOut, "out", "o", "", "Write the generated résumé to this file")

	_ = analyzeCmd.MarkFlagRequired("role")
	_ = analyzeCmd.MarkFlagRequired("company")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	req, err := buildAnalyzeRequest(args[0])
	if err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	a, err := buildApp(cmd.Context(), cfg, appOptions{})
	if err != nil {
		return err
	}
	defer a.Close()

	out, err := a.pipeline.Run(cmd.Context(), req, "")
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if analyzeOut != "" {
		if err := os.WriteFile(analyzeOut, []byte(out.Data.GeneratedResume.Content), 0644); err != nil {
			return fmt.Errorf("failed to write résumé: %w", err)
		}
	}

	w := cmd.OutOrStdout()
	if analyzeJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out.Data)
	}
	observability.NewPrinter(w).PrintReport(out.Data, out.AdvisorFallback)
	if out.AdvisorFallback && out.AdvisorReason != "" {
		fmt.Fprintf(w, "Advisor fallback: %s\n", out.AdvisorReason)
	}
	if analyzeOut != "" {
		fmt.Fprintf(w, "Résumé written to %s\n", analyzeOut)
	}
	return nil
}

// buildAnalyzeRequest turns the command line into the same request the API
// accepts.
func buildAnalyzeRequest(path string) (*types.AnalyzeRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read résumé: %w", err)
	}

	req := &types.AnalyzeRequest{
		JobRole:           strings.TrimSpace(analyzeRole),
		Company:           strings.TrimSpace(analyzeCompany),
		JobDescriptionURL: analyzeJDURL,
		TargetFormat:      strings.ToUpper(analyzeFormat),
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf", ".docx":
		content, err := json.Marshal(base64.StdEncoding.EncodeToString(data))
		if err != nil {
			return nil, err
		}
		req.ResumeFile = &types.ResumeFile{FileName: filepath.Base(path), Content: content}
	default:
		req.ResumeText = string(data)
	}

	if analyzeJDFile != "" {
		jd, err := ingestion.FromFile(analyzeJDFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read job description: %w", err)
		}
		req.JobDescription = jd
	}
	return req, nil
}
