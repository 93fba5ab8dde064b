// Package main provides the entry point for the résumé ATS scoring service
// and its command-line tools.
package main

import (
	"fmt"
	"os"

	"github.com/jonathan/resume-ats/internal/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "resume_ats",
	Short: "Résumé ATS scoring API and tools",
	Long: "resume_ats scores résumés for applicant tracking system compatibility, " +
		"suggests improvements with a language model and renders an optimized résumé as plain text or LaTeX.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML or JSON config file")
}

// loadConfig reads the config file named by --config and applies the
// environment on top of it.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
