package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// getBinaryPath returns the path to the resume_ats binary for testing
func getBinaryPath(t *testing.T) string {
	binaryName := "resume_ats"
	if testing.Short() {
		t.Skip("Skipping CLI tests in short mode")
	}

	binaryPath := filepath.Join("..", "..", "bin", binaryName)
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		t.Skipf("Binary not found at %s, build it first with 'go build -o bin/resume_ats ./cmd/resume_ats'", binaryPath)
	}

	return binaryPath
}

// command runs the binary with model keys cleared so the advisor falls back
// deterministically.
func command(t *testing.T, args ...string) *exec.Cmd {
	cmd := exec.Command(getBinaryPath(t), args...)
	cmd.Env = append(os.Environ(),
		"GEMINI_API_KEY=",
		"OPENAI_API_KEY=",
		"ARCHIVE_DRIVER=",
		"DATABASE_URL=",
	)
	return cmd
}

const sampleResume = `Jane Smith
jane@example.com | +1-555-0100

SUMMARY
Data analyst with five years of experience.

EXPERIENCE
Data Analyst | Acme Corp | 2020 - Present
- Built Python and SQL dashboards used by 40 managers
- Reduced reporting time by 30% with Power BI

EDUCATION
BSc Statistics | State University | 2019

SKILLS
Python, SQL, Excel, Tableau
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}
