package ingestion

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jonathan/resume-ats/internal/fetch"
)

// ErrJobFetchFailed wraps any failure to download a job description URL.
var ErrJobFetchFailed = errors.New("job description fetch failed")

// JobDescription is the cleaned posting text plus where it came from.
type JobDescription struct {
	Text      string `json:"text"`
	URL       string `json:"url,omitempty"`
	Platform  string `json:"platform,omitempty"`
	Hash      string `json:"hash"`
	FetchedAt string `json:"fetchedAt,omitempty"`
}

// Fetcher is the subset of *fetch.Fetcher used for job postings.
type Fetcher interface {
	JobPosting(ctx context.Context, url string) (*fetch.Page, error)
}

// ResolveJobDescription returns the job description to score against.
// Inline text wins over a URL. With neither, it returns (nil, nil).
func ResolveJobDescription(ctx context.Context, f Fetcher, text, url string) (*JobDescription, error) {
	if cleaned := CleanText(text); cleaned != "" {
		return &JobDescription{Text: cleaned, Hash: Hash(cleaned)}, nil
	}
	if url == "" {
		return nil, nil
	}
	if f == nil {
		return nil, fmt.Errorf("%w: no fetcher configured", ErrJobFetchFailed)
	}

	page, err := f.JobPosting(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrJobFetchFailed, err)
	}
	cleaned := CleanText(page.Text)
	log.Printf("[ingestion] fetched job description from %s (%s, %d chars, rendered=%t)",
		url, page.Platform, len(cleaned), page.Rendered)

	return &JobDescription{
		Text:      cleaned,
		URL:       url,
		Platform:  string(page.Platform),
		Hash:      Hash(cleaned),
		FetchedAt: time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// Hash returns the hex SHA-256 of content.
func Hash(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
