package ingestion

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-ats/internal/fetch"
)

type stubFetcher struct {
	page  *fetch.Page
	err   error
	calls int
}

func (s *stubFetcher) JobPosting(_ context.Context, _ string) (*fetch.Page, error) {
	s.calls++
	return s.page, s.err
}

func TestResolveJobDescription_InlineTextWins(t *testing.T) {
	f := &stubFetcher{}
	jd, err := ResolveJobDescription(context.Background(), f, "  SQL   and Python ", "https://example.com/job")
	require.NoError(t, err)
	assert.Equal(t, "SQL and Python", jd.Text)
	assert.Equal(t, Hash("SQL and Python"), jd.Hash)
	assert.Empty(t, jd.URL)
	assert.Zero(t, f.calls)
}

func TestResolveJobDescription_None(t *testing.T) {
	jd, err := ResolveJobDescription(context.Background(), nil, "   ", "")
	require.NoError(t, err)
	assert.Nil(t, jd)
}

func TestResolveJobDescription_FromURL(t *testing.T) {
	f := &stubFetcher{page: &fetch.Page{Text: "Analyst\n\n\n\n• Tableau", Platform: fetch.PlatformLever}}
	jd, err := ResolveJobDescription(context.Background(), f, "", "https://jobs.lever.co/acme/1")
	require.NoError(t, err)
	assert.Equal(t, "Analyst\n\n- Tableau", jd.Text)
	assert.Equal(t, "lever", jd.Platform)
	assert.Equal(t, "https://jobs.lever.co/acme/1", jd.URL)
	assert.NotEmpty(t, jd.FetchedAt)
}

func TestResolveJobDescription_FetchError(t *testing.T) {
	f := &stubFetcher{err: errors.New("boom")}
	_, err := ResolveJobDescription(context.Background(), f, "", "https://example.com/job")
	require.ErrorIs(t, err, ErrJobFetchFailed)

	_, err = ResolveJobDescription(context.Background(), nil, "", "https://example.com/job")
	require.ErrorIs(t, err, ErrJobFetchFailed)
}

func TestHash(t *testing.T) {
	assert.Len(t, Hash("x"), 64)
	assert.Equal(t, Hash("same"), Hash("same"))
	assert.NotEqual(t, Hash("a"), Hash("b"))
}
