package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectPlatform(t *testing.T) {
	tests := []struct {
		url  string
		want Platform
	}{
		{"https://boards.greenhouse.io/acme/jobs/123", PlatformGreenhouse},
		{"https://job-boards.greenhouse.io/acme/jobs/123", PlatformGreenhouse},
		{"https://jobs.lever.co/acme/abc", PlatformLever},
		{"https://acme.wd5.myworkdayjobs.com/en-US/careers/job/1", PlatformWorkday},
		{"https://jobs.ashbyhq.com/acme/1", PlatformAshby},
		{"https://www.linkedin.com/jobs/view/42", PlatformLinkedIn},
		{"https://example.com/careers", PlatformUnknown},
		{"https://notgreenhouse.io.example.com/", PlatformUnknown},
		{"://bad", PlatformUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectPlatform(tt.url))
		})
	}
}

func TestPlatformContentSelectors(t *testing.T) {
	assert.Equal(t, ".job__description.body", PlatformContentSelectors(PlatformGreenhouse)[0])
	assert.Equal(t, JobPostingSelectors(), PlatformContentSelectors(PlatformUnknown))

	// Callers may mutate the result without touching the table.
	sel := PlatformContentSelectors(PlatformLever)
	sel[0] = "changed"
	assert.Equal(t, ".posting-page", PlatformContentSelectors(PlatformLever)[0])
}

func TestPlatformNoiseSelectors(t *testing.T) {
	gh := PlatformNoiseSelectors(PlatformGreenhouse)
	assert.Contains(t, gh, "form")
	assert.Contains(t, gh, ".voluntary-self-id")

	unknown := PlatformNoiseSelectors(PlatformUnknown)
	assert.Len(t, unknown, len(commonNoise))
	assert.NotContains(t, unknown, ".voluntary-self-id")
}
