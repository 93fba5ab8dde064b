// Package advisor asks a language model for résumé improvements. Every
// failure is downgraded to deterministic fallback content, so callers always
// receive a usable result.
package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jonathan/resume-ats/internal/llm"
	"github.com/jonathan/resume-ats/internal/prompts"
	"github.com/jonathan/resume-ats/internal/schemas"
	"github.com/jonathan/resume-ats/internal/skillmaps"
	"github.com/jonathan/resume-ats/internal/types"
)

// Kind tells whether a Result came from the model or from fallback content.
type Kind string

const (
	KindOK       Kind = "ok"
	KindFallback Kind = "fallback"
)

// Result is the advisor outcome. Reason is set for fallbacks.
type Result struct {
	Kind   Kind
	Data   types.AIImprovementResult
	Reason string
}

// Fallback reports whether the data is canned content.
func (r Result) Fallback() bool { return r.Kind == KindFallback }

// Request carries the inputs for one improvement pass.
type Request struct {
	ResumeText     string
	JobRole        string
	Company        string
	JobDescription string
}

const (
	DefaultTimeout = 30 * time.Second
	DefaultRetries = 1
)

// Options tunes model calls.
type Options struct {
	// Timeout bounds each model call, including a retry.
	Timeout time.Duration
	// Retries is the number of extra attempts after a transport failure.
	// Zero means DefaultRetries; a negative value disables retrying.
	Retries int
	// Backoff is the pause before a retry.
	Backoff time.Duration
	Tier    llm.ModelTier
}

// Advisor generates improvements through an llm.Client.
type Advisor struct {
	client llm.Client
	opts   Options
}

// New creates an Advisor. A nil client yields fallback results only.
func New(client llm.Client, opts Options) *Advisor {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	switch {
	case opts.Retries == 0:
		opts.Retries = DefaultRetries
	case opts.Retries < 0:
		opts.Retries = 0
	}
	if opts.Backoff <= 0 {
		opts.Backoff = 500 * time.Millisecond
	}
	if opts.Tier == "" {
		opts.Tier = llm.TierStandard
	}
	return &Advisor{client: client, opts: opts}
}

// errMalformed marks a response that arrived but could not be used.
var errMalformed = errors.New("malformed model response")

// Generate returns improvements for req. It never returns an error.
func (a *Advisor) Generate(ctx context.Context, req Request) Result {
	if a == nil || a.client == nil {
		return fallback(req.JobRole, "no model client configured")
	}

	keywords := a.jobKeywords(ctx, req)

	raw, err := a.improve(ctx, req, keywords)
	if err != nil {
		log.Printf("[advisor] model call failed for role %q: %v", req.JobRole, err)
		return fallback(req.JobRole, err.Error())
	}

	parsed, err := parseImprovement(raw)
	if err != nil {
		log.Printf("[advisor] %v", err)
		return Result{
			Kind:   KindFallback,
			Data:   normalize(unparsedDefault(keywords), keywords),
			Reason: err.Error(),
		}
	}
	return Result{Kind: KindOK, Data: normalize(parsed, keywords)}
}

func (a *Advisor) improve(ctx context.Context, req Request, keywords []string) (string, error) {
	system := prompts.MustGet("advisor.json", "system-improve")
	prompt := prompts.Format(prompts.MustGet("advisor.json", "improve-resume"), map[string]string{
		"Resume":      prompts.Quote("resume", req.ResumeText),
		"JobRole":     req.JobRole,
		"Company":     req.Company,
		"JobKeywords": strings.Join(keywords, ", "),
	})
	return a.call(ctx, system+"\n\n"+prompt, a.opts.Tier)
}

// jobKeywords extracts keywords from the job description, falling back to
// the role's keyword table when there is no description or extraction fails.
func (a *Advisor) jobKeywords(ctx context.Context, req Request) []string {
	if strings.TrimSpace(req.JobDescription) == "" {
		return skillmaps.RoleKeywords(req.JobRole)
	}

	prompt := prompts.Format(prompts.MustGet("advisor.json", "extract-job-keywords"), map[string]string{
		"JobDescription": prompts.Quote("job description", req.JobDescription),
	})
	raw, err := a.call(ctx, prompt, llm.TierLite)
	if err != nil {
		log.Printf("[advisor] keyword extraction failed: %v", err)
		return skillmaps.RoleKeywords(req.JobRole)
	}

	keywords, err := parseKeywords(raw)
	if err != nil || len(keywords) == 0 {
		return skillmaps.RoleKeywords(req.JobRole)
	}
	return keywords
}

// call runs one JSON generation under the advisor timeout, retrying
// transport failures with a constant backoff. Cancellation of ctx and a
// missing API key are never retried.
func (a *Advisor) call(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.opts.Timeout)
	defer cancel()

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(a.opts.Backoff), uint64(a.opts.Retries)),
		ctx,
	)

	var out string
	err := backoff.Retry(func() error {
		var err error
		out, err = a.client.GenerateJSON(ctx, prompt, tier)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil || errors.Is(err, llm.ErrMissingAPIKey) {
			return backoff.Permanent(err)
		}
		return err
	}, policy)
	if err != nil {
		return "", err
	}
	return out, nil
}

// modelImprovement mirrors the JSON shape requested by the improve prompt.
type modelImprovement struct {
	ImprovedBullets      []modelBullet `json:"improvedBullets"`
	MissingKeywords      []string      `json:"missingKeywords"`
	FormatTips           []string      `json:"formatTips"`
	EstimatedImprovement float64       `json:"estimatedImprovement"`
}

type modelBullet struct {
	Original    string  `json:"original"`
	Improved    string  `json:"improved"`
	Reasoning   string  `json:"reasoning"`
	ImpactScore float64 `json:"impactScore"`
}

func parseImprovement(raw string) (*modelImprovement, error) {
	body := llm.CleanJSONBlock(raw)
	if !json.Valid([]byte(body)) {
		body = llm.ExtractJSONObject(body)
	}
	if body == "" {
		return nil, fmt.Errorf("%w: no JSON object", errMalformed)
	}
	if err := schemas.Validate(schemas.Improvement, body); err != nil {
		return nil, fmt.Errorf("%w: %v", errMalformed, err)
	}

	var out modelImprovement
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		return nil, fmt.Errorf("%w: %v", errMalformed, err)
	}
	return &out, nil
}

func parseKeywords(raw string) ([]string, error) {
	arr := llm.ExtractJSONArray(llm.CleanJSONBlock(raw))
	if err := schemas.Validate(schemas.Keywords, arr); err != nil {
		return nil, err
	}
	var keywords []string
	if err := json.Unmarshal([]byte(arr), &keywords); err != nil {
		return nil, err
	}
	out := keywords[:0]
	for _, k := range keywords {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out, nil
}
