package advisor

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-ats/internal/llm"
	"github.com/jonathan/resume-ats/internal/skillmaps"
	"github.com/jonathan/resume-ats/internal/types"
)

// scriptedClient replays responses keyed by whether the prompt is a
// keyword-extraction or an improvement request.
type scriptedClient struct {
	mu       sync.Mutex
	keywords []reply
	improve  []reply
	prompts  []string
}

type reply struct {
	out string
	err error
}

func (c *scriptedClient) next(queue *[]reply) reply {
	if len(*queue) == 0 {
		return reply{err: errors.New("no scripted reply")}
	}
	r := (*queue)[0]
	*queue = (*queue)[1:]
	return r
}

func (c *scriptedClient) GenerateJSON(ctx context.Context, prompt string, _ llm.ModelTier) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prompts = append(c.prompts, prompt)
	var r reply
	if strings.Contains(prompt, "Extract the top 10") {
		r = c.next(&c.keywords)
	} else {
		r = c.next(&c.improve)
	}
	if r.err == nil && ctx.Err() != nil {
		return "", ctx.Err()
	}
	return r.out, r.err
}

func (c *scriptedClient) GenerateContent(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	return c.GenerateJSON(ctx, prompt, tier)
}

func (c *scriptedClient) Close() error { return nil }

const goodResponse = "```json\n" + `{
  "improvedBullets": [
    {"original": "Did reports", "improved": "Automated 12 weekly reports in SQL", "reasoning": "Quantified", "impactScore": 90},
    {"improved": "Built Tableau dashboards"}
  ],
  "missingKeywords": ["Power BI"],
  "formatTips": ["Lead with verbs"],
  "estimatedImprovement": 22
}` + "\n```"

func newAdvisor(c llm.Client) *Advisor {
	return New(c, Options{Timeout: time.Second, Backoff: time.Millisecond})
}

func TestGenerate_OK(t *testing.T) {
	c := &scriptedClient{improve: []reply{{out: goodResponse}}}
	res := newAdvisor(c).Generate(context.Background(), Request{
		ResumeText: "Did reports", JobRole: "Data Analyst", Company: "Google",
	})

	require.Equal(t, KindOK, res.Kind)
	assert.False(t, res.Fallback())
	assert.Empty(t, res.Reason)

	data := res.Data
	require.Len(t, data.ImprovedBullets, 2)
	assert.Equal(t, 90, data.ImprovedBullets[0].ImpactScore)
	assert.Equal(t, "Improved for ATS compatibility", data.ImprovedBullets[1].Reasoning)
	assert.Equal(t, 75, data.ImprovedBullets[1].ImpactScore)
	assert.Equal(t, []string{"Power BI"}, data.KeywordSuggestions)
	assert.Equal(t, []string{"Lead with verbs"}, data.FormatTips)
	assert.Equal(t, 22, data.EstimatedImprovementScore)
	assert.Equal(t, types.ToneAnalysis{Current: types.ToneMixed, Suggestion: "Use more active voice and specific metrics"}, data.ToneAnalysis)

	// Without a job description the role keyword table feeds the prompt.
	require.Len(t, c.prompts, 1)
	assert.Contains(t, c.prompts[0], strings.Join(skillmaps.RoleKeywords("Data Analyst"), ", "))
	assert.Contains(t, c.prompts[0], "JOB ROLE: Data Analyst")
}

func TestGenerate_DefaultsForMissingFields(t *testing.T) {
	c := &scriptedClient{improve: []reply{{out: `{}`}}}
	res := newAdvisor(c).Generate(context.Background(), Request{JobRole: "Data Analyst", Company: "Google"})

	require.Equal(t, KindOK, res.Kind)
	assert.Empty(t, res.Data.ImprovedBullets)
	assert.Equal(t, defaultFormatTips, res.Data.FormatTips)
	assert.Equal(t, skillmaps.RoleKeywords("Data Analyst")[:5], res.Data.KeywordSuggestions)
	assert.Equal(t, 15, res.Data.EstimatedImprovementScore)
}

func TestGenerate_JobDescriptionKeywords(t *testing.T) {
	c := &scriptedClient{
		keywords: []reply{{out: `{"keywords": ["dbt", "Snowflake", "Looker"]}`}},
		improve:  []reply{{out: `{"formatTips": []}`}},
	}
	res := newAdvisor(c).Generate(context.Background(), Request{
		JobRole: "Data Analyst", Company: "Google", JobDescription: "We use dbt and Snowflake.",
	})

	require.Equal(t, KindOK, res.Kind)
	assert.Equal(t, []string{"dbt", "Snowflake", "Looker"}, res.Data.KeywordSuggestions)
	assert.Empty(t, res.Data.FormatTips)
	require.Len(t, c.prompts, 2)
	assert.Contains(t, c.prompts[1], "JOB DESCRIPTION KEYWORDS: dbt, Snowflake, Looker")
}

func TestGenerate_KeywordExtractionFailureUsesRoleKeywords(t *testing.T) {
	c := &scriptedClient{
		keywords: []reply{{out: "I could not find any."}},
		improve:  []reply{{out: `{}`}},
	}
	res := newAdvisor(c).Generate(context.Background(), Request{
		JobRole: "Product Manager", Company: "Meta", JobDescription: "Own the roadmap.",
	})
	assert.Equal(t, skillmaps.RoleKeywords("Product Manager")[:5], res.Data.KeywordSuggestions)
}

func TestGenerate_MalformedJSONFallsBack(t *testing.T) {
	c := &scriptedClient{improve: []reply{{out: "Sure! Here are some ideas: use verbs."}}}
	res := newAdvisor(c).Generate(context.Background(), Request{JobRole: "Data Analyst", Company: "Google"})

	require.Equal(t, KindFallback, res.Kind)
	assert.Contains(t, res.Reason, "malformed model response")
	require.Len(t, res.Data.ImprovedBullets, 1)
	assert.Equal(t, "Increased system efficiency by 25% through optimization", res.Data.ImprovedBullets[0].Improved)
	assert.Equal(t, 85, res.Data.ImprovedBullets[0].ImpactScore)
	assert.Len(t, res.Data.FormatTips, 3)
	assert.Equal(t, 15, res.Data.EstimatedImprovementScore)
}

func TestGenerate_SchemaViolationFallsBack(t *testing.T) {
	c := &scriptedClient{improve: []reply{{out: `{"formatTips": "not a list"}`}}}
	res := newAdvisor(c).Generate(context.Background(), Request{JobRole: "Data Analyst", Company: "Google"})
	assert.Equal(t, KindFallback, res.Kind)
	assert.Contains(t, res.Reason, "formatTips")
}

func TestGenerate_TransportFailureFallsBack(t *testing.T) {
	boom := errors.New("503 unavailable")
	c := &scriptedClient{improve: []reply{{err: boom}, {err: boom}}}
	res := newAdvisor(c).Generate(context.Background(), Request{JobRole: "Software Engineer", Company: "Google"})

	require.Equal(t, KindFallback, res.Kind)
	assert.Equal(t, "503 unavailable", res.Reason)
	assert.Len(t, c.prompts, 2, "one retry after the first failure")

	data := res.Data
	require.Len(t, data.ImprovedBullets, 1)
	assert.Equal(t, "Increased efficiency and delivered results on time", data.ImprovedBullets[0].Improved)
	assert.Equal(t, 70, data.ImprovedBullets[0].ImpactScore)
	assert.Len(t, data.FormatTips, 4)
	assert.Equal(t, skillmaps.RoleATSKeywords("Software Engineer")[:8], data.KeywordSuggestions)
	assert.Equal(t, "Use active voice and specific achievements", data.ToneAnalysis.Suggestion)
	assert.Equal(t, 10, data.EstimatedImprovementScore)
}

func TestGenerate_RetrySucceeds(t *testing.T) {
	c := &scriptedClient{improve: []reply{{err: errors.New("reset")}, {out: `{}`}}}
	res := newAdvisor(c).Generate(context.Background(), Request{JobRole: "Data Analyst", Company: "Google"})
	assert.Equal(t, KindOK, res.Kind)
}

func TestGenerate_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := &scriptedClient{improve: []reply{{out: `{}`}, {out: `{}`}}}
	res := newAdvisor(c).Generate(ctx, Request{JobRole: "Data Analyst", Company: "Google"})
	assert.Equal(t, KindFallback, res.Kind)
	assert.Len(t, c.prompts, 1, "cancellation is not retried")
}

func TestGenerate_NoClient(t *testing.T) {
	res := New(nil, Options{}).Generate(context.Background(), Request{JobRole: "Unknown Role"})
	require.Equal(t, KindFallback, res.Kind)
	assert.Equal(t, "no model client configured", res.Reason)
	assert.Equal(t, skillmaps.RoleATSKeywords(skillmaps.DefaultRole)[:8], res.Data.KeywordSuggestions)

	var nilAdvisor *Advisor
	assert.Equal(t, KindFallback, nilAdvisor.Generate(context.Background(), Request{}).Kind)
}

func TestGenerate_FallbackIsDeterministic(t *testing.T) {
	a := fallback("Data Analyst", "x")
	b := fallback("Data Analyst", "x")
	assert.Equal(t, a, b)

	// Results must not alias the role table.
	a.Data.KeywordSuggestions[0] = "mutated"
	assert.NotEqual(t, "mutated", skillmaps.RoleATSKeywords("Data Analyst")[0])
}

// hangingClient blocks until the call's context ends.
type hangingClient struct {
	mu    sync.Mutex
	calls int
}

func (c *hangingClient) GenerateJSON(ctx context.Context, _ string, _ llm.ModelTier) (string, error) {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
	<-ctx.Done()
	return "", ctx.Err()
}

func (c *hangingClient) GenerateContent(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	return c.GenerateJSON(ctx, prompt, tier)
}

func (c *hangingClient) Close() error { return nil }

func TestGenerate_HangingModelTimesOut(t *testing.T) {
	const timeout = 50 * time.Millisecond
	c := &hangingClient{}
	a := New(c, Options{Timeout: timeout, Backoff: time.Millisecond})

	start := time.Now()
	res := a.Generate(context.Background(), Request{
		ResumeText:     "Built dashboards",
		JobRole:        "Data Analyst",
		Company:        "Google",
		JobDescription: "We need SQL and Looker",
	})
	elapsed := time.Since(start)

	require.Equal(t, KindFallback, res.Kind)
	assert.Contains(t, res.Reason, context.DeadlineExceeded.Error())
	// Keyword extraction and improvement each get one timeout.
	assert.Less(t, elapsed, 6*timeout)
	assert.Equal(t, 2, c.calls, "a timed-out call is not retried")
	assert.Equal(t, skillmaps.RoleATSKeywords("Data Analyst")[:8], res.Data.KeywordSuggestions)
}

func TestGenerate_MissingAPIKeyNotRetried(t *testing.T) {
	c := &scriptedClient{improve: []reply{{err: llm.ErrMissingAPIKey}, {out: `{}`}}}
	res := New(c, Options{Timeout: time.Second, Retries: 3, Backoff: time.Millisecond}).
		Generate(context.Background(), Request{JobRole: "Data Analyst", Company: "Google"})

	require.Equal(t, KindFallback, res.Kind)
	assert.Equal(t, llm.ErrMissingAPIKey.Error(), res.Reason)
	assert.Len(t, c.prompts, 1)
}

func TestGenerate_RetriesDisabled(t *testing.T) {
	c := &scriptedClient{improve: []reply{{err: errors.New("reset")}, {out: `{}`}}}
	res := New(c, Options{Timeout: time.Second, Retries: -1}).
		Generate(context.Background(), Request{JobRole: "Data Analyst", Company: "Google"})

	assert.Equal(t, KindFallback, res.Kind)
	assert.Len(t, c.prompts, 1)
}
