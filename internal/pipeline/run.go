// Package pipeline runs one résumé analysis end to end: resolve the
// résumé, score it and ask for improvements in parallel, render the
// improved document, then assemble the response payload.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-ats/internal/advisor"
	"github.com/jonathan/resume-ats/internal/archive"
	"github.com/jonathan/resume-ats/internal/ats"
	"github.com/jonathan/resume-ats/internal/events"
	"github.com/jonathan/resume-ats/internal/ingestion"
	"github.com/jonathan/resume-ats/internal/parsing"
	"github.com/jonathan/resume-ats/internal/rendering"
	"github.com/jonathan/resume-ats/internal/storage"
	"github.com/jonathan/resume-ats/internal/types"
)

// Step names reported through ProgressCallback.
const (
	StepResume  = "parse_resume"
	StepJob     = "job_description"
	StepScore   = "ats_score"
	StepAdvice  = "ai_improvements"
	StepRender  = "render"
	StepArchive = "archive"
)

// ProgressEvent is a progress update during a run.
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	Content any    `json:"content,omitempty"`
}

// ProgressCallback receives progress events. It is called from the
// goroutine running the step.
type ProgressCallback func(event ProgressEvent)

// Improver is satisfied by *advisor.Advisor.
type Improver interface {
	Generate(ctx context.Context, req advisor.Request) advisor.Result
}

// Options wires a Pipeline. Only Resolver and Advisor are required; the
// rest are optional side channels.
type Options struct {
	Resolver   *parsing.Resolver
	Advisor    Improver
	Fetcher    ingestion.Fetcher
	Archive    archive.Store
	Blobs      storage.Store
	Events     events.Publisher
	OnProgress ProgressCallback
	// PersistTimeout bounds archive, upload and publish work per run.
	PersistTimeout time.Duration
}

// Pipeline runs analyses. It is safe for concurrent use.
type Pipeline struct {
	opts Options
}

// New creates a Pipeline.
func New(opts Options) *Pipeline {
	if opts.Resolver == nil {
		opts.Resolver = parsing.NewResolver(0)
	}
	if opts.Advisor == nil {
		opts.Advisor = advisor.New(nil, advisor.Options{})
	}
	if opts.PersistTimeout <= 0 {
		opts.PersistTimeout = 10 * time.Second
	}
	return &Pipeline{opts: opts}
}

// Output is the result of a successful run.
type Output struct {
	Data            types.AnalysisData
	AnalysisID      string
	AdvisorFallback bool
	AdvisorReason   string
	Job             *ingestion.JobDescription
	Upload          *parsing.Upload
}

// Run analyzes req, which must already be validated. Errors come from
// résumé resolution (see parsing.Resolver.Resolve) or rendering; advisor
// and job-description failures are absorbed.
func (p *Pipeline) Run(ctx context.Context, req *types.AnalyzeRequest, requestID string) (*Output, error) {
	return p.RunWithProgress(ctx, req, requestID, p.opts.OnProgress)
}

// RunWithProgress is Run with a per-call progress callback in place of
// Options.OnProgress. The callback may be invoked from several goroutines
// at once.
func (p *Pipeline) RunWithProgress(ctx context.Context, req *types.AnalyzeRequest, requestID string, onProgress ProgressCallback) (*Output, error) {
	emit := emitter(onProgress)

	parsed, upload, err := p.opts.Resolver.Resolve(req)
	if err != nil {
		return nil, err
	}
	emit(StepResume, fmt.Sprintf("Parsed %s (%d sections)", parsed.FileName, len(parsed.Sections)), nil)

	job := p.jobDescription(ctx, req, emit)
	jobText := ""
	if job != nil {
		jobText = job.Text
	}

	var (
		analysis types.AnalysisResult
		advice   advisor.Result
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		analysis = ats.Analyze(ats.Input{
			Text:           parsed.Text,
			JobRole:        req.JobRole,
			Company:        req.Company,
			JobDescription: jobText,
		})
		emit(StepScore, fmt.Sprintf("ATS score %d/100", analysis.ATSScore), nil)
		return nil
	})
	g.Go(func() error {
		advice = p.opts.Advisor.Generate(gCtx, advisor.Request{
			ResumeText:     parsed.Text,
			JobRole:        req.JobRole,
			Company:        req.Company,
			JobDescription: jobText,
		})
		emit(StepAdvice, fmt.Sprintf("Advisor returned %s result", advice.Kind), nil)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	doc := BuildDocument(req.JobRole, req.Company, analysis, advice.Data)
	generated, err := rendering.Render(types.ParseFormat(req.TargetFormat), doc)
	if err != nil {
		return nil, fmt.Errorf("rendering resume: %w", err)
	}
	emit(StepRender, fmt.Sprintf("Rendered %s resume", generated.Format), nil)

	out := &Output{
		Data: types.AnalysisData{
			ParsedResume:    parsed,
			ATSAnalysis:     analysis,
			AIImprovements:  advice.Data,
			GeneratedResume: generated,
			Summary:         BuildSummary(analysis, advice.Data),
		},
		AdvisorFallback: advice.Fallback(),
		AdvisorReason:   advice.Reason,
		Job:             job,
		Upload:          upload,
	}
	out.AnalysisID = p.persist(ctx, req, requestID, out, emit)
	return out, nil
}

// jobDescription resolves inline or fetched posting text. Fetch failures
// are logged and scoring continues without a description.
func (p *Pipeline) jobDescription(ctx context.Context, req *types.AnalyzeRequest, emit emitFunc) *ingestion.JobDescription {
	job, err := ingestion.ResolveJobDescription(ctx, p.opts.Fetcher, req.JobDescription, req.JobDescriptionURL)
	if err != nil {
		log.Printf("[pipeline] continuing without job description: %v", err)
		return nil
	}
	if job != nil {
		emit(StepJob, fmt.Sprintf("Job description ready (%d chars)", len(job.Text)), nil)
	}
	return job
}

type emitFunc func(step, message string, content any)

func emitter(cb ProgressCallback) emitFunc {
	return func(step, message string, content any) {
		if cb != nil {
			cb(ProgressEvent{Step: step, Message: message, Content: content})
		}
	}
}
