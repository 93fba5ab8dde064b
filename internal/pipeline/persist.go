package pipeline

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-ats/internal/archive"
	"github.com/jonathan/resume-ats/internal/events"
	"github.com/jonathan/resume-ats/internal/storage"
	"github.com/jonathan/resume-ats/internal/types"
)

// persist stores the upload and rendered résumé, archives the payload and
// publishes a completion event. It returns the analysis id when the
// archive accepted the record, or "" when no archive is configured or the
// save failed. Failures are logged only.
func (p *Pipeline) persist(ctx context.Context, req *types.AnalyzeRequest, requestID string, out *Output, emit emitFunc) string {
	if p.opts.Archive == nil && p.opts.Blobs == nil && p.opts.Events == nil {
		return ""
	}

	// The client may have gone away; the work still completes.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.opts.PersistTimeout)
	defer cancel()

	id := uuid.NewString()
	now := time.Now().UTC()

	if p.opts.Blobs != nil {
		p.storeBlobs(ctx, id, out)
	}

	archived := ""
	if p.opts.Archive != nil {
		body, err := json.Marshal(out.Data)
		if err != nil {
			log.Printf("[archive] failed to encode analysis: %v", err)
		} else {
			rec := archive.Record{
				ID:        id,
				CreatedAt: now,
				JobRole:   req.JobRole,
				Company:   req.Company,
				ATSScore:  out.Data.ATSAnalysis.ATSScore,
				FileName:  out.Data.ParsedResume.FileName,
				Fallback:  out.AdvisorFallback,
				Response:  body,
			}
			if out.Job != nil {
				rec.JobHash = out.Job.Hash
			}
			if err := p.opts.Archive.Save(ctx, rec); err != nil {
				log.Printf("[archive] %v", err)
			} else {
				archived = id
				emit(StepArchive, "Archived analysis "+id, nil)
			}
		}
	}

	if p.opts.Events != nil {
		err := p.opts.Events.PublishAnalysis(ctx, events.AnalysisCompleted{
			AnalysisID:      id,
			RequestID:       requestID,
			JobRole:         req.JobRole,
			Company:         req.Company,
			ATSScore:        out.Data.Summary.CurrentScore,
			PotentialScore:  out.Data.Summary.PotentialScore,
			AdvisorFallback: out.AdvisorFallback,
			Format:          string(out.Data.GeneratedResume.Format),
			OccurredAt:      now,
		})
		if err != nil {
			log.Printf("[events] %v", err)
		}
	}
	return archived
}

func (p *Pipeline) storeBlobs(ctx context.Context, id string, out *Output) {
	if up := out.Upload; up != nil {
		key := storage.ObjectKey(id, up.FileName)
		if _, err := p.opts.Blobs.Put(ctx, key, storage.ContentType(up.FileName), up.Data); err != nil {
			log.Printf("[storage] %v", err)
		}
	}

	name := "resume.txt"
	if out.Data.GeneratedResume.Format == types.FormatLaTeX {
		name = "resume.tex"
	}
	content := []byte(out.Data.GeneratedResume.Content)
	if _, err := p.opts.Blobs.Put(ctx, storage.ObjectKey(id, name), storage.ContentType(name), content); err != nil {
		log.Printf("[storage] %v", err)
	}
}
