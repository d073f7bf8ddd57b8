package batch

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/MOYARU/storyscan/internal/logger"
	"github.com/MOYARU/storyscan/internal/report"
	"github.com/MOYARU/storyscan/internal/story"
)

// Analyzer is the rule engine as seen by the runner.
type Analyzer interface {
	Analyze(story.Story) (report.StoryAnalysis, error)
}

type Runner struct {
	analyzer Analyzer
	workers  int
	now      func() time.Time
	newID    func() string
	log      logrus.FieldLogger
}

type Option func(*Runner)

// WithWorkers bounds how many stories are analyzed at once. Values below 1
// mean sequential.
func WithWorkers(n int) Option {
	return func(r *Runner) {
		if n < 1 {
			n = 1
		}
		r.workers = n
	}
}

func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		r.now = now
	}
}

func WithIDGenerator(newID func() string) Option {
	return func(r *Runner) {
		r.newID = newID
	}
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(r *Runner) {
		r.log = l
	}
}

func New(analyzer Analyzer, opts ...Option) *Runner {
	r := &Runner{
		analyzer: analyzer,
		workers:  1,
		now:      func() time.Time { return time.Now().UTC() },
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.log == nil {
		r.log = logger.Log
	}
	return r
}

// Metadata is feed-level information copied onto the report.
type Metadata struct {
	TenantID     string
	LastSyncedAt string
}

// Run analyzes stories and returns the report in input order. A story that
// fails validation is recorded on its result and does not stop the batch.
// The only error is ctx.Err() when the caller cancels.
func (r *Runner) Run(ctx context.Context, tenantName string, stories []story.Story) (report.Report, error) {
	return r.RunWithMetadata(ctx, tenantName, Metadata{}, stories)
}

func (r *Runner) RunWithMetadata(ctx context.Context, tenantName string, meta Metadata, stories []story.Story) (report.Report, error) {
	results := make([]report.StoryResult, len(stories))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i := range stories {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = r.analyzeOne(stories[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return report.Report{}, err
	}
	if err := ctx.Err(); err != nil {
		return report.Report{}, err
	}

	failed := 0
	for _, res := range results {
		if res.Error != "" {
			failed++
		}
	}

	r.log.WithFields(logrus.Fields{
		"tenant":  tenantName,
		"stories": len(stories),
		"failed":  failed,
	}).Info("batch analyzed")

	return report.Report{
		ID:            r.newID(),
		TenantID:      meta.TenantID,
		TenantName:    tenantName,
		LastSyncedAt:  meta.LastSyncedAt,
		AnalyzedAt:    r.now(),
		TotalStories:  len(stories),
		FailedStories: failed,
		Results:       results,
	}, nil
}

func (r *Runner) analyzeOne(st story.Story) report.StoryResult {
	res := report.StoryResult{StoryID: st.ID, StoryTitle: st.Title}

	analysis, err := r.analyzer.Analyze(st)
	if err != nil {
		fields := logrus.Fields{"story_id": st.ID}
		var ve *story.ValidationError
		if errors.As(err, &ve) {
			fields["field"] = ve.Field
		}
		r.log.WithFields(fields).Warnf("story rejected: %v", err)
		res.Error = err.Error()
		return res
	}

	for _, pg := range st.Pages {
		if !pg.Type.IsKnown() {
			r.log.WithFields(logrus.Fields{
				"story_id": st.ID,
				"page_id":  pg.ID,
				"type":     string(pg.Type),
			}).Debug("unknown page type")
		}
	}
	r.log.WithFields(logrus.Fields{
		"story_id": st.ID,
		"score":    analysis.OverallScore,
		"issues":   len(analysis.Issues),
	}).Debug("story analyzed")
	res.Analysis = &analysis
	return res
}
