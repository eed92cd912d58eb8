package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"placement-tutor/internal/artifact"
	"placement-tutor/internal/llm"
	"placement-tutor/internal/platform/logger"
	"placement-tutor/internal/platform/metrics"
)

// DefaultRequestTimeout bounds one invocation when Options leaves it unset.
const DefaultRequestTimeout = 90 * time.Second

// Invocation outcomes reported to metrics.
const (
	outcomeCompleted = "completed"
	outcomeRejected  = "rejected"
	outcomeFatal     = "fatal"
	outcomeCanceled  = "canceled"
)

// Dependencies are the collaborators a Service is built from.
type Dependencies struct {
	LLM     llm.Completer
	Catalog CatalogSource
	Emitter artifact.Emitter // nil means inline data URIs
	Log     *slog.Logger
	Metrics *metrics.Metrics // may be nil
}

// Options tune a Service.
type Options struct {
	Model               string
	RequestTimeout      time.Duration
	SkipMediaOnDegraded bool
}

// Service runs the tutoring pipeline. It is safe for concurrent use: the
// compiled graph is shared, every invocation gets its own state.
type Service struct {
	deps Dependencies
	opts Options

	once  sync.Once
	graph *CompiledGraph
	err   error
}

// NewService returns a Service. The graph is compiled on first use.
func NewService(deps Dependencies, opts Options) *Service {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = DefaultRequestTimeout
	}
	if deps.Log == nil {
		deps.Log = slog.Default()
	}
	if m := deps.Metrics; m != nil {
		deps.LLM = llm.Instrument(deps.LLM, func(stage string, _ time.Duration, err error) {
			m.ObserveLLMCall(stage, err)
		})
	}
	return &Service{deps: deps, opts: opts}
}

// Graph returns the compiled pipeline, compiling it on the first call.
func (s *Service) Graph() (*CompiledGraph, error) {
	s.once.Do(func() {
		log := s.deps.Log
		s.graph, s.err = NewTutorGraph(
			NewClassifier(s.deps.LLM, s.deps.Catalog, s.opts.Model, log),
			NewContent(s.deps.LLM, s.deps.Catalog, s.opts.Model, log),
			NewMedia(s.deps.LLM, s.deps.Emitter, s.opts.Model, log, WithSkipOnDegraded(s.opts.SkipMediaOnDegraded)),
		)
	})
	return s.graph, s.err
}

// Invoke runs one query through the pipeline. duration is clamped into
// [MinDuration, MaxDuration]. Stage failures are absorbed into the returned
// state; only an exhausted time budget, a panicking stage or an invalid graph
// produce an error.
func (s *Service) Invoke(ctx context.Context, query string, duration int) (*PipelineState, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	g, err := s.Graph()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.opts.RequestTimeout)
	defer cancel()

	st := NewPipelineState(query, duration)
	log := s.deps.Log.With(
		slog.String("request_id", logger.RequestID(ctx)),
		slog.String("query", query),
		slog.Int("duration", st.Duration))
	ctx = withLogger(ctx, log)
	log.Info("pipeline started")

	start := time.Now()
	trace, err := g.Run(ctx, st)
	for _, step := range trace {
		s.deps.Metrics.ObserveStage(string(step.Node), step.Took)
		log.Debug("stage finished",
			slog.String("stage", string(step.Node)),
			slog.String("phase", string(PhaseAfter(step.Node, st))),
			slog.Duration("took", step.Took))
	}
	if err != nil {
		if errors.Is(err, ErrCanceled) {
			s.deps.Metrics.IncInvocation(outcomeCanceled)
			log.Info("pipeline canceled", slog.Duration("took", time.Since(start)))
			return nil, err
		}
		s.deps.Metrics.IncInvocation(outcomeFatal)
		log.Error("pipeline failed",
			slog.String("error", err.Error()),
			slog.Duration("took", time.Since(start)))
		if errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, ErrBudgetExceeded) {
			err = fmt.Errorf("%w: %w", ErrBudgetExceeded, err)
		}
		return nil, err
	}

	s.deps.Metrics.IncClassification(string(st.Classification))
	outcome := outcomeCompleted
	if st.Rejected {
		outcome = outcomeRejected
	}
	s.deps.Metrics.IncInvocation(outcome)
	if st.MediaFailed {
		s.deps.Metrics.IncMediaFailures()
	}

	log.Info("pipeline finished",
		slog.String("outcome", outcome),
		slog.String("classification", string(st.Classification)),
		slog.Bool("content_degraded", st.ContentDegraded),
		slog.Bool("media_failed", st.MediaFailed),
		slog.Int("absorbed_errors", len(st.Errors)),
		slog.Duration("took", time.Since(start)))
	return st, nil
}
