// Package app assembles the tutoring service from process settings. Both the
// HTTP server and the CLI build through here.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"placement-tutor/internal/artifact"
	"placement-tutor/internal/catalog"
	"placement-tutor/internal/llm"
	"placement-tutor/internal/orchestrator"
	"placement-tutor/internal/platform/config"
	"placement-tutor/internal/platform/metrics"
)

// ArtifactsPath is where stored artifacts are served.
const ArtifactsPath = "/api/artifacts"

// ErrUnknownProvider is returned for an unsupported LLM_PROVIDER.
var ErrUnknownProvider = errors.New("unknown llm provider")

// ErrUnknownArtifactMode is returned for an unsupported ARTIFACT_MODE.
var ErrUnknownArtifactMode = errors.New("unknown artifact mode")

// App is a fully wired service. Artifacts is nil in inline mode.
type App struct {
	Service   *orchestrator.Service
	Catalog   *catalog.Catalog
	Artifacts *artifact.Repository

	closers []io.Closer
}

// New builds an App. m may be nil.
func New(ctx context.Context, s config.Settings, log *slog.Logger, m *metrics.Metrics) (*App, error) {
	cat, err := catalog.Load(s.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	a := &App{Catalog: cat}
	completer, err := a.newCompleter(ctx, s)
	if err != nil {
		return nil, err
	}

	var emitter artifact.Emitter
	switch s.ArtifactMode {
	case "", config.ArtifactModeInline:
		emitter = artifact.DataURIEmitter{}
	case config.ArtifactModeStore:
		a.Artifacts = artifact.NewRepository(s.ArtifactCapacity)
		emitter = artifact.StoreEmitter{Repo: a.Artifacts, BasePath: ArtifactsPath}
	default:
		a.Close()
		return nil, fmt.Errorf("%w: %q", ErrUnknownArtifactMode, s.ArtifactMode)
	}

	a.Service = orchestrator.NewService(orchestrator.Dependencies{
		LLM:     completer,
		Catalog: cat,
		Emitter: emitter,
		Log:     log,
		Metrics: m,
	}, orchestrator.Options{
		Model:               s.LLMModel,
		RequestTimeout:      s.RequestTimeout,
		SkipMediaOnDegraded: s.SkipMediaOnDegraded,
	})
	if _, err := a.Service.Graph(); err != nil {
		a.Close()
		return nil, err
	}

	log.Info("tutor service ready",
		slog.String("provider", s.LLMProvider),
		slog.String("model", s.LLMModel),
		slog.String("artifact_mode", s.ArtifactMode),
		slog.Int("topics", len(cat.Topics())),
		slog.Duration("request_timeout", s.RequestTimeout))
	return a, nil
}

func (a *App) newCompleter(ctx context.Context, s config.Settings) (llm.Completer, error) {
	switch s.LLMProvider {
	case "", config.ProviderOpenAI:
		c, err := llm.NewChatClient(s.LLMBaseURL, s.LLMAPIKey, s.LLMTimeout)
		if err != nil {
			return nil, fmt.Errorf("openai-compatible client: %w", err)
		}
		return c, nil
	case config.ProviderGemini:
		c, err := llm.NewGeminiClient(ctx, s.LLMAPIKey)
		if err != nil {
			return nil, fmt.Errorf("gemini client: %w", err)
		}
		a.closers = append(a.closers, c)
		return c, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, s.LLMProvider)
}

// StoredArtifacts reports how many artifacts are held; zero in inline mode.
func (a *App) StoredArtifacts() int {
	if a.Artifacts == nil {
		return 0
	}
	return a.Artifacts.Count()
}

// Close releases provider connections.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	a.closers = nil
	return errors.Join(errs...)
}
