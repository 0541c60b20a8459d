// Package textgen drafts narrative dossier sections with a text generation
// service. Generation never fails from the caller's point of view: when the
// service is unavailable or errors, a clearly marked placeholder is returned.
package textgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/iwvelando/iefp-dossier/pkg/constants"
	"go.uber.org/zap"
)

// ErrUnavailable reports that generation cannot run at all, e.g. because no
// credential was configured.
var ErrUnavailable = errors.New("text generation unavailable")

// Placeholder prefixes. Unavailable marks a generator that was never usable;
// Failed marks a call that was attempted and did not complete.
const (
	PlaceholderUnavailable = "[Preencher]"
	PlaceholderFailed      = "[Gerar com IA]"
)

// Backend performs one generation request.
type Backend interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Config holds the explicit settings of a Generator.
type Config struct {
	APIKey      string
	Model       string
	Timeout     time.Duration
	Temperature float64
}

// Generator turns a label, an instruction and a context into prose.
type Generator struct {
	logger  *zap.Logger
	backend Backend
	timeout time.Duration
}

// New builds a Generator backed by the Gemini API. A missing credential is
// not an error: the generator is simply unavailable.
func New(ctx context.Context, logger *zap.Logger, cfg Config) (*Generator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if strings.TrimSpace(cfg.APIKey) == "" {
		logger.Info("no text generation credential configured; generator unavailable",
			zap.String("op", "textgen.New"),
		)
		return NewWithBackend(logger, nil, cfg.Timeout), nil
	}

	backend, err := NewGenAIBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewWithBackend(logger, backend, cfg.Timeout), nil
}

// NewWithBackend builds a Generator around any Backend. A nil backend yields
// an unavailable generator.
func NewWithBackend(logger *zap.Logger, backend Backend, timeout time.Duration) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = constants.DefaultGeneratorTimeoutSeconds * time.Second
	}
	return &Generator{logger: logger, backend: backend, timeout: timeout}
}

// Available reports whether generation can be attempted.
func (g *Generator) Available() bool {
	return g != nil && g.backend != nil
}

// Generate drafts text for label. It never returns an error; on any failure
// it logs and returns a placeholder built from label and instruction.
func (g *Generator) Generate(ctx context.Context, label, instruction string, contextData map[string]interface{}) string {
	text, err := g.TryGenerate(ctx, label, instruction, contextData)
	if err == nil {
		return text
	}

	if errors.Is(err, ErrUnavailable) {
		return Placeholder(PlaceholderUnavailable, label, instruction)
	}

	g.logger.Warn("text generation failed; using placeholder",
		zap.String("op", "textgen.Generate"),
		zap.String("label", label),
		zap.Error(err),
	)
	return Placeholder(PlaceholderFailed, label, instruction)
}

// TryGenerate drafts text for label, bounded by the generator timeout. It
// returns ErrUnavailable when no backend is configured.
func (g *Generator) TryGenerate(ctx context.Context, label, instruction string, contextData map[string]interface{}) (string, error) {
	if !g.Available() {
		return "", ErrUnavailable
	}

	prompt, err := BuildPrompt(label, instruction, contextData)
	if err != nil {
		return "", err
	}

	ctx, cancel := contextWithTimeout(ctx, g.timeout)
	defer cancel()

	type reply struct {
		text string
		err  error
	}
	done := make(chan reply, 1)
	go func() {
		text, err := g.backend.Generate(ctx, prompt)
		done <- reply{text: text, err: err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			return "", r.err
		}
		text := strings.TrimSpace(r.text)
		if text == "" {
			return "", fmt.Errorf("empty response for %q", label)
		}
		g.logger.Debug("text generated",
			zap.String("op", "textgen.TryGenerate"),
			zap.String("label", label),
			zap.Int("characters", len([]rune(text))),
		)
		return text, nil
	case <-ctx.Done():
		return "", fmt.Errorf("generation of %q timed out: %w", label, ctx.Err())
	}
}

func contextWithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, timeout)
}

// BuildPrompt renders the request sent to the service. The context is
// embedded as JSON.
func BuildPrompt(label, instruction string, contextData map[string]interface{}) (string, error) {
	if contextData == nil {
		contextData = map[string]interface{}{}
	}
	encoded, err := json.Marshal(contextData)
	if err != nil {
		return "", fmt.Errorf("failed to encode generation context: %w", err)
	}
	return fmt.Sprintf("Escreve uma secção clara para '%s' em PT-PT. Instruções: %s. Contexto: %s. "+
		"120-200 palavras, objetivo e profissional.", label, instruction, encoded), nil
}

// Placeholder returns the marked text shown instead of generated prose.
func Placeholder(marker, label, instruction string) string {
	return fmt.Sprintf("%s %s: %s", marker, label, instruction)
}

// IsPlaceholder reports whether text is a generation placeholder.
func IsPlaceholder(text string) bool {
	return strings.HasPrefix(text, PlaceholderUnavailable) || strings.HasPrefix(text, PlaceholderFailed)
}
