package generator

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
)

const (
	DefaultTone        = "professional"
	DefaultContentType = "blog_intro"
	DefaultWordCount   = 150
)

// Section is one heading of a topic outline
type Section struct {
	Heading string   `json:"heading"`
	Points  []string `json:"points"`
}

// Outline is one suggested structure for an article
type Outline struct {
	Title    string    `json:"title"`
	Sections []Section `json:"sections"`
}

// ContentRequest describes a body content generation
type ContentRequest struct {
	Title       string
	Keyword     string
	Outline     json.RawMessage
	ContentType string
	WordCount   int
}

func (r ContentRequest) withDefaults() ContentRequest {
	if r.ContentType == "" {
		r.ContentType = DefaultContentType
	}
	if r.WordCount <= 0 {
		r.WordCount = DefaultWordCount
	}
	return r
}

// Generator produces SEO artifacts through a provider and falls back to local
// templates whenever the provider is missing or fails. It never returns an
// error to its callers.
type Generator struct {
	provider Provider
	logger   *slog.Logger
}

// Option configures a Generator
type Option func(*Generator)

// WithLogger sets the logger used to report fallbacks
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// New creates a Generator. A nil provider answers every call from templates.
func New(provider Provider, opts ...Option) *Generator {
	g := &Generator{
		provider: provider,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// HasProvider reports whether a provider is configured
func (g *Generator) HasProvider() bool {
	return g.provider != nil
}

// remote wraps a provider call and its parser, or returns nil when there is
// no provider so WithFallback goes straight to the templates.
func remote[T any](g *Generator, completion Completion, parse func(string) (T, error)) func(context.Context) (T, error) {
	if g.provider == nil {
		return nil
	}
	return func(ctx context.Context) (T, error) {
		raw, err := g.provider.Complete(ctx, completion)
		if err != nil {
			var zero T
			return zero, err
		}
		return parse(raw)
	}
}

func report[T any](g *Generator, task string, result Result[T]) Result[T] {
	if result.Fallback() && !errors.Is(result.Err, ErrNoProvider) {
		g.logger.Warn("provider generation failed, using fallback", "task", task, "error", result.Err)
	}
	return result
}

// GenerateKeywords suggests keywords related to the seed keyword
func (g *Generator) GenerateKeywords(ctx context.Context, seed string) Result[[]string] {
	return report(g, "keywords", WithFallback(ctx,
		remote(g, keywordsPrompt(seed), parseList),
		func() []string { return fallbackKeywords(seed) },
	))
}

// GenerateTitles suggests titles for the keyword in the given tone
func (g *Generator) GenerateTitles(ctx context.Context, keyword, tone string) Result[[]string] {
	if tone == "" {
		tone = DefaultTone
	}
	return report(g, "titles", WithFallback(ctx,
		remote(g, titlesPrompt(keyword, tone), parseList),
		func() []string { return fallbackTitles(keyword, tone) },
	))
}

// GenerateTopics suggests article outlines for the title
func (g *Generator) GenerateTopics(ctx context.Context, title, keyword string) Result[[]Outline] {
	return report(g, "topics", WithFallback(ctx,
		remote(g, topicsPrompt(title, keyword), parseOutlines),
		func() []Outline { return fallbackTopics(keyword) },
	))
}

// GenerateContent writes body content for the request
func (g *Generator) GenerateContent(ctx context.Context, req ContentRequest) Result[string] {
	req = req.withDefaults()
	return report(g, "content", WithFallback(ctx,
		remote(g, contentPrompt(req), parseText),
		func() string { return fallbackContent(req) },
	))
}
