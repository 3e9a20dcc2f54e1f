package generator

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	response string
	err      error
	calls    []Completion
}

func (f *fakeProvider) Complete(_ context.Context, completion Completion) (string, error) {
	f.calls = append(f.calls, completion)
	return f.response, f.err
}

func TestWithFallback(t *testing.T) {
	ctx := context.Background()
	local := func() int { return 1 }

	result := WithFallback(ctx, func(context.Context) (int, error) { return 2, nil }, local)
	assert.Equal(t, 2, result.Value)
	assert.Equal(t, SourceProvider, result.Source)
	assert.NoError(t, result.Err)

	boom := errors.New("boom")
	result = WithFallback(ctx, func(context.Context) (int, error) { return 0, boom }, local)
	assert.Equal(t, 1, result.Value)
	assert.True(t, result.Fallback())
	assert.ErrorIs(t, result.Err, boom)

	result = WithFallback[int](ctx, nil, local)
	assert.Equal(t, 1, result.Value)
	assert.ErrorIs(t, result.Err, ErrNoProvider)
}

func TestGenerateKeywords(t *testing.T) {
	ctx := context.Background()

	t.Run("without provider", func(t *testing.T) {
		result := New(nil).GenerateKeywords(ctx, "coffee")
		assert.Equal(t, SourceFallback, result.Source)
		assert.Equal(t, []string{
			"coffee guide",
			"best coffee practices",
			"coffee tips and tricks",
			"how to coffee",
			"coffee strategy",
		}, result.Value)
	})

	t.Run("fenced provider response", func(t *testing.T) {
		provider := &fakeProvider{response: "```json\n[\"cold brew coffee\", \" \", \"coffee beans online\"]\n```"}
		result := New(provider).GenerateKeywords(ctx, "coffee")
		assert.Equal(t, SourceProvider, result.Source)
		assert.Equal(t, []string{"cold brew coffee", "coffee beans online"}, result.Value)

		require.Len(t, provider.calls, 1)
		assert.Contains(t, provider.calls[0].Prompt, `"coffee"`)
		assert.Equal(t, 200, provider.calls[0].MaxTokens)
	})

	t.Run("malformed provider response", func(t *testing.T) {
		result := New(&fakeProvider{response: "Here are some keywords: coffee"}).GenerateKeywords(ctx, "coffee")
		assert.True(t, result.Fallback())
		assert.Error(t, result.Err)
		assert.Len(t, result.Value, 5)
	})

	t.Run("empty list", func(t *testing.T) {
		result := New(&fakeProvider{response: "[]"}).GenerateKeywords(ctx, "coffee")
		assert.True(t, result.Fallback())
		assert.ErrorIs(t, result.Err, ErrEmptyResponse)
	})

	t.Run("provider error", func(t *testing.T) {
		result := New(&fakeProvider{err: errors.New("connection refused")}).GenerateKeywords(ctx, "coffee")
		assert.True(t, result.Fallback())
		assert.Equal(t, "coffee guide", result.Value[0])
	})
}

func TestGenerateTitles(t *testing.T) {
	ctx := context.Background()

	provider := &fakeProvider{err: errors.New("unavailable")}
	result := New(provider).GenerateTitles(ctx, "SEO", "")
	assert.Equal(t, []string{
		"The Complete Guide to SEO",
		"SEO: Best Practices and Expert Tips",
		"How to Master SEO Step by Step",
	}, result.Value)
	require.Len(t, provider.calls, 1)
	assert.Contains(t, provider.calls[0].Prompt, "professional tone")

	result = New(nil).GenerateTitles(ctx, "SEO", "casual")
	assert.Equal(t, "Everything You Need to Know About SEO", result.Value[0])

	result = New(nil).GenerateTitles(ctx, "SEO", "sarcastic")
	assert.Equal(t, "The Complete Guide to SEO", result.Value[0])

	result = New(&fakeProvider{response: `["SEO for Busy Founders"]`}).GenerateTitles(ctx, "SEO", "friendly")
	assert.Equal(t, SourceProvider, result.Source)
	assert.Equal(t, []string{"SEO for Busy Founders"}, result.Value)
}

func TestGenerateTopics(t *testing.T) {
	ctx := context.Background()

	result := New(nil).GenerateTopics(ctx, "Guide", "SEO")
	require.Len(t, result.Value, 2)
	assert.Equal(t, "Introduction to SEO", result.Value[0].Sections[0].Heading)
	assert.Equal(t, "Understanding SEO", result.Value[1].Sections[0].Heading)

	response := `[{"title": "Quick Start", "sections": [{"heading": "Why SEO", "points": ["traffic", "trust"]}]}]`
	result = New(&fakeProvider{response: response}).GenerateTopics(ctx, "Guide", "SEO")
	assert.Equal(t, SourceProvider, result.Source)
	assert.Equal(t, []Outline{{
		Title:    "Quick Start",
		Sections: []Section{{Heading: "Why SEO", Points: []string{"traffic", "trust"}}},
	}}, result.Value)

	result = New(&fakeProvider{response: `[{"title": "Empty", "sections": []}]`}).GenerateTopics(ctx, "Guide", "SEO")
	assert.True(t, result.Fallback())
	assert.Len(t, result.Value, 2)
}

func TestGenerateContent(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults reach the prompt", func(t *testing.T) {
		provider := &fakeProvider{response: "  SEO content body.  "}
		result := New(provider).GenerateContent(ctx, ContentRequest{Title: "Guide", Keyword: "SEO"})
		assert.Equal(t, "SEO content body.", result.Value)

		require.Len(t, provider.calls, 1)
		assert.Equal(t, 300, provider.calls[0].MaxTokens)
		assert.Contains(t, provider.calls[0].Prompt, "Write a blog_intro for")
		assert.Contains(t, provider.calls[0].Prompt, "Approximately 150 words")
		assert.Contains(t, provider.calls[0].Prompt, "Outline: None provided")
	})

	t.Run("outline is embedded", func(t *testing.T) {
		provider := &fakeProvider{response: "text"}
		outline := json.RawMessage(`{ "title": "Quick Start" }`)
		New(provider).GenerateContent(ctx, ContentRequest{Title: "Guide", Keyword: "SEO", Outline: outline})
		assert.Contains(t, provider.calls[0].Prompt, `Outline: {"title":"Quick Start"}`)
	})

	t.Run("HTML is reduced to text", func(t *testing.T) {
		provider := &fakeProvider{response: "<h2>Intro</h2><p>SEO matters.</p><p> </p>"}
		result := New(provider).GenerateContent(ctx, ContentRequest{Title: "Guide", Keyword: "SEO"})
		assert.Equal(t, SourceProvider, result.Source)
		assert.Equal(t, "Intro\n\nSEO matters.", result.Value)
	})

	t.Run("empty response falls back", func(t *testing.T) {
		result := New(&fakeProvider{response: "```\n```"}).GenerateContent(ctx, ContentRequest{Title: "Guide", Keyword: "SEO"})
		assert.True(t, result.Fallback())
		assert.ErrorIs(t, result.Err, ErrEmptyResponse)
		assert.Contains(t, result.Value, "SEO")
	})
}

func TestFallbackContent(t *testing.T) {
	truncated := fallbackContent(ContentRequest{Keyword: "SEO", ContentType: "blog_intro", WordCount: 10})
	assert.True(t, strings.HasSuffix(truncated, "..."))
	assert.Len(t, strings.Fields(truncated), 10)

	meta := fallbackContent(ContentRequest{Keyword: "SEO", ContentType: "meta_description", WordCount: 150})
	assert.True(t, strings.HasPrefix(meta, "Discover everything you need to know about SEO."))
	assert.Contains(t, meta, "Exploring SEO further")

	unknown := fallbackContent(ContentRequest{Keyword: "SEO", ContentType: "poem", WordCount: 20})
	assert.True(t, strings.HasPrefix(unknown, "In today's digital landscape, understanding SEO"))

	assert.Equal(t, fallbackContent(ContentRequest{Keyword: "SEO", ContentType: "landing_page", WordCount: 40}),
		fallbackContent(ContentRequest{Keyword: "SEO", ContentType: "landing_page", WordCount: 40}))
}

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, `["a"]`, stripCodeFence("```json\n[\"a\"]\n```"))
	assert.Equal(t, `["a"]`, stripCodeFence("```\n[\"a\"]\n```"))
	assert.Equal(t, `["a"]`, stripCodeFence(`  ["a"]  `))
}
