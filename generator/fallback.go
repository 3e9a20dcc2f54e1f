package generator

import (
	"context"
	"errors"
)

// ErrNoProvider is reported when no provider is configured and the local
// templates answered instead.
var ErrNoProvider = errors.New("no generation provider configured")

// Source tells where a generated value came from
type Source string

const (
	SourceProvider Source = "provider"
	SourceFallback Source = "fallback"
)

// Result carries a generated value. Err holds the provider failure that
// caused a fallback and is informational only: Value is always usable.
type Result[T any] struct {
	Value  T
	Source Source
	Err    error
}

// Fallback reports whether the value came from the local templates
func (r Result[T]) Fallback() bool {
	return r.Source == SourceFallback
}

// WithFallback attempts remote and substitutes local on any failure. A nil
// remote means no provider is available.
func WithFallback[T any](ctx context.Context, remote func(context.Context) (T, error), local func() T) Result[T] {
	if remote == nil {
		return Result[T]{Value: local(), Source: SourceFallback, Err: ErrNoProvider}
	}

	value, err := remote(ctx)
	if err != nil {
		return Result[T]{Value: local(), Source: SourceFallback, Err: err}
	}

	return Result[T]{Value: value, Source: SourceProvider}
}
