// Package logging provides the structured logger used across the resolver and the CLI.
package logging

import (
	"context"
)

// Logger is implemented by the zap backed logger and by test doubles.
type Logger interface {
	Debug(ctx context.Context, msg string, fields map[string]any)
	Info(ctx context.Context, msg string, fields map[string]any)
	Warn(ctx context.Context, msg string, fields map[string]any)
	Error(ctx context.Context, msg string, err error, fields map[string]any)
}

// Nop returns a logger that discards everything.
func Nop() Logger {
	return nop{}
}

type nop struct{}

func (nop) Debug(context.Context, string, map[string]any)        {}
func (nop) Info(context.Context, string, map[string]any)         {}
func (nop) Warn(context.Context, string, map[string]any)         {}
func (nop) Error(context.Context, string, error, map[string]any) {}
