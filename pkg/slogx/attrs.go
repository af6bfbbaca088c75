// Package slogx provides slog attribute helpers shared by the pipeline and
// the shipped features.
package slogx

import (
	"fmt"
	"log/slog"
)

// Error returns an "error" attribute carrying the error's message.
func Error(err error) slog.Attr {
	return slog.String("error", err.Error())
}

// Stringer returns an attribute rendering value through its String method.
func Stringer(key string, value fmt.Stringer) slog.Attr {
	return slog.String(key, value.String())
}

// Event returns the "event" attribute features log dispatches under.
func Event(eventType string) slog.Attr {
	return slog.String("event", eventType)
}
