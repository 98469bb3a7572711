// Copyright © 2025 The pyvet authors

package cmd

import (
	"errors"
	"os"

	"github.com/luthersystems/pyvet/diagnostic"
	"github.com/luthersystems/pyvet/parser/token"
)

func colorMode() diagnostic.ColorMode {
	switch colorFlag {
	case "always":
		return diagnostic.ColorAlways
	case "never":
		return diagnostic.ColorNever
	default:
		return diagnostic.ColorAuto
	}
}

func newRenderer() *diagnostic.Renderer {
	return &diagnostic.Renderer{Color: colorMode()}
}

// renderError renders a fatal error to stderr. Parse errors carry a
// source location and render with an annotated snippet.
func renderError(err error) {
	d := diagnostic.Diagnostic{
		Severity: diagnostic.SeverityError,
		Message:  err.Error(),
	}
	var lerr *token.LocationError
	if errors.As(err, &lerr) {
		d.Message = lerr.Err.Error()
		d.Spans = append(d.Spans, diagnostic.Span{
			File: lerr.Source.File,
			Line: lerr.Source.Line,
			Col:  lerr.Source.Col,
		})
	}
	r := newRenderer()
	_ = r.Render(os.Stderr, d)
}
