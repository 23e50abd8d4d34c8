package slog

import (
	"log/slog"

	"github.com/fwojciec/htmlcut"
)

// EventLogger returns an EventFunc that writes extraction events to logger.
// Skipped resources are warnings; everything else is debug output.
func EventLogger(logger *slog.Logger) htmlcut.EventFunc {
	return func(ev htmlcut.Event) {
		attrs := []any{"event", string(ev.Type)}
		if ev.Tag != "" {
			attrs = append(attrs, "tag", ev.Tag)
		}
		if ev.Detail != "" {
			attrs = append(attrs, "detail", ev.Detail)
		}
		if ev.Err != nil {
			attrs = append(attrs, "err", ev.Err)
		}

		switch ev.Type {
		case htmlcut.EventResourceSkipped:
			logger.Warn("resource skipped", attrs...)
		case htmlcut.EventTargetNotFound:
			logger.Info("target not found", attrs...)
		default:
			logger.Debug("extraction event", attrs...)
		}
	}
}
