// Package slog provides log/slog decorators for htmlcut services.
package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/htmlcut"
)

// Ensure LoggingExtractor implements htmlcut.Extractor.
var _ htmlcut.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with logging.
type LoggingExtractor struct {
	next   htmlcut.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next htmlcut.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the operation.
func (e *LoggingExtractor) Extract(html string) (res *htmlcut.Result, err error) {
	defer func(begin time.Time) {
		attrs := []any{"in_bytes", len(html)}
		if res != nil {
			attrs = append(attrs,
				"outcome", string(res.Outcome),
				"out_bytes", len(res.HTML),
				"preserved", res.Preserved,
			)
			if res.Skipped > 0 {
				attrs = append(attrs, "skipped", res.Skipped)
			}
			if res.Dropped > 0 {
				attrs = append(attrs, "dropped", res.Dropped)
			}
		}
		attrs = append(attrs, "duration", time.Since(begin), "err", err)
		e.logger.Info("extract", attrs...)
	}(time.Now())
	return e.next.Extract(html)
}

// Ensure LoggingConverter implements htmlcut.Converter.
var _ htmlcut.Converter = (*LoggingConverter)(nil)

// LoggingConverter wraps a Converter with debug logging.
type LoggingConverter struct {
	next   htmlcut.Converter
	logger *slog.Logger
}

// NewLoggingConverter creates a new LoggingConverter.
func NewLoggingConverter(next htmlcut.Converter, logger *slog.Logger) *LoggingConverter {
	return &LoggingConverter{next: next, logger: logger}
}

// Convert delegates to the wrapped converter and logs the operation.
func (c *LoggingConverter) Convert(html string) (md string, err error) {
	defer func(begin time.Time) {
		c.logger.Debug("convert",
			"in_bytes", len(html),
			"out_bytes", len(md),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Convert(html)
}
