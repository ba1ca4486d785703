// Package service composes the classifier and extractor into the single
// externally-callable entry point for one document. A Processor is stateless
// per call: it only reads the immutable profile registry, so one instance can
// serve any number of concurrent callers without locking.
package service

import (
	"log/slog"

	"github.com/FACorreiaa/statement-extractor/internal/domain/classify"
	"github.com/FACorreiaa/statement-extractor/internal/domain/extract"
	"github.com/FACorreiaa/statement-extractor/internal/domain/profile"
	"github.com/FACorreiaa/statement-extractor/internal/domain/statement"
)

// Processor turns raw document text into a DocumentResult. Build one at
// startup from a validated registry and reuse it for every document.
type Processor struct {
	registry   *profile.Registry
	classifier *classify.Classifier
	logger     *slog.Logger
}

// NewProcessor creates a processor over the given profile registry.
func NewProcessor(registry *profile.Registry, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		registry:   registry,
		classifier: classify.New(registry),
		logger:     logger,
	}
}

// Process classifies one document and extracts the five fields against the
// chosen profile. It always returns exactly five field results; an
// unrecognized issuer yields UNRECOGNIZED_ISSUER with every field NOT_FOUND.
// Batch processing is the caller's concern: call once per document.
func (p *Processor) Process(text statement.RawDocumentText) statement.DocumentResult {
	network := classify.DetectNetwork(text)

	prof, ok := p.classifier.Classify(text)
	if !ok {
		p.logger.Info("issuer not recognized",
			slog.String("source", text.SourceFile),
			slog.Int("lines", len(text.Lines)),
		)
		return statement.DocumentResult{
			SourceFile:  text.SourceFile,
			CardNetwork: network,
			Status:      statement.StatusUnrecognizedIssuer,
			Fields:      statement.NotFoundFields("issuer not recognized"),
		}
	}

	fields := extract.Extract(text, prof)
	status := statement.OverallStatusFor(fields)

	found := 0
	for _, f := range fields {
		if f.Status == statement.StatusFound {
			found++
		}
	}
	p.logger.Debug("document processed",
		slog.String("source", text.SourceFile),
		slog.String("issuer", prof.ID),
		slog.String("status", string(status)),
		slog.Int("fields_found", found),
	)

	return statement.DocumentResult{
		SourceFile:  text.SourceFile,
		IssuerID:    prof.ID,
		IssuerName:  prof.DisplayName,
		CardNetwork: network,
		Status:      status,
		Fields:      fields,
	}
}
