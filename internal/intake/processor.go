// Package intake orchestrates a batch through cleaning, optional AI
// enrichment, and reconciliation, producing persistable records plus
// summary statistics.
package intake

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/company-intake/internal/clean"
	"github.com/sells-group/company-intake/internal/model"
)

// Mode selects how deterministic cleaning and AI enrichment combine.
type Mode string

const (
	// ModeDeterministic runs only the rule-based pipeline.
	ModeDeterministic Mode = "deterministic"
	// ModeAI passes raw values through and lets enrichment rewrite
	// every record.
	ModeAI Mode = "ai"
	// ModeHybrid cleans deterministically first, then sends records
	// with unresolved fields through enrichment; the enriched record
	// supersedes the deterministic one for that row.
	ModeHybrid Mode = "hybrid"
)

// ParseMode validates a configured mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeDeterministic, ModeAI, ModeHybrid:
		return Mode(s), nil
	case "":
		return ModeDeterministic, nil
	default:
		return "", eris.Errorf("intake: unknown mode %q", s)
	}
}

// Enricher is the enrichment stage consumed by the processor.
type Enricher interface {
	EnrichAll(ctx context.Context, records []model.Company) ([]model.Company, error)
}

// Processor is the single entry point over a raw batch.
type Processor struct {
	mode     Mode
	enricher Enricher // nil when mode is deterministic
}

// NewProcessor builds a processor for the given mode. Modes other than
// deterministic require an enricher.
func NewProcessor(mode Mode, enricher Enricher) (*Processor, error) {
	if mode != ModeDeterministic && enricher == nil {
		return nil, eris.Errorf("intake: mode %q requires an enricher", mode)
	}
	return &Processor{mode: mode, enricher: enricher}, nil
}

// Process cleans a batch of raw rows and returns the resulting records
// with their cleaning stats. Rows without a company name are dropped and
// only show up in the stats; a batch with zero surviving records is a
// request-level error.
func (p *Processor) Process(ctx context.Context, rows []model.RawRow) ([]model.Company, model.CleaningStats, error) {
	if len(rows) == 0 {
		return nil, model.CleaningStats{}, eris.New("intake: no rows to process")
	}

	records, err := p.run(ctx, rows)
	if err != nil {
		return nil, model.CleaningStats{}, err
	}
	if len(records) == 0 {
		return nil, model.CleaningStats{}, eris.New("intake: no valid companies in batch")
	}

	stats := clean.ComputeStats(rows, records)
	zap.L().Info("batch processed",
		zap.String("mode", string(p.mode)),
		zap.Int("total", stats.TotalProcessed),
		zap.Int("cleaned", stats.SuccessfulCleaned),
		zap.Int("dropped", stats.FailedCleaning),
	)
	return records, stats, nil
}

func (p *Processor) run(ctx context.Context, rows []model.RawRow) ([]model.Company, error) {
	switch p.mode {
	case ModeAI:
		passthrough := clean.PassthroughRows(rows)
		enriched, err := p.enricher.EnrichAll(ctx, passthrough)
		if err != nil {
			return nil, eris.Wrap(err, "intake: ai enrichment")
		}
		return enriched, nil

	case ModeHybrid:
		records := clean.CleanRows(rows)
		return p.gapFill(ctx, records)

	default:
		return clean.CleanRows(rows), nil
	}
}

// gapFill re-resolves records the deterministic pipeline left incomplete.
// Reconciliation is whole-record: the enriched record replaces the
// deterministic one for that row. Fully resolved records never touch the
// external service.
func (p *Processor) gapFill(ctx context.Context, records []model.Company) ([]model.Company, error) {
	var gaps []int
	for i, rec := range records {
		if hasGap(rec) {
			gaps = append(gaps, i)
		}
	}
	if len(gaps) == 0 {
		return records, nil
	}

	toEnrich := make([]model.Company, len(gaps))
	for j, i := range gaps {
		toEnrich[j] = records[i]
	}

	enriched, err := p.enricher.EnrichAll(ctx, toEnrich)
	if err != nil {
		return nil, eris.Wrap(err, "intake: gap-fill enrichment")
	}

	// The enricher keeps any record whose input name was non-empty, and
	// every gap record had one, so positions line up.
	if len(enriched) != len(gaps) {
		zap.L().Warn("gap-fill count mismatch, keeping deterministic records",
			zap.Int("sent", len(gaps)),
			zap.Int("returned", len(enriched)),
		)
		return records, nil
	}
	for j, i := range gaps {
		records[i] = enriched[j]
	}
	return records, nil
}

// hasGap reports whether any normalized field is still unresolved.
func hasGap(rec model.Company) bool {
	return rec.Domain == "" || rec.Country == "" || rec.EmployeeSize == "" || rec.City == ""
}
