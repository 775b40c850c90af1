// Package enrich fills gaps the deterministic pipeline cannot resolve by
// asking an external text-completion service for a structured correction
// per record, with a safe per-item fallback on any failure.
package enrich

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/sells-group/company-intake/internal/clean"
	"github.com/sells-group/company-intake/internal/model"
	"github.com/sells-group/company-intake/internal/resilience"
	"github.com/sells-group/company-intake/pkg/completion"
)

const (
	defaultGroupSize  = 5
	defaultGroupPause = time.Second
	defaultMaxTokens  = 500
)

// Config controls the enricher's model settings and pacing.
type Config struct {
	Model       string
	Temperature float64       // low values keep replies deterministic
	MaxTokens   int64         // default 500
	GroupSize   int           // items processed concurrently per group, default 5
	GroupPause  time.Duration // pause between groups, default 1s
	Retry       resilience.RetryConfig
}

// Enricher runs records through the completion service in bounded
// concurrent groups with a fixed pause between groups.
type Enricher struct {
	client  completion.Client
	cfg     Config
	limiter *rate.Limiter
}

// New creates an Enricher around a completion client.
func New(client completion.Client, cfg Config) *Enricher {
	if cfg.GroupSize <= 0 {
		cfg.GroupSize = defaultGroupSize
	}
	if cfg.GroupPause <= 0 {
		cfg.GroupPause = defaultGroupPause
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	return &Enricher{
		client:  client,
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Every(cfg.GroupPause), 1),
	}
}

// EnrichAll enriches each record, preserving input order. Items within a
// group run concurrently; the limiter spaces out group starts to respect
// the external service's rate limits. Individual item failures resolve to
// fallback records and never abort the batch; the only error returned is
// context cancellation, checked between groups. Records that end up
// without a company name are dropped from the output.
func (e *Enricher) EnrichAll(ctx context.Context, records []model.Company) ([]model.Company, error) {
	results := make([]model.Company, len(records))

	for start := 0; start < len(records); start += e.cfg.GroupSize {
		if err := e.limiter.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "enrich: pacing wait")
		}

		end := min(start+e.cfg.GroupSize, len(records))
		g, gCtx := errgroup.WithContext(ctx)
		for i := start; i < end; i++ {
			g.Go(func() error {
				results[i] = e.enrichOne(gCtx, records[i])
				return nil
			})
		}
		// enrichOne never returns an error; the wait is the group's
		// synchronization point.
		_ = g.Wait()

		if err := ctx.Err(); err != nil {
			return nil, eris.Wrap(err, "enrich: canceled between groups")
		}
	}

	out := make([]model.Company, 0, len(results))
	for _, r := range results {
		if r.CompanyName == "" {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// enrichmentReply is the structured correction requested from the service.
type enrichmentReply struct {
	CompanyName  string  `json:"company_name"`
	Domain       string  `json:"domain"`
	City         string  `json:"city"`
	Country      string  `json:"country"`
	EmployeeSize string  `json:"employee_size"`
	Confidence   float64 `json:"confidence"`
	Reasoning    string  `json:"reasoning"`
}

// enrichOne requests a correction for a single record. Any failure on the
// way, transport or parse, resolves to the fallback record.
func (e *Enricher) enrichOne(ctx context.Context, rec model.Company) model.Company {
	temp := e.cfg.Temperature
	req := completion.Request{
		Model:       e.cfg.Model,
		System:      systemPrompt,
		Messages:    []completion.Message{{Role: "user", Content: buildPrompt(rec)}},
		Temperature: &temp,
		MaxTokens:   e.cfg.MaxTokens,
	}

	resp, err := resilience.DoVal(ctx, e.cfg.Retry, func(ctx context.Context) (*completion.Response, error) {
		return e.client.Complete(ctx, req)
	})
	if err != nil {
		zap.L().Warn("enrichment call failed, using fallback",
			zap.String("company", rec.CompanyName),
			zap.Error(err),
		)
		return fallbackRecord(rec)
	}

	reply, err := parseReply(resp.Text)
	if err != nil {
		zap.L().Warn("enrichment reply invalid, using fallback",
			zap.String("company", rec.CompanyName),
			zap.Error(err),
		)
		return fallbackRecord(rec)
	}

	domain := strings.TrimSpace(reply.Domain)
	if domain == "" {
		// A record must never leave this stage without a domain.
		domain = clean.FallbackDomain(reply.CompanyName)
	}

	return model.Company{
		CompanyName:  reply.CompanyName,
		Domain:       domain,
		City:         reply.City,
		Country:      reply.Country,
		EmployeeSize: reply.EmployeeSize,
		RawJSON:      rec.RawJSON,
	}
}

// parseReply extracts and validates the JSON object from a completion,
// tolerating surrounding prose or markdown fences.
func parseReply(text string) (*enrichmentReply, error) {
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end <= start {
		return nil, eris.New("enrich: no JSON object in reply")
	}

	var reply enrichmentReply
	if err := json.Unmarshal([]byte(text[start:end+1]), &reply); err != nil {
		return nil, eris.Wrap(err, "enrich: parse reply")
	}

	reply.CompanyName = strings.TrimSpace(reply.CompanyName)
	if reply.CompanyName == "" {
		return nil, eris.New("enrich: reply missing company name")
	}
	return &reply, nil
}

// fallbackRecord is the safe default when enrichment fails for an item:
// the original company name, a synthesized domain, and empty normalized
// fields. Empty-name records are dropped by the caller.
func fallbackRecord(rec model.Company) model.Company {
	name := rec.CompanyName
	if name == "" && rec.RawJSON != nil {
		name = rec.RawJSON.Get(model.KeyCompanyName)
	}
	return model.Company{
		CompanyName: name,
		Domain:      clean.FallbackDomain(name),
		RawJSON:     rec.RawJSON,
	}
}
