// Package pipeline drives the measurement run end to end: resolve,
// fan out probes, enrich, fan results back in.
package pipeline

import (
	"context"
	"sync"

	"github.com/NordCoder/Coloscope/internal/domain/endpoint"
	"github.com/NordCoder/Coloscope/internal/domain/result"
	"github.com/NordCoder/Coloscope/internal/geo"
	"github.com/NordCoder/Coloscope/internal/obs"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const defaultWorkers = 80

type Resolver interface {
	Resolve(ctx context.Context, domain string) []string
}

type Prober interface {
	Probe(ctx context.Context, ip, sni string) result.ProbeOutcome
}

type RegionClassifier interface {
	Classify(ctx context.Context, ip string) string
}

// Pipeline owns the concurrency of a run. Probes fan out over a bounded
// worker set; each worker enriches its own outcome synchronously and
// appends under the mutex. Per-target failures degrade to FAIL/"No PTR"/
// Unknown values and never touch sibling targets.
type Pipeline struct {
	Log       *zap.Logger
	Resolver  Resolver
	Prober    Prober
	Region    RegionClassifier
	Geo       geo.Locator
	Workers   int
	Threshold float64
}

// Run executes one snapshot and returns every enriched result in
// completion order plus the summary. The result set has exactly one row
// per (endpoint, resolved IP) pair.
func (p *Pipeline) Run(ctx context.Context, records []endpoint.Record) ([]result.Result, result.Summary) {
	tr := otel.Tracer("coloscope.pipeline")
	ctx, span := tr.Start(ctx, "pipeline.run",
		trace.WithAttributes(attribute.Int("endpoints", len(records))),
	)
	defer span.End()

	log := obs.WithTrace(ctx, p.Log)

	targets := p.expand(ctx, records)
	log.Info("targets built", zap.Int("endpoints", len(records)), zap.Int("targets", len(targets)))

	results := p.probeAll(ctx, targets)
	summary := result.Summarize(results)
	span.SetAttributes(attribute.Int("targets", len(targets)), attribute.Int("colo", summary.Colo))
	return results, summary
}

// expand resolves every unique domain once, sequentially, then builds
// the full endpoint × IP target list. The cache map has a single writer
// here and is only read afterwards, so it needs no locking.
func (p *Pipeline) expand(ctx context.Context, records []endpoint.Record) []endpoint.Target {
	cache := make(map[string][]string)
	for _, rec := range records {
		if _, ok := cache[rec.Domain]; ok {
			continue
		}
		ips := p.Resolver.Resolve(ctx, rec.Domain)
		if len(ips) == 0 {
			mUnresolved.Inc()
			p.Log.Info("domain did not resolve", zap.String("domain", rec.Domain))
		}
		cache[rec.Domain] = ips
	}

	var targets []endpoint.Target
	for _, rec := range records {
		for _, ip := range cache[rec.Domain] {
			targets = append(targets, endpoint.Target{Endpoint: rec, IP: ip})
		}
	}
	return targets
}

// probeAll fans the targets out over the worker pool. Results accumulate
// in completion order; callers needing a stable order sort themselves.
func (p *Pipeline) probeAll(ctx context.Context, targets []endpoint.Target) []result.Result {
	workers := p.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results = make([]result.Result, 0, len(targets))
		sem     = make(chan struct{}, workers)
	)

	for _, tgt := range targets {
		wg.Add(1)
		go func(tgt endpoint.Target) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			row := p.process(ctx, tgt)

			mu.Lock()
			results = append(results, row)
			mu.Unlock()
		}(tgt)
	}
	wg.Wait()
	return results
}

// process probes one target and enriches the outcome on the same
// worker. Every branch produces a populated row.
func (p *Pipeline) process(ctx context.Context, tgt endpoint.Target) result.Result {
	mProbes.Inc()
	out := p.Prober.Probe(ctx, tgt.IP, tgt.Endpoint.Domain)
	mProbeLatency.Observe(out.LatencyMs / 1000)

	region := p.Region.Classify(ctx, tgt.IP)
	loc := p.Geo.Locate(ctx, tgt.IP)

	status := result.Classify(out.Success, out.LatencyMs, p.Threshold)
	switch status {
	case result.StatusColo:
		mColo.Inc()
	case result.StatusSlow:
		mSlow.Inc()
	default:
		mFail.Inc()
	}

	p.Log.Debug("target done",
		zap.String("endpoint", tgt.Endpoint.Name),
		zap.String("ip", tgt.IP),
		zap.Float64("latency_ms", out.LatencyMs),
		zap.String("status", string(status)),
	)

	return result.Result{
		Name:      tgt.Endpoint.Name,
		Category:  tgt.Endpoint.Category,
		Domain:    tgt.Endpoint.Domain,
		IP:        tgt.IP,
		LatencyMs: out.LatencyMs,
		Status:    status,
		AWSRegion: region,
		Country:   loc.Country,
		Region:    loc.Region,
		City:      loc.City,
	}
}
