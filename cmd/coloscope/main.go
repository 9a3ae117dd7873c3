package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/NordCoder/Coloscope/internal/config"
	"github.com/NordCoder/Coloscope/internal/domain/result"
	"github.com/NordCoder/Coloscope/internal/endpoints"
	"github.com/NordCoder/Coloscope/internal/geo"
	"github.com/NordCoder/Coloscope/internal/obs"
	"github.com/NordCoder/Coloscope/internal/obs/retry"
	"github.com/NordCoder/Coloscope/internal/pipeline"
	"github.com/NordCoder/Coloscope/internal/prober"
	"github.com/NordCoder/Coloscope/internal/region"
	kafkarepo "github.com/NordCoder/Coloscope/internal/repository/kafka"
	pg "github.com/NordCoder/Coloscope/internal/repository/postgres"
	"github.com/NordCoder/Coloscope/internal/report"
	"github.com/NordCoder/Coloscope/internal/resolver"

	"go.uber.org/zap"
)

func main() {
	var (
		cfgPath   = flag.String("config", "", "path to YAML config")
		epFile    = flag.String("endpoints", "", "endpoint-definition file (overrides config)")
		workers   = flag.Int("workers", 0, "concurrent probes (overrides config)")
		threshold = flag.Float64("threshold", 0, "co-location threshold in ms (overrides config)")
	)
	flag.Parse()

	root, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal(err)
	}
	if *epFile != "" {
		cfg.EndpointsFile = *epFile
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}
	if *threshold > 0 {
		cfg.ThresholdMs = *threshold
	}

	l, err := obs.NewLogger(cfg.Log.AsLoggerConfig())
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = l.Sync() }()

	otelCloser, err := obs.SetupOTel(root, obs.OTELConfig{
		Enable:      cfg.OTEL.Enable,
		Endpoint:    cfg.OTEL.Endpoint,
		ServiceName: cfg.OTEL.ServiceName,
		SampleRatio: cfg.OTEL.SampleRatio,
	})
	if err != nil {
		l.Fatal("otel init", zap.Error(err))
	}
	defer func() { _ = otelCloser.Shutdown(context.Background()) }()

	// The missing endpoints file is the one fatal input error: there is
	// nothing to measure, so fail before any network activity.
	records, err := endpoints.ParseFile(cfg.EndpointsFile)
	if err != nil {
		l.Fatal("load endpoints", zap.String("file", cfg.EndpointsFile), zap.Error(err))
	}
	l.Info("endpoints loaded", zap.Int("count", len(records)), zap.String("file", cfg.EndpointsFile))

	if cfg.Server.MetricsAddr != "" {
		ms := obs.BootstrapMetricsServer(cfg.Server.MetricsAddr, nil, l)
		defer func() {
			shCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			_ = ms.Shutdown(shCtx)
		}()
	}

	var repo result.Repo
	if cfg.DB.DSN != "" {
		db, err := pg.New(root, cfg.DB.AsPoolConfig())
		if err != nil {
			l.Fatal("db connect", zap.Error(err))
		}
		defer db.Close()
		repo = pg.NewSnapshotRepo(db)
	}

	var events result.Events
	if len(cfg.KafkaOut.Brokers) > 0 && cfg.KafkaOut.Topic != "" {
		prod := kafkarepo.NewProducer(cfg.KafkaOut.Brokers, cfg.KafkaOut.Topic).WithLogger(l)
		defer func() { _ = prod.Close() }()
		events = prod
	}

	var locator geo.Locator = geo.NewClient(geo.Config{
		BaseURL: cfg.Geo.URL,
		Timeout: cfg.Geo.Timeout,
	}, l)
	if cfg.GeoCache.Enable {
		cached := geo.NewCachedLocator(locator, geo.CacheConfig{
			Addr: cfg.GeoCache.Addr,
			DB:   cfg.GeoCache.DB,
			TTL:  cfg.GeoCache.TTL,
		}, l)
		defer func() { _ = cached.Close() }()
		locator = cached
	}

	p := &pipeline.Pipeline{
		Log:       l,
		Resolver:  resolver.New(resolver.Config{Servers: cfg.DNS.Servers, Timeout: cfg.DNS.Timeout}, l),
		Prober:    prober.New(prober.Config{Port: cfg.Probe.Port, Timeout: cfg.Probe.Timeout}),
		Region:    region.New(region.Config{Servers: cfg.DNS.Servers, Timeout: cfg.DNS.Timeout}, nil, l),
		Geo:       locator,
		Workers:   cfg.Workers,
		Threshold: cfg.ThresholdMs,
	}

	takenAt := time.Now().UTC()
	results, summary := p.Run(root, records)

	if err := report.WriteJSON(cfg.Report.JSON, results); err != nil {
		l.Error("json report", zap.Error(err))
	}
	if err := report.WriteHTML(cfg.Report.HTML, results, cfg.ThresholdMs); err != nil {
		l.Error("html report", zap.Error(err))
	}

	if repo != nil {
		snap := &result.Snapshot{
			TakenAt:   takenAt,
			Threshold: cfg.ThresholdMs,
			Colo:      summary.Colo,
			Total:     summary.Total,
			Results:   results,
		}
		if err := repo.SaveSnapshot(root, snap); err != nil {
			l.Error("save snapshot", zap.Error(err))
		} else {
			l.Info("snapshot saved", zap.Int64("id", snap.ID))
		}
	}

	if events != nil {
		policy := retry.DefaultPublishPolicy(l)
		for i := range results {
			r := &results[i]
			_ = retry.Do(root, func() error { return events.PublishResult(root, r) }, policy)
		}
	}

	l.Info("run complete",
		zap.Int("colo", summary.Colo),
		zap.Int("total", summary.Total),
		zap.Float64("percent", summary.Percent()),
		zap.String("json", cfg.Report.JSON),
		zap.String("html", cfg.Report.HTML),
	)
	fmt.Printf("DONE! %d/%d IPs are COLO (%.1f%%)\n", summary.Colo, summary.Total, summary.Percent())
}
