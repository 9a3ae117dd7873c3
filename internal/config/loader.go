package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Load reads the YAML config at path (optional) with env overrides,
// e.g. WORKERS=40 or GEO_URL=... Every sink is off by default: a bare
// run only needs the endpoints file.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
		_ = v.ReadInConfig()
	}

	v.SetDefault("endpoints_file", "data/endpoints.txt")
	v.SetDefault("workers", 80)
	v.SetDefault("threshold_ms", 12.0)

	v.SetDefault("probe.port", 443)
	v.SetDefault("probe.timeout", "4s")

	v.SetDefault("dns.servers", []string{})
	v.SetDefault("dns.timeout", "4s")

	v.SetDefault("geo.url", "https://ipwhois.app/json")
	v.SetDefault("geo.timeout", "5s")

	v.SetDefault("geo_cache.enable", false)
	v.SetDefault("geo_cache.addr", "localhost:6379")
	v.SetDefault("geo_cache.db", 0)
	v.SetDefault("geo_cache.ttl", "24h")

	v.SetDefault("report.json", "results/latency_results.json")
	v.SetDefault("report.html", "results/latency_results.html")

	v.SetDefault("db.dsn", "")
	v.SetDefault("db.max_conns", 4)
	v.SetDefault("db.min_conns", 1)
	v.SetDefault("db.max_conn_lifetime", "30m")
	v.SetDefault("db.max_conn_idle_time", "10m")
	v.SetDefault("db.health_check_period", "30s")
	v.SetDefault("db.query_timeout", "5s")

	v.SetDefault("kafka_out.brokers", []string{})
	v.SetDefault("kafka_out.topic", "coloscope.results")

	v.SetDefault("server.metrics_addr", "")

	v.SetDefault("otel.enable", false)
	v.SetDefault("otel.service_name", "coloscope")
	v.SetDefault("otel.sample_ratio", 1.0)
	v.SetDefault("otel.otlp_endpoint", "localhost:4317")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
