package config

import (
	"time"

	"github.com/NordCoder/Coloscope/internal/obs"
	pg "github.com/NordCoder/Coloscope/internal/repository/postgres"
)

type Probe struct {
	Port    int           `mapstructure:"port"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type DNS struct {
	Servers []string      `mapstructure:"servers"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type Geo struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type GeoCache struct {
	Enable bool          `mapstructure:"enable"`
	Addr   string        `mapstructure:"addr"`
	DB     int           `mapstructure:"db"`
	TTL    time.Duration `mapstructure:"ttl"`
}

type Report struct {
	JSON string `mapstructure:"json"`
	HTML string `mapstructure:"html"`
}

type DB struct {
	DSN               string        `mapstructure:"dsn"`
	MaxConns          int32         `mapstructure:"max_conns"`
	MinConns          int32         `mapstructure:"min_conns"`
	MaxConnLifetime   time.Duration `mapstructure:"max_conn_lifetime"`
	MaxConnIdleTime   time.Duration `mapstructure:"max_conn_idle_time"`
	HealthCheckPeriod time.Duration `mapstructure:"health_check_period"`
	QueryTimeout      time.Duration `mapstructure:"query_timeout"`
}

func (d DB) AsPoolConfig() pg.Config {
	return pg.Config{
		DSN:               d.DSN,
		MaxConns:          d.MaxConns,
		MinConns:          d.MinConns,
		MaxConnLifetime:   d.MaxConnLifetime,
		MaxConnIdleTime:   d.MaxConnIdleTime,
		HealthCheckPeriod: d.HealthCheckPeriod,
		QueryTimeout:      d.QueryTimeout,
	}
}

type KafkaOut struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

type Server struct {
	MetricsAddr string `mapstructure:"metrics_addr"`
}

type OTEL struct {
	Enable      bool    `mapstructure:"enable"`
	Endpoint    string  `mapstructure:"otlp_endpoint"`
	ServiceName string  `mapstructure:"service_name"`
	SampleRatio float64 `mapstructure:"sample_ratio"`
}

type Log struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

func (l Log) AsLoggerConfig() obs.LogConfig {
	return obs.LogConfig{Level: l.Level, Pretty: l.Pretty, App: "coloscope", Ver: "dev"}
}

type Config struct {
	EndpointsFile string   `mapstructure:"endpoints_file"`
	Workers       int      `mapstructure:"workers"`
	ThresholdMs   float64  `mapstructure:"threshold_ms"`
	Probe         Probe    `mapstructure:"probe"`
	DNS           DNS      `mapstructure:"dns"`
	Geo           Geo      `mapstructure:"geo"`
	GeoCache      GeoCache `mapstructure:"geo_cache"`
	Report        Report   `mapstructure:"report"`
	DB            DB       `mapstructure:"db"`
	KafkaOut      KafkaOut `mapstructure:"kafka_out"`
	Server        Server   `mapstructure:"server"`
	OTEL          OTEL     `mapstructure:"otel"`
	Log           Log      `mapstructure:"log"`
}
