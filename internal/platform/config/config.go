package config

import (
	"os"
	"strings"
	"time"
)

// Server captures process level configuration. Memory backends are the
// default so the engine runs deterministically with no external services;
// setting the corresponding URL switches a backend on.
type Server struct {
	Addr          string
	DatabaseURL   string
	RedisURL      string
	KafkaBrokers  []string
	AuditTopic    string
	JWTSigningKey string
	TxTimeout     time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("VERIDEV_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - should be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	topic := os.Getenv("AUDIT_TOPIC")
	if topic == "" {
		topic = "veridev.registry.events"
	}

	txTimeout := 5 * time.Second
	if v := os.Getenv("TX_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			txTimeout = d
		}
	}

	return Server{
		Addr:          addr,
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisURL:      os.Getenv("REDIS_URL"),
		KafkaBrokers:  splitCSV(os.Getenv("KAFKA_BROKERS")),
		AuditTopic:    topic,
		JWTSigningKey: jwtSigningKey,
		TxTimeout:     txTimeout,
	}
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
