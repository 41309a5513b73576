package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/copconnect/reporting-service/internal/config"
)

func TestPoolConfigAppliesOverrides(t *testing.T) {
	cfg, err := poolConfig(config.PostgresConfig{
		DSN:            "postgres://copconnect:pw@localhost:5432/copconnect",
		MaxConns:       8,
		MinConns:       12,
		ConnMaxIdleSec: 30,
		ConnMaxLifeSec: 300,
	})
	if err != nil {
		t.Fatalf("poolConfig: %v", err)
	}
	if cfg.MaxConns != 8 {
		t.Fatalf("max conns = %d", cfg.MaxConns)
	}
	if cfg.MinConns != 8 {
		t.Fatalf("min conns should be capped at max, got %d", cfg.MinConns)
	}
	if cfg.MaxConnIdleTime != 30*time.Second || cfg.MaxConnLifetime != 5*time.Minute {
		t.Fatalf("unexpected lifetimes idle=%v life=%v", cfg.MaxConnIdleTime, cfg.MaxConnLifetime)
	}
	if cfg.ConnConfig.Database != "copconnect" {
		t.Fatalf("database = %q", cfg.ConnConfig.Database)
	}
}

func TestPoolConfigRejectsBadDSN(t *testing.T) {
	if _, err := poolConfig(config.PostgresConfig{}); !errors.Is(err, ErrNoDSN) {
		t.Fatalf("expected ErrNoDSN, got %v", err)
	}
	if _, err := poolConfig(config.PostgresConfig{DSN: "postgres://localhost:notaport/db"}); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestPostgresPingWithoutPool(t *testing.T) {
	var p *Postgres
	if err := p.Ping(context.Background()); err == nil {
		t.Fatalf("expected error for missing pool")
	}
	if p.PoolHandle() != nil {
		t.Fatalf("expected nil pool handle")
	}
	p.Close()
}
