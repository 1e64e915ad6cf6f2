package database

import (
	"context"

	"github.com/uptrace/bun"
)

// HealthChecker checks database connectivity
type HealthChecker struct {
	db *bun.DB
}

// NewHealthChecker creates a database health checker
func NewHealthChecker(db *bun.DB) *HealthChecker {
	return &HealthChecker{db: db}
}

func (d *HealthChecker) HealthCheck(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

func (d *HealthChecker) IsCritical() bool {
	return true
}

func (d *HealthChecker) Name() string {
	return "database"
}
