package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/VoltEdgeBuilds/learn/internal/domain"

	"github.com/cenkalti/backoff/v4"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Config is shared by every entrypoint so repositories see translated errors
// (gorm.ErrDuplicatedKey instead of driver-specific codes).
func Config() *gorm.Config {
	return &gorm.Config{TranslateError: true}
}

// Connect opens postgres, retrying while the container is still starting.
func Connect(ctx context.Context, dsn string, maxWait time.Duration) (*gorm.DB, error) {
	var db *gorm.DB

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxElapsedTime = maxWait

	attempt := 0
	err := backoff.Retry(func() error {
		attempt++
		var err error
		db, err = gorm.Open(postgres.Open(dsn), Config())
		if err != nil {
			log.Printf("DB connect attempt %d failed: %v", attempt, err)
			return err
		}
		return nil
	}, backoff.WithContext(b, ctx))
	if err != nil {
		return nil, fmt.Errorf("connect to postgres after %d attempts: %w", attempt, err)
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.User{}, &domain.Course{}, &domain.Lesson{}, &domain.Progress{})
}

// Ping checks the pooled connection; used by health checks.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
