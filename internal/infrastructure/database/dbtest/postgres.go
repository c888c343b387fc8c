package dbtest

import (
	"os"
	"testing"

	"github.com/VoltEdgeBuilds/learn/internal/infrastructure/database"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// PostgresDSNEnv names the variable that enables tests against a real PostgreSQL.
const PostgresDSNEnv = "LEARN_TEST_POSTGRES_DSN"

// Postgres connects to the database from PostgresDSNEnv and migrates it.
// The test is skipped when the variable is unset.
func Postgres(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := os.Getenv(PostgresDSNEnv)
	if dsn == "" {
		t.Skipf("%s not set", PostgresDSNEnv)
	}

	cfg := database.Config()
	cfg.Logger = logger.Default.LogMode(logger.Silent)
	db, err := gorm.Open(postgres.Open(dsn), cfg)
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("postgres handle: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate postgres: %v", err)
	}
	return db
}
