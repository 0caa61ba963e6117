package store

import (
	"errors"
	"fmt"
	"time"

	"school-erp-service/pkg/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// The snapshot keeps its one-blob contract on every backend; the postgres
// backend stores it as a single jsonb row rather than a relational schema.
const snapshotRowID = 1

type snapshotRow struct {
	ID        uint   `gorm:"primaryKey"`
	Data      []byte `gorm:"type:jsonb"`
	UpdatedAt time.Time
}

func (snapshotRow) TableName() string { return "erp_snapshots" }

// PostgresBackend persists the snapshot blob in PostgreSQL.
type PostgresBackend struct {
	db *gorm.DB
}

// NewPostgresBackend connects to the configured database and migrates the
// snapshot table.
func NewPostgresBackend(cfg *config.DBConfig) (*PostgresBackend, error) {
	logLevel := cfg.LogLevel
	if logLevel == 0 {
		logLevel = logger.Warn
	}

	// PreferSimpleProtocol avoids "prepared statement already exists" errors
	// behind connection poolers.
	pgConfig := postgres.Config{
		DSN:                  cfg.GetDSN(),
		PreferSimpleProtocol: true,
	}

	db, err := gorm.Open(postgres.New(pgConfig), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get database connection: %w", err)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err := db.AutoMigrate(&snapshotRow{}); err != nil {
		return nil, fmt.Errorf("migrate snapshot table: %w", err)
	}

	return &PostgresBackend{db: db}, nil
}

func (b *PostgresBackend) Load() ([]byte, error) {
	var row snapshotRow
	if err := b.db.First(&row, snapshotRowID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoSnapshot
		}
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	return row.Data, nil
}

func (b *PostgresBackend) Save(data []byte) error {
	row := snapshotRow{ID: snapshotRowID, Data: data}
	if err := b.db.Save(&row).Error; err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}
