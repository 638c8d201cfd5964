// interfaces.go: this code defines the interface for the database operations
package datastore

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/differentnischal-art/rock-bee-colony-monitoring-Project/internal/conf"
)

// Interface abstracts the underlying database implementation and defines the
// operations available on the detection store.
type Interface interface {
	Open() error
	Save(detection *Detection) error
	GetAllDetections() ([]Detection, error)
	GetLastDetections(numDetections int) ([]Detection, error)
	Close() error
}

// DataStore implements Interface using a GORM database.
type DataStore struct {
	DB *gorm.DB // GORM database instance
}

// New creates a new datastore instance based on the provided configuration.
// Returns nil when no output database is enabled.
func New(settings *conf.Settings) Interface {
	switch {
	case settings.Output.SQLite.Enabled:
		return &SQLiteStore{
			Settings: settings,
		}
	default:
		return nil
	}
}

// Save appends one detection record. The timestamp is store-assigned when
// the caller leaves it unset. Concurrent-append safety is delegated to the
// underlying database engine's single-row insert isolation.
func (ds *DataStore) Save(detection *Detection) error {
	if ds.DB == nil {
		return fmt.Errorf("database connection is not initialized")
	}

	if detection.Timestamp.IsZero() {
		detection.Timestamp = time.Now()
	}

	if err := ds.DB.Create(detection).Error; err != nil {
		return fmt.Errorf("saving detection: %w", err)
	}

	return nil
}

// GetAllDetections retrieves every stored detection, most recent first.
// Each call re-reads current state, so rows appended between calls show up
// in the next snapshot.
func (ds *DataStore) GetAllDetections() ([]Detection, error) {
	if ds.DB == nil {
		return nil, fmt.Errorf("database connection is not initialized")
	}

	var detections []Detection
	if err := ds.DB.Order("timestamp DESC, id DESC").Find(&detections).Error; err != nil {
		return nil, fmt.Errorf("retrieving detections: %w", err)
	}
	return detections, nil
}

// GetLastDetections retrieves up to numDetections most recent detections.
func (ds *DataStore) GetLastDetections(numDetections int) ([]Detection, error) {
	if ds.DB == nil {
		return nil, fmt.Errorf("database connection is not initialized")
	}

	var detections []Detection
	if err := ds.DB.Order("timestamp DESC, id DESC").Limit(numDetections).Find(&detections).Error; err != nil {
		return nil, fmt.Errorf("retrieving last detections: %w", err)
	}
	return detections, nil
}

// createGormLogger returns a GORM logger that only surfaces slow queries
// and errors through the standard logger.
func createGormLogger() logger.Interface {
	return logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}

// performAutoMigration runs the idempotent schema migration for the
// detections table, safe to call on every Open.
func performAutoMigration(db *gorm.DB, debug bool, dbType, connectionInfo string) error {
	if err := db.AutoMigrate(&Detection{}); err != nil {
		return fmt.Errorf("failed to auto-migrate %s database: %w", dbType, err)
	}

	if debug {
		log.Printf("%s database connection initialized: %s", dbType, connectionInfo)
	}
	return nil
}
