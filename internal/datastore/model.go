// model.go this code defines the data model for the application
package datastore

import "time"

// Detection represents a single persisted classification event with its
// reporter and GPS metadata. Records are append-only, never mutated or
// deleted after creation.
type Detection struct {
	ID         uint    `gorm:"primaryKey"`
	Label      string  `gorm:"index:idx_detections_label"`
	Confidence float64
	Latitude   float64
	Longitude  float64
	UserRole   string
	Timestamp  time.Time `gorm:"index:idx_detections_timestamp"`
}
