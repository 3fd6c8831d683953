// Package persistence provides database storage for the pipeline's tables.
package persistence

import (
	"github.com/mrfylke/vegprofil/internal/database"
)

// ErrNotFound is re-exported so callers can match missing entities without
// importing the database package.
var ErrNotFound = database.ErrNotFound

// AutoMigrate runs GORM auto migration for all models.
func AutoMigrate(db database.Database) error {
	return db.GORM().AutoMigrate(
		&SegmentModel{},
		&WeightModel{},
		&BridgeModel{},
		&HeightModel{},
		&ProfileModel{},
		&CorridorModel{},
		&BottleneckModel{},
		&RutParcelModel{},
	)
}
