package persistence

import (
	"context"
	"fmt"

	"github.com/mrfylke/vegprofil/domain/roadnet"
	"github.com/mrfylke/vegprofil/internal/database"
)

// RutStore persists aggregated rut depth parcels using GORM.
type RutStore struct {
	db     database.Database
	mapper RutParcelMapper
}

// NewRutStore creates a RutStore.
func NewRutStore(db database.Database) RutStore {
	return RutStore{db: db, mapper: RutParcelMapper{}}
}

// ReplaceAll rebuilds the rut parcel table from scratch.
func (s RutStore) ReplaceAll(ctx context.Context, parcels []roadnet.RutParcel) error {
	models := make([]RutParcelModel, len(parcels))
	for i, p := range parcels {
		models[i] = s.mapper.ToModel(p)
	}
	if err := replaceTable(ctx, s.db, &RutParcelModel{}, models); err != nil {
		return fmt.Errorf("replace rut parcels: %w", err)
	}
	return nil
}

// List returns all parcels ordered by road and start meter.
func (s RutStore) List(ctx context.Context) ([]roadnet.RutParcel, error) {
	var models []RutParcelModel
	if err := s.db.Session(ctx).Order("vegnummer, parsell_start").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("list rut parcels: %w", err)
	}
	out := make([]roadnet.RutParcel, len(models))
	for i, m := range models {
		out[i] = s.mapper.ToDomain(m)
	}
	return out, nil
}
