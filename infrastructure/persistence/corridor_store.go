package persistence

import (
	"context"
	"fmt"

	"github.com/mrfylke/vegprofil/domain/roadnet"
	"github.com/mrfylke/vegprofil/internal/database"
)

// CorridorStore persists per-corridor rows using GORM.
type CorridorStore struct {
	db     database.Database
	mapper CorridorMapper
}

// NewCorridorStore creates a CorridorStore.
func NewCorridorStore(db database.Database) CorridorStore {
	return CorridorStore{db: db, mapper: CorridorMapper{}}
}

// ReplaceAll rebuilds the corridor table from scratch.
func (s CorridorStore) ReplaceAll(ctx context.Context, corridors []roadnet.Corridor) error {
	models := make([]CorridorModel, len(corridors))
	for i, c := range corridors {
		models[i] = s.mapper.ToModel(c)
	}
	if err := replaceTable(ctx, s.db, &CorridorModel{}, models); err != nil {
		return fmt.Errorf("replace corridors: %w", err)
	}
	return nil
}

// List returns all corridors ordered by road and link sequence.
func (s CorridorStore) List(ctx context.Context) ([]roadnet.Corridor, error) {
	var models []CorridorModel
	if err := s.db.Session(ctx).Order("vegnummer, veglenkesekv_id").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("list corridors: %w", err)
	}
	out := make([]roadnet.Corridor, len(models))
	for i, m := range models {
		out[i] = s.mapper.ToDomain(m)
	}
	return out, nil
}
