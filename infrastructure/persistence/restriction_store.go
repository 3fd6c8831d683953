package persistence

import (
	"context"
	"fmt"

	"github.com/mrfylke/vegprofil/domain/roadnet"
	"github.com/mrfylke/vegprofil/internal/database"
	"gorm.io/gorm"
)

// RestrictionStore persists the three restriction datasets using GORM.
// Each dataset is rebuilt from scratch on every fetch run.
type RestrictionStore struct {
	db database.Database

	weightMapper WeightMapper
	bridgeMapper BridgeMapper
	heightMapper HeightMapper
}

// NewRestrictionStore creates a RestrictionStore.
func NewRestrictionStore(db database.Database) RestrictionStore {
	return RestrictionStore{db: db}
}

// ReplaceWeights rebuilds the Bruksklasse table.
func (s RestrictionStore) ReplaceWeights(ctx context.Context, weights []roadnet.WeightRestriction) error {
	models := make([]WeightModel, len(weights))
	for i, w := range weights {
		models[i] = s.weightMapper.ToModel(w)
	}
	if err := replaceTable(ctx, s.db, &WeightModel{}, models); err != nil {
		return fmt.Errorf("replace weight restrictions: %w", err)
	}
	return nil
}

// ReplaceBridges rebuilds the bridge table.
func (s RestrictionStore) ReplaceBridges(ctx context.Context, bridges []roadnet.BridgeRestriction) error {
	models := make([]BridgeModel, len(bridges))
	for i, b := range bridges {
		models[i] = s.bridgeMapper.ToModel(b)
	}
	if err := replaceTable(ctx, s.db, &BridgeModel{}, models); err != nil {
		return fmt.Errorf("replace bridges: %w", err)
	}
	return nil
}

// ReplaceHeights rebuilds the clearance table.
func (s RestrictionStore) ReplaceHeights(ctx context.Context, heights []roadnet.HeightRestriction) error {
	models := make([]HeightModel, len(heights))
	for i, h := range heights {
		models[i] = s.heightMapper.ToModel(h)
	}
	if err := replaceTable(ctx, s.db, &HeightModel{}, models); err != nil {
		return fmt.Errorf("replace height restrictions: %w", err)
	}
	return nil
}

// Weights returns all weight restrictions.
func (s RestrictionStore) Weights(ctx context.Context) ([]roadnet.WeightRestriction, error) {
	var models []WeightModel
	if err := s.db.Session(ctx).Order("veglenkesekv_id, startpos").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("list weight restrictions: %w", err)
	}
	out := make([]roadnet.WeightRestriction, len(models))
	for i, m := range models {
		out[i] = s.weightMapper.ToDomain(m)
	}
	return out, nil
}

// Bridges returns all bridges.
func (s RestrictionStore) Bridges(ctx context.Context) ([]roadnet.BridgeRestriction, error) {
	var models []BridgeModel
	if err := s.db.Session(ctx).Order("veglenkesekv_id, startpos").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("list bridges: %w", err)
	}
	out := make([]roadnet.BridgeRestriction, len(models))
	for i, m := range models {
		out[i] = s.bridgeMapper.ToDomain(m)
	}
	return out, nil
}

// Heights returns all clearance restrictions.
func (s RestrictionStore) Heights(ctx context.Context) ([]roadnet.HeightRestriction, error) {
	var models []HeightModel
	if err := s.db.Session(ctx).Order("veglenkesekv_id, startpos").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("list height restrictions: %w", err)
	}
	out := make([]roadnet.HeightRestriction, len(models))
	for i, m := range models {
		out[i] = s.heightMapper.ToDomain(m)
	}
	return out, nil
}

// replaceTable drops all rows of one model and batch-inserts the
// replacements in a single transaction.
func replaceTable[M any](ctx context.Context, db database.Database, model any, rows []M) error {
	return database.WithTransaction(ctx, db, func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.CreateInBatches(&rows, insertBatchSize).Error
	})
}
