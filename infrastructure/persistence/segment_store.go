package persistence

import (
	"context"
	"fmt"

	"github.com/mrfylke/vegprofil/domain/roadnet"
	"github.com/mrfylke/vegprofil/internal/database"
	"gorm.io/gorm"
)

// insertBatchSize is the row count per batch insert.
const insertBatchSize = 500

// SegmentStore persists road network segments using GORM.
type SegmentStore struct {
	db     database.Database
	mapper SegmentMapper
}

// NewSegmentStore creates a SegmentStore.
func NewSegmentStore(db database.Database) SegmentStore {
	return SegmentStore{db: db, mapper: SegmentMapper{}}
}

// ReplaceAll rebuilds the segment table from scratch: every run re-fetches
// the full network, so the previous rows are dropped in the same
// transaction as the insert.
func (s SegmentStore) ReplaceAll(ctx context.Context, segments []roadnet.RoadSegment) error {
	models := make([]SegmentModel, len(segments))
	for i, seg := range segments {
		models[i] = s.mapper.ToModel(seg)
	}

	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&SegmentModel{}).Error; err != nil {
			return err
		}
		if len(models) == 0 {
			return nil
		}
		return tx.CreateInBatches(&models, insertBatchSize).Error
	})
	if err != nil {
		return fmt.Errorf("replace segments: %w", err)
	}
	return nil
}

// List returns all segments ordered by link and position.
func (s SegmentStore) List(ctx context.Context) ([]roadnet.RoadSegment, error) {
	var models []SegmentModel
	result := s.db.Session(ctx).Order("veglenkesekv_id, startpos").Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("list segments: %w", result.Error)
	}

	segments := make([]roadnet.RoadSegment, len(models))
	for i, m := range models {
		segments[i] = s.mapper.ToDomain(m)
	}
	return segments, nil
}

// Count returns the number of stored segments.
func (s SegmentStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.Session(ctx).Model(&SegmentModel{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count segments: %w", err)
	}
	return n, nil
}
