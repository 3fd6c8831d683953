package persistence

import (
	"context"
	"fmt"

	"github.com/mrfylke/vegprofil/domain/roadnet"
	"github.com/mrfylke/vegprofil/internal/database"
)

// BottleneckStore persists classified bottlenecks using GORM.
type BottleneckStore struct {
	db     database.Database
	mapper BottleneckMapper
}

// NewBottleneckStore creates a BottleneckStore.
func NewBottleneckStore(db database.Database) BottleneckStore {
	return BottleneckStore{db: db, mapper: BottleneckMapper{}}
}

// ReplaceAll rebuilds the bottleneck table from scratch.
func (s BottleneckStore) ReplaceAll(ctx context.Context, bottlenecks []roadnet.Bottleneck) error {
	models := make([]BottleneckModel, len(bottlenecks))
	for i, b := range bottlenecks {
		models[i] = s.mapper.ToModel(b)
	}
	if err := replaceTable(ctx, s.db, &BottleneckModel{}, models); err != nil {
		return fmt.Errorf("replace bottlenecks: %w", err)
	}
	return nil
}

// List returns all bottlenecks ordered by municipality, road and position.
func (s BottleneckStore) List(ctx context.Context) ([]roadnet.Bottleneck, error) {
	var models []BottleneckModel
	if err := s.db.Session(ctx).Order("kommune, vegnummer, veglenkesekv_id, startpos").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("list bottlenecks: %w", err)
	}
	out := make([]roadnet.Bottleneck, len(models))
	for i, m := range models {
		out[i] = s.mapper.ToDomain(m)
	}
	return out, nil
}

// UpdateCauses overwrites the cause tag of each stored bottleneck row
// matching the given link and position.
func (s BottleneckStore) UpdateCauses(ctx context.Context, bottlenecks []roadnet.Bottleneck) error {
	for _, b := range bottlenecks {
		result := s.db.Session(ctx).
			Model(&BottleneckModel{}).
			Where("veglenkesekv_id = ? AND startpos = ? AND sluttpos = ?", b.LinkID(), b.Position().Start(), b.Position().End()).
			Update("arsak", b.Cause())
		if result.Error != nil {
			return fmt.Errorf("update bottleneck cause: %w", result.Error)
		}
	}
	return nil
}

// Count returns the number of stored bottlenecks.
func (s BottleneckStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.Session(ctx).Model(&BottleneckModel{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count bottlenecks: %w", err)
	}
	return n, nil
}
