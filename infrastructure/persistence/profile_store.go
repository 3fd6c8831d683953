package persistence

import (
	"context"
	"fmt"

	"github.com/mrfylke/vegprofil/domain/roadnet"
	"github.com/mrfylke/vegprofil/internal/database"
)

// ProfileStore persists derived segment profiles using GORM.
type ProfileStore struct {
	db     database.Database
	mapper ProfileMapper
}

// NewProfileStore creates a ProfileStore.
func NewProfileStore(db database.Database) ProfileStore {
	return ProfileStore{db: db, mapper: ProfileMapper{}}
}

// ReplaceAll rebuilds the profile table from scratch.
func (s ProfileStore) ReplaceAll(ctx context.Context, profiles []roadnet.SegmentProfile) error {
	models := make([]ProfileModel, len(profiles))
	for i, p := range profiles {
		models[i] = s.mapper.ToModel(p)
	}
	if err := replaceTable(ctx, s.db, &ProfileModel{}, models); err != nil {
		return fmt.Errorf("replace profiles: %w", err)
	}
	return nil
}

// List returns all profiles ordered by link and position.
func (s ProfileStore) List(ctx context.Context) ([]roadnet.SegmentProfile, error) {
	var models []ProfileModel
	if err := s.db.Session(ctx).Order("veglenkesekv_id, startpos").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	profiles := make([]roadnet.SegmentProfile, len(models))
	for i, m := range models {
		profiles[i] = s.mapper.ToDomain(m)
	}
	return profiles, nil
}

// Count returns the number of stored profiles.
func (s ProfileStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.Session(ctx).Model(&ProfileModel{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count profiles: %w", err)
	}
	return n, nil
}
