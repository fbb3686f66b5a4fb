package draftcache

import (
	"context"
	"errors"

	"github.com/lokiedu/yoga_admin/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is the staging area for the in-progress class draft. It holds at
// most one row: the singleton draft survives restarts until a successful
// commit or an explicit discard removes it.
type Store interface {
	GetFirstDraft(ctx context.Context) (*models.ClassDraft, error)
	Upsert(ctx context.Context, draft models.ClassDraft) error
	Delete(ctx context.Context, draftID string) error
	ClearAll(ctx context.Context) error
}

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// GetFirstDraft returns the persisted draft, or nil when none exists.
// Absence is a normal outcome, not an error.
func (s *GormStore) GetFirstDraft(ctx context.Context) (*models.ClassDraft, error) {
	var draft models.ClassDraft
	err := s.db.WithContext(ctx).Order("created_at").First(&draft).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &draft, nil
}

func (s *GormStore) Upsert(ctx context.Context, draft models.ClassDraft) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&draft).Error
}

func (s *GormStore) Delete(ctx context.Context, draftID string) error {
	return s.db.WithContext(ctx).Delete(&models.ClassDraft{}, "id = ?", draftID).Error
}

func (s *GormStore) ClearAll(ctx context.Context) error {
	return s.db.WithContext(ctx).Where("1 = 1").Delete(&models.ClassDraft{}).Error
}
