package history

import (
	"errors"
	"time"

	"github.com/tauraamui/photoframed/internal/xerror"
	"gorm.io/gorm"
)

type FolderUseRepository struct {
	DB *gorm.DB
}

var timeNow = time.Now

// RecordUse upserts the folder/orientation pair, bumping its
// last used timestamp.
func (r *FolderUseRepository) RecordUse(folder string, orientation string) error {
	var existing FolderUse
	err := r.DB.Where("path = ? AND orientation = ?", folder, orientation).First(&existing).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return xerror.Errorf("unable to look up folder use: %w", err).ToError()
		}
		use := FolderUse{Path: folder, Orientation: orientation, LastUsedAt: timeNow()}
		if err := r.DB.Create(&use).Error; err != nil {
			return xerror.Errorf("unable to record folder use: %w", err).ToError()
		}
		return nil
	}

	existing.LastUsedAt = timeNow()
	if err := r.DB.Save(&existing).Error; err != nil {
		return xerror.Errorf("unable to update folder use: %w", err).ToError()
	}
	return nil
}

// Recent lists the most recently used folders for the given
// orientation, newest first.
func (r *FolderUseRepository) Recent(orientation string, limit int) ([]FolderUse, error) {
	uses := []FolderUse{}
	err := r.DB.
		Where("orientation = ?", orientation).
		Order("last_used_at desc").
		Limit(limit).
		Find(&uses).Error
	if err != nil {
		return nil, xerror.Errorf("unable to list recent folders: %w", err).ToError()
	}
	return uses, nil
}
