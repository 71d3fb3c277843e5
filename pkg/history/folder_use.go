package history

import (
	"time"

	"gorm.io/gorm"
)

// FolderUse records a photo folder having been the active
// slideshow source for an orientation.
type FolderUse struct {
	gorm.Model
	Path        string
	Orientation string
	LastUsedAt  time.Time
}
