package models

import (
	"time"

	"gorm.io/gorm"
)

// SyncedMeeting records that a primary document has already produced a
// persisted meeting file. It exists so dedup checks don't have to
// rescan the markdown tree.
type SyncedMeeting struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	DocID    string    `gorm:"uniqueIndex;not null" json:"doc_id"`
	Identity string    `gorm:"index;not null" json:"identity"` // date + title slug
	Path     string    `json:"path"`
	WasSplit bool      `gorm:"default:false" json:"was_split"`
	SyncedAt time.Time `json:"synced_at"`
}
