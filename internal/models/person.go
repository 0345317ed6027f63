package models

import (
	"time"

	"gorm.io/gorm"
)

// PersonKind partitions contacts by whether their email domain matches
// the operating user's organization.
type PersonKind string

const (
	PersonInternal PersonKind = "internal"
	PersonExternal PersonKind = "external"
)

// Person indexes one contact profile. Email is the identity key across
// both partitions; the partition is fixed at creation. The markdown
// profile under people/<kind>/<slug>/ stays the human-editable record,
// this row is the lookup and recency metadata.
type Person struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Email   string     `gorm:"uniqueIndex;not null" json:"email"` // lower-cased
	Slug    string     `gorm:"index;not null" json:"slug"`
	Kind    PersonKind `gorm:"not null" json:"kind"`
	Name    string     `json:"name"`
	Company string     `json:"company"`

	FirstInteraction string `json:"first_interaction"` // YYYY-MM-DD
	LastInteraction  string `json:"last_interaction"`  // YYYY-MM-DD
	InteractionCount int    `gorm:"default:0" json:"interaction_count"`
}
