package db

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"meetsync/internal/models"
)

// IsSynced reports whether a primary document id already has an index
// entry.
func IsSynced(docID string) (bool, error) {
	var count int64
	err := DB.Model(&models.SyncedMeeting{}).Where("doc_id = ?", docID).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// RecordSynced stores the index entry for a freshly persisted meeting.
func RecordSynced(docID, identity, path string, wasSplit bool) error {
	record := models.SyncedMeeting{
		DocID:    docID,
		Identity: identity,
		Path:     path,
		WasSplit: wasSplit,
		SyncedAt: time.Now(),
	}
	return DB.Create(&record).Error
}

// SyncedDocIDs returns the set of document ids with index entries.
func SyncedDocIDs() (map[string]struct{}, error) {
	var records []models.SyncedMeeting
	if err := DB.Select("doc_id").Find(&records).Error; err != nil {
		return nil, err
	}
	ids := make(map[string]struct{}, len(records))
	for _, r := range records {
		ids[r.DocID] = struct{}{}
	}
	return ids, nil
}

// FindPersonByEmail looks up a person by email across both partitions.
// Emails are stored lower-cased, so the lookup is case-insensitive.
// Returns nil without error when no profile exists; other database
// errors propagate so callers don't mistake a failed lookup for a
// missing profile.
func FindPersonByEmail(email string) (*models.Person, error) {
	var person models.Person
	err := DB.Where("email = ?", strings.ToLower(email)).First(&person).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &person, nil
}

// CreatePerson inserts a new person row.
func CreatePerson(person *models.Person) error {
	person.Email = strings.ToLower(person.Email)
	return DB.Create(person).Error
}

// SavePerson persists updated recency metadata.
func SavePerson(person *models.Person) error {
	return DB.Save(person).Error
}

// ListPeople returns all indexed people, most recently seen first.
func ListPeople() ([]models.Person, error) {
	var people []models.Person
	err := DB.Order("last_interaction DESC, interaction_count DESC").Find(&people).Error
	if err != nil {
		return nil, err
	}
	return people, nil
}
