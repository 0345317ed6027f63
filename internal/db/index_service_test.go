package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meetsync/internal/models"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	require.NoError(t, Initialize(filepath.Join(t.TempDir(), "index.db")))
	t.Cleanup(func() {
		require.NoError(t, Close())
		DB = nil
	})
}

func TestSyncedMeetingIndex(t *testing.T) {
	setupTestDB(t)

	synced, err := IsSynced("doc-a")
	require.NoError(t, err)
	assert.False(t, synced)

	require.NoError(t, RecordSynced("doc-a", "2025-03-10-weekly-planning", "/mem/x.md", true))

	synced, err = IsSynced("doc-a")
	require.NoError(t, err)
	assert.True(t, synced)

	ids, err := SyncedDocIDs()
	require.NoError(t, err)
	assert.Contains(t, ids, "doc-a")
	assert.NotContains(t, ids, "doc-b")
}

func TestPersonLookupIsCaseInsensitive(t *testing.T) {
	setupTestDB(t)

	person, err := FindPersonByEmail("bob@client.io")
	require.NoError(t, err)
	assert.Nil(t, person)

	require.NoError(t, CreatePerson(&models.Person{
		Email:            "Bob@Client.IO",
		Slug:             "bob-smith",
		Kind:             models.PersonExternal,
		Name:             "Bob Smith",
		Company:          "Client",
		FirstInteraction: "2025-03-10",
		LastInteraction:  "2025-03-10",
		InteractionCount: 1,
	}))

	person, err = FindPersonByEmail("BOB@client.io")
	require.NoError(t, err)
	require.NotNil(t, person)
	assert.Equal(t, "bob@client.io", person.Email)
	assert.Equal(t, models.PersonExternal, person.Kind)
}

func TestFindPersonByEmailPropagatesErrors(t *testing.T) {
	setupTestDB(t)

	sqlDB, err := DB.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	// A broken connection is an error, not a missing profile.
	_, err = FindPersonByEmail("bob@client.io")
	assert.Error(t, err)
}

func TestSavePersonUpdatesRecency(t *testing.T) {
	setupTestDB(t)

	require.NoError(t, CreatePerson(&models.Person{
		Email:            "jane.doe@acme.com",
		Slug:             "jane-doe",
		Kind:             models.PersonInternal,
		Name:             "Jane Doe",
		FirstInteraction: "2025-03-10",
		LastInteraction:  "2025-03-10",
		InteractionCount: 1,
	}))

	person, err := FindPersonByEmail("jane.doe@acme.com")
	require.NoError(t, err)
	require.NotNil(t, person)

	person.LastInteraction = "2025-03-12"
	person.InteractionCount++
	require.NoError(t, SavePerson(person))

	reloaded, err := FindPersonByEmail("jane.doe@acme.com")
	require.NoError(t, err)
	require.NotNil(t, reloaded)
	assert.Equal(t, "2025-03-12", reloaded.LastInteraction)
	assert.Equal(t, 2, reloaded.InteractionCount)
}

func TestListPeopleOrdersByRecency(t *testing.T) {
	setupTestDB(t)

	require.NoError(t, CreatePerson(&models.Person{
		Email: "old@x.com", Slug: "old", Kind: models.PersonExternal,
		Name: "Old Contact", LastInteraction: "2025-01-05", InteractionCount: 3,
	}))
	require.NoError(t, CreatePerson(&models.Person{
		Email: "new@x.com", Slug: "new", Kind: models.PersonExternal,
		Name: "New Contact", LastInteraction: "2025-03-10", InteractionCount: 1,
	}))

	people, err := ListPeople()
	require.NoError(t, err)
	require.Len(t, people, 2)
	assert.Equal(t, "new@x.com", people[0].Email)
	assert.Equal(t, "old@x.com", people[1].Email)
}
