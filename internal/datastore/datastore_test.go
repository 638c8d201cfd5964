package datastore

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/differentnischal-art/rock-bee-colony-monitoring-Project/internal/conf"
)

// openTestStore opens a SQLite store backed by a temp directory.
func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	settings := &conf.Settings{}
	settings.Output.SQLite.Enabled = true
	settings.Output.SQLite.Path = filepath.Join(t.TempDir(), "detections.db")

	store, ok := New(settings).(*SQLiteStore)
	require.True(t, ok)
	require.NoError(t, store.Open())
	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})
	return store
}

func TestNewReturnsNilWhenNoOutputEnabled(t *testing.T) {
	t.Parallel()

	assert.Nil(t, New(&conf.Settings{}))
}

func TestSaveAssignsIDAndTimestamp(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	before := time.Now()

	detection := &Detection{
		Label:      "Rock Bee",
		Confidence: 0.91,
		Latitude:   12.0,
		Longitude:  77.0,
		UserRole:   "farmer",
	}
	require.NoError(t, store.Save(detection))

	assert.NotZero(t, detection.ID)
	assert.False(t, detection.Timestamp.Before(before))
}

func TestGetAllDetectionsOrderedNewestFirst(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	base := time.Date(2026, time.August, 1, 10, 0, 0, 0, time.UTC)

	// Insert out of chronological order on purpose
	timestamps := []time.Time{
		base.Add(2 * time.Hour),
		base,
		base.Add(1 * time.Hour),
	}
	for i, ts := range timestamps {
		require.NoError(t, store.Save(&Detection{
			Label:      "Rock Bee",
			Confidence: 0.8 + float64(i)/100,
			UserRole:   "public",
			Timestamp:  ts,
		}))
	}

	detections, err := store.GetAllDetections()
	require.NoError(t, err)
	require.Len(t, detections, 3)

	for i := 1; i < len(detections); i++ {
		assert.False(t, detections[i-1].Timestamp.Before(detections[i].Timestamp),
			"detections must be ordered by timestamp descending")
	}
}

func TestGetLastDetectionsLimitsResults(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	for i := 0; i < 5; i++ {
		require.NoError(t, store.Save(&Detection{
			Label:     "Not Rock Bee",
			UserRole:  "tourist",
			Timestamp: time.Now().Add(time.Duration(i) * time.Minute),
		}))
	}

	detections, err := store.GetLastDetections(2)
	require.NoError(t, err)
	assert.Len(t, detections, 2)
}

// TestOpenIsIdempotent verifies that opening an existing database re-runs
// the schema migration without error and preserves stored rows.
func TestOpenIsIdempotent(t *testing.T) {
	t.Parallel()

	settings := &conf.Settings{}
	settings.Output.SQLite.Enabled = true
	settings.Output.SQLite.Path = filepath.Join(t.TempDir(), "detections.db")

	store := &SQLiteStore{Settings: settings}
	require.NoError(t, store.Open())
	require.NoError(t, store.Save(&Detection{Label: "Rock Bee", UserRole: "farmer"}))
	require.NoError(t, store.Close())

	reopened := &SQLiteStore{Settings: settings}
	require.NoError(t, reopened.Open())
	defer func() {
		require.NoError(t, reopened.Close())
	}()

	detections, err := reopened.GetAllDetections()
	require.NoError(t, err)
	assert.Len(t, detections, 1)
}

func TestSaveWithoutOpenFails(t *testing.T) {
	t.Parallel()

	store := &SQLiteStore{Settings: &conf.Settings{}}
	assert.Error(t, store.Save(&Detection{Label: "Rock Bee"}))
}
