package database

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := InitDB("", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	return db
}

func TestFindOrCreateKey(t *testing.T) {
	db := openTestDB(t)

	first, err := FindOrCreateKey(db, "acme.sig", "acme", "acm...sig")
	require.NoError(t, err)
	assert.NotZero(t, first.ID)
	assert.Equal(t, DefaultRateLimit, first.RateLimit)

	again, err := FindOrCreateKey(db, "acme.sig", "renamed", "")
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, "acme", again.Name)

	var count int64
	db.Model(&APIKey{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestRecordUsage(t *testing.T) {
	db := openTestDB(t)
	key, err := FindOrCreateKey(db, "acme.sig", "acme", "")
	require.NoError(t, err)

	require.NoError(t, RecordUsage(db, key.ID, "2025-10-13", 5, 2))
	require.NoError(t, RecordUsage(db, key.ID, "2025-10-14", 7, 3))
	require.NoError(t, RecordUsage(db, key.ID, "2025-10-14", 3, 4))

	n, err := RequestsOn(db, key.ID, "2025-10-14")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = RequestsOn(db, key.ID, "2025-01-01")
	require.NoError(t, err)
	assert.Zero(t, n)

	history, err := UsageHistory(db, key.ID, 30)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "2025-10-14", history[0].Date)
	assert.Equal(t, 10, history[0].TotalHours)
	assert.Equal(t, 7, history[0].TotalEmployees)
	assert.Equal(t, 1, history[1].RequestCount)
}

func TestTouchKey(t *testing.T) {
	db := openTestDB(t)
	key, err := FindOrCreateKey(db, "acme.sig", "acme", "")
	require.NoError(t, err)
	assert.Nil(t, key.LastUsed)

	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, TouchKey(db, key.ID, now))

	var stored APIKey
	require.NoError(t, db.First(&stored, key.ID).Error)
	require.NotNil(t, stored.LastUsed)
	assert.WithinDuration(t, now, *stored.LastUsed, time.Second)
}
