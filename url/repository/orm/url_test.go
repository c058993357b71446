package orm

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hos6/urlshortener/domain"
	ormKit "github.com/hos6/urlshortener/kit/orm"
)

const sqliteSchema = `
CREATE TABLE short_url (
  id         INTEGER PRIMARY KEY,
  user_id    TEXT NOT NULL,
  short_url  TEXT NOT NULL UNIQUE,
  long_url   TEXT NOT NULL,
  is_active  BOOLEAN NOT NULL,
  created_at DATETIME NOT NULL,
  expires_at DATETIME NOT NULL,
  updated_at DATETIME NOT NULL
)`

func createTestDB(t *testing.T) *ormKit.DB {
	db, err := ormKit.CreateDB(ormKit.UseSQLite(filepath.Join(t.TempDir(), "url.db")))
	require.Nil(t, err)
	require.Nil(t, db.Exec(sqliteSchema).Error)
	return db
}

func createShortURL(t *testing.T, repo domain.ShortURLRepo, shortURL, longURL, userID string, isActive bool, expiresAt time.Time) *domain.ShortURL {
	now := time.Now()
	record := &domain.ShortURL{
		UserID:    userID,
		ShortURL:  shortURL,
		LongURL:   longURL,
		IsActive:  isActive,
		CreatedAt: now,
		ExpiresAt: expiresAt,
		UpdatedAt: now,
	}
	require.Nil(t, repo.Save(record))
	require.NotZero(t, record.ID)
	return record
}

func TestSaveAndGetActive(t *testing.T) {
	repo := CreateShortURLRepo(createTestDB(t))

	created := createShortURL(t, repo, "abc123", "https://example.com", "user-1", true, time.Now().Add(time.Hour))

	found, err := repo.GetActive("abc123")
	require.Nil(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "https://example.com", found.LongURL)
	assert.Equal(t, "user-1", found.UserID)

	exists, err := repo.Exists("abc123")
	require.Nil(t, err)
	assert.True(t, exists)

	exists, err = repo.Exists("zzzzzz")
	require.Nil(t, err)
	assert.False(t, exists)
}

func TestSaveDuplicateShortURL(t *testing.T) {
	repo := CreateShortURLRepo(createTestDB(t))

	createShortURL(t, repo, "abc123", "https://example.com", "user-1", true, time.Now().Add(time.Hour))

	err := repo.Save(&domain.ShortURL{
		UserID:    "user-2",
		ShortURL:  "abc123",
		LongURL:   "https://other.example.com",
		IsActive:  true,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
		UpdatedAt: time.Now(),
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestGetActiveFiltersInactiveAndExpired(t *testing.T) {
	repo := CreateShortURLRepo(createTestDB(t))

	createShortURL(t, repo, "inactv", "https://example.com/a", "user-1", false, time.Now().Add(time.Hour))
	createShortURL(t, repo, "expird", "https://example.com/b", "user-1", true, time.Now().Add(-time.Hour))

	_, err := repo.GetActive("inactv")
	assert.ErrorIs(t, err, domain.ErrNoData)
	_, err = repo.GetActive("expird")
	assert.ErrorIs(t, err, domain.ErrNoData)
	_, err = repo.GetActive("zzzzzz")
	assert.ErrorIs(t, err, domain.ErrNoData)
}

func TestUpdateActiveFlag(t *testing.T) {
	repo := CreateShortURLRepo(createTestDB(t))

	created := createShortURL(t, repo, "abc123", "https://example.com", "user-1", true, time.Now().Add(time.Hour))

	created.IsActive = false
	created.UpdatedAt = time.Now()
	require.Nil(t, repo.Update(created))

	_, err := repo.GetActive("abc123")
	assert.ErrorIs(t, err, domain.ErrNoData)

	created.IsActive = true
	require.Nil(t, repo.Update(created))

	found, err := repo.GetActive("abc123")
	require.Nil(t, err)
	assert.True(t, found.IsActive)
}

func TestUpdateMissingRecord(t *testing.T) {
	repo := CreateShortURLRepo(createTestDB(t))

	err := repo.Update(&domain.ShortURL{ID: 42, IsActive: false, UpdatedAt: time.Now()})
	assert.ErrorIs(t, err, domain.ErrNoData)
}

func TestGetByUser(t *testing.T) {
	repo := CreateShortURLRepo(createTestDB(t))

	createShortURL(t, repo, "abc123", "https://example.com", "user-1", true, time.Now().Add(time.Hour))

	found, err := repo.GetByUser("abc123", "user-1")
	require.Nil(t, err)
	assert.Equal(t, "abc123", found.ShortURL)

	_, err = repo.GetByUser("abc123", "user-2")
	assert.ErrorIs(t, err, domain.ErrNoData)
}

func TestGetAllByUserOrdering(t *testing.T) {
	repo := CreateShortURLRepo(createTestDB(t))

	base := time.Now()
	for i, shortURL := range []string{"code01", "code02", "code03"} {
		record := &domain.ShortURL{
			UserID:    "user-1",
			ShortURL:  shortURL,
			LongURL:   "https://example.com/" + shortURL,
			IsActive:  true,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			ExpiresAt: base.Add(time.Hour),
			UpdatedAt: base,
		}
		require.Nil(t, repo.Save(record))
	}
	createShortURL(t, repo, "other1", "https://example.com/other", "user-2", true, base.Add(time.Hour))

	shortURLs, err := repo.GetAllByUser("user-1", domain.DESCSortOrderByEnum)
	require.Nil(t, err)
	require.Len(t, shortURLs, 3)
	assert.Equal(t, "code03", shortURLs[0].ShortURL)
	assert.Equal(t, "code01", shortURLs[2].ShortURL)

	shortURLs, err = repo.GetAllByUser("user-1", domain.ASCSortOrderByEnum)
	require.Nil(t, err)
	require.Len(t, shortURLs, 3)
	assert.Equal(t, "code01", shortURLs[0].ShortURL)
}

func TestDelete(t *testing.T) {
	repo := CreateShortURLRepo(createTestDB(t))

	created := createShortURL(t, repo, "abc123", "https://example.com", "user-1", true, time.Now().Add(time.Hour))

	require.Nil(t, repo.Delete(created))

	exists, err := repo.Exists("abc123")
	require.Nil(t, err)
	assert.False(t, exists)

	// the freed code can be taken again
	createShortURL(t, repo, "abc123", "https://example.com/again", "user-1", true, time.Now().Add(time.Hour))
}

func TestReapExpired(t *testing.T) {
	db := createTestDB(t)
	repo := CreateShortURLRepo(db)

	createShortURL(t, repo, "keep01", "https://example.com/a", "user-1", true, time.Now().Add(time.Hour))
	createShortURL(t, repo, "gone01", "https://example.com/b", "user-1", true, time.Now().Add(-time.Hour))
	createShortURL(t, repo, "gone02", "https://example.com/c", "user-2", false, time.Now().Add(-time.Minute))

	reaped, err := ReapExpired(db)
	require.Nil(t, err)
	assert.Equal(t, int64(2), reaped)

	exists, err := repo.Exists("keep01")
	require.Nil(t, err)
	assert.True(t, exists)
	exists, err = repo.Exists("gone01")
	require.Nil(t, err)
	assert.False(t, exists)
}
