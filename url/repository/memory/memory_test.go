package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hos6/urlshortener/domain"
)

func createRecord(t *testing.T, repo domain.ShortURLRepo, shortURL, userID string, isActive bool, expiresAt time.Time) *domain.ShortURL {
	now := time.Now()
	record := &domain.ShortURL{
		UserID:    userID,
		ShortURL:  shortURL,
		LongURL:   "https://example.com/" + shortURL,
		IsActive:  isActive,
		CreatedAt: now,
		ExpiresAt: expiresAt,
		UpdatedAt: now,
	}
	require.Nil(t, repo.Save(record))
	require.NotZero(t, record.ID)
	return record
}

func TestShortURLRepo(t *testing.T) {
	repo := CreateShortURLRepo()

	created := createRecord(t, repo, "abc123", "user-1", true, time.Now().Add(time.Hour))

	exists, err := repo.Exists("abc123")
	require.Nil(t, err)
	assert.True(t, exists)

	found, err := repo.GetActive("abc123")
	require.Nil(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "https://example.com/abc123", found.LongURL)

	err = repo.Save(&domain.ShortURL{
		UserID:    "user-2",
		ShortURL:  "abc123",
		LongURL:   "https://other.example.com",
		IsActive:  true,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
		UpdatedAt: time.Now(),
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	created.IsActive = false
	created.UpdatedAt = time.Now()
	require.Nil(t, repo.Update(created))
	_, err = repo.GetActive("abc123")
	assert.ErrorIs(t, err, domain.ErrNoData)

	_, err = repo.GetByUser("abc123", "user-2")
	assert.ErrorIs(t, err, domain.ErrNoData)
	found, err = repo.GetByUser("abc123", "user-1")
	require.Nil(t, err)
	assert.False(t, found.IsActive)

	require.Nil(t, repo.Delete(created))
	exists, err = repo.Exists("abc123")
	require.Nil(t, err)
	assert.False(t, exists)
	assert.ErrorIs(t, repo.Update(created), domain.ErrNoData)
}

func TestExpiredRecordReapedOnAccess(t *testing.T) {
	repo := CreateShortURLRepo()

	createRecord(t, repo, "expird", "user-1", true, time.Now().Add(-time.Minute))

	_, err := repo.GetActive("expird")
	assert.ErrorIs(t, err, domain.ErrNoData)

	exists, err := repo.Exists("expird")
	require.Nil(t, err)
	assert.False(t, exists)

	// the expired record no longer blocks reuse of its code
	createRecord(t, repo, "expird", "user-2", true, time.Now().Add(time.Hour))
}

func TestGetAllByUserSorting(t *testing.T) {
	repo := CreateShortURLRepo()

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
	createRecord(t, repo, "other1", "user-2", true, base.Add(time.Hour))

	shortURLs, err := repo.GetAllByUser("user-1", domain.DESCSortOrderByEnum)
	require.Nil(t, err)
	require.Len(t, shortURLs, 3)
	assert.Equal(t, "code03", shortURLs[0].ShortURL)

	shortURLs, err = repo.GetAllByUser("user-1", domain.ASCSortOrderByEnum)
	require.Nil(t, err)
	require.Len(t, shortURLs, 3)
	assert.Equal(t, "code01", shortURLs[0].ShortURL)
}

func TestRepoReturnsCopies(t *testing.T) {
	repo := CreateShortURLRepo()

	createRecord(t, repo, "abc123", "user-1", true, time.Now().Add(time.Hour))

	found, err := repo.GetActive("abc123")
	require.Nil(t, err)
	found.LongURL = "https://tampered.example.com"

	again, err := repo.GetActive("abc123")
	require.Nil(t, err)
	assert.Equal(t, "https://example.com/abc123", again.LongURL)
}

func TestShortURLCache(t *testing.T) {
	ctx := context.Background()
	cache := CreateShortURLCache(time.Minute)

	_, exists, err := cache.Get(ctx, "abc123")
	require.Nil(t, err)
	assert.False(t, exists)

	require.Nil(t, cache.Put(ctx, "abc123", "https://example.com"))
	longURL, exists, err := cache.Get(ctx, "abc123")
	require.Nil(t, err)
	assert.True(t, exists)
	assert.Equal(t, "https://example.com", longURL)

	require.Nil(t, cache.Evict(ctx, "abc123"))
	_, exists, err = cache.Get(ctx, "abc123")
	require.Nil(t, err)
	assert.False(t, exists)
}

func TestShortURLCacheTTL(t *testing.T) {
	ctx := context.Background()
	cache := CreateShortURLCache(10 * time.Millisecond)

	require.Nil(t, cache.Put(ctx, "abc123", "https://example.com"))
	time.Sleep(20 * time.Millisecond)

	_, exists, err := cache.Get(ctx, "abc123")
	require.Nil(t, err)
	assert.False(t, exists)
}
