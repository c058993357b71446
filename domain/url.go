package domain

import (
	"context"
	"time"
)

// ShortURL is the authoritative record behind one short code. A code
// resolves only while IsActive is true and ExpiresAt is in the future.
type ShortURL struct {
	ID        int64
	UserID    string
	ShortURL  string
	LongURL   string
	IsActive  bool
	CreatedAt time.Time
	ExpiresAt time.Time
	UpdatedAt time.Time
}

func (s *ShortURL) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// ShortURLRepo is the system of record. Uniqueness of the short code is
// enforced here at save time; callers' existence probes are only a latency
// optimization.
type ShortURLRepo interface {
	// Exists reports whether any record currently holds the code.
	Exists(shortURL string) (bool, error)
	// Save inserts a new record, assigning an ID when it is zero.
	// Returns ErrDuplicate when the code is already taken.
	Save(shortURL *ShortURL) error
	// Update persists the mutable fields of an existing record. Returns
	// ErrNoData when the record disappeared since it was loaded.
	Update(shortURL *ShortURL) error
	// GetActive returns the record for a code that is active and not
	// expired. Returns ErrNoData otherwise.
	GetActive(shortURL string) (*ShortURL, error)
	// GetByUser returns the record only when it is owned by userID.
	// Returns ErrNoData for unknown codes and foreign owners alike.
	GetByUser(shortURL, userID string) (*ShortURL, error)
	GetAllByUser(userID string, sort SortOrderByEnum) ([]*ShortURL, error)
	Delete(shortURL *ShortURL) error
}

// ShortURLCache holds the shortURL -> longURL projection for active codes.
// It is never the system of record; callers treat every error as a miss.
type ShortURLCache interface {
	Get(ctx context.Context, shortURL string) (longURL string, exists bool, err error)
	Put(ctx context.Context, shortURL, longURL string) error
	Evict(ctx context.Context, shortURL string) error
}

// URLChecker probes whether a candidate long URL currently answers.
type URLChecker interface {
	IsReachable(ctx context.Context, url string) bool
}

type ShortURLUseCase interface {
	Create(ctx context.Context, longURL, userID string) (*ShortURL, error)
	Resolve(ctx context.Context, shortURL string) (longURL string, err error)
	Enable(ctx context.Context, shortURL, userID string) error
	Disable(ctx context.Context, shortURL, userID string) error
	Delete(ctx context.Context, shortURL, userID string) error
	GetAllByUser(ctx context.Context, userID string) ([]*ShortURL, error)
}
