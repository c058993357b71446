package memory

import (
	sortPKG "sort"
	"sync"
	"time"

	"github.com/hos6/urlshortener/domain"
	utilKit "github.com/hos6/urlshortener/kit/util"
	"github.com/pkg/errors"
)

// memoryShortURLRepo keeps records in process. Expired records are reaped
// lazily on access instead of by a background job.
type memoryShortURLRepo struct {
	lock    sync.RWMutex
	records map[string]*domain.ShortURL
}

func CreateShortURLRepo() domain.ShortURLRepo {
	return &memoryShortURLRepo{
		records: make(map[string]*domain.ShortURL),
	}
}

func (r *memoryShortURLRepo) Exists(shortURL string) (bool, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	record, ok := r.records[shortURL]
	if !ok {
		return false, nil
	}
	if record.Expired(time.Now()) {
		delete(r.records, shortURL)
		return false, nil
	}
	return true, nil
}

func (r *memoryShortURLRepo) Save(shortURL *domain.ShortURL) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if record, ok := r.records[shortURL.ShortURL]; ok && !record.Expired(time.Now()) {
		return errors.Wrap(domain.ErrDuplicate, "short url already taken")
	}

	if shortURL.ID == 0 {
		uniqueIDGenerate, err := utilKit.GetUniqueIDGenerate()
		if err != nil {
			return errors.Wrap(err, "generate unique id failed")
		}
		shortURL.ID = uniqueIDGenerate.Generate().GetInt64()
	}

	saved := *shortURL
	r.records[shortURL.ShortURL] = &saved

	return nil
}

func (r *memoryShortURLRepo) Update(shortURL *domain.ShortURL) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	record, ok := r.records[shortURL.ShortURL]
	if !ok || record.ID != shortURL.ID || record.Expired(time.Now()) {
		return errors.Wrap(domain.ErrNoData, "short url gone")
	}

	record.IsActive = shortURL.IsActive
	record.UpdatedAt = shortURL.UpdatedAt

	return nil
}

func (r *memoryShortURLRepo) GetActive(shortURL string) (*domain.ShortURL, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	record, ok := r.records[shortURL]
	if !ok || !record.IsActive || record.Expired(time.Now()) {
		return nil, errors.Wrap(domain.ErrNoData, "short url not found")
	}

	found := *record
	return &found, nil
}

func (r *memoryShortURLRepo) GetByUser(shortURL, userID string) (*domain.ShortURL, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	record, ok := r.records[shortURL]
	if !ok || record.UserID != userID || record.Expired(time.Now()) {
		return nil, errors.Wrap(domain.ErrNoData, "short url not found")
	}

	found := *record
	return &found, nil
}

func (r *memoryShortURLRepo) GetAllByUser(userID string, sort domain.SortOrderByEnum) ([]*domain.ShortURL, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	now := time.Now()
	var shortURLs []*domain.ShortURL
	for _, record := range r.records {
		if record.UserID != userID || record.Expired(now) {
			continue
		}
		found := *record
		shortURLs = append(shortURLs, &found)
	}

	sortPKG.Slice(shortURLs, func(i, j int) bool {
		if sort == domain.ASCSortOrderByEnum {
			return shortURLs[i].CreatedAt.Before(shortURLs[j].CreatedAt)
		}
		return shortURLs[i].CreatedAt.After(shortURLs[j].CreatedAt)
	})

	return shortURLs, nil
}

func (r *memoryShortURLRepo) Delete(shortURL *domain.ShortURL) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	record, ok := r.records[shortURL.ShortURL]
	if ok && record.ID == shortURL.ID {
		delete(r.records, shortURL.ShortURL)
	}

	return nil
}
