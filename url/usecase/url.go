package usecase

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/hos6/urlshortener/domain"
	"github.com/hos6/urlshortener/kit/code"
	loggerKit "github.com/hos6/urlshortener/kit/logger"
	utilKit "github.com/hos6/urlshortener/kit/util"
	"github.com/pkg/errors"
)

// maxGenerateAttempts bounds the collision retry loop in Create.
const maxGenerateAttempts = 10

type shortURLUseCase struct {
	repo      domain.ShortURLRepo
	cache     domain.ShortURLCache
	checker   domain.URLChecker
	logger    *loggerKit.Logger
	retention time.Duration
}

type Option func(*shortURLUseCase)

// RetentionPeriod overrides the default one month record retention.
func RetentionPeriod(d time.Duration) Option {
	return func(u *shortURLUseCase) {
		u.retention = d
	}
}

func CreateShortURLUseCase(
	repo domain.ShortURLRepo,
	cache domain.ShortURLCache,
	checker domain.URLChecker,
	logger *loggerKit.Logger,
	options ...Option,
) (domain.ShortURLUseCase, error) {
	if repo == nil || cache == nil || checker == nil || logger == nil {
		return nil, errors.New("create use case failed")
	}
	useCase := &shortURLUseCase{
		repo:    repo,
		cache:   cache,
		checker: checker,
		logger:  logger,
	}
	for _, option := range options {
		option(useCase)
	}
	return useCase, nil
}

func (u *shortURLUseCase) Create(ctx context.Context, longURL, userID string) (*domain.ShortURL, error) {
	if !validURLFormat(longURL) {
		return nil, code.CreateErrorCode(http.StatusBadRequest).AddCode(code.InvalidURL)
	}
	if !u.checker.IsReachable(ctx, longURL) {
		return nil, code.CreateErrorCode(http.StatusBadRequest).AddCode(code.InvalidURL)
	}

	uniqueIDGenerate, err := utilKit.GetUniqueIDGenerate()
	if err != nil {
		return nil, errors.Wrap(err, "generate unique id failed")
	}

	seed := longURL
	for attempt := 0; attempt < maxGenerateAttempts; attempt++ {
		candidate := utilKit.GenerateShortCode(seed)

		exists, err := u.repo.Exists(candidate)
		if err != nil {
			return nil, errors.Wrap(err, "check short url existence failed")
		}
		if exists {
			seed = longURL + uniqueIDGenerate.Generate().GetBase62()
			continue
		}

		now := time.Now()
		shortURL := &domain.ShortURL{
			UserID:    userID,
			ShortURL:  candidate,
			LongURL:   longURL,
			IsActive:  true,
			CreatedAt: now,
			ExpiresAt: u.expireTime(now),
			UpdatedAt: now,
		}
		err = u.repo.Save(shortURL)
		if errors.Is(err, domain.ErrDuplicate) {
			// lost the check-then-insert race, the store's uniqueness
			// constraint is authoritative
			seed = longURL + uniqueIDGenerate.Generate().GetBase62()
			continue
		} else if err != nil {
			return nil, errors.Wrap(err, "save short url failed")
		}

		return shortURL, nil
	}

	return nil, errors.Wrap(domain.ErrShortURLSpaceExhausted, "generate short url failed")
}

func (u *shortURLUseCase) Resolve(ctx context.Context, shortURL string) (string, error) {
	if longURL, exists := u.cacheGet(ctx, shortURL); exists {
		return longURL, nil
	}

	record, err := u.repo.GetActive(shortURL)
	if errors.Is(err, domain.ErrNoData) {
		return "", code.CreateErrorCode(http.StatusNotFound)
	} else if err != nil {
		return "", errors.Wrap(err, "get short url failed")
	}

	u.cachePut(ctx, shortURL, record.LongURL)

	return record.LongURL, nil
}

func (u *shortURLUseCase) Enable(ctx context.Context, shortURL, userID string) error {
	record, err := u.updateStatus(shortURL, userID, true)
	if err != nil {
		return err
	}

	// a resolution usually follows right away, warm the cache
	u.cachePut(ctx, shortURL, record.LongURL)

	return nil
}

func (u *shortURLUseCase) Disable(ctx context.Context, shortURL, userID string) error {
	if _, err := u.updateStatus(shortURL, userID, false); err != nil {
		return err
	}

	// evict only after the store write committed, so a racing resolver
	// cannot repopulate the cache from a pre-write store read
	u.cacheEvict(ctx, shortURL)

	return nil
}

func (u *shortURLUseCase) Delete(ctx context.Context, shortURL, userID string) error {
	record, err := u.repo.GetByUser(shortURL, userID)
	if errors.Is(err, domain.ErrNoData) {
		return code.CreateErrorCode(http.StatusNotFound)
	} else if err != nil {
		return errors.Wrap(err, "get short url failed")
	}

	if err := u.repo.Delete(record); err != nil {
		return errors.Wrap(err, "delete short url failed")
	}

	// bound staleness to one cache TTL at worst
	u.cacheEvict(ctx, shortURL)

	return nil
}

func (u *shortURLUseCase) GetAllByUser(ctx context.Context, userID string) ([]*domain.ShortURL, error) {
	shortURLs, err := u.repo.GetAllByUser(userID, domain.DESCSortOrderByEnum)
	if err != nil {
		return nil, errors.Wrap(err, "get short urls failed")
	}
	return shortURLs, nil
}

// updateStatus flips the active flag for a record owned by userID. A code
// the user does not own is reported exactly like a missing one.
func (u *shortURLUseCase) updateStatus(shortURL, userID string, isActive bool) (*domain.ShortURL, error) {
	record, err := u.repo.GetByUser(shortURL, userID)
	if errors.Is(err, domain.ErrNoData) {
		return nil, code.CreateErrorCode(http.StatusNotFound)
	} else if err != nil {
		return nil, errors.Wrap(err, "get short url failed")
	}

	record.IsActive = isActive
	record.UpdatedAt = time.Now()

	err = u.repo.Update(record)
	if errors.Is(err, domain.ErrNoData) {
		// reaped between lookup and update
		return nil, code.CreateErrorCode(http.StatusNotFound)
	} else if err != nil {
		return nil, errors.Wrap(err, "update short url failed")
	}

	return record, nil
}

// The cache is best effort: every failure below degrades to a miss or a
// no-op and must never abort the surrounding operation.

func (u *shortURLUseCase) cacheGet(ctx context.Context, shortURL string) (string, bool) {
	longURL, exists, err := u.cache.Get(ctx, shortURL)
	if err != nil {
		u.logger.Warn("get cache failed", loggerKit.String("short_url", shortURL), loggerKit.Error(err))
		return "", false
	}
	return longURL, exists
}

func (u *shortURLUseCase) cachePut(ctx context.Context, shortURL, longURL string) {
	if err := u.cache.Put(ctx, shortURL, longURL); err != nil {
		u.logger.Warn("put cache failed", loggerKit.String("short_url", shortURL), loggerKit.Error(err))
	}
}

func (u *shortURLUseCase) cacheEvict(ctx context.Context, shortURL string) {
	if err := u.cache.Evict(ctx, shortURL); err != nil {
		u.logger.Warn("evict cache failed", loggerKit.String("short_url", shortURL), loggerKit.Error(err))
	}
}

func (u *shortURLUseCase) expireTime(now time.Time) time.Time {
	if u.retention > 0 {
		return now.Add(u.retention)
	}
	return now.AddDate(0, 1, 0)
}

func validURLFormat(longURL string) bool {
	parsed, err := url.Parse(longURL)
	if err != nil {
		return false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}
	return parsed.Host != ""
}
