package orm

import (
	"time"

	"github.com/hos6/urlshortener/domain"
	ormKit "github.com/hos6/urlshortener/kit/orm"
	utilKit "github.com/hos6/urlshortener/kit/util"
	"github.com/pkg/errors"
)

type shortURLEntity struct {
	domain.ShortURL
}

func (shortURLEntity) TableName() string {
	return "short_url"
}

type shortURLRepo struct {
	db *ormKit.DB
}

func CreateShortURLRepo(db *ormKit.DB) domain.ShortURLRepo {
	return &shortURLRepo{db: db}
}

func (r *shortURLRepo) Exists(shortURL string) (bool, error) {
	var count int64
	err := r.db.Model(&shortURLEntity{}).Where("short_url = ?", shortURL).Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "query short url failed")
	}
	return count > 0, nil
}

func (r *shortURLRepo) Save(shortURL *domain.ShortURL) error {
	if shortURL.ID == 0 {
		uniqueIDGenerate, err := utilKit.GetUniqueIDGenerate()
		if err != nil {
			return errors.Wrap(err, "generate unique id failed")
		}
		shortURL.ID = uniqueIDGenerate.Generate().GetInt64()
	}

	if err := r.db.Create(&shortURLEntity{ShortURL: *shortURL}).Error; err != nil {
		if convertedErr, ok := ormKit.ConvertMySQLErr(err); ok {
			err = convertedErr
		}
		if errors.Is(err, ormKit.ErrDuplicatedKey) {
			return errors.Wrap(domain.ErrDuplicate, "short url already taken")
		}
		return errors.Wrap(err, "save short url failed")
	}

	return nil
}

func (r *shortURLRepo) Update(shortURL *domain.ShortURL) error {
	tx := r.db.Model(&shortURLEntity{}).
		Where("id = ?", shortURL.ID).
		Updates(map[string]interface{}{
			"is_active":  shortURL.IsActive,
			"updated_at": shortURL.UpdatedAt,
		})
	if tx.Error != nil {
		return errors.Wrap(tx.Error, "update short url failed")
	}
	if tx.RowsAffected == 0 {
		return errors.Wrap(domain.ErrNoData, "short url gone")
	}
	return nil
}

func (r *shortURLRepo) GetActive(shortURL string) (*domain.ShortURL, error) {
	var entity shortURLEntity
	err := r.db.
		Where("short_url = ? AND is_active = ? AND expires_at > ?", shortURL, true, time.Now()).
		First(&entity).Error
	if errors.Is(err, ormKit.ErrRecordNotFound) {
		return nil, errors.Wrap(domain.ErrNoData, "short url not found")
	} else if err != nil {
		return nil, errors.Wrap(err, "query short url failed")
	}
	return &entity.ShortURL, nil
}

func (r *shortURLRepo) GetByUser(shortURL, userID string) (*domain.ShortURL, error) {
	var entity shortURLEntity
	err := r.db.
		Where("short_url = ? AND user_id = ?", shortURL, userID).
		First(&entity).Error
	if errors.Is(err, ormKit.ErrRecordNotFound) {
		return nil, errors.Wrap(domain.ErrNoData, "short url not found")
	} else if err != nil {
		return nil, errors.Wrap(err, "query short url failed")
	}
	return &entity.ShortURL, nil
}

func (r *shortURLRepo) GetAllByUser(userID string, sort domain.SortOrderByEnum) ([]*domain.ShortURL, error) {
	order := "created_at DESC"
	if sort == domain.ASCSortOrderByEnum {
		order = "created_at ASC"
	}

	var entities []*shortURLEntity
	err := r.db.Where("user_id = ?", userID).Order(order).Find(&entities).Error
	if err != nil {
		return nil, errors.Wrap(err, "query short urls failed")
	}

	shortURLs := make([]*domain.ShortURL, 0, len(entities))
	for _, entity := range entities {
		shortURLs = append(shortURLs, &entity.ShortURL)
	}
	return shortURLs, nil
}

func (r *shortURLRepo) Delete(shortURL *domain.ShortURL) error {
	if err := r.db.Where("id = ?", shortURL.ID).Delete(&shortURLEntity{}).Error; err != nil {
		return errors.Wrap(err, "delete short url failed")
	}
	return nil
}

// ReapExpired removes records whose retention window elapsed. Expiry is
// the store's responsibility; callers run this on a timer.
func ReapExpired(db *ormKit.DB) (int64, error) {
	tx := db.Where("expires_at <= ?", time.Now()).Delete(&shortURLEntity{})
	if tx.Error != nil {
		return 0, errors.Wrap(tx.Error, "reap expired short urls failed")
	}
	return tx.RowsAffected, nil
}
