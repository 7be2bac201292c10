package article

import (
	"context"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, a *Article) error
	GetByID(ctx context.Context, id string) (*Article, error)
	FindReferencingImageLike(ctx context.Context, patterns []string) ([]ImageRef, error)
	UpdateImages(ctx context.Context, id string, images datatypes.JSON, updatedAt time.Time) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, a *Article) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) GetByID(ctx context.Context, id string) (*Article, error) {
	var a Article
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&a).Error
	if err == gorm.ErrRecordNotFound {
		return nil, ErrArticleNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// FindReferencingImageLike is a cheap textual pre-filter: it returns the
// id and images payload of every article whose serialized images column
// matches any of the LIKE patterns.
func (r *repository) FindReferencingImageLike(ctx context.Context, patterns []string) ([]ImageRef, error) {
	if len(patterns) == 0 {
		return nil, nil
	}
	cond := r.db.Where("images LIKE ?", patterns[0])
	for _, p := range patterns[1:] {
		cond = cond.Or("images LIKE ?", p)
	}

	var refs []ImageRef
	err := r.db.WithContext(ctx).
		Model(&Article{}).
		Select("id", "images").
		Where(cond).
		Find(&refs).Error
	return refs, err
}

func (r *repository) UpdateImages(ctx context.Context, id string, images datatypes.JSON, updatedAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&Article{}).
		Where("id = ?", id).
		Updates(map[string]any{"images": images, "updated_at": updatedAt}).Error
}
