package repo

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/Skotchmaster/post_shop/internal/models"
)

func (r *GormRepo) CreatePosts(ctx context.Context, posts []models.Post) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range posts {
			if err := tx.Create(&posts[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *GormRepo) ListPosts(ctx context.Context) ([]models.Post, error) {
	posts := make([]models.Post, 0)
	if err := r.DB.WithContext(ctx).Order("post_id DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *GormRepo) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.DB.WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *GormRepo) GetPostsByIDs(ctx context.Context, ids []uint) ([]models.Post, error) {
	posts := make([]models.Post, 0, len(ids))
	if len(ids) == 0 {
		return posts, nil
	}
	if err := r.DB.WithContext(ctx).Where("post_id IN ?", ids).Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func likePattern(q string) string {
	q = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(strings.ToLower(q))
	return "%" + q + "%"
}

func (r *GormRepo) SearchPosts(ctx context.Context, q string) ([]models.Post, error) {
	pattern := likePattern(q)
	posts := make([]models.Post, 0)
	if err := r.DB.WithContext(ctx).
		Where(`LOWER(title) LIKE ? ESCAPE '\' OR LOWER(content) LIKE ? ESCAPE '\'`, pattern, pattern).
		Order("post_id DESC").
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}
