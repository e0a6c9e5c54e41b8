package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/Skotchmaster/post_shop/internal/models"
)

func (r *GormRepo) CreateGoods(ctx context.Context, goods []models.Goods) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range goods {
			if err := tx.Create(&goods[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *GormRepo) ListGoods(ctx context.Context, category string) ([]models.Goods, error) {
	goods := make([]models.Goods, 0)
	q := r.DB.WithContext(ctx).Order("goods_id ASC")
	if category != "" {
		q = q.Where("category = ?", category)
	}
	if err := q.Find(&goods).Error; err != nil {
		return nil, err
	}
	return goods, nil
}

func (r *GormRepo) GetGoods(ctx context.Context, id uint) (*models.Goods, error) {
	var goods models.Goods
	if err := r.DB.WithContext(ctx).First(&goods, id).Error; err != nil {
		return nil, err
	}
	return &goods, nil
}

func (r *GormRepo) GoodsExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&models.Goods{}).
		Where("goods_id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetGoodsByIDs loads every goods row among ids in a single query.
func (r *GormRepo) GetGoodsByIDs(ctx context.Context, ids []uint) ([]models.Goods, error) {
	goods := make([]models.Goods, 0, len(ids))
	if len(ids) == 0 {
		return goods, nil
	}
	if err := r.DB.WithContext(ctx).Where("goods_id IN ?", ids).Find(&goods).Error; err != nil {
		return nil, err
	}
	return goods, nil
}
