package repo

import (
	"context"

	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/post_shop/internal/models"
)

func (r *GormRepo) GetCart(ctx context.Context, userID uint) ([]models.Cart, error) {
	items := make([]models.Cart, 0)
	if err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("goods_id ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// UpsertCart creates the row or overwrites its quantity in one statement.
func (r *GormRepo) UpsertCart(ctx context.Context, item *models.Cart) error {
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "goods_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"quantity"}),
	}).Create(item).Error
}

func (r *GormRepo) DeleteFromCart(ctx context.Context, userID, goodsID uint) (bool, error) {
	res := r.DB.WithContext(ctx).
		Where("user_id = ? AND goods_id = ?", userID, goodsID).
		Delete(&models.Cart{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
