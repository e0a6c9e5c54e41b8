package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Skotchmaster/post_shop/internal/apperr"
	"github.com/Skotchmaster/post_shop/internal/models"
	"github.com/Skotchmaster/post_shop/internal/repo"
)

const MsgGoodsNotFound = "Goods does not exist."

type GoodsService struct {
	Repo *repo.GormRepo
}

func (s *GoodsService) Seed(ctx context.Context) ([]models.Goods, error) {
	goods := []models.Goods{
		{Name: "Cola", Category: "drink", Price: 1500, ThumbnailURL: "/images/cola.png"},
		{Name: "Cider", Category: "drink", Price: 1400, ThumbnailURL: "/images/cider.png"},
		{Name: "Potato chips", Category: "snack", Price: 2000, ThumbnailURL: "/images/chips.png"},
		{Name: "Chocolate bar", Category: "snack", Price: 1200, ThumbnailURL: "/images/chocolate.png"},
	}
	if err := s.Repo.CreateGoods(ctx, goods); err != nil {
		return nil, fmt.Errorf("seed goods: %w", err)
	}
	return goods, nil
}

func (s *GoodsService) List(ctx context.Context, category string) ([]models.Goods, error) {
	goods, err := s.Repo.ListGoods(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("list goods: %w", err)
	}
	return goods, nil
}

func (s *GoodsService) Get(ctx context.Context, id uint) (*models.Goods, error) {
	goods, err := s.Repo.GetGoods(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperr.NotFound(MsgGoodsNotFound)
		}
		return nil, fmt.Errorf("get goods: %w", err)
	}
	return goods, nil
}
