package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Skotchmaster/post_shop/internal/apperr"
	"github.com/Skotchmaster/post_shop/internal/events"
	"github.com/Skotchmaster/post_shop/internal/models"
	"github.com/Skotchmaster/post_shop/internal/repo"
	"github.com/Skotchmaster/post_shop/internal/transport"
)

const MsgQuantityInvalid = "quantity must be a positive integer"

type CartService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
}

func (s *CartService) GetCart(ctx context.Context, userID uint) ([]transport.CartLine, error) {
	items, err := s.Repo.GetCart(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}

	ids := make([]uint, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.GoodsID)
	}
	goods, err := s.Repo.GetGoodsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get cart goods: %w", err)
	}

	byID := make(map[uint]*models.Goods, len(goods))
	for i := range goods {
		byID[goods[i].GoodsID] = &goods[i]
	}

	lines := make([]transport.CartLine, 0, len(items))
	for _, it := range items {
		lines = append(lines, transport.CartLine{Quantity: it.Quantity, Goods: byID[it.GoodsID]})
	}
	return lines, nil
}

// AddToCart sets the quantity of goodsID in the cart, creating the row when absent.
func (s *CartService) AddToCart(ctx context.Context, userID, goodsID uint, quantity int) error {
	if quantity <= 0 {
		return apperr.Validation(MsgQuantityInvalid, nil)
	}

	exists, err := s.Repo.GoodsExists(ctx, goodsID)
	if err != nil {
		return fmt.Errorf("check goods: %w", err)
	}
	if !exists {
		return apperr.Business(MsgGoodsNotFound)
	}

	item := models.Cart{UserID: userID, GoodsID: goodsID, Quantity: quantity}
	if err := s.Repo.UpsertCart(ctx, &item); err != nil {
		return fmt.Errorf("upsert cart: %w", err)
	}

	publish(ctx, s.Events, events.TopicCart, strconv.FormatUint(uint64(userID), 10),
		events.NewEvent("cart_item_upserted", map[string]any{"userId": userID, "goodsId": goodsID, "quantity": quantity}))
	return nil
}

// DeleteFromCart is a no-op for goods that are not in the cart.
func (s *CartService) DeleteFromCart(ctx context.Context, userID, goodsID uint) error {
	deleted, err := s.Repo.DeleteFromCart(ctx, userID, goodsID)
	if err != nil {
		return fmt.Errorf("delete from cart: %w", err)
	}

	if deleted {
		publish(ctx, s.Events, events.TopicCart, strconv.FormatUint(uint64(userID), 10),
			events.NewEvent("cart_item_removed", map[string]any{"userId": userID, "goodsId": goodsID}))
	}
	return nil
}
