package transport

import "github.com/Skotchmaster/post_shop/internal/models"

type SignupRequest struct {
	Nickname        string `json:"nickname"        validate:"required"`
	Password        string `json:"password"        validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

type LoginRequest struct {
	Nickname string `json:"nickname" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

// CartQuantityRequest uses a pointer so an absent quantity is told apart from zero.
type CartQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required,gt=0"`
}

type UserResponse struct {
	User *models.User `json:"user"`
}

type PostsResponse struct {
	Posts []models.Post `json:"posts"`
}

type PostResponse struct {
	Posts *models.Post `json:"posts"`
}

type GoodsListResponse struct {
	Goods []models.Goods `json:"goods"`
}

type GoodsResponse struct {
	Goods *models.Goods `json:"goods"`
}

// CartLine pairs a cart row with its goods; Goods is nil when the row points at missing goods.
type CartLine struct {
	Quantity int           `json:"quantity"`
	Goods    *models.Goods `json:"goods"`
}

type CartResponse struct {
	Cart []CartLine `json:"cart"`
}
