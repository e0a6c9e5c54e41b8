package repo

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound         = gorm.ErrRecordNotFound
	ErrUserAlreadyExist = errors.New("user already exist")
)

type GormRepo struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *GormRepo {
	return &GormRepo{DB: db}
}
