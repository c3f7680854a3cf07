package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sekolahku_backend/internals/features/users/users/model"
)

// UserRepository adalah user directory: resolve user by email / id.
// Absen = (nil, nil), bukan error — caller yang memutuskan status HTTP.
type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.UserModel, error) {
	var u model.UserModel
	err := r.DB.WithContext(ctx).
		Where("lower(user_email) = lower(?)", strings.TrimSpace(email)).
		First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.UserModel, error) {
	var u model.UserModel
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", id).
		First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
