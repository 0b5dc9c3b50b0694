package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/nota-perusahaan/internal/domain/entity"
	domainRepo "github.com/sangkips/nota-perusahaan/internal/domain/repository"
	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domainRepo.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	db, err := conn(ctx, r.db)
	if err != nil {
		return err
	}
	return db.Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.first(ctx, "username = ?", username)
}

func (r *userRepository) first(ctx context.Context, cond string, arg interface{}) (*entity.User, error) {
	db, err := conn(ctx, r.db)
	if err != nil {
		return nil, err
	}
	var user entity.User
	err = db.First(&user, cond, arg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &user, err
}
