package repository

import (
	"context"
	"errors"
	"time"

	"github.com/SumitDutta007/Social-Media-Backend/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, limit, offset int) ([]models.User, error)
	SearchByUsername(ctx context.Context, query string, limit, offset int) ([]models.User, error)
	Friends(ctx context.Context, ids models.IDSet) ([]models.FriendSummary, error)
}

type userRepository struct {
	db      *gorm.DB
	timeout time.Duration
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB, timeout time.Duration) UserRepository {
	return &userRepository{db: db, timeout: timeout}
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	ctx, cancel := boundCtx(ctx, r.timeout)
	defer cancel()

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", id)
		}
		return nil, wrapStoreError(err)
	}
	return &user, nil
}

// GetByUsername returns (nil, nil) when no such user exists so callers can
// distinguish absence from store failure.
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	ctx, cancel := boundCtx(ctx, r.timeout)
	defer cancel()

	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, wrapStoreError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := boundCtx(ctx, r.timeout)
	defer cancel()

	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, wrapStoreError(err)
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	ctx, cancel := boundCtx(ctx, r.timeout)
	defer cancel()

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Username or email already taken")
		}
		return wrapStoreError(err)
	}
	return nil
}

// UpdateFields applies an allow-listed partial update. Callers are responsible
// for keeping protected columns (id, is_admin, password hash) out of fields
// unless explicitly intended.
func (r *userRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}

	ctx, cancel := boundCtx(ctx, r.timeout)
	defer cancel()

	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		if isUniqueConstraintError(res.Error) {
			return models.NewConflictError("Username or email already taken")
		}
		return wrapStoreError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("User", id)
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id uint) error {
	ctx, cancel := boundCtx(ctx, r.timeout)
	defer cancel()

	res := r.db.WithContext(ctx).Delete(&models.User{}, id)
	if res.Error != nil {
		return wrapStoreError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("User", id)
	}
	return nil
}

func (r *userRepository) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	ctx, cancel := boundCtx(ctx, r.timeout)
	defer cancel()

	var users []models.User
	if err := r.db.WithContext(ctx).Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		return nil, wrapStoreError(err)
	}
	return users, nil
}

func (r *userRepository) SearchByUsername(ctx context.Context, query string, limit, offset int) ([]models.User, error) {
	ctx, cancel := boundCtx(ctx, r.timeout)
	defer cancel()

	var users []models.User
	if err := r.db.WithContext(ctx).
		Where("username ILIKE ?", "%"+query+"%").
		Order("username ASC").
		Limit(limit).Offset(offset).
		Find(&users).Error; err != nil {
		return nil, wrapStoreError(err)
	}
	return users, nil
}

func (r *userRepository) Friends(ctx context.Context, ids models.IDSet) ([]models.FriendSummary, error) {
	if len(ids) == 0 {
		return []models.FriendSummary{}, nil
	}

	ctx, cancel := boundCtx(ctx, r.timeout)
	defer cancel()

	var friends []models.FriendSummary
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Select("id", "username", "profile_picture").
		Where("id IN ?", []uint(ids)).
		Find(&friends).Error; err != nil {
		return nil, wrapStoreError(err)
	}
	return friends, nil
}
