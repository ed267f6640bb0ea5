package repository

import (
	"context"
	"errors"
	"time"

	"github.com/SumitDutta007/Social-Media-Backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepository defines persistence operations for posts.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	ListAll(ctx context.Context) ([]models.Post, error)
	GetByAuthors(ctx context.Context, authorIDs []uint) ([]models.Post, error)
	GetByUserID(ctx context.Context, userID uint) ([]models.Post, error)
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
	ToggleLike(ctx context.Context, postID, userID uint) (liked bool, err error)
}

type postRepository struct {
	db      *gorm.DB
	timeout time.Duration
}

// NewPostRepository returns a new PostRepository implementation.
func NewPostRepository(db *gorm.DB, timeout time.Duration) PostRepository {
	return &postRepository{db: db, timeout: timeout}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	ctx, cancel := boundCtx(ctx, r.timeout)
	defer cancel()

	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return wrapStoreError(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	ctx, cancel := boundCtx(ctx, r.timeout)
	defer cancel()

	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, wrapStoreError(err)
	}
	return &post, nil
}

// Feed ordering: newest first, ID as the stable tie-breaker.
const feedOrder = "created_at DESC, id DESC"

func (r *postRepository) ListAll(ctx context.Context) ([]models.Post, error) {
	ctx, cancel := boundCtx(ctx, r.timeout)
	defer cancel()

	var posts []models.Post
	if err := r.db.WithContext(ctx).Order(feedOrder).Find(&posts).Error; err != nil {
		return nil, wrapStoreError(err)
	}
	return posts, nil
}

func (r *postRepository) GetByAuthors(ctx context.Context, authorIDs []uint) ([]models.Post, error) {
	if len(authorIDs) == 0 {
		return []models.Post{}, nil
	}

	ctx, cancel := boundCtx(ctx, r.timeout)
	defer cancel()

	var posts []models.Post
	if err := r.db.WithContext(ctx).
		Where("user_id IN ?", authorIDs).
		Order(feedOrder).
		Find(&posts).Error; err != nil {
		return nil, wrapStoreError(err)
	}
	return posts, nil
}

func (r *postRepository) GetByUserID(ctx context.Context, userID uint) ([]models.Post, error) {
	ctx, cancel := boundCtx(ctx, r.timeout)
	defer cancel()

	var posts []models.Post
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order(feedOrder).
		Find(&posts).Error; err != nil {
		return nil, wrapStoreError(err)
	}
	return posts, nil
}

func (r *postRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}

	ctx, cancel := boundCtx(ctx, r.timeout)
	defer cancel()

	res := r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return wrapStoreError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Post", id)
	}
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	ctx, cancel := boundCtx(ctx, r.timeout)
	defer cancel()

	res := r.db.WithContext(ctx).Delete(&models.Post{}, id)
	if res.Error != nil {
		return wrapStoreError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Post", id)
	}
	return nil
}

// ToggleLike flips userID's membership in the post's like-set. The row is
// locked for the duration of the transaction so concurrent toggles on the
// same post serialize instead of clobbering each other.
func (r *postRepository) ToggleLike(ctx context.Context, postID, userID uint) (bool, error) {
	ctx, cancel := boundCtx(ctx, r.timeout)
	defer cancel()

	var liked bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&post, postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post", postID)
			}
			return wrapStoreError(err)
		}

		if post.Likes.Contains(userID) {
			post.Likes = post.Likes.Remove(userID)
			liked = false
		} else {
			post.Likes = post.Likes.Add(userID)
			liked = true
		}

		if err := tx.Model(&models.Post{}).Where("id = ?", postID).
			Update("likes", post.Likes).Error; err != nil {
			return wrapStoreError(err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return liked, nil
}
