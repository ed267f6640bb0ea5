package service

import (
	"context"
	"strings"

	"github.com/SumitDutta007/Social-Media-Backend/internal/cache"
	"github.com/SumitDutta007/Social-Media-Backend/internal/models"
	"github.com/SumitDutta007/Social-Media-Backend/internal/repository"
	"github.com/SumitDutta007/Social-Media-Backend/internal/validation"
)

// Actor identifies the authenticated caller of a mutating operation.
type Actor struct {
	ID      uint
	IsAdmin bool
}

// PostService handles post CRUD, ownership checks and like toggling.
type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

// NewPostService returns a new PostService.
func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository) *PostService {
	return &PostService{postRepo: postRepo, userRepo: userRepo}
}

// CreatePostInput carries the post fields accepted from the client.
type CreatePostInput struct {
	Desc string `json:"desc"`
	Img  string `json:"img"`
}

func (s *PostService) CreatePost(ctx context.Context, actorID uint, in CreatePostInput) (*models.Post, error) {
	if err := validation.ValidatePostDesc(in.Desc); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if strings.TrimSpace(in.Desc) == "" && in.Img == "" {
		return nil, models.NewValidationError("Post needs a body or an image")
	}

	author, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		UserID: actorID,
		Desc:   in.Desc,
		Img:    in.Img,
		Likes:  models.IDSet{},
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	cache.InvalidatePostPages(ctx, author.Username)
	return post, nil
}

// UpdatePostInput carries the mutable post fields; nil leaves a field unchanged.
type UpdatePostInput struct {
	Desc *string `json:"desc"`
	Img  *string `json:"img"`
}

func (s *PostService) UpdatePost(ctx context.Context, actor Actor, postID uint, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.UserID != actor.ID && !actor.IsAdmin {
		return nil, models.NewForbiddenError("You can only update your post")
	}

	fields := map[string]interface{}{}
	if in.Desc != nil {
		if err := validation.ValidatePostDesc(*in.Desc); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		fields["desc"] = *in.Desc
	}
	if in.Img != nil {
		fields["img"] = *in.Img
	}
	if len(fields) == 0 {
		return nil, models.NewValidationError("No updatable fields provided")
	}

	if err := s.postRepo.UpdateFields(ctx, postID, fields); err != nil {
		return nil, err
	}

	s.invalidateForAuthor(ctx, post.UserID)
	return s.postRepo.GetByID(ctx, postID)
}

func (s *PostService) DeletePost(ctx context.Context, actor Actor, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != actor.ID && !actor.IsAdmin {
		return models.NewForbiddenError("You can only delete your post")
	}

	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return err
	}

	s.invalidateForAuthor(ctx, post.UserID)
	return nil
}

// ToggleLike flips the caller's like on the post and reports the new state.
// Only the post's own cached page can go stale, so only that key is cleared.
func (s *PostService) ToggleLike(ctx context.Context, actorID, postID uint) (bool, error) {
	liked, err := s.postRepo.ToggleLike(ctx, postID, actorID)
	if err != nil {
		return false, err
	}

	cache.InvalidateKey(ctx, cache.PostPageKey(postID))
	return liked, nil
}

// invalidateForAuthor clears the post listings plus the author's profile feed.
// The author record may already be gone (admin deleting a dangling post); the
// generic patterns still cover the shared pages in that case.
func (s *PostService) invalidateForAuthor(ctx context.Context, authorID uint) {
	username := ""
	if author, err := s.userRepo.GetByID(ctx, authorID); err == nil {
		username = author.Username
	}
	cache.InvalidatePostPages(ctx, username)
}
