package service

import (
	"context"

	"github.com/SumitDutta007/Social-Media-Backend/internal/models"
	"github.com/SumitDutta007/Social-Media-Backend/internal/repository"
)

// TimelineService composes feeds. Ordering is always newest-first with the
// post ID as a stable tie-breaker, delegated to the repository query.
type TimelineService struct {
	userRepo repository.UserRepository
	postRepo repository.PostRepository
}

// NewTimelineService returns a new TimelineService.
func NewTimelineService(userRepo repository.UserRepository, postRepo repository.PostRepository) *TimelineService {
	return &TimelineService{userRepo: userRepo, postRepo: postRepo}
}

// ComposeTimeline returns the viewer's feed: their own posts plus posts from
// everyone they follow. A user who follows no one gets the public feed (all
// posts) instead of an empty page.
func (s *TimelineService) ComposeTimeline(ctx context.Context, userID uint) ([]models.Post, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(user.Followings) == 0 {
		return s.postRepo.ListAll(ctx)
	}

	authors := append([]uint(nil), user.Followings...)
	authors = append(authors, userID)
	return s.postRepo.GetByAuthors(ctx, authors)
}

// ComposeProfileFeed returns all posts authored by the named user.
func (s *TimelineService) ComposeProfileFeed(ctx context.Context, username string) ([]models.Post, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", username)
	}
	return s.postRepo.GetByUserID(ctx, user.ID)
}
