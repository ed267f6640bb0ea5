package service

import (
	"context"

	"github.com/SumitDutta007/Social-Media-Backend/internal/cache"
	"github.com/SumitDutta007/Social-Media-Backend/internal/models"
	"github.com/SumitDutta007/Social-Media-Backend/internal/repository"
	"github.com/SumitDutta007/Social-Media-Backend/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// UserService handles profile reads and allow-listed profile mutations.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// UpdateProfileInput carries the mutable profile fields. Nil means "leave
// unchanged". Username, role and id are deliberately not updatable here.
type UpdateProfileInput struct {
	Email          *string `json:"email"`
	Password       *string `json:"password"`
	ProfilePicture *string `json:"profilePicture"`
	CoverPicture   *string `json:"coverPicture"`
	Desc           *string `json:"desc"`
}

// UpdateProfile applies the allow-listed fields to the user record. Unknown
// request fields never reach this point; protected columns cannot be touched.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, in UpdateProfileInput) (*models.User, error) {
	fields := map[string]interface{}{}

	if in.Email != nil {
		if err := validation.ValidateEmail(*in.Email); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		fields["email"] = *in.Email
	}
	if in.Password != nil {
		if err := validation.ValidatePassword(*in.Password); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		fields["password"] = string(hashed)
	}
	if in.ProfilePicture != nil {
		fields["profile_picture"] = *in.ProfilePicture
	}
	if in.CoverPicture != nil {
		fields["cover_picture"] = *in.CoverPicture
	}
	if in.Desc != nil {
		fields["desc"] = *in.Desc
	}

	if len(fields) == 0 {
		return nil, models.NewValidationError("No updatable fields provided")
	}

	if err := s.userRepo.UpdateFields(ctx, userID, fields); err != nil {
		return nil, err
	}

	cache.InvalidateUserPages(ctx)

	return s.userRepo.GetByID(ctx, userID)
}

// DeleteAccount removes the user record. Posts are left in place; feed
// queries tolerate dangling authorship.
func (s *UserService) DeleteAccount(ctx context.Context, userID uint) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return err
	}

	cache.InvalidateUserPages(ctx)
	cache.InvalidatePattern(ctx, cache.ProfilePattern(user.Username))
	cache.InvalidateTimelines(ctx)
	return nil
}

// Friends returns summary projections of everyone the user follows.
func (s *UserService) Friends(ctx context.Context, userID uint) ([]models.FriendSummary, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.userRepo.Friends(ctx, user.Followings)
}
