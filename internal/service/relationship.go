// Package service contains the domain logic sitting between the HTTP
// handlers and the repositories.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SumitDutta007/Social-Media-Backend/internal/cache"
	"github.com/SumitDutta007/Social-Media-Backend/internal/middleware"
	"github.com/SumitDutta007/Social-Media-Backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RelationshipService maintains the mirrored follow edge across two user
// records. Both halves of an edge are written in a single transaction with
// both rows locked, so a follow either fully applies or not at all.
type RelationshipService struct {
	db      *gorm.DB
	timeout time.Duration
}

// NewRelationshipService returns a new RelationshipService.
func NewRelationshipService(db *gorm.DB, timeout time.Duration) *RelationshipService {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &RelationshipService{db: db, timeout: timeout}
}

// Follow creates the edge actor→target.
func (s *RelationshipService) Follow(ctx context.Context, actorID, targetID uint) error {
	if actorID == targetID {
		return models.NewValidationError("You can't follow yourself")
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		actor, target, err := lockPair(tx, actorID, targetID)
		if err != nil {
			return err
		}

		actorHas := actor.Followings.Contains(targetID)
		targetHas := target.Followers.Contains(actorID)

		if actorHas && targetHas {
			return models.NewConflictError("You already follow this user")
		}
		if actorHas != targetHas {
			s.logHalfEdge(ctx, actorID, targetID, actorHas)
		}

		updates := []edgeUpdate{
			{id: actorID, column: "followings", value: actor.Followings.Add(targetID)},
			{id: targetID, column: "followers", value: target.Followers.Add(actorID)},
		}
		return applyEdgeUpdates(tx, updates)
	})
	if err != nil {
		return asAppError(err)
	}

	s.invalidate(ctx)
	return nil
}

// Unfollow removes the edge actor→target.
func (s *RelationshipService) Unfollow(ctx context.Context, actorID, targetID uint) error {
	if actorID == targetID {
		return models.NewValidationError("You can't unfollow yourself")
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		actor, target, err := lockPair(tx, actorID, targetID)
		if err != nil {
			return err
		}

		actorHas := actor.Followings.Contains(targetID)
		targetHas := target.Followers.Contains(actorID)

		if !actorHas && !targetHas {
			return models.NewConflictError("You don't follow this user")
		}
		if actorHas != targetHas {
			s.logHalfEdge(ctx, actorID, targetID, actorHas)
		}

		updates := []edgeUpdate{
			{id: actorID, column: "followings", value: actor.Followings.Remove(targetID)},
			{id: targetID, column: "followers", value: target.Followers.Remove(actorID)},
		}
		return applyEdgeUpdates(tx, updates)
	})
	if err != nil {
		return asAppError(err)
	}

	s.invalidate(ctx)
	return nil
}

// lockPair loads both users FOR UPDATE in ascending ID order so concurrent
// follow/unfollow on the same pair cannot deadlock.
func lockPair(tx *gorm.DB, actorID, targetID uint) (actor, target *models.User, err error) {
	firstID, secondID := actorID, targetID
	if secondID < firstID {
		firstID, secondID = secondID, firstID
	}

	users := make(map[uint]*models.User, 2)
	for _, id := range []uint{firstID, secondID} {
		var u models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&u, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil, models.NewNotFoundError("User", id)
			}
			return nil, nil, models.NewInternalError(err)
		}
		users[id] = &u
	}
	return users[actorID], users[targetID], nil
}

type edgeUpdate struct {
	id     uint
	column string
	value  models.IDSet
}

func applyEdgeUpdates(tx *gorm.DB, updates []edgeUpdate) error {
	for _, u := range updates {
		if err := tx.Model(&models.User{}).Where("id = ?", u.id).
			Update(u.column, u.value).Error; err != nil {
			return models.NewInternalError(err)
		}
	}
	return nil
}

// logHalfEdge records a detected one-sided edge. The transaction completes
// the edge (or removes the remnant), so this is a repair, but it still
// indicates a past partial update and must not pass silently.
func (s *RelationshipService) logHalfEdge(ctx context.Context, actorID, targetID uint, actorSidePresent bool) {
	middleware.FollowEdgeRepairs.Inc()
	middleware.Logger.WarnContext(ctx, "repairing one-sided follow edge",
		slog.Any("actor_id", actorID),
		slog.Any("target_id", targetID),
		slog.Bool("actor_side_present", actorSidePresent),
	)
}

// invalidate clears pages staled by a follow-graph change: timelines draw on
// followings, user lookups embed both adjacency sets.
func (s *RelationshipService) invalidate(ctx context.Context) {
	cache.InvalidateTimelines(ctx)
	cache.InvalidateUserPages(ctx)
}

func asAppError(err error) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return models.NewTimeoutError(err)
	}
	return models.NewInternalError(err)
}
