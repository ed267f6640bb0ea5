// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents an account in the social media application.
// Followers and Followings are adjacency sets of user IDs; an edge
// "A follows B" is mirrored as A.Followings∋B and B.Followers∋A.
type User struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Username       string         `gorm:"unique;not null" json:"username"`
	Email          string         `gorm:"unique;not null" json:"email"`
	Password       string         `gorm:"not null" json:"-"`
	ProfilePicture string         `json:"profilePicture"`
	CoverPicture   string         `json:"coverPicture"`
	Desc           string         `json:"desc"`
	IsAdmin        bool           `gorm:"default:false" json:"isAdmin"`
	Followers      IDSet          `gorm:"serializer:json;type:jsonb;not null;default:'[]'" json:"followers"`
	Followings     IDSet          `gorm:"serializer:json;type:jsonb;not null;default:'[]'" json:"followings"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeSave normalizes nil adjacency sets so they serialize as [] rather than null.
func (u *User) BeforeSave(_ *gorm.DB) error {
	if u.Followers == nil {
		u.Followers = IDSet{}
	}
	if u.Followings == nil {
		u.Followings = IDSet{}
	}
	return nil
}

// FriendSummary is the projection returned by the friends listing.
type FriendSummary struct {
	ID             uint   `json:"id"`
	Username       string `json:"username"`
	ProfilePicture string `json:"profilePicture"`
}
