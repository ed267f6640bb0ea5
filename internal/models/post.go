package models

import (
	"time"

	"gorm.io/gorm"
)

// MaxPostDescLength is the maximum length of a post body.
const MaxPostDescLength = 500

// Post represents a post authored by a user. Likes is the set of user IDs
// that currently like the post; membership toggles are idempotent per user.
type Post struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;index:idx_posts_user_created" json:"userId"`
	Desc      string         `gorm:"size:500" json:"desc"`
	Img       string         `json:"img"`
	Likes     IDSet          `gorm:"serializer:json;type:jsonb;not null;default:'[]'" json:"likes"`
	CreatedAt time.Time      `gorm:"index:idx_posts_user_created" json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeSave normalizes a nil like-set so it serializes as [] rather than null.
func (p *Post) BeforeSave(_ *gorm.DB) error {
	if p.Likes == nil {
		p.Likes = IDSet{}
	}
	return nil
}
