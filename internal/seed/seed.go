// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/SumitDutta007/Social-Media-Backend/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configures a seeding run.
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// Seeder populates the database with generated users, posts and a follow
// graph. All generated users share the password "password123".
type Seeder struct {
	db *gorm.DB
	r  *rand.Rand
}

// NewSeeder returns a Seeder bound to the given database.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	//nolint:gosec // weak randomness is fine for demo data
	return &Seeder{db: db, r: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// Run executes a full seeding pass.
func (s *Seeder) Run(opts Options) error {
	log.Printf("Seeding %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			log.Println("Warning: could not clear existing data, continuing anyway")
		}
	}

	users, err := s.SeedUsers(opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("created %d users", len(users))

	if err := s.SeedFollowGraph(users); err != nil {
		return fmt.Errorf("failed to build follow graph: %w", err)
	}

	posts, err := s.SeedPosts(users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("created %d posts", len(posts))

	return nil
}

// ClearAll removes all seeded rows and resets identities.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	return s.db.Exec(`TRUNCATE TABLE posts, users RESTART IDENTITY CASCADE;`).Error
}

// seedPasswordHash is computed once; bcrypt per-user dominates seeding time
// otherwise.
var seedPasswordHash []byte

func passwordHash() string {
	if seedPasswordHash == nil {
		seedPasswordHash, _ = bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	}
	return string(seedPasswordHash)
}

// SeedUsers creates n users plus one admin account ("admin").
func (s *Seeder) SeedUsers(n int) ([]models.User, error) {
	users := make([]models.User, 0, n+1)

	admin := models.User{
		Username:       "admin",
		Email:          "admin@example.com",
		Password:       passwordHash(),
		Desc:           "Site administrator",
		ProfilePicture: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		IsAdmin:        true,
		Followers:      models.IDSet{},
		Followings:     models.IDSet{},
	}
	if err := s.db.Create(&admin).Error; err != nil {
		return nil, err
	}
	users = append(users, admin)

	for i := 0; i < n; i++ {
		user := models.User{
			Username:       fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(10, 999)),
			Email:          gofakeit.Email(),
			Password:       passwordHash(),
			Desc:           gofakeit.Sentence(8),
			ProfilePicture: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
			CoverPicture:   fmt.Sprintf("https://picsum.photos/seed/%s/1200/400", gofakeit.UUID()),
			Followers:      models.IDSet{},
			Followings:     models.IDSet{},
		}
		if err := s.db.Create(&user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// SeedFollowGraph gives every user a handful of random followings and keeps
// the mirrored follower sets consistent.
func (s *Seeder) SeedFollowGraph(users []models.User) error {
	if len(users) < 2 {
		return nil
	}

	for i := range users {
		count := s.r.Intn(6) + 1
		for j := 0; j < count; j++ {
			target := &users[s.r.Intn(len(users))]
			if target.ID == users[i].ID || users[i].Followings.Contains(target.ID) {
				continue
			}
			users[i].Followings = users[i].Followings.Add(target.ID)
			target.Followers = target.Followers.Add(users[i].ID)
		}
	}

	for i := range users {
		err := s.db.Model(&models.User{}).Where("id = ?", users[i].ID).
			Updates(map[string]interface{}{
				"followings": users[i].Followings,
				"followers":  users[i].Followers,
			}).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// SeedPosts creates n posts spread across users with realistic timestamps
// and random like sets.
func (s *Seeder) SeedPosts(users []models.User, n int) ([]models.Post, error) {
	posts := make([]models.Post, 0, n)

	for i := 0; i < n; i++ {
		author := users[s.r.Intn(len(users))]
		post := models.Post{
			UserID: author.ID,
			Desc:   gofakeit.Sentence(s.r.Intn(12) + 3),
			Likes:  models.IDSet{},
		}
		if s.r.Intn(3) == 0 {
			post.Img = fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID())
		}

		likeCount := s.r.Intn(len(users))
		for j := 0; j < likeCount; j++ {
			post.Likes = post.Likes.Add(users[s.r.Intn(len(users))].ID)
		}

		daysBack := s.r.Intn(90)
		post.CreatedAt = time.Now().
			Add(-time.Duration(daysBack)*24*time.Hour).
			Add(-time.Duration(s.r.Intn(24)) * time.Hour)

		if err := s.db.Create(&post).Error; err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}
