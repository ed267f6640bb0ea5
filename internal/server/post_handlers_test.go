package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/SumitDutta007/Social-Media-Backend/internal/models"
	"github.com/SumitDutta007/Social-Media-Backend/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func postServer(postRepo *MockPostRepository, userRepo *MockUserRepository) *Server {
	return &Server{
		postRepo:    postRepo,
		userRepo:    userRepo,
		postService: service.NewPostService(postRepo, userRepo),
	}
}

func TestCreatePostHandler(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]string
		mockSetup      func(*MockPostRepository, *MockUserRepository)
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]string{"desc": "hello world"},
			mockSetup: func(postRepo *MockPostRepository, userRepo *MockUserRepository) {
				userRepo.On("GetByID", mock.Anything, uint(1)).
					Return(&models.User{ID: 1, Username: "alice"}, nil)
				postRepo.On("Create", mock.Anything, mock.Anything).Return(nil).
					Run(func(args mock.Arguments) {
						args.Get(1).(*models.Post).ID = 10
					})
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Empty Post",
			body:           map[string]string{"desc": "  "},
			mockSetup:      func(*MockPostRepository, *MockUserRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Too Long",
			body:           map[string]string{"desc": strings.Repeat("a", 501)},
			mockSetup:      func(*MockPostRepository, *MockUserRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			postRepo := new(MockPostRepository)
			userRepo := new(MockUserRepository)
			tt.mockSetup(postRepo, userRepo)

			s := postServer(postRepo, userRepo)
			app := fiber.New()
			app.Post("/posts", asUser(1, false), s.CreatePost)

			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/posts", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestGetPostHandler(t *testing.T) {
	postRepo := new(MockPostRepository)
	postRepo.On("GetByID", mock.Anything, uint(5)).
		Return(&models.Post{ID: 5, UserID: 1, Desc: "hello"}, nil)
	postRepo.On("GetByID", mock.Anything, uint(99)).
		Return(nil, models.NewNotFoundError("Post", 99))

	s := &Server{postRepo: postRepo}
	app := fiber.New()
	app.Get("/posts/:id", s.GetPost)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/posts/5", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var post models.Post
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&post))
	assert.Equal(t, "hello", post.Desc)
	_ = resp.Body.Close()

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/posts/99", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestUpdatePostHandler_Ownership(t *testing.T) {
	tests := []struct {
		name           string
		callerID       uint
		callerAdmin    bool
		expectedStatus int
	}{
		{"Owner", 1, false, http.StatusOK},
		{"Stranger", 2, false, http.StatusForbidden},
		{"Admin", 9, true, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			postRepo := new(MockPostRepository)
			userRepo := new(MockUserRepository)

			postRepo.On("GetByID", mock.Anything, uint(5)).
				Return(&models.Post{ID: 5, UserID: 1, Desc: "old"}, nil)
			postRepo.On("UpdateFields", mock.Anything, uint(5), mock.Anything).Return(nil)
			userRepo.On("GetByID", mock.Anything, uint(1)).
				Return(&models.User{ID: 1, Username: "alice"}, nil)

			s := postServer(postRepo, userRepo)
			app := fiber.New()
			app.Put("/posts/:id", asUser(tt.callerID, tt.callerAdmin), s.UpdatePost)

			body, _ := json.Marshal(map[string]string{"desc": "new"})
			req := httptest.NewRequest(http.MethodPut, "/posts/5", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestDeletePostHandler(t *testing.T) {
	postRepo := new(MockPostRepository)
	userRepo := new(MockUserRepository)

	postRepo.On("GetByID", mock.Anything, uint(5)).
		Return(&models.Post{ID: 5, UserID: 1}, nil)
	postRepo.On("Delete", mock.Anything, uint(5)).Return(nil)
	userRepo.On("GetByID", mock.Anything, uint(1)).
		Return(&models.User{ID: 1, Username: "alice"}, nil)

	s := postServer(postRepo, userRepo)
	app := fiber.New()
	app.Delete("/posts/:id", asUser(1, false), s.DeletePost)

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/posts/5", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	postRepo.AssertExpectations(t)
}

func TestLikePostHandler_Toggle(t *testing.T) {
	postRepo := new(MockPostRepository)
	userRepo := new(MockUserRepository)

	postRepo.On("ToggleLike", mock.Anything, uint(5), uint(1)).Return(true, nil).Once()
	postRepo.On("ToggleLike", mock.Anything, uint(5), uint(1)).Return(false, nil).Once()

	s := postServer(postRepo, userRepo)
	app := fiber.New()
	app.Put("/posts/:id/like", asUser(1, false), s.LikePost)

	resp, err := app.Test(httptest.NewRequest(http.MethodPut, "/posts/5/like", nil))
	require.NoError(t, err)
	var payload struct {
		Message string `json:"message"`
		Liked   bool   `json:"liked"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.True(t, payload.Liked)
	assert.Equal(t, "Post has been liked", payload.Message)
	_ = resp.Body.Close()

	resp, err = app.Test(httptest.NewRequest(http.MethodPut, "/posts/5/like", nil))
	require.NoError(t, err)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.False(t, payload.Liked)
	assert.Equal(t, "Post has been disliked", payload.Message)
	_ = resp.Body.Close()
}

func TestGetTimelineHandler(t *testing.T) {
	timeline := new(MockTimelineComposer)
	timeline.On("ComposeTimeline", mock.Anything, uint(1)).
		Return([]models.Post{{ID: 9, UserID: 2}, {ID: 5, UserID: 1}}, nil)

	s := &Server{timeline: timeline}
	app := fiber.New()
	app.Get("/posts/timeline/all/:userId", s.GetTimeline)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/posts/timeline/all/1", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var posts []models.Post
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&posts))
	require.Len(t, posts, 2)
	assert.Equal(t, uint(9), posts[0].ID)
}

func TestGetProfileFeedHandler(t *testing.T) {
	timeline := new(MockTimelineComposer)
	timeline.On("ComposeProfileFeed", mock.Anything, "alice").
		Return([]models.Post{{ID: 3, UserID: 1}}, nil)
	timeline.On("ComposeProfileFeed", mock.Anything, "ghost").
		Return(nil, models.NewNotFoundError("User", "ghost"))

	s := &Server{timeline: timeline}
	app := fiber.New()
	app.Get("/posts/profile/:username", s.GetProfileFeed)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/posts/profile/alice", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/posts/profile/ghost", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestSearchPostsHandler(t *testing.T) {
	timeline := new(MockTimelineComposer)
	timeline.On("ComposeProfileFeed", mock.Anything, "alice").
		Return([]models.Post{{ID: 3, UserID: 1}}, nil)

	s := &Server{timeline: timeline}
	app := fiber.New()
	app.Get("/posts/search", s.SearchPosts)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/posts/search?username=alice", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/posts/search", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	_ = resp.Body.Close()
}
