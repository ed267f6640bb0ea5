package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SumitDutta007/Social-Media-Backend/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func multipartBody(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestUploadFile(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		media := new(MockStorage)
		media.On("Save", mock.Anything, "photo.png", mock.Anything).
			Return("/images/posts/abc.png", nil)

		s := &Server{media: media}
		app := fiber.New()
		app.Post("/upload", asUser(1, false), s.UploadFile)

		body, contentType := multipartBody(t, "file", "photo.png", []byte("fake image bytes"))
		req := httptest.NewRequest(http.MethodPost, "/upload", body)
		req.Header.Set("Content-Type", contentType)

		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var payload map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
		assert.Equal(t, "/images/posts/abc.png", payload["url"])
	})

	t.Run("Missing File", func(t *testing.T) {
		s := &Server{media: new(MockStorage)}
		app := fiber.New()
		app.Post("/upload", asUser(1, false), s.UploadFile)

		req := httptest.NewRequest(http.MethodPost, "/upload", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Unsupported Type", func(t *testing.T) {
		media := new(MockStorage)
		media.On("Save", mock.Anything, "script.sh", mock.Anything).
			Return("", storage.ErrUnsupportedType)

		s := &Server{media: media}
		app := fiber.New()
		app.Post("/upload", asUser(1, false), s.UploadFile)

		body, contentType := multipartBody(t, "file", "script.sh", []byte("#!/bin/sh"))
		req := httptest.NewRequest(http.MethodPost, "/upload", body)
		req.Header.Set("Content-Type", contentType)

		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
