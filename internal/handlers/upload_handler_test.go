package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/incogni100x/jltstones/internal/services"
)

func multipartImage(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func TestUploadImage_Success(t *testing.T) {
	store := newFakeSessionStore()
	store.seed(testToken)

	uploadService := new(MockUploadService)
	uploadService.On("UploadOrderImage", mock.Anything, "stone.jpg", mock.Anything, mock.Anything, mock.Anything).
		Return(&services.UploadResult{
			URL:  "http://localhost:9000/order-images/1756684800000-a1b2c3d4.jpg",
			Path: "1756684800000-a1b2c3d4.jpg",
		}, nil).Once()

	router := newTestRouter(store, new(MockOrderRepository), uploadService)

	body, contentType := multipartImage(t, "image", "stone.jpg", []byte("fake image bytes"))
	req := httptest.NewRequest(http.MethodPost, "/api/orders/image", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+testToken)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Success bool   `json:"success"`
		URL     string `json:"url"`
		Path    string `json:"path"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Contains(t, resp.URL, "order-images")
	assert.NotEmpty(t, resp.Path)

	uploadService.AssertExpectations(t)
}

func TestUploadImage_MissingFile(t *testing.T) {
	store := newFakeSessionStore()
	store.seed(testToken)

	router := newTestRouter(store, new(MockOrderRepository), new(MockUploadService))

	req := httptest.NewRequest(http.MethodPost, "/api/orders/image", nil)
	req.Header.Set("Authorization", "Bearer "+testToken)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Image file is required")
}

func TestUploadImage_StorageError(t *testing.T) {
	store := newFakeSessionStore()
	store.seed(testToken)

	uploadService := new(MockUploadService)
	uploadService.On("UploadOrderImage", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("failed to upload object: bucket unreachable")).Once()

	router := newTestRouter(store, new(MockOrderRepository), uploadService)

	body, contentType := multipartImage(t, "image", "stone.jpg", []byte("fake image bytes"))
	req := httptest.NewRequest(http.MethodPost, "/api/orders/image", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+testToken)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "bucket unreachable")
}

func TestUploadImage_RequiresAuth(t *testing.T) {
	store := newFakeSessionStore()
	router := newTestRouter(store, new(MockOrderRepository), new(MockUploadService))

	body, contentType := multipartImage(t, "image", "stone.jpg", []byte("fake image bytes"))
	req := httptest.NewRequest(http.MethodPost, "/api/orders/image", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}
