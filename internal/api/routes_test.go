package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialgram/internal/db"
	"socialgram/internal/metrics"
	"socialgram/internal/worker"
)

func TestHealthEndpoint(t *testing.T) {
	cfg, _, _, _ := newTestConfig(t)
	router := NewRouter(cfg)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestAvatarUpload(t *testing.T) {
	cfg, _, broker, root := newTestConfig(t)
	router := NewRouter(cfg)

	body, contentType := multipartBody(t, "selfie.png", "image/png")
	req := httptest.NewRequest(http.MethodPost, "/v1/users/42/avatar", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusAccepted, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "queued", resp["status"])
	assert.Equal(t, "test-job-id", resp["job_id"])

	require.Len(t, broker.Jobs, 1)
	assert.Equal(t, worker.JobTypeProcessAvatar, broker.Jobs[0].Type)
	payload, ok := broker.Jobs[0].Payload.(*worker.AvatarPayload)
	require.True(t, ok)
	assert.Equal(t, int64(42), payload.UserID)

	// The upload is staged under the avatar temp directory.
	assert.Equal(t, filepath.Join(root, "avatars_tmp"), filepath.Dir(payload.TempPath))
	assert.True(t, strings.HasSuffix(payload.TempPath, "_selfie.png"))
	_, err := os.Stat(payload.TempPath)
	assert.NoError(t, err)
}

func TestGalleryUpload(t *testing.T) {
	cfg, _, broker, root := newTestConfig(t)
	router := NewRouter(cfg)

	body, contentType := multipartBody(t, "beach.png", "image/png")
	req := httptest.NewRequest(http.MethodPost, "/v1/users/7/gallery", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusAccepted, rec.Code)
	require.Len(t, broker.Jobs, 1)
	assert.Equal(t, worker.JobTypeProcessGallery, broker.Jobs[0].Type)
	payload := broker.Jobs[0].Payload.(*worker.GalleryPayload)
	assert.Equal(t, int64(7), payload.UserID)
	assert.Equal(t, filepath.Join(root, "user_photos_tmp"), filepath.Dir(payload.TempPath))
}

func TestPostImageUpload(t *testing.T) {
	cfg, _, broker, _ := newTestConfig(t)
	router := NewRouter(cfg)

	body, contentType := multipartBody(t, "chart.png", "image/png")
	req := httptest.NewRequest(http.MethodPost, "/v1/posts/21/images", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusAccepted, rec.Code)
	require.Len(t, broker.Jobs, 1)
	assert.Equal(t, worker.JobTypeProcessPostImage, broker.Jobs[0].Type)
	assert.Equal(t, int64(21), broker.Jobs[0].Payload.(*worker.PostImagePayload).PostID)
}

func TestCommentImageUpload(t *testing.T) {
	cfg, _, broker, _ := newTestConfig(t)
	router := NewRouter(cfg)

	body, contentType := multipartBody(t, "meme.png", "image/png")
	req := httptest.NewRequest(http.MethodPost, "/v1/comments/33/images", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusAccepted, rec.Code)
	require.Len(t, broker.Jobs, 1)
	assert.Equal(t, worker.JobTypeProcessCommentImage, broker.Jobs[0].Type)
	assert.Equal(t, int64(33), broker.Jobs[0].Payload.(*worker.CommentImagePayload).CommentID)
}

func TestUploadRejectsInvalidContentType(t *testing.T) {
	cfg, _, broker, _ := newTestConfig(t)
	router := NewRouter(cfg)

	body, contentType := multipartBody(t, "script.svg", "image/svg+xml")
	req := httptest.NewRequest(http.MethodPost, "/v1/users/42/avatar", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, broker.Jobs)
}

func TestUploadRejectsMissingFile(t *testing.T) {
	cfg, _, _, _ := newTestConfig(t)
	router := NewRouter(cfg)

	req := httptest.NewRequest(http.MethodPost, "/v1/users/42/avatar", strings.NewReader("no file"))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.NotEqual(t, http.StatusAccepted, rec.Code)
}

func TestUploadRejectsBadUserID(t *testing.T) {
	cfg, _, broker, _ := newTestConfig(t)
	router := NewRouter(cfg)

	for _, id := range []string{"notanumber", "0", "-5"} {
		t.Run(id, func(t *testing.T) {
			body, contentType := multipartBody(t, "selfie.png", "image/png")
			req := httptest.NewRequest(http.MethodPost, "/v1/users/"+id+"/avatar", body)
			req.Header.Set("Content-Type", contentType)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
	assert.Empty(t, broker.Jobs)
}

func TestUploadBrokerUnavailable(t *testing.T) {
	cfg, _, broker, _ := newTestConfig(t)
	broker.Err = assert.AnError
	router := NewRouter(cfg)

	success := metrics.MediaUploadsTotal.WithLabelValues("avatar", "success")
	errored := metrics.MediaUploadsTotal.WithLabelValues("avatar", "error")
	successBefore := testutil.ToFloat64(success)
	erroredBefore := testutil.ToFloat64(errored)

	body, contentType := multipartBody(t, "selfie.png", "image/png")
	req := httptest.NewRequest(http.MethodPost, "/v1/users/42/avatar", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	// An upload whose job never made it onto the queue is not a success.
	assert.Equal(t, successBefore, testutil.ToFloat64(success))
	assert.Equal(t, erroredBefore+1, testutil.ToFloat64(errored))
}

func TestDeleteGalleryPhoto(t *testing.T) {
	cfg, queries, broker, _ := newTestConfig(t)
	queries.GalleryPhotos[5] = db.GalleryPhoto{
		ID:           5,
		UserID:       11,
		URL:          "/user_photo/uuid_pic.jpg",
		ThumbnailURL: "/user_photo/thumbnails/uuid_pic.jpg",
	}
	router := NewRouter(cfg)

	req := httptest.NewRequest(http.MethodDelete, "/v1/gallery/5", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, []int64{5}, queries.Deleted)

	// One deletion job per stored file.
	require.Len(t, broker.Jobs, 2)
	assert.Equal(t, worker.JobTypeDeleteMedia, broker.Jobs[0].Type)
	assert.Equal(t, "/user_photo/uuid_pic.jpg", broker.Jobs[0].Payload.(*worker.DeleteMediaPayload).Path)
	assert.Equal(t, "/user_photo/thumbnails/uuid_pic.jpg", broker.Jobs[1].Payload.(*worker.DeleteMediaPayload).Path)
}

func TestDeletePostImage(t *testing.T) {
	cfg, queries, broker, _ := newTestConfig(t)
	queries.PostImages[8] = db.PostImage{
		ID:           8,
		PostID:       21,
		URL:          "/post_images/uuid_img.jpg",
		ThumbnailURL: "/post_images/thumbnails/uuid_img.jpg",
	}
	router := NewRouter(cfg)

	req := httptest.NewRequest(http.MethodDelete, "/v1/posts/images/8", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusAccepted, rec.Code)
	assert.Len(t, broker.Jobs, 2)
}

func TestDeleteCommentImage(t *testing.T) {
	cfg, queries, broker, _ := newTestConfig(t)
	queries.CommentImages[9] = db.CommentImage{
		ID:           9,
		CommentID:    33,
		URL:          "/comment_images/uuid_img.jpg",
		ThumbnailURL: "/comment_images/thumbnails/uuid_img.jpg",
	}
	router := NewRouter(cfg)

	req := httptest.NewRequest(http.MethodDelete, "/v1/comments/images/9", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusAccepted, rec.Code)
	assert.Len(t, broker.Jobs, 2)
}

func TestDeleteGalleryPhotoNotFound(t *testing.T) {
	cfg, _, broker, _ := newTestConfig(t)
	router := NewRouter(cfg)

	req := httptest.NewRequest(http.MethodDelete, "/v1/gallery/404", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, broker.Jobs)
}
