package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"socialgram/internal/db"
	"socialgram/internal/mediapath"
	"socialgram/internal/metrics"
	"socialgram/internal/storage"
	"socialgram/internal/worker"
)

// Querier is the subset of db.Queries the API needs.
type Querier interface {
	GetGalleryPhoto(ctx context.Context, id int64) (db.GalleryPhoto, error)
	DeleteGalleryPhoto(ctx context.Context, id int64) error
	GetPostImage(ctx context.Context, id int64) (db.PostImage, error)
	DeletePostImage(ctx context.Context, id int64) error
	GetCommentImage(ctx context.Context, id int64) (db.CommentImage, error)
	DeleteCommentImage(ctx context.Context, id int64) error
}

type Config struct {
	Store         storage.Storage
	Broker        worker.Broker
	Queries       Querier
	Paths         *mediapath.Resolver
	MaxUploadSize int64
	BaseURL       string
}

func NewRouter(cfg *Config) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", healthHandler)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("POST /v1/users/{id}/avatar", avatarUploadHandler(cfg))
	mux.HandleFunc("POST /v1/users/{id}/gallery", galleryUploadHandler(cfg))
	mux.HandleFunc("POST /v1/posts/{id}/images", postImageUploadHandler(cfg))
	mux.HandleFunc("POST /v1/comments/{id}/images", commentImageUploadHandler(cfg))

	mux.HandleFunc("DELETE /v1/gallery/{id}", deleteGalleryPhotoHandler(cfg))
	mux.HandleFunc("DELETE /v1/posts/images/{id}", deletePostImageHandler(cfg))
	mux.HandleFunc("DELETE /v1/comments/images/{id}", deleteCommentImageHandler(cfg))

	return RequestIDMiddleware(LoggingMiddleware(metrics.HTTPMetricsMiddleware(mux)))
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func writeAccepted(w http.ResponseWriter, body map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	_ = json.NewEncoder(w).Encode(body)
}
