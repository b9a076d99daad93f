package api

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5"

	"socialgram/internal/apperror"
	"socialgram/internal/logger"
	"socialgram/internal/worker"
)

// enqueueFileDeletions schedules one deletion job per stored path. Row
// removal already happened, so a failed enqueue only delays the file
// cleanup until the next manual sweep.
func enqueueFileDeletions(r *http.Request, cfg *Config, paths ...string) {
	log := logger.FromContext(r.Context())
	for _, path := range paths {
		if path == "" {
			continue
		}
		p := worker.NewDeleteMediaPayload(path)
		if _, err := worker.Enqueue(r.Context(), cfg.Broker, worker.JobTypeDeleteMedia, &p); err != nil {
			log.Error("failed to enqueue file deletion", "path", path, "error", err)
		}
	}
}

func deleteGalleryPhotoHandler(cfg *Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			apperror.WriteJSON(w, r, apperror.ErrBadRequest)
			return
		}

		photo, err := cfg.Queries.GetGalleryPhoto(r.Context(), id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				apperror.WriteJSON(w, r, apperror.ErrNotFound)
				return
			}
			apperror.WriteJSON(w, r, apperror.Wrap(err, apperror.ErrInternal))
			return
		}

		if err := cfg.Queries.DeleteGalleryPhoto(r.Context(), id); err != nil {
			apperror.WriteJSON(w, r, apperror.Wrap(err, apperror.ErrInternal))
			return
		}

		enqueueFileDeletions(r, cfg, photo.URL, photo.ThumbnailURL)
		writeAccepted(w, map[string]any{"status": "queued", "id": id})
	}
}

func deletePostImageHandler(cfg *Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			apperror.WriteJSON(w, r, apperror.ErrBadRequest)
			return
		}

		img, err := cfg.Queries.GetPostImage(r.Context(), id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				apperror.WriteJSON(w, r, apperror.ErrNotFound)
				return
			}
			apperror.WriteJSON(w, r, apperror.Wrap(err, apperror.ErrInternal))
			return
		}

		if err := cfg.Queries.DeletePostImage(r.Context(), id); err != nil {
			apperror.WriteJSON(w, r, apperror.Wrap(err, apperror.ErrInternal))
			return
		}

		enqueueFileDeletions(r, cfg, img.URL, img.ThumbnailURL)
		writeAccepted(w, map[string]any{"status": "queued", "id": id})
	}
}

func deleteCommentImageHandler(cfg *Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			apperror.WriteJSON(w, r, apperror.ErrBadRequest)
			return
		}

		img, err := cfg.Queries.GetCommentImage(r.Context(), id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				apperror.WriteJSON(w, r, apperror.ErrNotFound)
				return
			}
			apperror.WriteJSON(w, r, apperror.Wrap(err, apperror.ErrInternal))
			return
		}

		if err := cfg.Queries.DeleteCommentImage(r.Context(), id); err != nil {
			apperror.WriteJSON(w, r, apperror.Wrap(err, apperror.ErrInternal))
			return
		}

		enqueueFileDeletions(r, cfg, img.URL, img.ThumbnailURL)
		writeAccepted(w, map[string]any{"status": "queued", "id": id})
	}
}
