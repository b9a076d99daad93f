package api

import (
	"mime/multipart"
	"net/http"

	"socialgram/internal/apperror"
	"socialgram/internal/logger"
	"socialgram/internal/mediapath"
	"socialgram/internal/metrics"
	"socialgram/internal/producer"
	"socialgram/internal/worker"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

// receiveUpload validates the multipart request and returns the file
// part. The caller owns closing the file.
func receiveUpload(cfg *Config, w http.ResponseWriter, r *http.Request) (multipart.File, *multipart.FileHeader, bool) {
	maxSize := cfg.MaxUploadSize
	if maxSize == 0 {
		maxSize = 20 * 1024 * 1024
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(8 << 20); err != nil {
		apperror.WriteJSON(w, r, apperror.Wrap(err, apperror.ErrFileTooLarge))
		return nil, nil, false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		apperror.WriteJSON(w, r, apperror.Wrap(err, apperror.ErrBadRequest))
		return nil, nil, false
	}

	contentType := header.Header.Get("Content-Type")
	if !allowedImageTypes[contentType] {
		_ = file.Close()
		apperror.WriteJSON(w, r, apperror.ErrInvalidFileType)
		return nil, nil, false
	}

	return file, header, true
}

// stageAndEnqueue stages the upload into the kind's temp directory and
// enqueues the processing job built from the staged path.
func stageAndEnqueue(cfg *Config, w http.ResponseWriter, r *http.Request, kind mediapath.Kind, jobType string, makePayload func(tempPath string) interface{}) {
	log := logger.FromContext(r.Context())

	file, header, ok := receiveUpload(cfg, w, r)
	if !ok {
		metrics.RecordMediaUpload(string(kind), "rejected", 0)
		return
	}
	defer func() { _ = file.Close() }()

	dirs, err := cfg.Paths.Dirs(kind)
	if err != nil {
		apperror.WriteJSON(w, r, apperror.Wrap(err, apperror.ErrInternal))
		return
	}

	staged, err := producer.Stage(r.Context(), cfg.Store, dirs.Temp, header.Filename, file)
	if err != nil {
		metrics.RecordMediaUpload(string(kind), "error", 0)
		apperror.WriteJSON(w, r, apperror.Wrap(err, apperror.ErrInternal))
		return
	}
	jobID, err := worker.Enqueue(r.Context(), cfg.Broker, jobType, makePayload(staged))
	if err != nil {
		metrics.RecordMediaUpload(string(kind), "error", 0)
		log.Error("failed to enqueue processing job", "job_type", jobType, "temp_path", staged, "error", err)
		apperror.WriteJSON(w, r, apperror.Wrap(err, apperror.ErrServiceUnavailable))
		return
	}
	metrics.RecordMediaUpload(string(kind), "success", header.Size)

	log.Info("upload staged",
		"kind", string(kind),
		"filename", header.Filename,
		"size", header.Size,
		"job_id", jobID)

	writeAccepted(w, map[string]any{
		"status": "queued",
		"job_id": jobID,
	})
}

func avatarUploadHandler(cfg *Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := pathID(r)
		if err != nil {
			apperror.WriteJSON(w, r, apperror.ErrBadRequest)
			return
		}
		dirs, err := cfg.Paths.Dirs(mediapath.KindAvatar)
		if err != nil {
			apperror.WriteJSON(w, r, apperror.ErrInternal)
			return
		}
		stageAndEnqueue(cfg, w, r, mediapath.KindAvatar, worker.JobTypeProcessAvatar, func(tempPath string) interface{} {
			p := worker.NewAvatarPayload(userID, tempPath)
			p.OutputDir = dirs.Final
			return &p
		})
	}
}

func galleryUploadHandler(cfg *Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := pathID(r)
		if err != nil {
			apperror.WriteJSON(w, r, apperror.ErrBadRequest)
			return
		}
		stageAndEnqueue(cfg, w, r, mediapath.KindGallery, worker.JobTypeProcessGallery, func(tempPath string) interface{} {
			p := worker.NewGalleryPayload(userID, tempPath)
			return &p
		})
	}
}

func postImageUploadHandler(cfg *Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := pathID(r)
		if err != nil {
			apperror.WriteJSON(w, r, apperror.ErrBadRequest)
			return
		}
		stageAndEnqueue(cfg, w, r, mediapath.KindPostImage, worker.JobTypeProcessPostImage, func(tempPath string) interface{} {
			p := worker.NewPostImagePayload(postID, tempPath)
			return &p
		})
	}
}

func commentImageUploadHandler(cfg *Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		commentID, err := pathID(r)
		if err != nil {
			apperror.WriteJSON(w, r, apperror.ErrBadRequest)
			return
		}
		stageAndEnqueue(cfg, w, r, mediapath.KindCommentImage, worker.JobTypeProcessCommentImage, func(tempPath string) interface{} {
			p := worker.NewCommentImagePayload(commentID, tempPath)
			return &p
		})
	}
}
