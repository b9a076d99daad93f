package worker

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/abdul-hamid-achik/job-queue/pkg/job"
	"github.com/abdul-hamid-achik/job-queue/pkg/middleware"

	"socialgram/internal/db"
	"socialgram/internal/logger"
	"socialgram/internal/mediapath"
	"socialgram/internal/metrics"
	"socialgram/internal/processor"
	"socialgram/internal/storage"
	"socialgram/internal/tracing"
)

// Querier is the subset of db.Queries the media workers need.
type Querier interface {
	UpdateUserAvatar(ctx context.Context, arg db.UpdateUserAvatarParams) error
	CreateGalleryPhoto(ctx context.Context, arg db.CreateGalleryPhotoParams) (db.GalleryPhoto, error)
	CreatePostImage(ctx context.Context, arg db.CreatePostImageParams) (db.PostImage, error)
	CreateCommentImage(ctx context.Context, arg db.CreateCommentImageParams) (db.CommentImage, error)
}

// Dependencies holds everything the job handlers need to run.
type Dependencies struct {
	Queries  Querier
	Store    storage.Storage
	Registry *processor.Registry
	Paths    *mediapath.Resolver

	AvatarMaxDimension    int
	ThumbnailMaxDimension int
	JPEGQuality           int
}

// MediaResult reports where a processed upload ended up.
type MediaResult struct {
	ID           int64  `json:"id,omitempty"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
}

// finalName derives the stored filename from the staged file, always
// with a .jpg extension since processing re-encodes to JPEG.
func finalName(tempPath string) string {
	base := filepath.Base(tempPath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".jpg"
}

// permanentIf marks processing failures that retries cannot fix, such
// as corrupted uploads or staged files that no longer exist.
func permanentIf(err error) error {
	if errors.Is(err, processor.ErrCorruptedFile) ||
		errors.Is(err, processor.ErrUnsupportedType) ||
		errors.Is(err, storage.ErrNotFound) {
		return middleware.Permanent(err)
	}
	return err
}

// runProcessor reads the file at path and runs the named processor
// over it, returning the processed result.
func (d *Dependencies) runProcessor(ctx context.Context, name, path string, opts *processor.Options) (*processor.Result, error) {
	proc, err := d.Registry.GetOrError(name)
	if err != nil {
		return nil, err
	}

	reader, err := d.Store.Open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer reader.Close()

	result, err := proc.Process(ctx, opts, reader)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", name, path, err)
	}
	return result, nil
}

// cleanupTemp removes the staged upload after successful processing.
// A missing temp file is logged and ignored since another delivery of
// the same job may have already removed it.
func (d *Dependencies) cleanupTemp(ctx context.Context, tempPath string) error {
	if err := d.Store.Remove(ctx, tempPath); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			logger.FromContext(ctx).Debug("temp file already removed", "path", tempPath)
			return nil
		}
		return fmt.Errorf("remove temp file: %w", err)
	}
	return nil
}

// ProcessAvatar normalizes a staged avatar upload, bounds it to the
// configured avatar dimension, stores it as <user_id>.jpg and points
// the user row at the new file.
func (d *Dependencies) ProcessAvatar(ctx context.Context, p AvatarPayload) (*MediaResult, error) {
	dirs, err := d.Paths.Dirs(mediapath.KindAvatar)
	if err != nil {
		return nil, err
	}
	outputDir := dirs.Final
	if p.OutputDir != "" {
		outputDir = d.Paths.ToAbsolute(p.OutputDir)
	}
	tempPath := d.Paths.ToAbsolute(p.TempPath)

	result, err := d.runProcessor(ctx, "normalize", tempPath, &processor.Options{
		Width:   d.AvatarMaxDimension,
		Height:  d.AvatarMaxDimension,
		Quality: d.JPEGQuality,
	})
	if err != nil {
		return nil, err
	}

	finalPath := filepath.Join(outputDir, fmt.Sprintf("%d.jpg", p.UserID))
	if _, err := d.Store.Save(ctx, finalPath, result.Data); err != nil {
		return nil, fmt.Errorf("save avatar: %w", err)
	}

	url := d.Paths.StoredURL(finalPath)
	if err := d.Queries.UpdateUserAvatar(ctx, db.UpdateUserAvatarParams{
		UserID:    p.UserID,
		AvatarURL: url,
	}); err != nil {
		return nil, fmt.Errorf("update avatar url: %w", err)
	}

	if err := d.cleanupTemp(ctx, tempPath); err != nil {
		return nil, err
	}
	return &MediaResult{URL: url}, nil
}

// insertFunc persists the row for a processed image pair and returns
// its id.
type insertFunc func(ctx context.Context, url, thumbURL string) (int64, error)

// processImagePair runs the shared gallery/post/comment pipeline:
// normalize the staged file into a full-size JPEG, cut a thumbnail,
// store both, insert the row and drop the staged file.
func (d *Dependencies) processImagePair(ctx context.Context, kind mediapath.Kind, tempPath string, insert insertFunc) (*MediaResult, error) {
	dirs, err := d.Paths.Dirs(kind)
	if err != nil {
		return nil, err
	}
	absTemp := d.Paths.ToAbsolute(tempPath)
	name := finalName(absTemp)

	full, err := d.runProcessor(ctx, "normalize", absTemp, &processor.Options{
		Quality: d.JPEGQuality,
	})
	if err != nil {
		return nil, err
	}
	finalPath := filepath.Join(dirs.Final, name)
	if _, err := d.Store.Save(ctx, finalPath, full.Data); err != nil {
		return nil, fmt.Errorf("save image: %w", err)
	}

	thumb, err := d.runProcessor(ctx, "thumbnail", absTemp, &processor.Options{
		Width:   d.ThumbnailMaxDimension,
		Height:  d.ThumbnailMaxDimension,
		Quality: d.JPEGQuality,
	})
	if err != nil {
		return nil, err
	}
	thumbPath := filepath.Join(dirs.Thumbs, name)
	if _, err := d.Store.Save(ctx, thumbPath, thumb.Data); err != nil {
		return nil, fmt.Errorf("save thumbnail: %w", err)
	}

	url := d.Paths.StoredURL(finalPath)
	thumbURL := d.Paths.StoredURL(thumbPath)
	id, err := insert(ctx, url, thumbURL)
	if err != nil {
		return nil, fmt.Errorf("insert media row: %w", err)
	}

	if err := d.cleanupTemp(ctx, absTemp); err != nil {
		return nil, err
	}
	return &MediaResult{ID: id, URL: url, ThumbnailURL: thumbURL}, nil
}

// ProcessGallery turns a staged upload into a gallery photo with a
// thumbnail and records it against the user.
func (d *Dependencies) ProcessGallery(ctx context.Context, p GalleryPayload) (*MediaResult, error) {
	return d.processImagePair(ctx, mediapath.KindGallery, p.TempPath,
		func(ctx context.Context, url, thumbURL string) (int64, error) {
			row, err := d.Queries.CreateGalleryPhoto(ctx, db.CreateGalleryPhotoParams{
				UserID:       p.UserID,
				URL:          url,
				ThumbnailURL: thumbURL,
			})
			return row.ID, err
		})
}

// ProcessPostImage attaches a processed image and thumbnail to a post.
func (d *Dependencies) ProcessPostImage(ctx context.Context, p PostImagePayload) (*MediaResult, error) {
	return d.processImagePair(ctx, mediapath.KindPostImage, p.TempPath,
		func(ctx context.Context, url, thumbURL string) (int64, error) {
			row, err := d.Queries.CreatePostImage(ctx, db.CreatePostImageParams{
				PostID:       p.PostID,
				URL:          url,
				ThumbnailURL: thumbURL,
			})
			return row.ID, err
		})
}

// ProcessCommentImage attaches a processed image and thumbnail to a
// comment.
func (d *Dependencies) ProcessCommentImage(ctx context.Context, p CommentImagePayload) (*MediaResult, error) {
	return d.processImagePair(ctx, mediapath.KindCommentImage, p.TempPath,
		func(ctx context.Context, url, thumbURL string) (int64, error) {
			row, err := d.Queries.CreateCommentImage(ctx, db.CreateCommentImageParams{
				CommentID:    p.CommentID,
				URL:          url,
				ThumbnailURL: thumbURL,
			})
			return row.ID, err
		})
}

// AvatarHandler returns the job handler for avatar processing jobs.
func AvatarHandler(deps *Dependencies) func(ctx context.Context, j *job.Job) error {
	return func(ctx context.Context, j *job.Job) error {
		var p AvatarPayload
		if err := j.UnmarshalPayload(&p); err != nil {
			return middleware.Permanent(fmt.Errorf("unmarshal payload: %w", err))
		}
		ctx = tracing.ExtractTraceContext(ctx, p.Trace)
		ctx, span := tracing.StartJobSpan(ctx, JobTypeProcessAvatar, j.ID)
		defer span.End()

		log := logger.FromContext(ctx)
		log.Info("processing avatar", "job_id", j.ID, "user_id", p.UserID, "temp_path", p.TempPath)

		start := time.Now()
		result, err := deps.ProcessAvatar(ctx, p)
		if err != nil {
			tracing.RecordError(ctx, err)
			log.Error("avatar processing failed", "job_id", j.ID, "user_id", p.UserID, "error", err)
			return permanentIf(err)
		}
		metrics.RecordJobStage(JobTypeProcessAvatar, "process", time.Since(start).Seconds())

		log.Info("avatar processed", "job_id", j.ID, "user_id", p.UserID, "url", result.URL)
		return nil
	}
}

// GalleryHandler returns the job handler for gallery photo jobs.
func GalleryHandler(deps *Dependencies) func(ctx context.Context, j *job.Job) error {
	return func(ctx context.Context, j *job.Job) error {
		var p GalleryPayload
		if err := j.UnmarshalPayload(&p); err != nil {
			return middleware.Permanent(fmt.Errorf("unmarshal payload: %w", err))
		}
		ctx = tracing.ExtractTraceContext(ctx, p.Trace)
		ctx, span := tracing.StartJobSpan(ctx, JobTypeProcessGallery, j.ID)
		defer span.End()

		log := logger.FromContext(ctx)
		log.Info("processing gallery photo", "job_id", j.ID, "user_id", p.UserID, "temp_path", p.TempPath)

		start := time.Now()
		result, err := deps.ProcessGallery(ctx, p)
		if err != nil {
			tracing.RecordError(ctx, err)
			log.Error("gallery processing failed", "job_id", j.ID, "user_id", p.UserID, "error", err)
			return permanentIf(err)
		}
		metrics.RecordJobStage(JobTypeProcessGallery, "process", time.Since(start).Seconds())

		log.Info("gallery photo processed", "job_id", j.ID, "photo_id", result.ID, "url", result.URL)
		return nil
	}
}

// PostImageHandler returns the job handler for post image jobs.
func PostImageHandler(deps *Dependencies) func(ctx context.Context, j *job.Job) error {
	return func(ctx context.Context, j *job.Job) error {
		var p PostImagePayload
		if err := j.UnmarshalPayload(&p); err != nil {
			return middleware.Permanent(fmt.Errorf("unmarshal payload: %w", err))
		}
		ctx = tracing.ExtractTraceContext(ctx, p.Trace)
		ctx, span := tracing.StartJobSpan(ctx, JobTypeProcessPostImage, j.ID)
		defer span.End()

		log := logger.FromContext(ctx)
		log.Info("processing post image", "job_id", j.ID, "post_id", p.PostID, "temp_path", p.TempPath)

		start := time.Now()
		result, err := deps.ProcessPostImage(ctx, p)
		if err != nil {
			tracing.RecordError(ctx, err)
			log.Error("post image processing failed", "job_id", j.ID, "post_id", p.PostID, "error", err)
			return permanentIf(err)
		}
		metrics.RecordJobStage(JobTypeProcessPostImage, "process", time.Since(start).Seconds())

		log.Info("post image processed", "job_id", j.ID, "image_id", result.ID, "url", result.URL)
		return nil
	}
}

// CommentImageHandler returns the job handler for comment image jobs.
func CommentImageHandler(deps *Dependencies) func(ctx context.Context, j *job.Job) error {
	return func(ctx context.Context, j *job.Job) error {
		var p CommentImagePayload
		if err := j.UnmarshalPayload(&p); err != nil {
			return middleware.Permanent(fmt.Errorf("unmarshal payload: %w", err))
		}
		ctx = tracing.ExtractTraceContext(ctx, p.Trace)
		ctx, span := tracing.StartJobSpan(ctx, JobTypeProcessCommentImage, j.ID)
		defer span.End()

		log := logger.FromContext(ctx)
		log.Info("processing comment image", "job_id", j.ID, "comment_id", p.CommentID, "temp_path", p.TempPath)

		start := time.Now()
		result, err := deps.ProcessCommentImage(ctx, p)
		if err != nil {
			tracing.RecordError(ctx, err)
			log.Error("comment image processing failed", "job_id", j.ID, "comment_id", p.CommentID, "error", err)
			return permanentIf(err)
		}
		metrics.RecordJobStage(JobTypeProcessCommentImage, "process", time.Since(start).Seconds())

		log.Info("comment image processed", "job_id", j.ID, "image_id", result.ID, "url", result.URL)
		return nil
	}
}
