package db

import (
	"github.com/jackc/pgx/v5/pgtype"
)

// GalleryPhoto is one entry in a user's photo gallery. Insert-only: a user
// accumulates one row per successfully processed upload.
type GalleryPhoto struct {
	ID           int64
	UserID       int64
	URL          string
	ThumbnailURL string
	UploadedAt   pgtype.Timestamptz
}

type PostImage struct {
	ID           int64
	PostID       int64
	URL          string
	ThumbnailURL string
	UploadedAt   pgtype.Timestamptz
}

type CommentImage struct {
	ID           int64
	CommentID    int64
	URL          string
	ThumbnailURL string
	UploadedAt   pgtype.Timestamptz
}
