package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const updateUserAvatar = `
UPDATE users SET avatar_url = $2 WHERE id = $1
`

type UpdateUserAvatarParams struct {
	UserID    int64
	AvatarURL string
}

// UpdateUserAvatar is the avatar upsert: one asset per user, overwritten in
// place. The user row is owned by the account service; this service only
// ever touches avatar_url.
func (q *Queries) UpdateUserAvatar(ctx context.Context, arg UpdateUserAvatarParams) error {
	_, err := q.db.Exec(ctx, updateUserAvatar, arg.UserID, arg.AvatarURL)
	return err
}

const getUserAvatarURL = `
SELECT avatar_url FROM users WHERE id = $1
`

func (q *Queries) GetUserAvatarURL(ctx context.Context, userID int64) (pgtype.Text, error) {
	row := q.db.QueryRow(ctx, getUserAvatarURL, userID)
	var avatarURL pgtype.Text
	err := row.Scan(&avatarURL)
	return avatarURL, err
}

const createGalleryPhoto = `
INSERT INTO user_gallery (user_id, url, thumbnail_url, uploaded_at)
VALUES ($1, $2, $3, now())
RETURNING id, user_id, url, thumbnail_url, uploaded_at
`

type CreateGalleryPhotoParams struct {
	UserID       int64
	URL          string
	ThumbnailURL string
}

func (q *Queries) CreateGalleryPhoto(ctx context.Context, arg CreateGalleryPhotoParams) (GalleryPhoto, error) {
	row := q.db.QueryRow(ctx, createGalleryPhoto, arg.UserID, arg.URL, arg.ThumbnailURL)
	var i GalleryPhoto
	err := row.Scan(&i.ID, &i.UserID, &i.URL, &i.ThumbnailURL, &i.UploadedAt)
	return i, err
}

const getGalleryPhoto = `
SELECT id, user_id, url, thumbnail_url, uploaded_at
FROM user_gallery WHERE id = $1
`

func (q *Queries) GetGalleryPhoto(ctx context.Context, id int64) (GalleryPhoto, error) {
	row := q.db.QueryRow(ctx, getGalleryPhoto, id)
	var i GalleryPhoto
	err := row.Scan(&i.ID, &i.UserID, &i.URL, &i.ThumbnailURL, &i.UploadedAt)
	return i, err
}

const deleteGalleryPhoto = `
DELETE FROM user_gallery WHERE id = $1
`

func (q *Queries) DeleteGalleryPhoto(ctx context.Context, id int64) error {
	_, err := q.db.Exec(ctx, deleteGalleryPhoto, id)
	return err
}

const createPostImage = `
INSERT INTO post_images (post_id, url, thumbnail_url, uploaded_at)
VALUES ($1, $2, $3, now())
RETURNING id, post_id, url, thumbnail_url, uploaded_at
`

type CreatePostImageParams struct {
	PostID       int64
	URL          string
	ThumbnailURL string
}

func (q *Queries) CreatePostImage(ctx context.Context, arg CreatePostImageParams) (PostImage, error) {
	row := q.db.QueryRow(ctx, createPostImage, arg.PostID, arg.URL, arg.ThumbnailURL)
	var i PostImage
	err := row.Scan(&i.ID, &i.PostID, &i.URL, &i.ThumbnailURL, &i.UploadedAt)
	return i, err
}

const getPostImage = `
SELECT id, post_id, url, thumbnail_url, uploaded_at
FROM post_images WHERE id = $1
`

func (q *Queries) GetPostImage(ctx context.Context, id int64) (PostImage, error) {
	row := q.db.QueryRow(ctx, getPostImage, id)
	var i PostImage
	err := row.Scan(&i.ID, &i.PostID, &i.URL, &i.ThumbnailURL, &i.UploadedAt)
	return i, err
}

const deletePostImage = `
DELETE FROM post_images WHERE id = $1
`

func (q *Queries) DeletePostImage(ctx context.Context, id int64) error {
	_, err := q.db.Exec(ctx, deletePostImage, id)
	return err
}

const createCommentImage = `
INSERT INTO comment_images (comment_id, url, thumbnail_url, uploaded_at)
VALUES ($1, $2, $3, now())
RETURNING id, comment_id, url, thumbnail_url, uploaded_at
`

type CreateCommentImageParams struct {
	CommentID    int64
	URL          string
	ThumbnailURL string
}

func (q *Queries) CreateCommentImage(ctx context.Context, arg CreateCommentImageParams) (CommentImage, error) {
	row := q.db.QueryRow(ctx, createCommentImage, arg.CommentID, arg.URL, arg.ThumbnailURL)
	var i CommentImage
	err := row.Scan(&i.ID, &i.CommentID, &i.URL, &i.ThumbnailURL, &i.UploadedAt)
	return i, err
}

const getCommentImage = `
SELECT id, comment_id, url, thumbnail_url, uploaded_at
FROM comment_images WHERE id = $1
`

func (q *Queries) GetCommentImage(ctx context.Context, id int64) (CommentImage, error) {
	row := q.db.QueryRow(ctx, getCommentImage, id)
	var i CommentImage
	err := row.Scan(&i.ID, &i.CommentID, &i.URL, &i.ThumbnailURL, &i.UploadedAt)
	return i, err
}

const deleteCommentImage = `
DELETE FROM comment_images WHERE id = $1
`

func (q *Queries) DeleteCommentImage(ctx context.Context, id int64) error {
	_, err := q.db.Exec(ctx, deleteCommentImage, id)
	return err
}
