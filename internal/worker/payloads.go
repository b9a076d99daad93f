package worker

import (
	"socialgram/internal/tracing"
)

// Job type constants for media processing tasks.
const (
	JobTypeProcessAvatar       = "process_avatar"
	JobTypeProcessGallery      = "process_gallery"
	JobTypeProcessPostImage    = "process_post_image"
	JobTypeProcessCommentImage = "process_comment_image"
	JobTypeDeleteMedia         = "delete_media"
	JobTypeTempSweep           = "temp_sweep"
)

// AvatarPayload carries the data needed to process a staged avatar
// upload into the user's final avatar image. OutputDir overrides the
// default avatar directory when set.
type AvatarPayload struct {
	UserID    int64                `json:"user_id"`
	TempPath  string               `json:"temp_path"`
	OutputDir string               `json:"output_dir,omitempty"`
	Trace     tracing.TraceCarrier `json:"trace,omitempty"`
}

// GalleryPayload carries the data needed to process a staged gallery
// photo into its full-size image and thumbnail.
type GalleryPayload struct {
	UserID   int64                `json:"user_id"`
	TempPath string               `json:"temp_path"`
	Trace    tracing.TraceCarrier `json:"trace,omitempty"`
}

// PostImagePayload carries the data needed to process a staged post
// image attachment.
type PostImagePayload struct {
	PostID   int64                `json:"post_id"`
	TempPath string               `json:"temp_path"`
	Trace    tracing.TraceCarrier `json:"trace,omitempty"`
}

// CommentImagePayload carries the data needed to process a staged
// comment image attachment.
type CommentImagePayload struct {
	CommentID int64                `json:"comment_id"`
	TempPath  string               `json:"temp_path"`
	Trace     tracing.TraceCarrier `json:"trace,omitempty"`
}

// DeleteMediaPayload identifies a single stored file to remove. Path
// may be absolute or a stored URL path relative to the media root.
type DeleteMediaPayload struct {
	Path  string               `json:"path"`
	Trace tracing.TraceCarrier `json:"trace,omitempty"`
}

func NewAvatarPayload(userID int64, tempPath string) AvatarPayload {
	return AvatarPayload{UserID: userID, TempPath: tempPath}
}

func NewGalleryPayload(userID int64, tempPath string) GalleryPayload {
	return GalleryPayload{UserID: userID, TempPath: tempPath}
}

func NewPostImagePayload(postID int64, tempPath string) PostImagePayload {
	return PostImagePayload{PostID: postID, TempPath: tempPath}
}

func NewCommentImagePayload(commentID int64, tempPath string) CommentImagePayload {
	return CommentImagePayload{CommentID: commentID, TempPath: tempPath}
}

func NewDeleteMediaPayload(path string) DeleteMediaPayload {
	return DeleteMediaPayload{Path: path}
}

func (p *AvatarPayload) SetTrace(tc tracing.TraceCarrier)       { p.Trace = tc }
func (p *GalleryPayload) SetTrace(tc tracing.TraceCarrier)      { p.Trace = tc }
func (p *PostImagePayload) SetTrace(tc tracing.TraceCarrier)    { p.Trace = tc }
func (p *CommentImagePayload) SetTrace(tc tracing.TraceCarrier) { p.Trace = tc }
func (p *DeleteMediaPayload) SetTrace(tc tracing.TraceCarrier)  { p.Trace = tc }
