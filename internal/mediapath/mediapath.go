package mediapath

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// TempSuffix marks staging directories directly under the media root. The
// temp reaper only ever touches directories carrying this suffix.
const TempSuffix = "_tmp"

var ErrUnknownKind = errors.New("mediapath: unknown media kind")

// Kind identifies one media content kind. Each kind has its own directory
// convention and thumbnail policy.
type Kind string

const (
	KindAvatar       Kind = "avatar"
	KindGallery      Kind = "gallery"
	KindPostImage    Kind = "post_image"
	KindCommentImage Kind = "comment_image"
)

// Dirs holds the absolute directories for one media kind. Thumbs is empty
// for kinds without thumbnails (avatars).
type Dirs struct {
	Final  string
	Thumbs string
	Temp   string
}

// Resolver maps media kinds to their on-disk directories under a single
// media root. It performs no filesystem operations; directory creation is
// the caller's responsibility.
type Resolver struct {
	root string
}

func NewResolver(root string) *Resolver {
	return &Resolver{root: filepath.Clean(root)}
}

func (r *Resolver) Root() string {
	return r.root
}

// Dirs returns the final, thumbnail and temp staging directories for kind.
func (r *Resolver) Dirs(kind Kind) (Dirs, error) {
	switch kind {
	case KindAvatar:
		return Dirs{
			Final: filepath.Join(r.root, "avatar"),
			Temp:  filepath.Join(r.root, "avatars"+TempSuffix),
		}, nil
	case KindGallery:
		final := filepath.Join(r.root, "user_photo")
		return Dirs{
			Final:  final,
			Thumbs: filepath.Join(final, "thumbnails"),
			Temp:   filepath.Join(r.root, "user_photos"+TempSuffix),
		}, nil
	case KindPostImage:
		final := filepath.Join(r.root, "post_images")
		return Dirs{
			Final:  final,
			Thumbs: filepath.Join(final, "thumbnails"),
			Temp:   filepath.Join(r.root, "post_images"+TempSuffix),
		}, nil
	case KindCommentImage:
		final := filepath.Join(r.root, "comment_images")
		return Dirs{
			Final:  final,
			Thumbs: filepath.Join(final, "thumbnails"),
			Temp:   filepath.Join(r.root, "comment_images"+TempSuffix),
		}, nil
	default:
		return Dirs{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

// ToAbsolute resolves a stored url value against the media root. Paths
// already rooted there are returned unchanged, so the function is
// idempotent; anything else has leading separators stripped and is joined
// to the root.
func (r *Resolver) ToAbsolute(stored string) string {
	if stored == r.root || strings.HasPrefix(stored, r.root+string(filepath.Separator)) {
		return filepath.Clean(stored)
	}
	trimmed := strings.TrimLeft(stored, "/\\")
	return filepath.Join(r.root, trimmed)
}

// StoredURL converts an absolute path under the media root into the value
// persisted on the metadata record: root-relative with a leading slash.
func (r *Resolver) StoredURL(abs string) string {
	rel, err := filepath.Rel(r.root, abs)
	if err != nil || strings.HasPrefix(rel, "..") {
		return abs
	}
	return "/" + filepath.ToSlash(rel)
}
