package worker

import (
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"socialgram/internal/db"
	"socialgram/internal/mediapath"
	"socialgram/internal/processor"
	imgproc "socialgram/internal/processor/image"
	"socialgram/internal/storage"
)

// MockQuerier is an in-memory Querier for handler tests.
type MockQuerier struct {
	mu sync.Mutex

	AvatarURLs    map[int64]string
	GalleryPhotos []db.GalleryPhoto
	PostImages    []db.PostImage
	CommentImages []db.CommentImage
	nextID        int64

	UpdateAvatarErr error
	CreateErr       error
}

func NewMockQuerier() *MockQuerier {
	return &MockQuerier{AvatarURLs: make(map[int64]string)}
}

func (m *MockQuerier) UpdateUserAvatar(ctx context.Context, arg db.UpdateUserAvatarParams) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateAvatarErr != nil {
		return m.UpdateAvatarErr
	}
	m.AvatarURLs[arg.UserID] = arg.AvatarURL
	return nil
}

func (m *MockQuerier) CreateGalleryPhoto(ctx context.Context, arg db.CreateGalleryPhotoParams) (db.GalleryPhoto, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateErr != nil {
		return db.GalleryPhoto{}, m.CreateErr
	}
	m.nextID++
	row := db.GalleryPhoto{ID: m.nextID, UserID: arg.UserID, URL: arg.URL, ThumbnailURL: arg.ThumbnailURL}
	m.GalleryPhotos = append(m.GalleryPhotos, row)
	return row, nil
}

func (m *MockQuerier) CreatePostImage(ctx context.Context, arg db.CreatePostImageParams) (db.PostImage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateErr != nil {
		return db.PostImage{}, m.CreateErr
	}
	m.nextID++
	row := db.PostImage{ID: m.nextID, PostID: arg.PostID, URL: arg.URL, ThumbnailURL: arg.ThumbnailURL}
	m.PostImages = append(m.PostImages, row)
	return row, nil
}

func (m *MockQuerier) CreateCommentImage(ctx context.Context, arg db.CreateCommentImageParams) (db.CommentImage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateErr != nil {
		return db.CommentImage{}, m.CreateErr
	}
	m.nextID++
	row := db.CommentImage{ID: m.nextID, CommentID: arg.CommentID, URL: arg.URL, ThumbnailURL: arg.ThumbnailURL}
	m.CommentImages = append(m.CommentImages, row)
	return row, nil
}

// MockBroker records enqueued jobs instead of pushing them anywhere.
type MockBroker struct {
	mu   sync.Mutex
	Jobs []MockJob
	Err  error
}

type MockJob struct {
	Type    string
	Payload interface{}
}

func (m *MockBroker) Enqueue(ctx context.Context, jobType string, payload interface{}) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return "", m.Err
	}
	m.Jobs = append(m.Jobs, MockJob{Type: jobType, Payload: payload})
	return "mock-job-id", nil
}

// newTestDeps builds a Dependencies wired to a temp media root, real
// local storage and the real image processors.
func newTestDeps(t *testing.T) (*Dependencies, *MockQuerier, string) {
	t.Helper()

	root := t.TempDir()
	registry := processor.NewRegistry()
	cfg := processor.DefaultConfig()
	registry.Register("normalize", imgproc.NewNormalizeProcessor(cfg))
	registry.Register("thumbnail", imgproc.NewThumbnailProcessor(cfg))

	queries := NewMockQuerier()
	deps := &Dependencies{
		Queries:               queries,
		Store:                 storage.NewLocal(),
		Registry:              registry,
		Paths:                 mediapath.NewResolver(root),
		AvatarMaxDimension:    300,
		ThumbnailMaxDimension: 150,
		JPEGQuality:           85,
	}
	return deps, queries, root
}

func testImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{uint8(x % 256), uint8(y % 256), 128, 255})
		}
	}
	return img
}

func writeJPEG(t *testing.T, path string, width, height int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, jpeg.Encode(f, testImage(width, height), nil))
}

func writePNG(t *testing.T, path string, width, height int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, testImage(width, height)))
}

func decodeDims(t *testing.T, path string) (int, int) {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	require.NoError(t, err)
	return cfg.Width, cfg.Height
}
