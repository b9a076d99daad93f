package api

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/textproto"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"socialgram/internal/db"
	"socialgram/internal/mediapath"
	"socialgram/internal/storage"
)

type mockQuerier struct {
	mu sync.Mutex

	GalleryPhotos map[int64]db.GalleryPhoto
	PostImages    map[int64]db.PostImage
	CommentImages map[int64]db.CommentImage

	Deleted []int64
	Err     error
}

func newMockQuerier() *mockQuerier {
	return &mockQuerier{
		GalleryPhotos: make(map[int64]db.GalleryPhoto),
		PostImages:    make(map[int64]db.PostImage),
		CommentImages: make(map[int64]db.CommentImage),
	}
}

func (m *mockQuerier) GetGalleryPhoto(ctx context.Context, id int64) (db.GalleryPhoto, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return db.GalleryPhoto{}, m.Err
	}
	row, ok := m.GalleryPhotos[id]
	if !ok {
		return db.GalleryPhoto{}, pgx.ErrNoRows
	}
	return row, nil
}

func (m *mockQuerier) DeleteGalleryPhoto(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.GalleryPhotos, id)
	m.Deleted = append(m.Deleted, id)
	return nil
}

func (m *mockQuerier) GetPostImage(ctx context.Context, id int64) (db.PostImage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.PostImages[id]
	if !ok {
		return db.PostImage{}, pgx.ErrNoRows
	}
	return row, nil
}

func (m *mockQuerier) DeletePostImage(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.PostImages, id)
	m.Deleted = append(m.Deleted, id)
	return nil
}

func (m *mockQuerier) GetCommentImage(ctx context.Context, id int64) (db.CommentImage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.CommentImages[id]
	if !ok {
		return db.CommentImage{}, pgx.ErrNoRows
	}
	return row, nil
}

func (m *mockQuerier) DeleteCommentImage(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.CommentImages, id)
	m.Deleted = append(m.Deleted, id)
	return nil
}

type mockBroker struct {
	mu   sync.Mutex
	Jobs []mockJob
	Err  error
}

type mockJob struct {
	Type    string
	Payload interface{}
}

func (m *mockBroker) Enqueue(ctx context.Context, jobType string, payload interface{}) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return "", m.Err
	}
	m.Jobs = append(m.Jobs, mockJob{Type: jobType, Payload: payload})
	return "test-job-id", nil
}

func newTestConfig(t *testing.T) (*Config, *mockQuerier, *mockBroker, string) {
	t.Helper()
	root := t.TempDir()
	queries := newMockQuerier()
	broker := &mockBroker{}
	cfg := &Config{
		Store:         storage.NewLocal(),
		Broker:        broker,
		Queries:       queries,
		Paths:         mediapath.NewResolver(root),
		MaxUploadSize: 20 * 1024 * 1024,
	}
	return cfg, queries, broker, root
}

// multipartBody builds a multipart request body with a single png file
// part under the "file" field.
func multipartBody(t *testing.T, filename, contentType string) (*bytes.Buffer, string) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			img.Set(x, y, color.RGBA{200, 100, 50, 255})
		}
	}
	var imgBuf bytes.Buffer
	require.NoError(t, png.Encode(&imgBuf, img))

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(imgBuf.Bytes())
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return &body, writer.FormDataContentType()
}
