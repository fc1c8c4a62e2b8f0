package service

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wijvancees/fotobestel/internal/blobstore"
	"github.com/wijvancees/fotobestel/internal/db"
	"github.com/wijvancees/fotobestel/internal/domain"
	"github.com/wijvancees/fotobestel/internal/store"
)

// memBlobStore is a simple in-memory blobstore.Store.
type memBlobStore struct {
	data map[string][]byte
}

func newMemBlobStore() *memBlobStore {
	return &memBlobStore{data: make(map[string][]byte)}
}

func (m *memBlobStore) Get(_ context.Context, key string) (io.ReadCloser, error) {
	data, ok := m.data[key]
	if !ok {
		return nil, blobstore.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *memBlobStore) Put(_ context.Context, key string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.data[key] = data
	return nil
}

func newCatalogService(t *testing.T) (*CatalogService, *store.PhotoStore, *memBlobStore) {
	t.Helper()
	d, err := db.OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	photos := store.NewPhotoStore(d)
	blobs := newMemBlobStore()
	return NewCatalogService(photos, blobs, slog.Default()), photos, blobs
}

func seedCatalogPhoto(t *testing.T, photos *store.PhotoStore, name, key string, thumbKey *string, available bool) *domain.Photo {
	t.Helper()
	photo := &domain.Photo{
		ID:           uuid.NewString(),
		Name:         name,
		StorageKey:   key,
		ThumbnailKey: thumbKey,
		Available:    available,
	}
	require.NoError(t, photos.Create(context.Background(), photo))
	return photo
}

func TestListAvailableExcludesUnavailable(t *testing.T) {
	svc, photos, _ := newCatalogService(t)
	ctx := context.Background()

	seedCatalogPhoto(t, photos, "sunset", "photos/sunset.jpg", nil, true)
	seedCatalogPhoto(t, photos, "hidden", "photos/hidden.jpg", nil, false)

	list, total, err := svc.ListAvailable(ctx, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, list, 1)
	assert.Equal(t, "sunset", list[0].Name)
}

func TestListAvailableClampsPaging(t *testing.T) {
	svc, photos, _ := newCatalogService(t)
	ctx := context.Background()

	seedCatalogPhoto(t, photos, "sunset", "photos/sunset.jpg", nil, true)

	list, total, err := svc.ListAvailable(ctx, -5, -10)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, list, 1)
}

func TestPhotoContentOriginal(t *testing.T) {
	svc, photos, blobs := newCatalogService(t)
	ctx := context.Background()

	photo := seedCatalogPhoto(t, photos, "sunset", "photos/sunset.png", nil, true)
	require.NoError(t, blobs.Put(ctx, "photos/sunset.png", bytes.NewReader([]byte("png-bytes"))))

	data, contentType, err := svc.PhotoContent(ctx, photo.ID, VariantOriginal)
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)
	assert.Equal(t, "image/png", contentType)
}

func TestPhotoContentThumbnail(t *testing.T) {
	svc, photos, blobs := newCatalogService(t)
	ctx := context.Background()

	thumb := "thumbs/sunset.webp"
	photo := seedCatalogPhoto(t, photos, "sunset", "photos/sunset.jpg", &thumb, true)
	require.NoError(t, blobs.Put(ctx, "photos/sunset.jpg", bytes.NewReader([]byte("original"))))
	require.NoError(t, blobs.Put(ctx, thumb, bytes.NewReader([]byte("thumb"))))

	data, contentType, err := svc.PhotoContent(ctx, photo.ID, VariantThumbnail)
	require.NoError(t, err)
	assert.Equal(t, []byte("thumb"), data)
	assert.Equal(t, "image/webp", contentType)
}

func TestPhotoContentThumbnailFallsBackToOriginal(t *testing.T) {
	svc, photos, blobs := newCatalogService(t)
	ctx := context.Background()

	// The thumbnail key is recorded but its object was never uploaded.
	thumb := "thumbs/sunset.webp"
	photo := seedCatalogPhoto(t, photos, "sunset", "photos/sunset.jpg", &thumb, true)
	require.NoError(t, blobs.Put(ctx, "photos/sunset.jpg", bytes.NewReader([]byte("original"))))

	data, contentType, err := svc.PhotoContent(ctx, photo.ID, VariantThumbnail)
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), data)
	// Content type must match the bytes actually served, not the thumb key.
	assert.Equal(t, "image/jpeg", contentType)
}

func TestPhotoContentMissingEverywhere(t *testing.T) {
	svc, photos, _ := newCatalogService(t)
	ctx := context.Background()

	photo := seedCatalogPhoto(t, photos, "sunset", "photos/sunset.jpg", nil, true)

	_, _, err := svc.PhotoContent(ctx, photo.ID, VariantOriginal)
	assert.ErrorIs(t, err, domain.ErrPhotoNotFound)

	_, _, err = svc.PhotoContent(ctx, "no-such-photo", VariantOriginal)
	assert.ErrorIs(t, err, domain.ErrPhotoNotFound)
}

func TestMimeForKey(t *testing.T) {
	assert.Equal(t, "image/jpeg", mimeForKey("photos/a.JPG"))
	assert.Equal(t, "image/jpeg", mimeForKey("photos/a.jpeg"))
	assert.Equal(t, "image/heic", mimeForKey("a.heic"))
	assert.Equal(t, "application/octet-stream", mimeForKey("photos/raw.cr2"))
	assert.Equal(t, "application/octet-stream", mimeForKey("noextension"))
}

func TestOrderNumberFormat(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		n := newOrderNumber()
		assert.Regexp(t, orderNumberPattern, n)
		seen[n] = true
	}
	// Random suffixes make repeats within one millisecond overwhelmingly unlikely.
	assert.Greater(t, len(seen), 45)
}
