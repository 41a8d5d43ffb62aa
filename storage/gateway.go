package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sut-badminton/registration/models"
)

var (
	ErrEmptyPayload     = errors.New("file payload is missing")
	ErrNoPublicLocation = errors.New("storage did not return a public URL")
)

// Gateway names and stores uploaded files. Object names are
// "<prefix>_<uuid>.<ext>" so two uploads never overwrite each other.
type Gateway struct {
	uploader FileUploader
	newID    func() string
}

func NewGateway(uploader FileUploader) *Gateway {
	return &Gateway{
		uploader: uploader,
		newID:    func() string { return uuid.NewString() },
	}
}

// ObjectKey builds the storage key for a file uploaded under prefix.
func (g *Gateway) ObjectKey(prefix string, f *models.File) string {
	key := fmt.Sprintf("%s_%s", prefix, g.newID())
	if ext := f.Ext(); ext != "" {
		key += "." + ext
	}
	return key
}

func (g *Gateway) Put(ctx context.Context, prefix string, f *models.File) (*UploadResult, error) {
	if f == nil || f.Body == nil {
		return nil, ErrEmptyPayload
	}

	contentType := f.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	res, err := g.uploader.Upload(ctx, g.ObjectKey(prefix, f), contentType, f.Body)
	if err != nil {
		return nil, err
	}
	if res == nil || res.Location == "" {
		if res != nil && res.Key != "" {
			_ = g.uploader.Delete(ctx, res.Key)
		}
		return nil, ErrNoPublicLocation
	}
	return res, nil
}

// Remove deletes a previously stored object; used to undo uploads when a
// later step of the same operation fails.
func (g *Gateway) Remove(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	return g.uploader.Delete(ctx, key)
}
