package service

import "context"

// PictureStore abstracts the blob storage holding uploaded profile pictures.
// Keys are filenames recorded on the user row; contents are raw image bytes.
type PictureStore interface {
	// Save writes the picture bytes under the given key, overwriting any
	// previous content.
	Save(ctx context.Context, key string, data []byte) error

	// Load reads the picture bytes stored under the given key.
	Load(ctx context.Context, key string) ([]byte, error)
}
