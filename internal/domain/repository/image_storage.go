package repository

import (
	"context"
	"io"
)

// StoredImage referencia a una imagen subida al almacenamiento de objetos.
type StoredImage struct {
	Object string // nombre del objeto dentro del bucket
	URL    string // URL pública de descarga
}

// ImageStorage define el puerto del almacenamiento de imágenes de producto.
type ImageStorage interface {
	Upload(ctx context.Context, name, contentType string, body io.Reader) (*StoredImage, error)
	Delete(ctx context.Context, object string) error
}
