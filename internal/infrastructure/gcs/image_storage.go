// Package gcs sube y borra imágenes de producto en un bucket de Google Cloud Storage.
package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	storage "google.golang.org/api/storage/v1"

	"github.com/jhoicas/inventario-tracker/internal/domain"
	"github.com/jhoicas/inventario-tracker/internal/domain/repository"
	"github.com/jhoicas/inventario-tracker/pkg/config"
)

var _ repository.ImageStorage = (*ImageStorage)(nil)

// ImageStorage implementación de repository.ImageStorage sobre la API JSON de Cloud Storage.
type ImageStorage struct {
	svc           *storage.Service
	bucket        string
	publicBaseURL string
}

// NewImageStorage construye el cliente. Con GCS_ENDPOINT y sin credenciales no se autentica
// (emulador local).
func NewImageStorage(ctx context.Context, cfg config.GCSConfig, extra ...option.ClientOption) (*ImageStorage, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("gcs bucket name is required")
	}
	svc, err := storage.NewService(ctx, append(clientOptions(cfg), extra...)...)
	if err != nil {
		return nil, fmt.Errorf("creating storage client: %w", err)
	}
	base := strings.TrimRight(cfg.PublicBaseURL, "/")
	if base == "" {
		base = "https://storage.googleapis.com"
	}
	return &ImageStorage{svc: svc, bucket: cfg.Bucket, publicBaseURL: base}, nil
}

func clientOptions(cfg config.GCSConfig) []option.ClientOption {
	var opts []option.ClientOption
	if strings.TrimSpace(cfg.CredentialsFile) != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	if strings.TrimSpace(cfg.Endpoint) != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
		if cfg.CredentialsFile == "" {
			opts = append(opts, option.WithoutAuthentication())
		}
	}
	return opts
}

// Upload sube el contenido bajo name y devuelve el objeto y su URL pública.
func (s *ImageStorage) Upload(ctx context.Context, name, contentType string, body io.Reader) (*repository.StoredImage, error) {
	obj := &storage.Object{Name: name, ContentType: contentType}
	media := []googleapi.MediaOption{}
	if contentType != "" {
		media = append(media, googleapi.ContentType(contentType))
	}
	res, err := s.svc.Objects.Insert(s.bucket, obj).Media(body, media...).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("gcs upload %s: %w: %w", name, domain.ErrStorage, err)
	}
	object := res.Name
	if object == "" {
		object = name
	}
	return &repository.StoredImage{Object: object, URL: s.PublicURL(object)}, nil
}

// Delete borra el objeto. Un objeto inexistente no es error.
func (s *ImageStorage) Delete(ctx context.Context, object string) error {
	err := s.svc.Objects.Delete(s.bucket, object).Context(ctx).Do()
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && apiErr.Code == 404 {
			return nil
		}
		return fmt.Errorf("gcs delete %s: %w: %w", object, domain.ErrStorage, err)
	}
	return nil
}

// PublicURL arma la URL pública del objeto.
func (s *ImageStorage) PublicURL(object string) string {
	return fmt.Sprintf("%s/%s/%s", s.publicBaseURL, s.bucket, object)
}
