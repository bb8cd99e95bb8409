package gcs

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	"github.com/jhoicas/inventario-tracker/internal/domain"
	"github.com/jhoicas/inventario-tracker/pkg/config"
)

type recorded struct {
	method string
	path   string
	body   string
}

func fakeGCS(t *testing.T, deleteStatus int) (*ImageStorage, *[]recorded) {
	t.Helper()
	var mu sync.Mutex
	calls := []recorded{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		mu.Lock()
		calls = append(calls, recorded{method: r.Method, path: r.URL.Path, body: string(b)})
		mu.Unlock()

		switch r.Method {
		case http.MethodPost:
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"name":"productos/1_a.png","bucket":"imagenes"}`))
		case http.MethodDelete:
			w.WriteHeader(deleteStatus)
			if deleteStatus >= 400 {
				_, _ = fmt.Fprintf(w, `{"error":{"code":%d,"message":"rechazado"}}`, deleteStatus)
			}
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))
	t.Cleanup(srv.Close)

	s, err := NewImageStorage(context.Background(),
		config.GCSConfig{Bucket: "imagenes", PublicBaseURL: "https://cdn.test/"},
		option.WithEndpoint(srv.URL+"/storage/v1/"),
		option.WithoutAuthentication(),
		option.WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)
	return s, &calls
}

func TestUpload(t *testing.T) {
	s, calls := fakeGCS(t, http.StatusNoContent)

	stored, err := s.Upload(context.Background(), "productos/1_a.png", "image/png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "productos/1_a.png", stored.Object)
	assert.Equal(t, "https://cdn.test/imagenes/productos/1_a.png", stored.URL)

	require.Len(t, *calls, 1)
	c := (*calls)[0]
	assert.Equal(t, http.MethodPost, c.method)
	assert.True(t, strings.HasSuffix(c.path, "/b/imagenes/o"), c.path)
	assert.Contains(t, c.body, "png-bytes")
}

func TestDelete(t *testing.T) {
	s, calls := fakeGCS(t, http.StatusNoContent)

	require.NoError(t, s.Delete(context.Background(), "productos/1_a.png"))
	require.Len(t, *calls, 1)
	assert.Equal(t, http.MethodDelete, (*calls)[0].method)
	assert.Equal(t, "/storage/v1/b/imagenes/o/productos/1_a.png", (*calls)[0].path)
}

func TestDelete_ObjetoInexistente(t *testing.T) {
	s, _ := fakeGCS(t, http.StatusNotFound)

	assert.NoError(t, s.Delete(context.Background(), "productos/x.png"))
}

func TestDelete_ErrorDeAlmacenamiento(t *testing.T) {
	s, _ := fakeGCS(t, http.StatusForbidden)

	err := s.Delete(context.Background(), "productos/x.png")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStorage)
}

func TestNewImageStorage_SinBucket(t *testing.T) {
	_, err := NewImageStorage(context.Background(), config.GCSConfig{})
	assert.Error(t, err)
}
