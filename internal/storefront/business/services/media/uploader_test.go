package media_test

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

	"storefront_api/config/values"
	"storefront_api/internal/storefront/business/errs"
	"storefront_api/internal/storefront/business/services/media"
	"storefront_api/internal/storefront/pkg/clients"
)

// disposableServer fakes the remote product resource for the two-phase
// upload: creates get an id and an asset object, deletes are recorded,
// gets report whether the resource still exists.
type disposableServer struct {
	mu        sync.Mutex
	nextID    int
	existing  map[int]bool
	deleted   []int
	assetURL  string // returned on create; empty simulates a useless response
	failOn    string // "create" or "delete"
	lastForm  map[string]string
	imageKeys []string
}

func newDisposableServer() *disposableServer {
	return &disposableServer{nextID: 100, existing: map[int]bool{}, assetURL: "https://cdn.example/tmp.jpg"}
}

func (s *disposableServer) handler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()

		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/product":
			if s.failOn == "create" {
				http.Error(w, `{"error":"create failed"}`, http.StatusInternalServerError)
				return
			}
			require.NoError(t, r.ParseMultipartForm(1<<20))
			s.lastForm = map[string]string{}
			for k, v := range r.MultipartForm.Value {
				s.lastForm[k] = v[0]
			}
			s.imageKeys = nil
			for k := range r.MultipartForm.File {
				s.imageKeys = append(s.imageKeys, k)
			}
			s.nextID++
			s.existing[s.nextID] = true
			var asset string
			if s.assetURL != "" {
				asset = fmt.Sprintf(`{"url": %q, "path": "/vault/tmp.jpg", "name": "tmp.jpg", "type": "image", "size": 3, "mime": "image/jpeg", "meta": {"width": 1, "height": 1}}`, s.assetURL)
			} else {
				asset = `{"url": "", "path": ""}`
			}
			fmt.Fprintf(w, `{"id": %d, "name": "TEMP", "price": 1, "stock": 1, "image": %s}`, s.nextID, asset)

		case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/product/"):
			if s.failOn == "delete" {
				http.Error(w, `{"error":"delete failed"}`, http.StatusInternalServerError)
				return
			}
			var id int
			fmt.Sscanf(r.URL.Path, "/product/%d", &id)
			delete(s.existing, id)
			s.deleted = append(s.deleted, id)
			w.Write([]byte(`{}`))

		case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/product/"):
			var id int
			fmt.Sscanf(r.URL.Path, "/product/%d", &id)
			if !s.existing[id] {
				http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
				return
			}
			fmt.Fprintf(w, `{"id": %d, "name": "TEMP", "price": 1, "stock": 1}`, id)

		default:
			http.Error(w, "unexpected call", http.StatusTeapot)
		}
	})
}

func payload() media.ImagePayload {
	return media.ImagePayload{FileName: "new.jpg", Mime: "image/jpeg", Data: []byte{1, 2, 3}}
}

func newUploader(url string) (*media.Uploader, *clients.ProductClient) {
	client := clients.NewProductClient(url, io.Discard, nil)
	return media.NewUploader(client, values.Defaults(), io.Discard), client
}

func TestUpload_ReturnsDescriptorAndCleansUp(t *testing.T) {
	fake := newDisposableServer()
	server := httptest.NewServer(fake.handler(t))
	defer server.Close()

	uploader, client := newUploader(server.URL)

	descriptor, err := uploader.Upload(context.Background(), payload(), "kitchen")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/tmp.jpg", descriptor.URL)
	assert.Equal(t, "image/jpeg", descriptor.Mime)
	assert.Equal(t, 1, descriptor.Width)

	// the disposable resource is gone: a subsequent get is a 404
	require.Len(t, fake.deleted, 1)
	_, err = client.Get(context.Background(), fake.deleted[0])
	var rerr *errs.RemoteError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, http.StatusNotFound, rerr.Status)

	// placeholder fields plus the caller's category; all three image slots filled
	assert.Equal(t, "kitchen", fake.lastForm["category"])
	assert.Contains(t, fake.lastForm["name"], "TEMP_")
	assert.ElementsMatch(t, []string{"image", "image2", "image3"}, fake.imageKeys)
}

func TestUpload_NoAssetReturnedStillCleansUp(t *testing.T) {
	fake := newDisposableServer()
	fake.assetURL = ""
	server := httptest.NewServer(fake.handler(t))
	defer server.Close()

	uploader, _ := newUploader(server.URL)

	_, err := uploader.Upload(context.Background(), payload(), "")
	require.ErrorIs(t, err, errs.ErrNoAssetReturned)
	assert.Len(t, fake.deleted, 1)
}

func TestUpload_CreateFailureAborts(t *testing.T) {
	fake := newDisposableServer()
	fake.failOn = "create"
	server := httptest.NewServer(fake.handler(t))
	defer server.Close()

	uploader, _ := newUploader(server.URL)

	_, err := uploader.Upload(context.Background(), payload(), "")
	var rerr *errs.RemoteError
	require.ErrorAs(t, err, &rerr)
	assert.Empty(t, fake.deleted)
}

func TestUpload_CleanupFailureIsNotPropagated(t *testing.T) {
	fake := newDisposableServer()
	fake.failOn = "delete"
	server := httptest.NewServer(fake.handler(t))
	defer server.Close()

	uploader, _ := newUploader(server.URL)

	descriptor, err := uploader.Upload(context.Background(), payload(), "")
	require.NoError(t, err)
	assert.NotEmpty(t, descriptor.URL)
}

func TestUpload_EmptyPayloadRejected(t *testing.T) {
	uploader, _ := newUploader("http://unused.invalid")

	_, err := uploader.Upload(context.Background(), media.ImagePayload{}, "")
	var verr *errs.ValidationError
	require.ErrorAs(t, err, &verr)
}
