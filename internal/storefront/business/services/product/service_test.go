package product_test

import (
	"context"
	"encoding/json"
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
	"storefront_api/internal/storefront/business/models"
	"storefront_api/internal/storefront/business/models/dto/request"
	"storefront_api/internal/storefront/business/services/media"
	"storefront_api/internal/storefront/business/services/product"
	"storefront_api/internal/storefront/pkg/clients"
	"storefront_api/pkg/business/service"
)

type memCache struct {
	mu       sync.Mutex
	products map[string]models.Product
	deleted  []string
}

func newMemCache() *memCache {
	return &memCache{products: map[string]models.Product{}}
}

func (m *memCache) Upsert(_ context.Context, p models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[p.ID] = p
	return nil
}

func (m *memCache) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.products, id)
	m.deleted = append(m.deleted, id)
	return nil
}

// productBackend fakes the remote product resource. Multipart creates
// echo the submitted fields back with a hosted asset per image slot;
// patches echo the JSON body; deletes are recorded.
type productBackend struct {
	mu       sync.Mutex
	nextID   int
	created  []string // names, in create order
	deleted  []int
	patched  []request.ProductUpdateRequest
	patchIDs []int
}

func (b *productBackend) handler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()

		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/product":
			require.NoError(t, r.ParseMultipartForm(1<<20))
			name := r.MultipartForm.Value["name"][0]
			b.nextID++
			b.created = append(b.created, name)
			images := make([]string, 0, 3)
			for _, field := range []string{"image", "image2", "image3"} {
				if files := r.MultipartForm.File[field]; len(files) > 0 {
					asset := fmt.Sprintf(
						`{"url": "https://cdn.example/%s", "path": "/vault/%s", "name": %q, "mime": %q, "size": 3, "meta": {"width": 2, "height": 2}}`,
						files[0].Filename, files[0].Filename, files[0].Filename, files[0].Header.Get("Content-Type"))
					images = append(images, asset)
				} else {
					images = append(images, "null")
				}
			}
			fmt.Fprintf(w, `{"id": %d, "name": %q, "description": %q, "price": %s, "stock": %s, "category": %q, "image": %s, "image2": %s, "image3": %s}`,
				b.nextID, name, r.MultipartForm.Value["description"][0],
				r.MultipartForm.Value["price"][0], r.MultipartForm.Value["stock"][0],
				r.MultipartForm.Value["category"][0], images[0], images[1], images[2])

		case r.Method == http.MethodPatch && strings.HasPrefix(r.URL.Path, "/product/"):
			var id int
			fmt.Sscanf(r.URL.Path, "/product/%d", &id)
			var req request.ProductUpdateRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			b.patched = append(b.patched, req)
			b.patchIDs = append(b.patchIDs, id)
			image := "null"
			if req.Image != nil {
				image = fmt.Sprintf(`{"url": %q, "path": %q}`, req.Image.URL, req.Image.Path)
			}
			fmt.Fprintf(w, `{"id": %d, "name": %q, "description": %q, "price": %g, "stock": %d, "category": %q, "image": %s}`,
				id, req.Name, req.Description, req.Price, req.Stock, req.Category, image)

		case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/product/"):
			var id int
			fmt.Sscanf(r.URL.Path, "/product/%d", &id)
			b.deleted = append(b.deleted, id)
			w.Write([]byte(`{}`))

		default:
			http.Error(w, "unexpected call", http.StatusTeapot)
		}
	})
}

func newService(url string, cache product.Cache) *product.Service {
	client := clients.NewProductClient(url, io.Discard, nil)
	uploader := media.NewUploader(client, values.Defaults(), io.Discard)
	return product.NewService(client, cache, uploader, service.NewTextService(), io.Discard)
}

func part(name string) request.ImagePart {
	return request.ImagePart{FileName: name, Mime: "image/jpeg", Data: []byte{1, 2, 3}}
}

func TestCreate_PostsMultipartAndCaches(t *testing.T) {
	backend := &productBackend{}
	server := httptest.NewServer(backend.handler(t))
	defer server.Close()

	cache := newMemCache()
	svc := newService(server.URL, cache)

	in := product.Input{Name: "<b>Mate</b> cup", Description: "ceramic", Price: 4990, Stock: 12, Category: "kitchen"}
	created, err := svc.Create(context.Background(), in, []request.ImagePart{part("front.jpg"), part("side.jpg")})
	require.NoError(t, err)

	assert.Equal(t, "Mate cup", created.Name)
	assert.Equal(t, "https://cdn.example/front.jpg", created.Image)
	assert.Equal(t, "https://cdn.example/side.jpg", created.Image2)
	assert.Equal(t, "", created.Image3)

	cached, ok := cache.products[created.ID]
	require.True(t, ok)
	assert.Equal(t, "Mate cup", cached.Name)
	assert.Equal(t, []string{"Mate cup"}, backend.created)
}

func TestCreate_RejectsBadInput(t *testing.T) {
	svc := newService("http://unused.invalid", newMemCache())
	ctx := context.Background()

	cases := []struct {
		name   string
		input  product.Input
		images []request.ImagePart
		field  string
	}{
		{"empty name", product.Input{}, []request.ImagePart{part("a.jpg")}, "name"},
		{"negative price", product.Input{Name: "x", Price: -1}, []request.ImagePart{part("a.jpg")}, "price"},
		{"negative stock", product.Input{Name: "x", Stock: -1}, []request.ImagePart{part("a.jpg")}, "stock"},
		{"no images", product.Input{Name: "x"}, nil, "images"},
		{"too many images", product.Input{Name: "x"}, []request.ImagePart{part("a"), part("b"), part("c"), part("d")}, "images"},
		{"empty image", product.Input{Name: "x"}, []request.ImagePart{{FileName: "a.jpg"}}, "images"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tc.input, tc.images)
			var verr *errs.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestUpdate_ReplacedImageGoesThroughDisposableProduct(t *testing.T) {
	backend := &productBackend{nextID: 100}
	server := httptest.NewServer(backend.handler(t))
	defer server.Close()

	cache := newMemCache()
	svc := newService(server.URL, cache)

	in := product.Input{Name: "Mate cup", Description: "ceramic", Price: 5990, Stock: 10, Category: "kitchen"}
	images := [3]*media.ImagePayload{
		{FileName: "new-front.jpg", Mime: "image/jpeg", Data: []byte{9}},
		nil,
		nil,
	}
	updated, err := svc.Update(context.Background(), 42, in, images)
	require.NoError(t, err)

	// one disposable create carried the binary, and it was deleted again
	require.Len(t, backend.created, 1)
	assert.Contains(t, backend.created[0], "TEMP_")
	assert.Equal(t, []int{101}, backend.deleted)

	// the PATCH carried the hosted descriptor, not the binary
	require.Len(t, backend.patched, 1)
	assert.Equal(t, []int{42}, backend.patchIDs)
	patch := backend.patched[0]
	require.NotNil(t, patch.Image)
	assert.Equal(t, "https://cdn.example/new-front.jpg", patch.Image.URL)
	assert.Equal(t, 2, patch.Image.Meta.Width)
	assert.Nil(t, patch.Image2)
	assert.Nil(t, patch.Image3)

	assert.Equal(t, "https://cdn.example/new-front.jpg", updated.Image)
	_, ok := cache.products["42"]
	assert.True(t, ok)
}

func TestUpdate_NoImagesPatchesTextOnly(t *testing.T) {
	backend := &productBackend{}
	server := httptest.NewServer(backend.handler(t))
	defer server.Close()

	svc := newService(server.URL, newMemCache())

	in := product.Input{Name: "Poncho", Price: 15990, Stock: 3, Category: "clothing"}
	_, err := svc.Update(context.Background(), 7, in, [3]*media.ImagePayload{})
	require.NoError(t, err)

	assert.Empty(t, backend.created)
	assert.Empty(t, backend.deleted)
	require.Len(t, backend.patched, 1)
	assert.Nil(t, backend.patched[0].Image)
}

func TestDelete_EvictsCache(t *testing.T) {
	backend := &productBackend{}
	server := httptest.NewServer(backend.handler(t))
	defer server.Close()

	cache := newMemCache()
	cache.products["42"] = models.Product{ID: "42", Name: "Mate cup"}
	svc := newService(server.URL, cache)

	require.NoError(t, svc.Delete(context.Background(), 42))
	assert.Equal(t, []int{42}, backend.deleted)
	assert.Equal(t, []string{"42"}, cache.deleted)
	assert.Empty(t, cache.products)
}
