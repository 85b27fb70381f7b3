package request

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strconv"
)

// ImagePart is one image binary going into a multipart product create.
type ImagePart struct {
	FileName string
	Mime     string
	Data     []byte
}

// ProductCreateForm carries the fields of a multipart POST /product. The
// remote service only accepts image binaries through this form; there is
// no standalone upload endpoint.
type ProductCreateForm struct {
	Name        string
	Description string
	Price       float64
	Stock       int
	Category    string
	Images      []ImagePart // form fields image, image2, image3 in order
}

var imageFields = []string{"image", "image2", "image3"}

// CreateRequestBody renders the form into a multipart body and returns it
// with its content type.
func (f *ProductCreateForm) CreateRequestBody() (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	fields := map[string]string{
		"name":        f.Name,
		"description": f.Description,
		"price":       strconv.FormatFloat(f.Price, 'f', -1, 64),
		"stock":       strconv.Itoa(f.Stock),
		"category":    f.Category,
	}
	for field, value := range fields {
		if err := writer.WriteField(field, value); err != nil {
			return nil, "", fmt.Errorf("writing field %s: %w", field, err)
		}
	}

	if len(f.Images) > len(imageFields) {
		return nil, "", fmt.Errorf("at most %d images are accepted, got %d", len(imageFields), len(f.Images))
	}
	for i, img := range f.Images {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name=%q; filename=%q`, imageFields[i], img.FileName))
		header.Set("Content-Type", img.Mime)
		part, err := writer.CreatePart(header)
		if err != nil {
			return nil, "", fmt.Errorf("creating part %s: %w", imageFields[i], err)
		}
		if _, err := part.Write(img.Data); err != nil {
			return nil, "", fmt.Errorf("writing part %s: %w", imageFields[i], err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return body, writer.FormDataContentType(), nil
}

// ImageUpdateData is the hosted-asset shape a PATCH /product expects for
// an image slot: the descriptor previously returned by the storage, not a
// binary.
type ImageUpdateData struct {
	Path string          `json:"path"`
	Name string          `json:"name"`
	Type string          `json:"type"`
	Size int             `json:"size"`
	Mime string          `json:"mime"`
	URL  string          `json:"url"`
	Meta ImageMetaUpdate `json:"meta"`
}

type ImageMetaUpdate struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ProductUpdateRequest is the JSON PATCH body. Nil image slots leave the
// stored asset untouched.
type ProductUpdateRequest struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       float64          `json:"price"`
	Stock       int              `json:"stock"`
	Category    string           `json:"category"`
	Image       *ImageUpdateData `json:"image,omitempty"`
	Image2      *ImageUpdateData `json:"image2,omitempty"`
	Image3      *ImageUpdateData `json:"image3,omitempty"`
}
