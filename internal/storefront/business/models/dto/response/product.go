package response

// RemoteImage is the storage object the remote service nests into a
// product for each hosted image.
type RemoteImage struct {
	Access string     `json:"access"`
	Path   string     `json:"path"`
	Name   string     `json:"name"`
	Type   string     `json:"type"`
	Size   int        `json:"size"`
	Mime   string     `json:"mime"`
	Meta   *ImageMeta `json:"meta"`
	URL    string     `json:"url"`
}

type ImageMeta struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ImageURL resolves a nilable image object into a plain URL. Absence of
// both url and path yields an empty string, never an error.
func (ri *RemoteImage) ImageURL() string {
	if ri == nil {
		return ""
	}
	if ri.URL != "" {
		return ri.URL
	}
	return ri.Path
}

type ProductResponse struct {
	ID          int          `json:"id"`
	CreatedAt   int64        `json:"created_at"`
	UpdatedAt   int64        `json:"updated_at"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Price       float64      `json:"price"`
	Stock       int          `json:"stock"`
	Category    string       `json:"category"`
	IsDeleted   bool         `json:"is_deleted"`
	Image       *RemoteImage `json:"image"`
	Image2      *RemoteImage `json:"image2"`
	Image3      *RemoteImage `json:"image3"`
}
