package file

import (
	"path/filepath"
	"strings"
	"time"
)

// AnonymousOwner is the namespace used when a request carries no identity
const AnonymousOwner = "anonymous"

// Namespace is the private directory owned by one identity
type Namespace struct {
	Owner string
	Dir   string
}

// Descriptor represents a single file inside a namespace. It is built from
// filesystem metadata on every listing and never persisted.
type Descriptor struct {
	Name       string    `json:"name"`
	Path       string    `json:"path"`
	CreatedAt  time.Time `json:"createdAt"`
	ModifiedAt time.Time `json:"modifiedAt"`
	Size       int64     `json:"size"`
	UploadedBy string    `json:"uploadedBy"`
	EditedBy   string    `json:"editedBy"`
}

// Extension returns the lowercased suffix of the file name, including the dot
func (d Descriptor) Extension() string {
	return Extension(d.Name)
}

// Extension returns the lowercased extension of name, e.g. ".jpg"
func Extension(name string) string {
	return strings.ToLower(filepath.Ext(name))
}

// Listing is the result of the listing pipeline together with the
// sort and filter values that were actually applied
type Listing struct {
	Sort   SortKey      `json:"sort"`
	Filter FilterKey    `json:"filter"`
	Files  []Descriptor `json:"files"`
}

// UploadResult describes a stored upload
type UploadResult struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// DeleteRequest represents a request to delete a file
type DeleteRequest struct {
	Name string `json:"name"`
}

// PreviewType tells the client how to render a preview
type PreviewType string

const (
	PreviewImage       PreviewType = "image"
	PreviewText        PreviewType = "text"
	PreviewUnsupported PreviewType = "unsupported"
)

// Preview is the payload returned for inline previews. Only the fields
// relevant to Type are populated.
type Preview struct {
	Type   PreviewType
	Base64 string
	Mime   string
	Text   string
}
