package models

import (
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// LocalIDPrefix marks IDs of images that exist only on the client.
const LocalIDPrefix = "local-"

// RoomImage is an image persisted on a room.
type RoomImage struct {
	ID        string     `json:"id"`
	URL       string     `json:"url"`
	IsDeleted bool       `json:"isDeleted,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// LocalFile is a staged file payload held in memory until it is uploaded.
type LocalFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// LoadLocalFile reads the file at path. The content type is taken from the
// extension and falls back to sniffing the first bytes.
func LoadLocalFile(path string) (*LocalFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}

	ct := mime.TypeByExtension(filepath.Ext(path))
	if ct == "" {
		ct = http.DetectContentType(data)
	}

	return &LocalFile{Name: filepath.Base(path), ContentType: ct, Data: data}, nil
}

// ImageRef is one entry of the editable image set of a room.
//
// IsLocal images are staged on the client and carry File; the others are
// already persisted and are identified by ID.
type ImageRef struct {
	ID      string
	URL     string
	IsLocal bool
	File    *LocalFile
}

// NewLocalImage stages f under a fresh client-only ID.
func NewLocalImage(f *LocalFile) ImageRef {
	return ImageRef{ID: LocalIDPrefix + uuid.NewString(), IsLocal: true, File: f}
}

// PersistedImages turns the images stored on a room into ImageRefs.
func PersistedImages(images []RoomImage) []ImageRef {
	refs := make([]ImageRef, 0, len(images))
	for _, img := range images {
		refs = append(refs, ImageRef{ID: img.ID, URL: img.URL})
	}
	return refs
}

// OperationOutcome is the result of one upload, link or delete.
type OperationOutcome struct {
	Success bool
	URL     string
	Error   string
}

// SyncResult aggregates every outcome of one image sync.
type SyncResult struct {
	Uploaded  []OperationOutcome
	Added     []OperationOutcome
	Deleted   []OperationOutcome
	HasErrors bool
}

// CountSucceeded returns how many outcomes succeeded.
func CountSucceeded(outcomes []OperationOutcome) int {
	n := 0
	for _, o := range outcomes {
		if o.Success {
			n++
		}
	}
	return n
}

// CountFailed returns how many outcomes failed.
func CountFailed(outcomes []OperationOutcome) int {
	return len(outcomes) - CountSucceeded(outcomes)
}

// ComputeHasErrors reports whether any outcome of r failed.
func (r *SyncResult) ComputeHasErrors() bool {
	return CountFailed(r.Uploaded) > 0 || CountFailed(r.Added) > 0 || CountFailed(r.Deleted) > 0
}
