// Package models defines the catalog data model: plate records and their
// per-record view-transform state.
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/platekeeper/platekeeper/internal/common"
)

// Category classifies a plate record.
type Category string

const (
	CategoryCar        Category = "car"
	CategoryMotorcycle Category = "motorcycle"
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	return c == CategoryCar || c == CategoryMotorcycle
}

// ParseCategory converts user input into a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: unknown category %q", common.ErrValidation, s)
	}
	return c, nil
}

// PlateRecord is one catalog entry: a plate plus its photo pointers.
//
// Storage pointers:
//   - LocalPath is the canonical file written at save time.
//   - CloudKey is the opaque remote object key, empty until an upload
//     succeeds and never reassigned afterwards (except on hard delete).
//   - CachePath is populated only by a successful cloud-fallback fetch.
//     It is a weak reference: the file may be evicted and re-fetched, losing
//     it is never data loss.
type PlateRecord struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Plate     string    `json:"plate"`
	Category  Category  `json:"category"`
	ViewCount int64     `json:"view_count"`
	LocalPath string    `json:"local_path,omitempty"`
	CloudKey  string    `json:"cloud_key,omitempty"`
	CachePath string    `json:"cache_path,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewPlateRecord validates the required creation fields and returns a record
// with a fresh id and UTC timestamps. Storage pointers start empty and are
// filled in by the persistence layer.
func NewPlateRecord(title, plate string, category Category) (*PlateRecord, error) {
	title = strings.TrimSpace(title)
	plate = strings.TrimSpace(plate)

	if title == "" {
		return nil, fmt.Errorf("%w: title is required", common.ErrValidation)
	}
	if plate == "" {
		return nil, fmt.Errorf("%w: plate is required", common.ErrValidation)
	}
	if !category.Valid() {
		return nil, fmt.Errorf("%w: unknown category %q", common.ErrValidation, string(category))
	}

	now := time.Now().UTC()
	return &PlateRecord{
		ID:        uuid.NewString(),
		Title:     title,
		Plate:     plate,
		Category:  category,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Viewable reports whether any tier can still produce this record's image.
// A record with neither a local nor a cloud pointer has lost its photo; a
// completed save must never leave a record in that state.
func (r *PlateRecord) Viewable() bool {
	return r.LocalPath != "" || r.CloudKey != ""
}
