package models

import "time"

type AmenityCategory struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type Amenity struct {
	ID          string           `json:"id,omitempty"`
	Name        string           `json:"name"`
	Icon        string           `json:"icon,omitempty"`
	Description string           `json:"description,omitempty"`
	CategoryID  string           `json:"categoryId,omitempty"`
	Category    *AmenityCategory `json:"category,omitempty"`
	IsDeleted   bool             `json:"isDeleted,omitempty"`
	CreatedAt   *time.Time       `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time       `json:"updatedAt,omitempty"`
}

// ScheduleType is a kind of schedule shown to guests. Image is the hosted
// image URL; a replacement image is sent separately as a file.
type ScheduleType struct {
	ID          string     `json:"id,omitempty"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Image       string     `json:"image,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}
