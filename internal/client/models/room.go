package models

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

type RoomType string

const (
	RoomTypeNormal   RoomType = "NORMAL"
	RoomTypeStandard RoomType = "STANDARD"
	RoomTypeVIP      RoomType = "VIP"
	RoomTypePremium  RoomType = "PREMIUM"
)

// Room is the read model returned by the rooms endpoints.
type Room struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Description   string        `json:"description,omitempty"`
	Capacity      int           `json:"capacity,omitempty"`
	Bed           int           `json:"bed,omitempty"`
	Area          float64       `json:"area,omitempty"`
	Images        []RoomImage   `json:"images,omitempty"`
	IsActive      bool          `json:"isActive"`
	Amenities     []RoomAmenity `json:"amenities,omitempty"`
	HourlyRate    float64       `json:"hourlyRate,omitempty"`
	OvernightRate float64       `json:"overnightRate,omitempty"`
	RoomType      RoomType      `json:"roomType,omitempty"`
	IsDeleted     bool          `json:"isDeleted,omitempty"`
	CreatedAt     *time.Time    `json:"createdAt,omitempty"`
	UpdatedAt     *time.Time    `json:"updatedAt,omitempty"`
}

// AmenityIDs lists the IDs of the amenities attached to r.
func (r *Room) AmenityIDs() []string {
	ids := make([]string, 0, len(r.Amenities))
	for _, a := range r.Amenities {
		ids = append(ids, a.ID)
	}
	return ids
}

// RoomAmenity is an amenity as embedded in a room.
type RoomAmenity struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Icon        string `json:"icon,omitempty"`
	Description string `json:"description,omitempty"`
	IsHighlight bool   `json:"isHighlight,omitempty"`
}

// ImageURL is the image shape accepted when creating a room.
type ImageURL struct {
	URL string `json:"url"`
}

// RoomDraft is the write model for creating and updating rooms.
type RoomDraft struct {
	ID            string     `json:"id,omitempty"`
	Name          string     `json:"name"`
	Description   string     `json:"description,omitempty"`
	Capacity      int        `json:"capacity,omitempty"`
	NumberOfBeds  int        `json:"numberOfBeds,omitempty"`
	Area          float64    `json:"area,omitempty"`
	Images        []ImageURL `json:"images,omitempty"`
	IsActive      bool       `json:"isActive"`
	AmenityIDs    []string   `json:"amenityIds"`
	HourlyRate    float64    `json:"hourlyRate,omitempty"`
	OvernightRate float64    `json:"overnightRate,omitempty"`
	RoomType      RoomType   `json:"roomType,omitempty"`
}

// AmenityAssignment attaches one amenity to a room.
type AmenityAssignment struct {
	AmenityID   string `json:"amenityId"`
	IsHighlight bool   `json:"isHighlight"`
}

// RoomListParams filters the rooms list. Zero values are not sent.
type RoomListParams struct {
	Pagination
	Search            string
	City              string
	AmenityIDs        []string
	AmenityCategoryID string
	Rating            int
	Status            string
	MinPrice          float64
	MaxPrice          float64
}

// Query encodes p as URL query values, leaving out zero values. AmenityIDs
// are sent comma-joined.
func (p RoomListParams) Query() url.Values {
	q := p.Pagination.Query()
	setIf(q, "search", p.Search)
	setIf(q, "city", p.City)
	if len(p.AmenityIDs) > 0 {
		q.Set("amenityIds", strings.Join(p.AmenityIDs, ","))
	}
	setIf(q, "amenityCategoryId", p.AmenityCategoryID)
	if p.Rating > 0 {
		q.Set("rating", strconv.Itoa(p.Rating))
	}
	setIf(q, "status", p.Status)
	if p.MinPrice > 0 {
		q.Set("minPrice", strconv.FormatFloat(p.MinPrice, 'f', -1, 64))
	}
	if p.MaxPrice > 0 {
		q.Set("maxPrice", strconv.FormatFloat(p.MaxPrice, 'f', -1, 64))
	}
	return q
}
