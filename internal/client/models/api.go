// Package models defines the client-side data model of the roomadmin back
// office: the REST envelope, rooms and their images, amenities, time slots,
// bookings, schedule types and auth tokens.
package models

import (
	"encoding/json"
	"net/url"
	"strconv"
)

// Response is the envelope every backend endpoint answers with.
type Response[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Message string `json:"message"`
	Errors  string `json:"errors,omitempty"`
}

// Page is the paged form of list data.
type Page[T any] struct {
	Content       []T  `json:"content"`
	TotalElements int  `json:"totalElements"`
	TotalPages    int  `json:"totalPages"`
	First         bool `json:"first"`
	Last          bool `json:"last"`
}

// Pagination is the common list query.
type Pagination struct {
	Page    int
	Limit   int
	SortDir string
}

// Query encodes p, leaving out zero values.
func (p Pagination) Query() url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	setIf(q, "sortDir", p.SortDir)
	return q
}

func setIf(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}

// DecodeList accepts list data that is either a Page or a bare JSON array,
// both of which the backend returns depending on the endpoint.
func DecodeList[T any](raw json.RawMessage) (Page[T], error) {
	var page Page[T]
	if len(raw) == 0 || string(raw) == "null" {
		return page, nil
	}
	if raw[0] == '[' {
		if err := json.Unmarshal(raw, &page.Content); err != nil {
			return page, err
		}
		page.TotalElements = len(page.Content)
		page.TotalPages = 1
		page.First, page.Last = true, true
		return page, nil
	}
	err := json.Unmarshal(raw, &page)
	return page, err
}
