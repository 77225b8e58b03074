package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/roomadmin/internal/client/models"
)

func (c *HTTPClient) ListAmenities(ctx context.Context) ([]models.Amenity, error) {
	var raw json.RawMessage
	if err := c.do(ctx, &request{method: http.MethodGet, path: "amenities"}, &raw); err != nil {
		return nil, err
	}
	page, err := models.DecodeList[models.Amenity](raw)
	if err != nil {
		return nil, fmt.Errorf("decode amenities: %w", err)
	}
	return page.Content, nil
}

func (c *HTTPClient) GetAmenity(ctx context.Context, id string) (*models.Amenity, error) {
	var a models.Amenity
	if err := c.do(ctx, &request{method: http.MethodGet, path: "amenities/" + url.PathEscape(id)}, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

type amenityPayload struct {
	Name        string `json:"name"`
	Icon        string `json:"icon,omitempty"`
	Description string `json:"description,omitempty"`
	CategoryID  string `json:"categoryId,omitempty"`
}

func newAmenityPayload(a models.Amenity) amenityPayload {
	p := amenityPayload{Name: a.Name, Icon: a.Icon, Description: a.Description, CategoryID: a.CategoryID}
	if p.CategoryID == "" && a.Category != nil {
		p.CategoryID = a.Category.ID
	}
	return p
}

func (c *HTTPClient) CreateAmenity(ctx context.Context, a models.Amenity) (*models.Amenity, error) {
	return c.writeAmenity(ctx, http.MethodPost, "amenities", a)
}

func (c *HTTPClient) UpdateAmenity(ctx context.Context, a models.Amenity) (*models.Amenity, error) {
	if a.ID == "" {
		return nil, fmt.Errorf("update amenity: missing id")
	}
	return c.writeAmenity(ctx, http.MethodPut, "amenities/"+url.PathEscape(a.ID), a)
}

func (c *HTTPClient) writeAmenity(ctx context.Context, method, path string, a models.Amenity) (*models.Amenity, error) {
	r, err := jsonRequest(method, path, newAmenityPayload(a))
	if err != nil {
		return nil, err
	}
	var out models.Amenity
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeleteAmenity(ctx context.Context, id string) error {
	return c.do(ctx, &request{method: http.MethodDelete, path: "amenities/" + url.PathEscape(id)}, nil)
}
