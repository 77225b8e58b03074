package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/roomadmin/internal/client/models"
)

func roomPath(roomID string, rest ...string) string {
	p := "rooms/" + url.PathEscape(roomID)
	for _, s := range rest {
		p += "/" + s
	}
	return p
}

func (c *HTTPClient) ListRooms(ctx context.Context, params models.RoomListParams) (models.Page[models.Room], error) {
	r := &request{method: http.MethodGet, path: "rooms", query: params.Query()}

	var raw json.RawMessage
	if err := c.do(ctx, r, &raw); err != nil {
		return models.Page[models.Room]{}, err
	}
	page, err := models.DecodeList[models.Room](raw)
	if err != nil {
		return page, fmt.Errorf("decode rooms: %w", err)
	}
	return page, nil
}

func (c *HTTPClient) GetRoom(ctx context.Context, roomID string) (*models.Room, error) {
	var room models.Room
	if err := c.do(ctx, &request{method: http.MethodGet, path: roomPath(roomID)}, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

func (c *HTTPClient) CreateRoom(ctx context.Context, draft models.RoomDraft) (*models.Room, error) {
	return c.writeRoom(ctx, http.MethodPost, "rooms", draft)
}

func (c *HTTPClient) UpdateRoom(ctx context.Context, roomID string, draft models.RoomDraft) (*models.Room, error) {
	// images are managed through the image endpoints
	draft.Images = nil
	return c.writeRoom(ctx, http.MethodPut, roomPath(roomID), draft)
}

func (c *HTTPClient) writeRoom(ctx context.Context, method, path string, draft models.RoomDraft) (*models.Room, error) {
	if draft.AmenityIDs == nil {
		draft.AmenityIDs = []string{}
	}
	r, err := jsonRequest(method, path, draft)
	if err != nil {
		return nil, err
	}
	var room models.Room
	if err := c.do(ctx, r, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

func (c *HTTPClient) DeleteRoom(ctx context.Context, roomID string) error {
	return c.do(ctx, &request{method: http.MethodDelete, path: roomPath(roomID)}, nil)
}

func (c *HTTPClient) AddRoomImages(ctx context.Context, roomID string, urls []string) error {
	r, err := jsonRequest(http.MethodPost, roomPath(roomID, "images"), map[string][]string{"urls": urls})
	if err != nil {
		return err
	}
	return c.do(ctx, r, nil)
}

func (c *HTTPClient) DeleteRoomImage(ctx context.Context, roomID, imageID string) error {
	r := &request{method: http.MethodDelete, path: roomPath(roomID, "images", url.PathEscape(imageID))}
	return c.do(ctx, r, nil)
}

func (c *HTTPClient) UpdateRoomAmenities(ctx context.Context, roomID string, amenities []models.AmenityAssignment) error {
	if amenities == nil {
		amenities = []models.AmenityAssignment{}
	}
	r, err := jsonRequest(http.MethodPut, roomPath(roomID, "amenities"), map[string]any{"amenities": amenities})
	if err != nil {
		return err
	}
	return c.do(ctx, r, nil)
}

type roomPassword struct {
	CurrentPassword string `json:"currentPassword"`
}

func (c *HTTPClient) GetRoomPassword(ctx context.Context, roomID string) (string, error) {
	var resp roomPassword
	if err := c.do(ctx, &request{method: http.MethodGet, path: roomPath(roomID, "current-password")}, &resp); err != nil {
		return "", err
	}
	return resp.CurrentPassword, nil
}

func (c *HTTPClient) SetRoomPassword(ctx context.Context, roomID, password string) (string, error) {
	r, err := jsonRequest(http.MethodPut, roomPath(roomID, "current-password"), roomPassword{CurrentPassword: password})
	if err != nil {
		return "", err
	}
	var resp roomPassword
	if err := c.do(ctx, r, &resp); err != nil {
		return "", err
	}
	if resp.CurrentPassword == "" {
		return password, nil
	}
	return resp.CurrentPassword, nil
}
