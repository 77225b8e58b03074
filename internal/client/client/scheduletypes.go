package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/roomadmin/internal/client/models"
)

const scheduleTypesPath = "scheduleTypes"

func (c *HTTPClient) ListScheduleTypes(ctx context.Context, p models.Pagination, search string) (models.Page[models.ScheduleType], error) {
	q := p.Query()
	if search != "" {
		q.Set("search", search)
	}

	var raw json.RawMessage
	if err := c.do(ctx, &request{method: http.MethodGet, path: scheduleTypesPath, query: q}, &raw); err != nil {
		return models.Page[models.ScheduleType]{}, err
	}
	page, err := models.DecodeList[models.ScheduleType](raw)
	if err != nil {
		return page, fmt.Errorf("decode schedule types: %w", err)
	}
	return page, nil
}

// CreateScheduleType always posts multipart; image may be nil.
func (c *HTTPClient) CreateScheduleType(ctx context.Context, st models.ScheduleType, image *models.LocalFile) (*models.ScheduleType, error) {
	body, ct, err := multipartBody(scheduleTypeFields(st), "image", image)
	if err != nil {
		return nil, err
	}
	r := &request{method: http.MethodPost, path: scheduleTypesPath, body: body, contentType: ct}

	var out models.ScheduleType
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateScheduleType sends multipart when a new image is given and JSON
// otherwise.
func (c *HTTPClient) UpdateScheduleType(ctx context.Context, st models.ScheduleType, image *models.LocalFile) (*models.ScheduleType, error) {
	if st.ID == "" {
		return nil, fmt.Errorf("update schedule type: missing id")
	}
	path := scheduleTypesPath + "/" + url.PathEscape(st.ID)

	var r *request
	if image != nil {
		body, ct, err := multipartBody(scheduleTypeFields(st), "image", image)
		if err != nil {
			return nil, err
		}
		r = &request{method: http.MethodPut, path: path, body: body, contentType: ct}
	} else {
		var err error
		r, err = jsonRequest(http.MethodPut, path, scheduleTypeFields(st))
		if err != nil {
			return nil, err
		}
	}

	var out models.ScheduleType
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteScheduleType treats any 2xx reply as success, including an empty or
// non-JSON body.
func (c *HTTPClient) DeleteScheduleType(ctx context.Context, id string) error {
	return c.do(ctx, &request{method: http.MethodDelete, path: scheduleTypesPath + "/" + url.PathEscape(id)}, nil)
}

func scheduleTypeFields(st models.ScheduleType) map[string]string {
	return map[string]string{"name": st.Name, "description": st.Description}
}
