package client

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"

	"github.com/dmitrijs2005/roomadmin/internal/client/models"
	"github.com/dmitrijs2005/roomadmin/internal/common"
)

func (c *HTTPClient) Upload(ctx context.Context, folder common.UploadFolder, file *models.LocalFile) (string, error) {
	if !folder.Valid() {
		return "", fmt.Errorf("%w: %q", common.ErrInvalidFolder, folder)
	}
	if file == nil || len(file.Data) == 0 {
		return "", common.ErrEmptyFile
	}

	body, contentType, err := multipartBody(nil, "file", file)
	if err != nil {
		return "", err
	}

	r := &request{
		method:      http.MethodPost,
		path:        "uploads",
		query:       url.Values{"folder": {string(folder)}},
		body:        body,
		contentType: contentType,
	}

	var resp struct {
		URL string `json:"url"`
	}
	if err := c.do(ctx, r, &resp); err != nil {
		return "", err
	}
	if resp.URL == "" {
		return "", fmt.Errorf("%w: upload returned no url", common.ErrUnexpectedReply)
	}
	return resp.URL, nil
}

func (c *HTTPClient) DeleteByURL(ctx context.Context, fileURL string) error {
	r := &request{
		method: http.MethodDelete,
		path:   "uploads/by-url",
		query:  url.Values{"url": {fileURL}},
	}
	return c.do(ctx, r, nil)
}

// multipartBody encodes fields and an optional file part under fileField.
func multipartBody(fields map[string]string, fileField string, file *models.LocalFile) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", k, err)
		}
	}

	if file != nil {
		ct := file.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, fileField, file.Name))
		h.Set("Content-Type", ct)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("create file part: %w", err)
		}
		if _, err := part.Write(file.Data); err != nil {
			return nil, "", fmt.Errorf("write file part: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}
