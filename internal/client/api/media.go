package api

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path/filepath"
	"strings"

	"github.com/gdugdh24/faithmatch-backend/internal/domain"
)

const photosField = "photos"

// UploadPhotos uploads files in one multipart request and returns one URL
// per file, in the same order. A short or long URL list is an error.
func (c *Client) UploadPhotos(ctx context.Context, files []domain.MediaFile) ([]string, error) {
	const op = "upload photos"
	if len(files) == 0 {
		return nil, &Error{Op: op, Err: domain.ErrTooFewPhotos}
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for i, f := range files {
		if err := writePhotoPart(mw, i, f); err != nil {
			return nil, &Error{Op: op, Err: err}
		}
	}
	if err := mw.Close(); err != nil {
		return nil, &Error{Op: op, Err: err}
	}

	var resp struct {
		URLs []string `json:"urls"`
	}
	if err := c.do(ctx, op, http.MethodPost, "/media/photos", nil, &buf, mw.FormDataContentType(), &resp, true); err != nil {
		return nil, err
	}
	if len(resp.URLs) != len(files) {
		return nil, &Error{
			Op:         op,
			StatusCode: http.StatusCreated,
			Err:        fmt.Errorf("server returned %d urls for %d photos", len(resp.URLs), len(files)),
		}
	}
	return resp.URLs, nil
}

func writePhotoPart(mw *multipart.Writer, index int, f domain.MediaFile) error {
	name := filepath.Base(strings.TrimSpace(f.Filename))
	if name == "" || name == "." || name == "/" {
		name = fmt.Sprintf("photo-%d", index+1)
	}
	contentType := f.ContentType
	if contentType == "" {
		contentType = http.DetectContentType(f.Data)
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, photosField, name))
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	if err != nil {
		return fmt.Errorf("photo %d: %w", index+1, err)
	}
	if _, err := part.Write(f.Data); err != nil {
		return fmt.Errorf("photo %d: %w", index+1, err)
	}
	return nil
}
