package handler

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gdugdh24/faithmatch-backend/internal/domain"
	"github.com/gdugdh24/faithmatch-backend/internal/usecase/media"
	"github.com/gin-gonic/gin"
)

// PhotosField is the multipart field carrying the ordered photo files.
const PhotosField = "photos"

type MediaHandler struct {
	mediaUseCase *media.MediaUseCase
	maxBytes     int64
}

func NewMediaHandler(mediaUseCase *media.MediaUseCase, maxPhotoBytes int64) *MediaHandler {
	return &MediaHandler{
		mediaUseCase: mediaUseCase,
		maxBytes:     maxPhotoBytes,
	}
}

// PhotosResponse lists uploaded photo URLs in upload order.
type PhotosResponse struct {
	URLs []string `json:"urls"`
}

// UploadPhotos handles POST /media/photos
// @Summary Upload photos
// @Description Multipart upload; the URL at index i belongs to the i-th file
// @Tags media
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Success 201 {object} PhotosResponse
// @Failure 400 {object} ErrorResponse
// @Failure 413 {object} ErrorResponse
// @Failure 415 {object} ErrorResponse
// @Router /media/photos [post]
func (h *MediaHandler) UploadPhotos(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if h.maxBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes*domain.MaxPhotos+1<<20)
	}
	form, err := c.MultipartForm()
	if err != nil {
		badRequest(c, err)
		return
	}

	headers := form.File[PhotosField]
	files := make([]domain.MediaFile, 0, len(headers))
	for i, fh := range headers {
		f, err := readPart(fh, h.maxBytes)
		if err != nil {
			respondError(c, fmt.Errorf("photo %d: %w", i+1, err), "failed to read photo")
			return
		}
		files = append(files, f)
	}

	urls, err := h.mediaUseCase.UploadPhotos(c.Request.Context(), userID, files)
	if err != nil {
		respondError(c, err, "failed to upload photos")
		return
	}

	c.JSON(http.StatusCreated, PhotosResponse{URLs: urls})
}

func readPart(fh *multipart.FileHeader, maxBytes int64) (domain.MediaFile, error) {
	if maxBytes > 0 && fh.Size > maxBytes {
		return domain.MediaFile{}, domain.ErrPhotoTooLarge
	}
	src, err := fh.Open()
	if err != nil {
		return domain.MediaFile{}, err
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return domain.MediaFile{}, err
	}

	contentType := fh.Header.Get("Content-Type")
	if _, ok := domain.PhotoExtension(contentType); !ok {
		contentType = http.DetectContentType(data)
	}
	return domain.MediaFile{Filename: fh.Filename, ContentType: contentType, Data: data}, nil
}
