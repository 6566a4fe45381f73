package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mgluxury/boutique/internal/api/metrics"
	"github.com/mgluxury/boutique/internal/core/domain"
	"github.com/mgluxury/boutique/internal/core/service"
)

// ImageHandler forwards product images to the image host.
type ImageHandler struct {
	images  ImageService
	maxSize int64
}

// NewImageHandler reads at most maxSize bytes per upload, falling back to
// the service default when maxSize is not positive.
func NewImageHandler(images ImageService, maxSize int64) *ImageHandler {
	if maxSize <= 0 {
		maxSize = service.DefaultMaxImageBytes
	}
	return &ImageHandler{images: images, maxSize: maxSize}
}

// Upload reads the "image" form file and returns its public URL.
//
// @Summary      Upload a product image
// @Tags         admin
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        image  formData  file  true  "Image file"
// @Success      201    {object}  imageResponse
// @Failure      400    {object}  errorResponse
// @Failure      422    {object}  errorResponse
// @Failure      502    {object}  errorResponse
// @Router       /v1/admin/images [post]
func (h *ImageHandler) Upload(c echo.Context) error {
	fh, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing image file")
	}
	f, err := fh.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable image file")
	}
	defer f.Close()

	// One byte past the limit is enough for the service to reject it.
	data, err := io.ReadAll(io.LimitReader(f, h.maxSize+1))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable image file")
	}

	url, err := h.images.Upload(c.Request().Context(), fh.Filename, data)
	if err != nil {
		metrics.ImageUploadsTotal.WithLabelValues(uploadResult(err)).Inc()
		return err
	}
	metrics.ImageUploadsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusCreated, imageResponse{URL: url})
}

func uploadResult(err error) string {
	var uerr *domain.UploadError
	if errors.As(err, &uerr) || !domain.IsValidation(err) {
		return "failed"
	}
	return "rejected"
}
