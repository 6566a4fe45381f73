package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"

	"github.com/mgluxury/boutique/internal/core/domain"
	"github.com/mgluxury/boutique/internal/core/ports"
)

// DefaultMaxImageBytes is the upload limit of the image host's free tier.
const DefaultMaxImageBytes = 5 << 20

// ImageService checks product images before handing them to the host.
type ImageService struct {
	uploader ports.ImageUploader
	maxBytes int64
	log      zerolog.Logger
}

func NewImageService(uploader ports.ImageUploader, maxBytes int64, log zerolog.Logger) *ImageService {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxImageBytes
	}
	return &ImageService{uploader: uploader, maxBytes: maxBytes, log: log}
}

// Upload returns the hosted URL of the image.
func (s *ImageService) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", domain.NewValidationError("image", "aucun fichier reçu")
	}
	if int64(len(data)) > s.maxBytes {
		return "", domain.NewValidationError("image", fmt.Sprintf("l'image dépasse %d Mo", s.maxBytes>>20))
	}
	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return "", domain.NewValidationError("image", "le fichier doit être une image")
	}

	url, err := s.uploader.Upload(ctx, filename, data)
	if err != nil {
		s.log.Error().Err(err).Str("filename", filename).Str("mime", mt.String()).Msg("image upload failed")
		return "", fmt.Errorf("upload image: %w", err)
	}
	s.log.Info().Str("filename", filename).Int("bytes", len(data)).Msg("image uploaded")
	return url, nil
}
