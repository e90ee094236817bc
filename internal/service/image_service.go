package service

import (
	"bytes"
	"fmt"
	"image"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"recipebox/internal/config"
	"recipebox/internal/middleware"
	"recipebox/internal/models"

	"github.com/chai2010/webp"
	"github.com/google/uuid"
	xdraw "golang.org/x/image/draw"

	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder

	_ "golang.org/x/image/webp" // register WebP decoder
)

const (
	DefaultImageUploadDir       = "/tmp/recipebox/uploads"
	DefaultImageMaxUploadSizeMB = 10
	ThumbnailMaxSize            = 256
	WebPQuality                 = 70

	recipeImageDir = "recipe"
)

// ImageService stores recipe images on local disk. Uploaded files are
// renamed with a random UUID so the user-supplied filename never reaches the
// filesystem, and a small WebP thumbnail is written next to the original.
type ImageService struct {
	uploadDir          string
	maxUploadSizeBytes int64
}

// NewImageService returns an ImageService configured from the application config.
func NewImageService(cfg *config.Config) *ImageService {
	uploadDir := DefaultImageUploadDir
	maxUploadSizeMB := DefaultImageMaxUploadSizeMB

	if cfg != nil {
		if cfg.UploadDir != "" {
			uploadDir = cfg.UploadDir
		}
		if cfg.MaxUploadSizeMB > 0 {
			maxUploadSizeMB = cfg.MaxUploadSizeMB
		}
	}

	return &ImageService{
		uploadDir:          uploadDir,
		maxUploadSizeBytes: int64(maxUploadSizeMB) * 1024 * 1024,
	}
}

// SaveRecipeImage validates and stores an uploaded image, returning the
// stored path relative to the upload directory. Content that does not decode
// as a supported image is rejected with a validation error and nothing is
// written.
func (s *ImageService) SaveRecipeImage(content []byte, contentType string) (string, error) {
	if len(content) == 0 {
		return "", models.NewValidationError("No file uploaded")
	}
	if int64(len(content)) > s.maxUploadSizeBytes {
		return "", models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", s.maxUploadSizeBytes/(1024*1024)))
	}

	detectedType := http.DetectContentType(content)
	if !strings.HasPrefix(detectedType, "image/") {
		return "", models.NewValidationError("Invalid image type")
	}

	decoded, format, err := image.Decode(bytes.NewReader(content))
	if err != nil {
		return "", models.NewValidationError("Invalid image file")
	}

	ext := extensionForFormat(format)
	if ext == "" {
		return "", models.NewValidationError("Unsupported image format")
	}

	name := uuid.New().String()
	relPath := filepath.Join(recipeImageDir, name+ext)
	absPath := filepath.Join(s.uploadDir, relPath)

	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return "", models.NewInternalError(err)
	}
	if err := os.WriteFile(absPath, content, 0o644); err != nil {
		return "", models.NewInternalError(err)
	}

	if err := s.writeThumbnail(decoded, relPath); err != nil {
		// Thumbnail failure must not lose the upload; the original stands alone.
		middleware.Logger.Warn("failed to write image thumbnail",
			slog.String("path", relPath), slog.String("error", err.Error()))
	}

	return relPath, nil
}

// Remove deletes a stored image and its thumbnail. Missing files are ignored
// so removal is idempotent.
func (s *ImageService) Remove(relPath string) {
	if relPath == "" {
		return
	}
	_ = os.Remove(filepath.Join(s.uploadDir, relPath))
	_ = os.Remove(filepath.Join(s.uploadDir, thumbnailPath(relPath)))
}

// URL maps a stored path to the public media URL serving it.
func (s *ImageService) URL(relPath string) string {
	if relPath == "" {
		return ""
	}
	return "/media/" + filepath.ToSlash(relPath)
}

// ThumbnailURL maps a stored path to its thumbnail's public URL.
func (s *ImageService) ThumbnailURL(relPath string) string {
	if relPath == "" {
		return ""
	}
	return "/media/" + filepath.ToSlash(thumbnailPath(relPath))
}

// UploadDir exposes the storage root so the server can mount it as a static
// media route.
func (s *ImageService) UploadDir() string {
	return s.uploadDir
}

func (s *ImageService) writeThumbnail(src image.Image, relPath string) error {
	thumb := resizeToFit(src, ThumbnailMaxSize, ThumbnailMaxSize)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, thumb, &webp.Options{Quality: WebPQuality}); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.uploadDir, thumbnailPath(relPath)), buf.Bytes(), 0o644)
}

// thumbnailPath derives the thumbnail location from the stored path, e.g.
// recipe/abc.png -> recipe/abc_thumb.webp.
func thumbnailPath(relPath string) string {
	ext := filepath.Ext(relPath)
	return strings.TrimSuffix(relPath, ext) + "_thumb.webp"
}

func extensionForFormat(format string) string {
	switch format {
	case "jpeg":
		return ".jpg"
	case "png":
		return ".png"
	case "webp":
		return ".webp"
	}
	return ""
}

// resizeToFit scales src down to fit within maxW x maxH preserving aspect
// ratio. Images already within bounds are returned unchanged.
func resizeToFit(src image.Image, maxW, maxH int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxW && h <= maxH {
		return src
	}

	scaleW := float64(maxW) / float64(w)
	scaleH := float64(maxH) / float64(h)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}

	dstW := int(float64(w) * scale)
	dstH := int(float64(h) * scale)
	if dstW < 1 {
		dstW = 1
	}
	if dstH < 1 {
		dstH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Over, nil)
	return dst
}
