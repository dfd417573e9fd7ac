package file

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif" // GIF decoding support
	"image/jpeg"
	_ "image/png" // PNG decoding support
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/apperror"
	"github.com/cmlabs-hris/hr-admin-backend-go/internal/pkg/storage"
	"github.com/google/uuid"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // WebP decoding support
)

var (
	ErrInvalidFileType = apperror.New(apperror.KindBadRequest, "invalid file type, only jpeg, jpg, png, gif and webp images are allowed")
	ErrFileTooLarge    = apperror.New(apperror.KindBadRequest, "file is too large")
	ErrInvalidImage    = apperror.New(apperror.KindBadRequest, "file is not a valid image")
)

var photoContentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

const photoDir = "employees"

type FileService interface {
	// UploadEmployeePhoto validates and stores an employee photo, returning its storage path
	UploadEmployeePhoto(ctx context.Context, file io.Reader, filename string) (string, error)

	DeleteFile(ctx context.Context, path string) error
	Exists(ctx context.Context, path string) (bool, error)
	Open(ctx context.Context, path string) (io.ReadCloser, error)
}

type Options struct {
	MaxFileSize int64
	// MaxDimension bounds the longer side of stored photos in pixels; 0 disables resizing.
	MaxDimension int
}

type fileServiceImpl struct {
	storage storage.FileStorage
	opts    Options
}

func NewFileService(storage storage.FileStorage, opts Options) FileService {
	return &fileServiceImpl{
		storage: storage,
		opts:    opts,
	}
}

// UploadEmployeePhoto implements FileService. Photos larger than MaxDimension
// are scaled down and stored as JPEG.
func (s *fileServiceImpl) UploadEmployeePhoto(ctx context.Context, file io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	contentType, ok := photoContentTypes[ext]
	if !ok {
		return "", ErrInvalidFileType
	}

	buffer, err := io.ReadAll(io.LimitReader(file, s.opts.MaxFileSize+1))
	if err != nil {
		return "", fmt.Errorf("failed to read photo: %w", err)
	}
	if int64(len(buffer)) > s.opts.MaxFileSize {
		return "", ErrFileTooLarge.WithDetails(map[string]string{
			"max_bytes": fmt.Sprint(s.opts.MaxFileSize),
		})
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(buffer))
	if err != nil {
		return "", ErrInvalidImage
	}

	if s.opts.MaxDimension > 0 && (cfg.Width > s.opts.MaxDimension || cfg.Height > s.opts.MaxDimension) {
		buffer, err = downscale(buffer, s.opts.MaxDimension)
		if err != nil {
			return "", err
		}
		ext, contentType = ".jpg", "image/jpeg"
	}

	name := fmt.Sprintf("employee-%d-%s%s", time.Now().UnixMilli(), uuid.New().String(), ext)

	uploadedPath, err := s.storage.Upload(ctx, bytes.NewReader(buffer), path.Join(photoDir, name), contentType)
	if err != nil {
		return "", fmt.Errorf("failed to upload photo: %w", err)
	}

	return uploadedPath, nil
}

// DeleteFile deletes a file
func (s *fileServiceImpl) DeleteFile(ctx context.Context, path string) error {
	return s.storage.Delete(ctx, path)
}

func (s *fileServiceImpl) Exists(ctx context.Context, path string) (bool, error) {
	return s.storage.Exists(ctx, path)
}

func (s *fileServiceImpl) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	return s.storage.Download(ctx, path)
}

// downscale fits the image inside a maxDim square, keeping its aspect ratio.
func downscale(buffer []byte, maxDim int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(buffer))
	if err != nil {
		return nil, ErrInvalidImage
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width >= height {
		height = max(1, height*maxDim/width)
		width = maxDim
	} else {
		width = max(1, width*maxDim/height)
		height = maxDim
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	// JPEG has no alpha; flatten transparent areas onto white.
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, dst, &jpeg.Options{Quality: 85}); err != nil {
		return nil, fmt.Errorf("failed to encode resized photo: %w", err)
	}
	return buf.Bytes(), nil
}
