package application

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"net/http"
	"sync"

	"github.com/disintegration/imaging"

	// webp intake support; full and thumbnail derivatives are always JPEG
	_ "golang.org/x/image/webp"
)

// Validation errors carry the exact messages the admin UI shows.
var (
	ErrFileTooLarge    = errors.New("גודל הקובץ גדול מדי. הגודל המקסימלי הוא 10MB.")
	ErrUnsupportedType = errors.New("סוג קובץ לא נתמך. אנא השתמש בתמונות מסוג JPEG, PNG, או WebP.")
	ErrUploadFailed    = errors.New("שגיאה בהעלאת הקבצים")
)

const (
	// MaxUploadSize is the per-file intake limit, checked before any other work.
	MaxUploadSize = 10 << 20

	fullMaxBytes  = 1 << 20
	fullMaxWidth  = 1920
	thumbMaxBytes = 100 << 10
	thumbMaxWidth = 300
)

var acceptedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// UploadFile is one candidate file from a drop/selection event.
type UploadFile struct {
	Name string
	Data []byte
}

// DerivativePair holds the two stored representations of one source photo.
type DerivativePair struct {
	Full      []byte
	Thumbnail []byte
}

// ImagePipeline validates a candidate file and produces its two derivatives.
type ImagePipeline struct{}

func NewImagePipeline() *ImagePipeline {
	return &ImagePipeline{}
}

// ProcessFile turns one valid file into a compressed full image and a
// thumbnail, or returns why the file was rejected. Both derivatives are
// generated from the decoded source, never from each other, so the thumbnail
// is not lossy-compressed twice. The two encodes run concurrently and both
// are awaited before returning.
func (p *ImagePipeline) ProcessFile(ctx context.Context, file UploadFile) (*DerivativePair, error) {
	if err := p.Validate(file); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	src, err := imaging.Decode(bytes.NewReader(file.Data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedType, err)
	}

	var (
		wg       sync.WaitGroup
		full     []byte
		thumb    []byte
		fullErr  error
		thumbErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		full, fullErr = encodeBounded(src, fullMaxWidth, fullMaxBytes)
	}()
	go func() {
		defer wg.Done()
		thumb, thumbErr = encodeBounded(src, thumbMaxWidth, thumbMaxBytes)
	}()
	wg.Wait()

	if fullErr != nil {
		return nil, fmt.Errorf("failed to compress %s: %w", file.Name, fullErr)
	}
	if thumbErr != nil {
		return nil, fmt.Errorf("failed to create thumbnail for %s: %w", file.Name, thumbErr)
	}

	return &DerivativePair{Full: full, Thumbnail: thumb}, nil
}

// Validate applies the intake rules without decoding the whole image.
func (p *ImagePipeline) Validate(file UploadFile) error {
	if len(file.Data) > MaxUploadSize {
		return ErrFileTooLarge
	}
	if !acceptedTypes[detectContentType(file.Data)] {
		return ErrUnsupportedType
	}
	return nil
}

func detectContentType(data []byte) string {
	if len(data) > 512 {
		data = data[:512]
	}
	return http.DetectContentType(data)
}

// encodeBounded shrinks img to fit within maxDim and re-encodes it as JPEG,
// stepping quality down until the output is at or under maxBytes. The byte
// cap is a target, not a guarantee: the lowest-quality attempt is returned
// if nothing fits.
func encodeBounded(img image.Image, maxDim int, maxBytes int) ([]byte, error) {
	resized := imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)

	var out []byte
	for quality := 85; quality >= 25; quality -= 10 {
		var buf bytes.Buffer
		if err := imaging.Encode(&buf, resized, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
			return nil, err
		}
		out = buf.Bytes()
		if len(out) <= maxBytes {
			return out, nil
		}
	}
	return out, nil
}

// reencode is a decode helper kept for callers that accept already-valid JPEG
// bytes and only need dimension normalization.
func reencode(data []byte, maxDim int) ([]byte, error) {
	src, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	resized := imaging.Fit(src, maxDim, maxDim, imaging.Lanczos)
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: 85}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
