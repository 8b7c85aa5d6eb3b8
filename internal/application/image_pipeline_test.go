package application

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

// makeTestImage renders a gradient so JPEG actually has something to compress.
func makeTestImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{
				R: uint8(x * 255 / w),
				G: uint8(y * 255 / h),
				B: uint8((x + y) * 255 / (w + h)),
				A: 255,
			})
		}
	}
	return img
}

func makeJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, makeTestImage(w, h), &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("failed to encode test jpeg: %v", err)
	}
	return buf.Bytes()
}

func makePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, makeTestImage(w, h)); err != nil {
		t.Fatalf("failed to encode test png: %v", err)
	}
	return buf.Bytes()
}

func TestValidate(t *testing.T) {
	p := NewImagePipeline()

	t.Run("accepts jpeg and png", func(t *testing.T) {
		for name, data := range map[string][]byte{
			"photo.jpg": makeJPEG(t, 100, 100),
			"photo.png": makePNG(t, 100, 100),
		} {
			if err := p.Validate(UploadFile{Name: name, Data: data}); err != nil {
				t.Errorf("%s: unexpected validation error: %v", name, err)
			}
		}
	})

	t.Run("rejects oversized file", func(t *testing.T) {
		big := make([]byte, MaxUploadSize+1)
		err := p.Validate(UploadFile{Name: "big.jpg", Data: big})
		if !errors.Is(err, ErrFileTooLarge) {
			t.Fatalf("expected ErrFileTooLarge, got %v", err)
		}
	})

	t.Run("rejects unsupported type", func(t *testing.T) {
		err := p.Validate(UploadFile{Name: "notes.txt", Data: []byte("not an image at all")})
		if !errors.Is(err, ErrUnsupportedType) {
			t.Fatalf("expected ErrUnsupportedType, got %v", err)
		}
	})

	t.Run("size check runs before type check", func(t *testing.T) {
		big := make([]byte, MaxUploadSize+1)
		for i := range big {
			big[i] = 'x'
		}
		err := p.Validate(UploadFile{Name: "big.txt", Data: big})
		if !errors.Is(err, ErrFileTooLarge) {
			t.Fatalf("expected ErrFileTooLarge, got %v", err)
		}
	})
}

func TestProcessFile(t *testing.T) {
	p := NewImagePipeline()
	ctx := context.Background()

	t.Run("produces bounded derivatives", func(t *testing.T) {
		pair, err := p.ProcessFile(ctx, UploadFile{Name: "wide.jpg", Data: makeJPEG(t, 2600, 1400)})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(pair.Full) > fullMaxBytes {
			t.Errorf("full derivative is %d bytes, want <= %d", len(pair.Full), fullMaxBytes)
		}
		if len(pair.Thumbnail) > thumbMaxBytes {
			t.Errorf("thumbnail is %d bytes, want <= %d", len(pair.Thumbnail), thumbMaxBytes)
		}

		fullCfg, format, err := image.DecodeConfig(bytes.NewReader(pair.Full))
		if err != nil {
			t.Fatalf("full derivative does not decode: %v", err)
		}
		if format != "jpeg" {
			t.Errorf("full derivative format = %s, want jpeg", format)
		}
		if fullCfg.Width > fullMaxWidth || fullCfg.Height > fullMaxWidth {
			t.Errorf("full derivative is %dx%d, want within %dpx", fullCfg.Width, fullCfg.Height, fullMaxWidth)
		}

		thumbCfg, format, err := image.DecodeConfig(bytes.NewReader(pair.Thumbnail))
		if err != nil {
			t.Fatalf("thumbnail does not decode: %v", err)
		}
		if format != "jpeg" {
			t.Errorf("thumbnail format = %s, want jpeg", format)
		}
		if thumbCfg.Width > thumbMaxWidth || thumbCfg.Height > thumbMaxWidth {
			t.Errorf("thumbnail is %dx%d, want within %dpx", thumbCfg.Width, thumbCfg.Height, thumbMaxWidth)
		}
	})

	t.Run("does not upscale small images", func(t *testing.T) {
		pair, err := p.ProcessFile(ctx, UploadFile{Name: "small.png", Data: makePNG(t, 200, 150)})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		cfg, _, err := image.DecodeConfig(bytes.NewReader(pair.Full))
		if err != nil {
			t.Fatalf("full derivative does not decode: %v", err)
		}
		if cfg.Width != 200 || cfg.Height != 150 {
			t.Errorf("full derivative is %dx%d, want original 200x150", cfg.Width, cfg.Height)
		}
	})

	t.Run("normalizes png input to jpeg output", func(t *testing.T) {
		pair, err := p.ProcessFile(ctx, UploadFile{Name: "snap.png", Data: makePNG(t, 800, 600)})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		_, format, err := image.DecodeConfig(bytes.NewReader(pair.Full))
		if err != nil || format != "jpeg" {
			t.Errorf("expected jpeg output, got format=%s err=%v", format, err)
		}
	})

	t.Run("rejects invalid files with a reason", func(t *testing.T) {
		_, err := p.ProcessFile(ctx, UploadFile{Name: "bad.bin", Data: []byte("garbage bytes")})
		if !errors.Is(err, ErrUnsupportedType) {
			t.Fatalf("expected ErrUnsupportedType, got %v", err)
		}
	})
}
