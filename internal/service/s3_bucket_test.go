package services

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type fakeS3 struct {
	putKeys    []string
	deleteKeys []string
	fail       bool
}

func (f *fakeS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.fail {
		return nil, errors.New("put refused")
	}
	f.putKeys = append(f.putKeys, *params.Key)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if f.fail {
		return nil, errors.New("delete refused")
	}
	f.deleteKeys = append(f.deleteKeys, *params.Key)
	return &s3.DeleteObjectOutput{}, nil
}

func TestObjectStore(t *testing.T) {
	ctx := context.Background()

	t.Run("upload returns the public URL", func(t *testing.T) {
		client := &fakeS3{}
		store := NewObjectStore(client, "cat-images", "")

		url, err := store.Upload(ctx, "abc.jpg", []byte{1, 2, 3}, "image/jpeg")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if url != "https://cat-images.s3.amazonaws.com/abc.jpg" {
			t.Errorf("url = %s", url)
		}
		if len(client.putKeys) != 1 || client.putKeys[0] != "abc.jpg" {
			t.Errorf("put keys = %v", client.putKeys)
		}
	})

	t.Run("public base overrides the URL scheme", func(t *testing.T) {
		store := NewObjectStore(&fakeS3{}, "cat-images", "https://files.example.com/")
		if got := store.PublicURL("thumbnails/abc.jpg"); got != "https://files.example.com/cat-images/thumbnails/abc.jpg" {
			t.Errorf("url = %s", got)
		}
	})

	t.Run("remove deletes the key", func(t *testing.T) {
		client := &fakeS3{}
		store := NewObjectStore(client, "cat-images", "")
		if err := store.Remove(ctx, "abc.jpg"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(client.deleteKeys) != 1 || client.deleteKeys[0] != "abc.jpg" {
			t.Errorf("delete keys = %v", client.deleteKeys)
		}
	})

	t.Run("errors carry bucket and key", func(t *testing.T) {
		store := NewObjectStore(&fakeS3{fail: true}, "cat-images", "")
		_, err := store.Upload(ctx, "abc.jpg", nil, "image/jpeg")
		if err == nil {
			t.Fatal("expected an error")
		}
	})
}
