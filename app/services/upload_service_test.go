package services

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob"
	"gocloud.dev/blob/memblob"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func newUploadService(t *testing.T) (*UploadService, *blob.Bucket) {
	t.Helper()
	bucket := memblob.OpenBucket(nil)
	t.Cleanup(func() { bucket.Close() })
	svc := NewUploadService(bucket, "https://cdn.example.ir/uploads/", zerolog.Nop())
	svc.now = func() time.Time { return time.Unix(1700000000, 0) }
	return svc, bucket
}

func bucketKeys(t *testing.T, bucket *blob.Bucket) []string {
	t.Helper()
	var keys []string
	iter := bucket.List(nil)
	for {
		obj, err := iter.Next(context.Background())
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		keys = append(keys, obj.Key)
	}
	return keys
}

func TestUploadService_StoresImage(t *testing.T) {
	svc, bucket := newUploadService(t)

	result, err := svc.Upload(context.Background(), UploadInput{
		Kind:        "product",
		Filename:    "photo.PNG",
		ContentType: "image/png",
		Data:        pngHeader,
	})

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(result.Key, "product/1700000000-"))
	assert.True(t, strings.HasSuffix(result.Key, ".png"))
	assert.Equal(t, "https://cdn.example.ir/uploads/"+result.Key, result.URL)

	stored, err := bucket.ReadAll(context.Background(), result.Key)
	require.NoError(t, err)
	assert.Equal(t, pngHeader, stored)

	attrs, err := bucket.Attributes(context.Background(), result.Key)
	require.NoError(t, err)
	assert.Equal(t, "image/png", attrs.ContentType)
}

func TestUploadService_UnknownKindGoesToMisc(t *testing.T) {
	svc, _ := newUploadService(t)

	result, err := svc.Upload(context.Background(), UploadInput{Kind: "banner", ContentType: "image/jpeg", Data: []byte{0xff, 0xd8, 0xff}})

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(result.Key, "misc/"))
	assert.True(t, strings.HasSuffix(result.Key, ".jpg"))
}

func TestUploadService_RejectsOversizedFile(t *testing.T) {
	svc, bucket := newUploadService(t)
	data := bytes.Repeat([]byte{0}, MaxUploadSize+1)

	_, err := svc.Upload(context.Background(), UploadInput{Kind: "product", ContentType: "image/png", Data: data})

	assertStatus(t, err, http.StatusBadRequest)
	assert.Empty(t, bucketKeys(t, bucket))
}

func TestUploadService_RejectsUnsupportedType(t *testing.T) {
	svc, bucket := newUploadService(t)

	for _, contentType := range []string{"application/pdf", "image/svg+xml", "text/html"} {
		_, err := svc.Upload(context.Background(), UploadInput{Kind: "product", ContentType: contentType, Data: []byte("<svg/>")})
		assertStatus(t, err, http.StatusBadRequest)
	}
	assert.Empty(t, bucketKeys(t, bucket))
}

func TestUploadService_SniffsOctetStream(t *testing.T) {
	svc, _ := newUploadService(t)

	result, err := svc.Upload(context.Background(), UploadInput{Kind: "slider", ContentType: "application/octet-stream", Data: pngHeader})

	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(result.Key, ".png"))
}

func TestUploadService_RejectsEmptyFile(t *testing.T) {
	svc, _ := newUploadService(t)
	_, err := svc.Upload(context.Background(), UploadInput{Kind: "product", ContentType: "image/png"})
	assertStatus(t, err, http.StatusBadRequest)
}
