// Package oss is the gateway to the object store that keeps report photos.
// The core only ever needs one operation: take a blob, return a durable
// public URL.
package oss

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math/rand"
	"mime"
	"path"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ErrUpload wraps any transport or auth failure talking to the store.
var ErrUpload = errors.New("object store upload failed")

type Uploader interface {
	Upload(ctx context.Context, blob []byte, filename, folder string) (string, error)
}

type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// Store uploads blobs to an S3-compatible bucket and hands back the public
// object URL.
type Store struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

func NewStore(cfg Config) (*Store, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("object store endpoint is required")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("object store bucket is required")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create object store client: %w", err)
	}

	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}
	return &Store{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket),
	}, nil
}

func (s *Store) Upload(ctx context.Context, blob []byte, filename, folder string) (string, error) {
	if len(blob) == 0 {
		return "", fmt.Errorf("%w: empty blob", ErrUpload)
	}

	key := ObjectKey(filename, folder, time.Now())
	contentType := mime.TypeByExtension(path.Ext(filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(blob), int64(len(blob)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("%w: put object %s: %v", ErrUpload, key, err)
	}

	return s.baseURL + "/" + key, nil
}

// ObjectKey builds a collision-resistant object name the way the reference
// uploader did: folder, original name, timestamp, a random suffix and the
// original extension.
func ObjectKey(filename, folder string, now time.Time) string {
	folder = strings.Trim(folder, "/")
	if folder == "" {
		folder = "uploads"
	}
	ext := path.Ext(filename)
	base := strings.TrimSuffix(path.Base(filename), ext)
	if base == "" {
		base = "blob"
	}
	return fmt.Sprintf("%s/%s_%s%03d%s",
		folder, base, now.Format("20060102150405"), rand.Intn(1000), ext)
}
