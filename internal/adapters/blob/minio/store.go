package minio

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"car-collection/internal/ports/blob"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// Store implementa blob.Store sobre MinIO (o cualquier S3 compatible).
// El bucket se asume con política de lectura pública: las URLs devueltas
// son directas al objeto, sin presign.
type Store struct {
	client *minio.Client
	bucket string
}

func NewStore(cfg Config) (*Store, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	s := &Store{client: client, bucket: cfg.Bucket}
	if err := s.ensureBucket(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("%w: check bucket: %v", blob.ErrStorage, err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("%w: create bucket: %v", blob.ErrStorage, err)
		}
	}
	return nil
}

// Upload guarda el objeto bajo <ownerID>/<uuid><ext> y devuelve su URL
// pública. PutObject es atómico: o el objeto queda completo o no queda.
func (s *Store) Upload(ctx context.Context, ownerID string, content io.Reader, size int64, contentType, fileName string) (string, error) {
	key := fmt.Sprintf("%s/%s%s", ownerID, uuid.NewString(), objectExt(fileName, contentType))

	_, err := s.client.PutObject(ctx, s.bucket, key, content, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("%w: put object: %v", blob.ErrStorage, err)
	}

	return fmt.Sprintf("%s/%s/%s", s.client.EndpointURL(), s.bucket, key), nil
}

// objectExt prefiere la extensión del nombre original; si no trae,
// deriva del content type.
func objectExt(fileName, contentType string) string {
	if ext := strings.ToLower(path.Ext(fileName)); ext != "" {
		return ext
	}
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/png":
		return ".png"
	default:
		return ""
	}
}
