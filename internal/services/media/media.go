package media

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/princekumarofficial/sociopedia-api/internal/config"
	mediatypes "github.com/princekumarofficial/sociopedia-api/internal/types/media"
)

var ErrContentTypeNotAllowed = errors.New("content type is not allowed")

type Service struct {
	client     *minio.Client
	bucketName string
	config     config.Media
	useSSL     bool
}

// NewService connects to MinIO and makes sure the picture bucket exists.
func NewService(ctx context.Context, minioCfg config.MinIO, mediaCfg config.Media) (*Service, error) {
	service, err := newService(minioCfg, mediaCfg)
	if err != nil {
		return nil, err
	}

	if err := service.ensureBucket(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure bucket exists: %w", err)
	}

	return service, nil
}

func newService(minioCfg config.MinIO, mediaCfg config.Media) (*Service, error) {
	client, err := minio.New(minioCfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(minioCfg.AccessKeyID, minioCfg.SecretAccessKey, ""),
		Secure: minioCfg.UseSSL,
		Region: minioCfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	return &Service{
		client:     client,
		bucketName: minioCfg.BucketName,
		config:     mediaCfg,
		useSSL:     minioCfg.UseSSL,
	}, nil
}

// ensureBucket creates the bucket if it doesn't exist
func (s *Service) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucketName)
	if err != nil {
		return fmt.Errorf("failed to check if bucket exists: %w", err)
	}

	if !exists {
		err = s.client.MakeBucket(ctx, s.bucketName, minio.MakeBucketOptions{})
		if err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return nil
}

// ValidateContentType checks if the content type is allowed
func (s *Service) ValidateContentType(contentType string) bool {
	return slices.Contains(s.config.AllowedMimeTypes, contentType)
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	}

	if extensions, err := mime.ExtensionsByType(contentType); err == nil && len(extensions) > 0 {
		return extensions[0]
	}
	return ""
}

// GenerateObjectKey creates a unique object key for the picture
func (s *Service) GenerateObjectKey(userID string, contentType string) string {
	filename := uuid.New().String() + extensionFor(contentType)

	return fmt.Sprintf("users/%s/media/%s", userID, filename)
}

// GeneratePresignedUploadURL returns a PUT URL the client uploads the
// picture to. The returned object key is what goes into picturePath.
func (s *Service) GeneratePresignedUploadURL(ctx context.Context, userID string, contentType string) (*mediatypes.UploadInfo, error) {
	if !s.ValidateContentType(contentType) {
		return nil, fmt.Errorf("%w: %s", ErrContentTypeNotAllowed, contentType)
	}

	objectKey := s.GenerateObjectKey(userID, contentType)
	expiry := time.Duration(s.config.PresignedURLTTL) * time.Second

	presignedURL, err := s.client.PresignedPutObject(ctx, s.bucketName, objectKey, expiry)
	if err != nil {
		return nil, fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	return &mediatypes.UploadInfo{
		ObjectKey:   objectKey,
		UploadURL:   presignedURL.String(),
		MediaURL:    s.GetMediaURL(objectKey),
		ExpiresAt:   time.Now().Add(expiry).Unix(),
		MaxFileSize: s.config.MaxFileSize,
		ContentType: contentType,
	}, nil
}

// GetMediaURL resolves a stored picturePath to the URL it is served from.
// Absolute URLs are returned unchanged.
func (s *Service) GetMediaURL(objectKey string) string {
	if objectKey == "" || strings.HasPrefix(objectKey, "http://") || strings.HasPrefix(objectKey, "https://") {
		return objectKey
	}

	endpoint := s.client.EndpointURL()
	return fmt.Sprintf("%s://%s/%s/%s", endpoint.Scheme, endpoint.Host, s.bucketName, strings.TrimPrefix(objectKey, "/"))
}
