package media

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/manishadtanii/varalobackendv.0/domain"
)

// s3API is the subset of *s3.Client used here
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3ServiceImpl implements domain.MediaService on an S3 bucket. The object key
// doubles as the public id.
type S3ServiceImpl struct {
	client  s3API
	bucket  string
	baseURL string
}

// NewS3Service creates an S3 media service. An empty publicBaseURL uses the
// bucket's virtual-hosted endpoint.
func NewS3Service(ctx context.Context, region, accessKeyID, secretAccessKey, bucket, publicBaseURL string) (*S3ServiceImpl, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if accessKeyID != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKeyID, secretAccessKey, ""),
		))
	}
	awsConfig, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	if publicBaseURL == "" {
		publicBaseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)
	}
	return &S3ServiceImpl{
		client:  s3.NewFromConfig(awsConfig),
		bucket:  bucket,
		baseURL: strings.TrimRight(publicBaseURL, "/"),
	}, nil
}

// Upload implements domain.MediaService
func (s *S3ServiceImpl) Upload(ctx context.Context, file *domain.UploadFile, folder, publicID string) (*domain.ImageRef, error) {
	key := path.Join(folder, publicID) + strings.ToLower(path.Ext(file.Filename))

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   file.Content,
	}
	if file.ContentType != "" {
		input.ContentType = aws.String(file.ContentType)
	}
	if file.Size > 0 {
		input.ContentLength = aws.Int64(file.Size)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMediaUpload, err)
	}
	return &domain.ImageRef{URL: s.baseURL + "/" + key, PublicID: key}, nil
}

// Delete implements domain.MediaService
func (s *S3ServiceImpl) Delete(ctx context.Context, publicID string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(publicID),
	})
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrMediaDelete, err)
	}
	return nil
}

// PublicIDFromURL returns the object key of a URL served from the bucket
func (s *S3ServiceImpl) PublicIDFromURL(rawURL string) string {
	if strings.HasPrefix(rawURL, s.baseURL+"/") {
		return strings.TrimPrefix(rawURL, s.baseURL+"/")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Path, "/")
}

var _ domain.MediaService = (*S3ServiceImpl)(nil)
