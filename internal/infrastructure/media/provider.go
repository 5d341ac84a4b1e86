package media

import (
	"context"
	"fmt"

	"github.com/manishadtanii/varalobackendv.0/domain"
)

// Options selects and configures the media backend
type Options struct {
	Provider string

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string

	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	S3Bucket           string
	S3PublicBaseURL    string
}

// New returns the media service named by opts.Provider ("cloudinary" or "s3")
func New(ctx context.Context, opts Options) (domain.MediaService, error) {
	switch opts.Provider {
	case "", "cloudinary":
		return NewCloudinaryService(opts.CloudinaryCloudName, opts.CloudinaryAPIKey, opts.CloudinaryAPISecret)
	case "s3":
		return NewS3Service(ctx, opts.AWSRegion, opts.AWSAccessKeyID, opts.AWSSecretAccessKey, opts.S3Bucket, opts.S3PublicBaseURL)
	default:
		return nil, fmt.Errorf("unknown media provider %q", opts.Provider)
	}
}
