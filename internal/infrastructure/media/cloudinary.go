package media

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/manishadtanii/varalobackendv.0/domain"
)

// cloudinaryAPI is the subset of *uploader.API used here
type cloudinaryAPI interface {
	Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error)
	Destroy(ctx context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error)
}

// CloudinaryServiceImpl implements domain.MediaService on Cloudinary
type CloudinaryServiceImpl struct {
	api cloudinaryAPI
}

// NewCloudinaryService creates a Cloudinary media service from account credentials
func NewCloudinaryService(cloudName, apiKey, apiSecret string) (*CloudinaryServiceImpl, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to configure cloudinary: %w", err)
	}
	cld.Config.URL.Secure = true
	return &CloudinaryServiceImpl{api: &cld.Upload}, nil
}

// Upload implements domain.MediaService
func (c *CloudinaryServiceImpl) Upload(ctx context.Context, file *domain.UploadFile, folder, publicID string) (*domain.ImageRef, error) {
	resp, err := c.api.Upload(ctx, file.Content, uploader.UploadParams{
		PublicID:     publicID,
		Folder:       folder,
		ResourceType: "auto",
		Overwrite:    api.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMediaUpload, err)
	}
	if resp.Error.Message != "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrMediaUpload, resp.Error.Message)
	}
	return &domain.ImageRef{URL: resp.SecureURL, PublicID: resp.PublicID}, nil
}

// Delete implements domain.MediaService. Deleting an unknown id is not an error.
func (c *CloudinaryServiceImpl) Delete(ctx context.Context, publicID string) error {
	resp, err := c.api.Destroy(ctx, uploader.DestroyParams{
		PublicID:   publicID,
		Invalidate: api.Bool(true),
	})
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrMediaDelete, err)
	}
	if resp.Error.Message != "" {
		return fmt.Errorf("%w: %s", domain.ErrMediaDelete, resp.Error.Message)
	}
	return nil
}

var versionSegment = regexp.MustCompile(`(?:^|/)v\d+/`)

// PublicIDFromURL recovers the public id from a Cloudinary delivery URL:
// the path after /upload/, without transformations, version and extension.
func (c *CloudinaryServiceImpl) PublicIDFromURL(rawURL string) string {
	i := strings.Index(rawURL, "/upload/")
	if i < 0 {
		return ""
	}
	rest := rawURL[i+len("/upload/"):]
	if q := strings.IndexAny(rest, "?#"); q >= 0 {
		rest = rest[:q]
	}
	if loc := versionSegment.FindStringIndex(rest); loc != nil {
		rest = rest[loc[1]:]
	}
	if dot := strings.LastIndex(rest, "."); dot > strings.LastIndex(rest, "/") {
		rest = rest[:dot]
	}
	return rest
}

var _ domain.MediaService = (*CloudinaryServiceImpl)(nil)
