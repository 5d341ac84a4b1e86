package media

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/manishadtanii/varalobackendv.0/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCloudinary struct {
	uploadParams  uploader.UploadParams
	destroyParams uploader.DestroyParams
	uploadResult  *uploader.UploadResult
	destroyResult *uploader.DestroyResult
	err           error
}

func (f *fakeCloudinary) Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error) {
	f.uploadParams = params
	if f.err != nil {
		return nil, f.err
	}
	return f.uploadResult, nil
}

func (f *fakeCloudinary) Destroy(ctx context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error) {
	f.destroyParams = params
	if f.err != nil {
		return nil, f.err
	}
	return f.destroyResult, nil
}

func testFile(name string) *domain.UploadFile {
	return &domain.UploadFile{Filename: name, ContentType: "image/png", Size: 4, Content: strings.NewReader("data")}
}

func TestCloudinaryService_Upload(t *testing.T) {
	fake := &fakeCloudinary{uploadResult: &uploader.UploadResult{
		SecureURL: "https://res.cloudinary.com/demo/image/upload/v1/site/home/hero-1.png",
		PublicID:  "site/home/hero-1",
	}}
	svc := &CloudinaryServiceImpl{api: fake}

	ref, err := svc.Upload(context.Background(), testFile("hero.png"), "site/home", "hero-1")
	require.NoError(t, err)
	assert.Equal(t, "site/home/hero-1", ref.PublicID)
	assert.Equal(t, "site/home", fake.uploadParams.Folder)
	assert.Equal(t, "hero-1", fake.uploadParams.PublicID)
	assert.Equal(t, "auto", fake.uploadParams.ResourceType)
}

func TestCloudinaryService_UploadErrors(t *testing.T) {
	t.Run("transport", func(t *testing.T) {
		svc := &CloudinaryServiceImpl{api: &fakeCloudinary{err: errors.New("boom")}}
		_, err := svc.Upload(context.Background(), testFile("a.png"), "f", "id")
		assert.ErrorIs(t, err, domain.ErrMediaUpload)
	})

	t.Run("api error", func(t *testing.T) {
		svc := &CloudinaryServiceImpl{api: &fakeCloudinary{uploadResult: &uploader.UploadResult{
			Error: api.ErrorResp{Message: "Invalid image file"},
		}}}
		_, err := svc.Upload(context.Background(), testFile("a.png"), "f", "id")
		assert.ErrorIs(t, err, domain.ErrMediaUpload)
	})
}

func TestCloudinaryService_Delete(t *testing.T) {
	fake := &fakeCloudinary{destroyResult: &uploader.DestroyResult{Result: "ok"}}
	svc := &CloudinaryServiceImpl{api: fake}

	require.NoError(t, svc.Delete(context.Background(), "site/home/hero-1"))
	assert.Equal(t, "site/home/hero-1", fake.destroyParams.PublicID)

	fake.err = errors.New("down")
	assert.ErrorIs(t, svc.Delete(context.Background(), "x"), domain.ErrMediaDelete)
}

func TestCloudinaryService_PublicIDFromURL(t *testing.T) {
	svc := &CloudinaryServiceImpl{}

	tests := []struct {
		url      string
		expected string
	}{
		{"https://res.cloudinary.com/demo/image/upload/v1712345678/site/home/hero-1.jpg", "site/home/hero-1"},
		{"https://res.cloudinary.com/demo/image/upload/site/about/team.png", "site/about/team"},
		{"https://res.cloudinary.com/demo/image/upload/c_fill,w_200/v99/site/logo.webp", "site/logo"},
		{"https://res.cloudinary.com/demo/image/upload/v1/site/file.pdf?dl=1", "site/file"},
		{"https://res.cloudinary.com/demo/raw/upload/v3/docs/v2.data/readme", "docs/v2.data/readme"},
		{"https://example.com/images/hero.jpg", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.expected, svc.PublicIDFromURL(tt.url))
		})
	}
}

type fakeS3 struct {
	put    *s3.PutObjectInput
	del    *s3.DeleteObjectInput
	body   string
	putErr error
}

func (f *fakeS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.put = params
	if params.Body != nil {
		b, _ := io.ReadAll(params.Body)
		f.body = string(b)
	}
	if f.putErr != nil {
		return nil, f.putErr
	}
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.del = params
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3Service_UploadAndDelete(t *testing.T) {
	fake := &fakeS3{}
	svc := &S3ServiceImpl{client: fake, bucket: "site-media", baseURL: "https://cdn.example.com"}

	ref, err := svc.Upload(context.Background(), testFile("Hero.PNG"), "site/home", "hero-1")
	require.NoError(t, err)
	assert.Equal(t, "site/home/hero-1.png", ref.PublicID)
	assert.Equal(t, "https://cdn.example.com/site/home/hero-1.png", ref.URL)
	assert.Equal(t, "site-media", aws.ToString(fake.put.Bucket))
	assert.Equal(t, "image/png", aws.ToString(fake.put.ContentType))
	assert.Equal(t, "data", fake.body)

	require.NoError(t, svc.Delete(context.Background(), ref.PublicID))
	assert.Equal(t, "site/home/hero-1.png", aws.ToString(fake.del.Key))

	assert.Equal(t, ref.PublicID, svc.PublicIDFromURL(ref.URL))
	assert.Equal(t, "a/b.jpg", svc.PublicIDFromURL("https://site-media.s3.us-east-1.amazonaws.com/a/b.jpg"))
}

func TestS3Service_UploadError(t *testing.T) {
	svc := &S3ServiceImpl{client: &fakeS3{putErr: errors.New("denied")}, bucket: "b", baseURL: "https://b"}

	_, err := svc.Upload(context.Background(), testFile("a.png"), "f", "id")
	assert.ErrorIs(t, err, domain.ErrMediaUpload)
}

func TestNew_UnknownProvider(t *testing.T) {
	_, err := New(context.Background(), Options{Provider: "ftp"})
	assert.Error(t, err)
}
