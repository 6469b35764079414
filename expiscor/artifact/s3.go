package artifact

import (
	"bytes"
	"context"
	"io"
	"path"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/pkg/errors"
)

// S3 stores artifacts under a key prefix in one bucket. Credentials and
// region come from the usual AWS environment or IAM role.
type S3 struct {
	bucket     string
	prefix     string
	api        *s3.S3
	uploader   *s3manager.Uploader
	downloader *s3manager.Downloader
}

// NewS3 creates a store over bucket/prefix using a shared AWS session.
func NewS3(bucket, prefix string) (*S3, error) {
	sess, err := session.NewSession(&aws.Config{})
	if err != nil {
		return nil, errors.Wrap(err, "create AWS session")
	}
	return &S3{
		bucket:     bucket,
		prefix:     prefix,
		api:        s3.New(sess),
		uploader:   s3manager.NewUploader(sess),
		downloader: s3manager.NewDownloader(sess),
	}, nil
}

func (s *S3) key(name string) string {
	return path.Join(s.prefix, name)
}

func (s *S3) Put(ctx context.Context, name string, r io.Reader) error {
	_, err := s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
		Body:   r,
	})
	return errors.Wrapf(err, "upload artifact s3://%s/%s", s.bucket, s.key(name))
}

func (s *S3) Get(ctx context.Context, name string) (io.ReadCloser, error) {
	buf := aws.NewWriteAtBuffer(nil)
	_, err := s.downloader.DownloadWithContext(ctx, buf, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "download artifact s3://%s/%s", s.bucket, s.key(name))
	}
	return io.NopCloser(bytes.NewReader(buf.Bytes())), nil
}

func (s *S3) Exists(ctx context.Context, name string) (bool, error) {
	_, err := s.api.HeadObjectWithContext(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	})
	if err == nil {
		return true, nil
	}
	var aerr awserr.Error
	if errors.As(err, &aerr) {
		switch aerr.Code() {
		case "NotFound", s3.ErrCodeNoSuchKey:
			return false, nil
		}
	}
	return false, errors.Wrapf(err, "stat artifact s3://%s/%s", s.bucket, s.key(name))
}
