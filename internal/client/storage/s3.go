// Package storage uploads room images straight to an S3-compatible bucket
// (MinIO, Garage, AWS) instead of going through the backend uploads
// endpoint.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/roomadmin/internal/client/models"
	"github.com/dmitrijs2005/roomadmin/internal/common"
	"github.com/google/uuid"
)

var ErrForeignURL = errors.New("url does not belong to bucket")

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) objectAPI {
		return s3.NewFromConfig(cfg, optFns...)
	}

	now = time.Now
)

// objectAPI is the part of *s3.Client the gateway needs.
type objectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type Options struct {
	Endpoint     string
	Region       string
	Bucket       string
	AccessKey    string
	SecretKey    string
	UsePathStyle bool
	// PublicURL prefixes object keys to form the URLs stored on rooms.
	// Defaults to Endpoint/Bucket.
	PublicURL string
}

// S3Uploader implements client.Uploader on top of an S3 bucket.
type S3Uploader struct {
	api       objectAPI
	bucket    string
	publicURL string
}

func NewS3Uploader(ctx context.Context, opts Options) (*S3Uploader, error) {
	if opts.Bucket == "" {
		return nil, errors.New("s3 bucket is required")
	}

	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(opts.Region),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	api := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = opts.UsePathStyle
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
		}
	})

	publicURL := opts.PublicURL
	if publicURL == "" {
		publicURL = strings.TrimRight(opts.Endpoint, "/") + "/" + opts.Bucket
	}

	return newS3Uploader(api, opts.Bucket, publicURL), nil
}

func newS3Uploader(api objectAPI, bucket, publicURL string) *S3Uploader {
	return &S3Uploader{api: api, bucket: bucket, publicURL: strings.TrimRight(publicURL, "/")}
}

// ObjectKey builds folder/YYYY/MM/DD/<uuid><ext> for a new object.
func ObjectKey(folder common.UploadFolder, name, contentType string) string {
	ext := strings.ToLower(path.Ext(name))
	if ext == "" {
		if exts, _ := mime.ExtensionsByType(contentType); len(exts) > 0 {
			ext = exts[0]
		}
	}
	d := now().UTC()
	return fmt.Sprintf("%s/%04d/%02d/%02d/%s%s", strings.ToLower(string(folder)), d.Year(), d.Month(), d.Day(), uuid.NewString(), ext)
}

func (u *S3Uploader) Upload(ctx context.Context, folder common.UploadFolder, file *models.LocalFile) (string, error) {
	if !folder.Valid() {
		return "", fmt.Errorf("%w: %q", common.ErrInvalidFolder, folder)
	}
	if file == nil || len(file.Data) == 0 {
		return "", common.ErrEmptyFile
	}

	key := ObjectKey(folder, file.Name, file.ContentType)
	in := &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(file.Data),
		ContentLength: aws.Int64(int64(len(file.Data))),
	}
	if file.ContentType != "" {
		in.ContentType = aws.String(file.ContentType)
	}

	if _, err := u.api.PutObject(ctx, in); err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	return u.publicURL + "/" + key, nil
}

func (u *S3Uploader) DeleteByURL(ctx context.Context, fileURL string) error {
	key, err := u.keyFromURL(fileURL)
	if err != nil {
		return err
	}
	if _, err := u.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
	}); err != nil {
		return fmt.Errorf("delete object %s: %w", key, err)
	}
	return nil
}

func (u *S3Uploader) keyFromURL(fileURL string) (string, error) {
	rest, ok := strings.CutPrefix(fileURL, u.publicURL+"/")
	if !ok || rest == "" {
		return "", fmt.Errorf("%w: %s", ErrForeignURL, fileURL)
	}
	if i := strings.IndexAny(rest, "?#"); i >= 0 {
		rest = rest[:i]
	}
	key, err := url.PathUnescape(rest)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrForeignURL, fileURL)
	}
	return key, nil
}
