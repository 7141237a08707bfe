// Package storage uploads rendered frames to S3 compatible object stores.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/achilleasa/spheretrace/log"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

const uploadTimeout = 2 * time.Minute

var ErrInvalidS3URL = errors.New("storage: invalid s3 url")

// S3 connection settings.
type Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string

	// Optional canned ACL applied to uploaded objects.
	ACL string
}

// Load S3 settings from the S3_* environment variables.
func ConfigFromEnv() Config {
	return Config{
		Endpoint:  os.Getenv("S3_ENDPOINT"),
		Region:    os.Getenv("S3_REGION"),
		AccessKey: os.Getenv("S3_ACCESS_KEY"),
		SecretKey: os.Getenv("S3_SECRET_KEY"),
		ACL:       os.Getenv("S3_ACL"),
	}
}

// The Uploader pushes encoded frames to an S3 bucket.
type Uploader struct {
	logger log.Logger
	client s3iface.S3API
	acl    string
}

// Create a new uploader. Static credentials are used when an access key is
// provided; otherwise the default AWS credential chain applies.
func NewUploader(cfg Config) (*Uploader, error) {
	awsCfg := &aws.Config{
		S3ForcePathStyle: aws.Bool(true),
	}
	if cfg.AccessKey != "" {
		awsCfg.Credentials = credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, "")
	}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
	}
	if cfg.Region != "" {
		awsCfg.Region = aws.String(cfg.Region)
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("storage: failed to create S3 session: %w", err)
	}

	return newUploader(s3.New(sess), cfg.ACL), nil
}

func newUploader(client s3iface.S3API, acl string) *Uploader {
	return &Uploader{
		logger: log.New("s3 uploader"),
		client: client,
		acl:    acl,
	}
}

// Upload data to the object addressed by an s3://bucket/key URL.
func (u *Uploader) Upload(ctx context.Context, s3URL string, data []byte, contentType string) error {
	bucket, key, err := ParseS3URL(s3URL)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	size := int64(len(data))
	input := &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	}
	if u.acl != "" {
		input.ACL = aws.String(u.acl)
	}

	if _, err = u.client.PutObjectWithContext(ctx, input); err != nil {
		return fmt.Errorf("storage: failed to upload %s: %w", s3URL, err)
	}

	u.logger.Noticef("uploaded %s (%d bytes)", s3URL, size)
	return nil
}

// Returns true if path is an s3:// URL.
func IsS3URL(path string) bool {
	return strings.HasPrefix(path, "s3://")
}

// Split an s3://bucket/key URL into its bucket and key.
func ParseS3URL(s3URL string) (string, string, error) {
	u, err := url.Parse(s3URL)
	if err != nil || u.Scheme != "s3" {
		return "", "", fmt.Errorf("%w %q", ErrInvalidS3URL, s3URL)
	}

	key := strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return "", "", fmt.Errorf("%w %q; expected s3://bucket/key", ErrInvalidS3URL, s3URL)
	}
	return u.Host, key, nil
}
