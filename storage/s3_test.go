package storage

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

type mockS3 struct {
	s3iface.S3API

	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (m *mockS3) PutObjectWithContext(_ aws.Context, input *s3.PutObjectInput, _ ...request.Option) (*s3.PutObjectOutput, error) {
	m.input = input
	m.body, _ = io.ReadAll(input.Body)
	if m.err != nil {
		return nil, m.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestParseS3URL(t *testing.T) {
	bucket, key, err := ParseS3URL("s3://renders/frames/frame.png")
	if err != nil {
		t.Fatal(err)
	}
	if bucket != "renders" || key != "frames/frame.png" {
		t.Fatalf("expected bucket renders and key frames/frame.png; got %s and %s", bucket, key)
	}

	for _, bad := range []string{"frame.png", "s3://renders", "s3://renders/", "http://renders/frame.png"} {
		if _, _, err = ParseS3URL(bad); !errors.Is(err, ErrInvalidS3URL) {
			t.Fatalf("expected ParseS3URL(%q) to fail with %v; got %v", bad, ErrInvalidS3URL, err)
		}
	}
}

func TestIsS3URL(t *testing.T) {
	if !IsS3URL("s3://bucket/key.png") {
		t.Fatal("expected s3://bucket/key.png to be an s3 url")
	}
	if IsS3URL("frame.png") {
		t.Fatal("expected frame.png not to be an s3 url")
	}
}

func TestUpload(t *testing.T) {
	client := &mockS3{}
	u := newUploader(client, "public-read")

	err := u.Upload(context.Background(), "s3://renders/frame.webp", []byte("data"), "image/webp")
	if err != nil {
		t.Fatal(err)
	}

	if aws.StringValue(client.input.Bucket) != "renders" || aws.StringValue(client.input.Key) != "frame.webp" {
		t.Fatalf("expected upload to renders/frame.webp; got %s/%s", aws.StringValue(client.input.Bucket), aws.StringValue(client.input.Key))
	}
	if aws.StringValue(client.input.ContentType) != "image/webp" {
		t.Fatalf("expected content type image/webp; got %s", aws.StringValue(client.input.ContentType))
	}
	if aws.StringValue(client.input.ACL) != "public-read" {
		t.Fatalf("expected ACL public-read; got %s", aws.StringValue(client.input.ACL))
	}
	if aws.Int64Value(client.input.ContentLength) != 4 || string(client.body) != "data" {
		t.Fatalf("expected 4 byte body 'data'; got %q", string(client.body))
	}
}

func TestUploadErrors(t *testing.T) {
	client := &mockS3{err: errors.New("access denied")}
	u := newUploader(client, "")

	err := u.Upload(context.Background(), "s3://renders/frame.png", []byte("data"), "image/png")
	if err == nil || !errors.Is(err, client.err) {
		t.Fatalf("expected upload error to wrap %v; got %v", client.err, err)
	}
	if client.input.ACL != nil {
		t.Fatal("expected no ACL to be set")
	}

	client.input = nil
	if err = u.Upload(context.Background(), "renders/frame.png", nil, "image/png"); !errors.Is(err, ErrInvalidS3URL) {
		t.Fatalf("expected error %v; got %v", ErrInvalidS3URL, err)
	}
	if client.input != nil {
		t.Fatal("expected invalid url not to reach the client")
	}
}

func TestNewUploader(t *testing.T) {
	u, err := NewUploader(Config{
		Endpoint:  "http://127.0.0.1:9000",
		Region:    "us-east-1",
		AccessKey: "key",
		SecretKey: "secret",
	})
	if err != nil {
		t.Fatal(err)
	}
	if u.client == nil {
		t.Fatal("expected uploader to have an s3 client")
	}
}
