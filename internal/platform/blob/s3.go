// Copyright (c) 2026 EasyBuy. All rights reserved.

package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Options configures the S3 driver. Endpoint is set for MinIO or R2.
type S3Options struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	PublicURL string
}

// ObjectAPI is the subset of *s3.Client the store calls.
type ObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3 stores files as objects in one bucket.
type S3 struct {
	client    ObjectAPI
	bucket    string
	publicURL string
}

// NewS3 loads AWS configuration and builds the store.
//
// Static credentials are used when both keys are set; otherwise the default
// AWS credential chain applies.
func NewS3(ctx context.Context, options S3Options) (*S3, error) {
	if options.Bucket == "" {
		return nil, errors.New("blob: s3 bucket is required")
	}

	loadOptions := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(options.Region)}
	if options.AccessKey != "" && options.SecretKey != "" {
		loadOptions = append(loadOptions, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(options.AccessKey, options.SecretKey, ""),
		))
	}

	awsConfig, err := awsconfig.LoadDefaultConfig(ctx, loadOptions...)
	if err != nil {
		return nil, fmt.Errorf("blob: failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if options.Endpoint != "" {
			o.BaseEndpoint = aws.String(options.Endpoint)
			o.UsePathStyle = true
		}
	})

	return NewS3WithClient(client, options), nil
}

// NewS3WithClient builds the store on an existing client.
func NewS3WithClient(client ObjectAPI, options S3Options) *S3 {
	publicURL := options.PublicURL
	if publicURL == "" {
		if options.Endpoint != "" {
			publicURL = strings.TrimRight(options.Endpoint, "/") + "/" + options.Bucket
		} else {
			publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", options.Bucket, options.Region)
		}
	}

	return &S3{
		client:    client,
		bucket:    options.Bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
	}
}

// Put uploads the object and returns <public url>/<key>.
func (store *S3) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error) {
	if !validKey(key) {
		return "", fmt.Errorf("blob: invalid key %q", key)
	}

	_, err := store.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(store.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("blob: s3 put failed: %w", err)
	}

	return store.publicURL + "/" + key, nil
}

// Delete removes the object behind url.
func (store *S3) Delete(ctx context.Context, url string) error {
	if !store.Owns(url) {
		return fmt.Errorf("blob: url %q is not managed by s3 storage", url)
	}

	_, err := store.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(store.bucket),
		Key:    aws.String(strings.TrimPrefix(url, store.publicURL+"/")),
	})
	if err != nil {
		return fmt.Errorf("blob: s3 delete failed: %w", err)
	}
	return nil
}

// Owns reports whether url points into this store's public prefix.
func (store *S3) Owns(url string) bool {
	key, ok := strings.CutPrefix(url, store.publicURL+"/")
	return ok && validKey(key)
}
