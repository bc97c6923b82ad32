// Package s3store writes each record as one JSON object in an S3 bucket.
package s3store

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/goliatone/go-quoteform/pkg/store"
)

// PutObjectAPI is the subset of the S3 client the store needs.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Options configures the client built by Open.
type Options struct {
	Bucket   string
	Prefix   string
	Region   string
	Endpoint string
}

// Store puts one object per record.
type Store struct {
	client PutObjectAPI
	bucket string
	prefix string
}

// New returns a store over an existing client.
func New(client PutObjectAPI, bucket, prefix string) *Store {
	return &Store{client: client, bucket: bucket, prefix: strings.Trim(prefix, "/")}
}

// Open loads the default AWS config and builds an S3 client. A custom
// endpoint switches to path style addressing for S3 compatible servers.
func Open(ctx context.Context, opts Options) (*Store, error) {
	if opts.Bucket == "" {
		return nil, fmt.Errorf("s3store: bucket is required")
	}
	region := opts.Region
	if region == "" {
		region = "us-east-1"
	}

	sdkConfig, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("s3store: load aws config: %w", err)
	}

	client := s3.NewFromConfig(sdkConfig, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})
	return New(client, opts.Bucket, opts.Prefix), nil
}

// Key returns the object key for record.
func (s *Store) Key(record store.Record) string {
	table := record.Table
	if table == "" {
		table = "records"
	}
	day := record.SubmittedAt.UTC().Format("2006/01/02")
	return path.Join(s.prefix, table, day, record.ID+".json")
}

// Insert implements store.RecordStore. The put is conditional so an
// existing object is never overwritten.
func (s *Store) Insert(ctx context.Context, record store.Record) error {
	payload, err := record.MarshalDocument()
	if err != nil {
		return err
	}

	key := s.Key(record)
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(payload),
		ContentType: aws.String("application/json"),
		IfNoneMatch: aws.String("*"),
	})
	if err != nil {
		return fmt.Errorf("s3store: put %s: %w", key, err)
	}
	return nil
}
