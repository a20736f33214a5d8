package feed

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3GetObjectAPI is the slice of the S3 client the source needs.
type S3GetObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source reads the document from an S3 object.
type S3Source struct {
	Client S3GetObjectAPI
	Bucket string
	Key    string
}

// NewS3Source builds a source using the default AWS credential chain.
func NewS3Source(ctx context.Context, region, bucket, key string) (*S3Source, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &S3Source{Client: s3.NewFromConfig(cfg), Bucket: bucket, Key: key}, nil
}

func (s *S3Source) Fetch(ctx context.Context) ([]byte, error) {
	out, err := s.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(s.Key),
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %v: %w", s, err, ErrFetchFailed)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: reading object: %v: %w", s, err, ErrFetchFailed)
	}
	return data, nil
}

func (s *S3Source) String() string { return "s3://" + s.Bucket + "/" + s.Key }
