package upload

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/petcollar/fwrename/service/publisher"
	"github.com/petcollar/fwrename/shared/logging"
)

// DefaultMaxParallel bounds concurrent uploads when Options leaves it unset.
const DefaultMaxParallel = 4

// S3ClientAPI is the interface for the AWS S3 client methods used by the service.
type S3ClientAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Options configures the destination of uploaded images.
type Options struct {
	Bucket      string
	Prefix      string
	Endpoint    string
	MaxParallel int
}

// Result is the outcome of uploading one environment's image.
type Result struct {
	Environment string
	Path        string
	Key         string
	URI         string
	Err         error
}

type service struct {
	client S3ClientAPI
	opts   Options
	log    *logging.Logger
}

// Service is the interface for uploading published images.
type Service interface {
	Upload(ctx context.Context, version string, artifacts []publisher.Artifact) []Result
}
