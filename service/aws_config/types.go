package awsconfig

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
)

// Options selects the credentials and region used for uploads.
type Options struct {
	Region  string
	Profile string
}

type service struct{}

// Service is the interface for AWS configuration service.
type Service interface {
	GetAWSCfg(ctx context.Context, opts Options) (aws.Config, error)
}
