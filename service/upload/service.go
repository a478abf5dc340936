// Package upload copies published firmware images to S3 for OTA distribution.
package upload

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/petcollar/fwrename/service/publisher"
	"github.com/petcollar/fwrename/shared/logging"
	"golang.org/x/sync/errgroup"
)

const contentType = "application/octet-stream"

// NewService creates an S3 upload service. A non-empty Options.Endpoint
// targets an S3-compatible store using path-style addressing.
func NewService(cfg aws.Config, opts Options, log *logging.Logger) Service {
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})

	return NewServiceWithClient(client, opts, log)
}

// NewServiceWithClient creates an upload service around an existing client.
func NewServiceWithClient(client S3ClientAPI, opts Options, log *logging.Logger) Service {
	if opts.MaxParallel < 1 {
		opts.MaxParallel = DefaultMaxParallel
	}
	if log == nil {
		log = logging.Nop()
	}

	return &service{client: client, opts: opts, log: log}
}

// Key returns the object key for an environment's image.
func Key(prefix, environment, name string) string {
	return path.Join(prefix, environment, name)
}

// Upload sends each artifact's local copy to the bucket. Uploads are
// independent: a failure is recorded on its Result and the rest continue.
// Results are returned in artifact order.
func (s *service) Upload(ctx context.Context, version string, artifacts []publisher.Artifact) []Result {
	results := make([]Result, len(artifacts))

	var g errgroup.Group
	g.SetLimit(s.opts.MaxParallel)

	for i, a := range artifacts {
		key := Key(s.opts.Prefix, a.Environment, filepath.Base(a.LocalPath))
		results[i] = Result{
			Environment: a.Environment,
			Path:        a.LocalPath,
			Key:         key,
			URI:         fmt.Sprintf("s3://%s/%s", s.opts.Bucket, key),
		}

		g.Go(func() error {
			if err := s.put(ctx, version, a, key); err != nil {
				s.log.Error().Err(err).Str("environment", a.Environment).Str("key", key).Msg("Upload failed")
				results[i].Err = err
				return nil
			}
			s.log.Info().Str("uri", results[i].URI).Msg("Uploaded")
			return nil
		})
	}

	_ = g.Wait()

	return results
}

func (s *service) put(ctx context.Context, version string, a publisher.Artifact, key string) error {
	f, err := os.Open(a.LocalPath)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.opts.Bucket),
		Key:           aws.String(key),
		Body:          f,
		ContentLength: aws.Int64(a.Size),
		ContentType:   aws.String(contentType),
		Metadata: map[string]string{
			"firmware-version": version,
			"environment":      a.Environment,
			"sha256":           a.SHA256,
		},
	})
	if err != nil {
		return fmt.Errorf("put s3://%s/%s: %w", s.opts.Bucket, key, err)
	}

	return nil
}
