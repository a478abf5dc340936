package main

import (
	"context"

	"github.com/petcollar/fwrename/model"
	awsconfig "github.com/petcollar/fwrename/service/aws_config"
	"github.com/petcollar/fwrename/service/orchestrator"
	"github.com/petcollar/fwrename/service/output"
	"github.com/petcollar/fwrename/service/publisher"
	"github.com/petcollar/fwrename/service/resolver"
	"github.com/petcollar/fwrename/service/storage"
	awssts "github.com/petcollar/fwrename/service/sts"
	"github.com/petcollar/fwrename/service/upload"
	"github.com/petcollar/fwrename/shared/logging"
)

func runPublish(
	ctx context.Context,
	flags model.Flags,
	versionInfo model.VersionInfo,
	storageService storage.Service,
	log *logging.Logger,
) (orchestrator.Outcome, error) {
	resolverService := resolver.NewService(flags.SourceDir, flags.FallbackVersion, log)
	publisherService := publisher.NewService(publisher.Options{
		Artifact:  flags.Artifact,
		Prefix:    flags.Prefix,
		SharedDir: flags.SharedDir,
		DryRun:    flags.DryRun,
	}, log)
	outputService := output.NewService(flags.Output)

	uploadService, stsService := newUploadServices(ctx, flags, log)

	orchestratorService := orchestrator.NewService(
		resolverService, publisherService,
		outputService, versionInfo,
		storageService,
		uploadService, stsService,
		log,
	)

	return orchestratorService.Orchestrate(ctx, flags)
}

// newUploadServices returns nil services when no bucket is configured or the
// AWS configuration cannot be loaded. Uploading is best effort and never
// blocks publishing.
func newUploadServices(ctx context.Context, flags model.Flags, log *logging.Logger) (upload.Service, awssts.Service) {
	if flags.S3Bucket == "" {
		return nil, nil
	}

	cfgService := awsconfig.NewService()
	awsCfg, err := cfgService.GetAWSCfg(ctx, awsconfig.Options{Region: flags.Region, Profile: flags.Profile})
	if err != nil {
		log.Error().Err(err).Msg("AWS configuration unavailable, skipping upload")
		return nil, nil
	}

	uploadService := upload.NewService(awsCfg, upload.Options{
		Bucket:      flags.S3Bucket,
		Prefix:      flags.S3Prefix,
		Endpoint:    flags.S3Endpoint,
		MaxParallel: flags.MaxParallel,
	}, log)

	// S3-compatible stores rarely implement STS.
	if flags.S3Endpoint != "" {
		return uploadService, nil
	}

	return uploadService, awssts.NewService(awsCfg)
}
