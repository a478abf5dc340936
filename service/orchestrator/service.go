// Package orchestrator coordinates version resolution, publishing and the
// optional upload and ledger steps.
package orchestrator

import (
	"context"
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/google/uuid"
	"github.com/petcollar/fwrename/model"
	"github.com/petcollar/fwrename/service/output"
	"github.com/petcollar/fwrename/service/publisher"
	"github.com/petcollar/fwrename/service/resolver"
	"github.com/petcollar/fwrename/service/storage"
	awssts "github.com/petcollar/fwrename/service/sts"
	"github.com/petcollar/fwrename/service/upload"
	"github.com/petcollar/fwrename/shared/logging"
)

// NewService creates a new orchestrator service.
func NewService(
	resolverService resolver.Service,
	publisherService publisher.Service,
	outputService output.Service,
	versionInfo model.VersionInfo,
	// Ledger, nil unless --store
	storageService storage.Service,
	// Upload, nil unless --s3-bucket
	uploadService upload.Service,
	stsService awssts.Service,
	log *logging.Logger,
) Service {
	if log == nil {
		log = logging.Nop()
	}

	return &service{
		resolverService:  resolverService,
		publisherService: publisherService,
		outputService:    outputService,
		versionInfo:      versionInfo,
		storageService:   storageService,
		uploadService:    uploadService,
		stsService:       stsService,
		log:              log,
		newRunID:         uuid.NewString,
	}
}

func (s *service) Orchestrate(ctx context.Context, flags model.Flags) (Outcome, error) {
	if flags.Version {
		return Outcome{}, s.versionWorkflow()
	}

	return s.publishWorkflow(ctx, flags)
}

func (s *service) versionWorkflow() error {
	s.outputService.StopSpinner()

	fmt.Printf("fwrename version %s\n", s.versionInfo.Version)
	fmt.Printf("commit: %s\n", s.versionInfo.Commit)
	fmt.Printf("built at: %s\n", s.versionInfo.Date)

	return nil
}

func (s *service) publishWorkflow(ctx context.Context, flags model.Flags) (Outcome, error) {
	out := Outcome{RunUUID: s.newRunID()}

	out.Resolution = s.resolverService.Resolve(flags.Sources)
	if out.Resolution.Fallback() {
		s.log.Info().Str("version", out.Resolution.Version).Msg("No version marker found, using fallback")
	} else {
		s.log.Info().
			Str("version", out.Resolution.Version).
			Str("source", out.Resolution.Source).
			Str("marker", out.Resolution.Marker).
			Msg("Detected firmware version")
	}

	out.Result = s.publisherService.Publish(flags.BuildRoot, out.Resolution.Version)
	if !out.Succeeded() {
		s.log.Warn().Str("build_root", flags.BuildRoot).Msg("No firmware image was published")
	}

	ledgerRoot := absPath(flags.BuildRoot)
	if s.storageService != nil {
		s.checkRegression(ledgerRoot, &out)
	}

	if s.uploadService != nil {
		s.uploadWorkflow(ctx, &out)
	}

	var saveErr error
	if s.storageService != nil {
		saveErr = s.persistRun(ctx, flags, ledgerRoot, &out)
	}

	if err := s.outputService.RenderPublish(s.renderInput(out)); err != nil {
		return out, fmt.Errorf("failed to render report: %w", err)
	}

	return out, saveErr
}

// checkRegression compares the resolved version with the last one published
// from the same build root. Versions that are not semver are not compared.
func (s *service) checkRegression(buildRoot string, out *Outcome) {
	prev, ok, err := s.storageService.LastVersion(buildRoot)
	if err != nil {
		s.log.Warn().Err(err).Msg("Could not look up last published version")
		return
	}
	if !ok {
		return
	}
	out.PreviousVersion = prev

	current, err := semver.NewVersion(out.Resolution.Version)
	if err != nil {
		s.log.Debug().Str("version", out.Resolution.Version).Msg("Version is not semver, skipping regression check")
		return
	}
	last, err := semver.NewVersion(prev)
	if err != nil {
		s.log.Debug().Str("version", prev).Msg("Last version is not semver, skipping regression check")
		return
	}

	if current.LessThan(last) {
		out.Regression = true
		s.log.Warn().
			Str("version", out.Resolution.Version).
			Str("last", prev).
			Msg("Version is lower than the last published version")
	}
}

func (s *service) uploadWorkflow(ctx context.Context, out *Outcome) {
	switch {
	case !out.Succeeded():
		return
	case out.Result.DryRun:
		s.log.Info().Msg("Dry run, skipping upload")
		return
	}

	if s.stsService != nil {
		id, err := s.stsService.WhoAmI(ctx)
		if err != nil {
			s.log.Error().Err(err).Msg("Upload preflight failed, skipping upload")
			return
		}
		out.UploadAccount = id.AccountID
		s.log.Debug().Str("account", id.AccountID).Str("arn", id.ARN).Msg("Uploading as")
	}

	s.outputService.StartSpinner()
	out.Uploads = s.uploadService.Upload(ctx, out.Resolution.Version, out.Result.Artifacts)
	s.outputService.StopSpinner()
}

func (s *service) renderInput(out Outcome) model.RenderPublishInput {
	return model.RenderPublishInput{
		RunUUID:         out.RunUUID,
		Resolution:      out.Resolution,
		Result:          out.Result,
		Uploads:         out.Uploads,
		UploadAccount:   out.UploadAccount,
		PreviousVersion: out.PreviousVersion,
		Regression:      out.Regression,
	}
}
