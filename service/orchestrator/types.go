package orchestrator

import (
	"context"

	"github.com/petcollar/fwrename/model"
	"github.com/petcollar/fwrename/service/output"
	"github.com/petcollar/fwrename/service/publisher"
	"github.com/petcollar/fwrename/service/resolver"
	"github.com/petcollar/fwrename/service/storage"
	awssts "github.com/petcollar/fwrename/service/sts"
	"github.com/petcollar/fwrename/service/upload"
	"github.com/petcollar/fwrename/shared/logging"
)

type service struct {
	// Core steps
	resolverService  resolver.Service
	publisherService publisher.Service
	outputService    output.Service
	versionInfo      model.VersionInfo
	// Optional steps; nil disables them.
	storageService storage.Service
	uploadService  upload.Service
	stsService     awssts.Service

	log      *logging.Logger
	newRunID func() string
}

// Outcome is the result of one publish run.
type Outcome struct {
	RunUUID         string
	RunID           int64
	Resolution      resolver.Resolution
	Result          publisher.Result
	Uploads         []upload.Result
	UploadAccount   string
	PreviousVersion string
	Regression      bool
}

// Succeeded reports whether at least one artifact was published.
func (o Outcome) Succeeded() bool {
	return o.Result.Succeeded()
}

// Service is the interface for orchestrator service.
type Service interface {
	Orchestrate(ctx context.Context, flags model.Flags) (Outcome, error)
}
