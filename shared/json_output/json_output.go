// Package jsonoutput renders a publish run as a JSON document.
package jsonoutput

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/petcollar/fwrename/model"
	"github.com/petcollar/fwrename/service/publisher"
	"github.com/petcollar/fwrename/service/upload"
)

// OutputPublishJSON writes the publish report to stdout.
func OutputPublishJSON(input model.RenderPublishInput) error {
	return Write(os.Stdout, input)
}

// Write writes the publish report to w.
func Write(w io.Writer, input model.RenderPublishInput) error {
	return printJSON(w, BuildPublishReport(input, time.Now().UTC().Format(time.RFC3339)))
}

// BuildPublishReport builds the publish JSON report model.
func BuildPublishReport(input model.RenderPublishInput, generatedAt string) model.PublishReportJSON {
	res := input.Result
	uploads, uploadFailures := mapUploads(input.Uploads)

	return model.PublishReportJSON{
		RunUUID:         input.RunUUID,
		GeneratedAt:     generatedAt,
		Version:         input.Resolution.Version,
		VersionSource:   input.Resolution.Source,
		VersionMarker:   input.Resolution.Marker,
		TargetName:      res.TargetName,
		BuildRoot:       res.BuildRoot,
		SharedDir:       res.SharedDir,
		DryRun:          res.DryRun,
		Success:         res.Succeeded(),
		PreviousVersion: input.PreviousVersion,
		Regression:      input.Regression,
		Summary: model.PublishSummaryJSON{
			Published:     len(res.Artifacts),
			Failed:        len(res.Failures),
			Uploaded:      len(uploads) - uploadFailures,
			UploadsFailed: uploadFailures,
		},
		Published:     mapArtifacts(res.Artifacts),
		Failed:        mapFailures(res.Failures),
		Diagnostics:   mapListings(res.Listings),
		UploadAccount: input.UploadAccount,
		Uploads:       uploads,
	}
}

func mapArtifacts(artifacts []publisher.Artifact) []model.PublishedJSON {
	result := []model.PublishedJSON{}

	for _, a := range artifacts {
		result = append(result, model.PublishedJSON{
			Environment: a.Environment,
			Source:      a.Source,
			LocalPath:   a.LocalPath,
			SharedPath:  a.SharedPath,
			SizeBytes:   a.Size,
			SHA256:      a.SHA256,
		})
	}

	return result
}

func mapFailures(failures []publisher.Failure) []model.FailureJSON {
	result := []model.FailureJSON{}

	for _, f := range failures {
		msg := ""
		if f.Err != nil {
			msg = f.Err.Error()
		}
		result = append(result, model.FailureJSON{
			Environment: f.Environment,
			Path:        f.Path,
			Error:       msg,
		})
	}

	return result
}

func mapListings(listings []publisher.EnvironmentListing) []model.EnvironmentListJSON {
	var result []model.EnvironmentListJSON

	for _, l := range listings {
		files := l.Files
		if files == nil {
			files = []string{}
		}
		result = append(result, model.EnvironmentListJSON{
			Environment: l.Environment,
			Files:       files,
		})
	}

	return result
}

func mapUploads(uploads []upload.Result) ([]model.UploadJSON, int) {
	var (
		result []model.UploadJSON
		failed int
	)

	for _, u := range uploads {
		item := model.UploadJSON{Environment: u.Environment, URI: u.URI}
		if u.Err != nil {
			item.Error = u.Err.Error()
			failed++
		}
		result = append(result, item)
	}

	return result, failed
}

func printJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}
