// Package history renders ledger queries as console tables.
package history

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/petcollar/fwrename/service/storage"
)

// RenderRunTable prints recent publish runs.
func RenderRunTable(w io.Writer, runs []storage.RunSummary) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded")
		return
	}
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Run", "Date", "Version", "Source", "Target", "Published", "Failed", "Result"})
	for _, r := range runs {
		result := "ok"
		switch {
		case r.DryRun:
			result = "dry-run"
		case !r.Success:
			result = "failed"
		}
		t.AppendRow(table.Row{r.RunID, r.CreatedAt.Format("2006-01-02 15:04:05"), r.Version, r.VersionMarker, r.TargetName, r.Published, r.Failed, result})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
}

// RenderArtifactTable prints the artifacts recorded for one run.
func RenderArtifactTable(w io.Writer, runID int64, artifacts []storage.ArtifactRecord) {
	if len(artifacts) == 0 {
		fmt.Fprintf(w, "No artifacts recorded for run %d\n", runID)
		return
	}
	fmt.Fprintf(w, "\nRun %d\n", runID)
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Environment", "Status", "Local Copy", "Size", "Upload", "Error"})
	for _, a := range artifacts {
		t.AppendRow(table.Row{a.Environment, a.Status, a.LocalPath, a.SizeBytes, a.UploadURI, a.Error})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
}
