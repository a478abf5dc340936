// Package publishtable renders a publish run as console tables.
package publishtable

import (
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/petcollar/fwrename/model"
	"github.com/petcollar/fwrename/service/resolver"
	"github.com/petcollar/fwrename/shared/console"
)

// DrawPublishTable renders a publish run to stdout. Colours are dropped when
// stdout is not a terminal.
func DrawPublishTable(input model.RenderPublishInput) {
	console.ConfigureColors(os.Stdout)
	Write(os.Stdout, input)
}

// Write renders a publish run to w.
func Write(w io.Writer, input model.RenderPublishInput) {
	res := input.Result

	fmt.Fprintln(w, "\n🔧 Firmware Publish Report")
	fmt.Fprintf(w, "📋 Detected firmware version: %s %s\n", text.Bold.Sprint(input.Resolution.Version), versionOrigin(input.Resolution))
	if input.Regression {
		fmt.Fprintln(w, text.FgYellow.Sprintf("⚠️  Version %s is lower than last published %s", input.Resolution.Version, input.PreviousVersion))
	}
	if res.DryRun {
		fmt.Fprintln(w, text.FgCyan.Sprint("🧪 Dry run: no files were written"))
	}

	if len(res.Artifacts) > 0 {
		fmt.Fprintln(w, "\n"+text.FgGreen.Sprint("✅ Published Images"))
		t := newTable(w)
		t.AppendHeader(table.Row{"Environment", "Local Copy", "Shared Copy", "Size", "SHA-256"})
		for _, a := range res.Artifacts {
			t.AppendRow(table.Row{a.Environment, a.LocalPath, a.SharedPath, formatSize(a.Size), shortHash(a.SHA256)})
		}
		t.Render()
	}

	if len(res.Failures) > 0 {
		fmt.Fprintln(w, "\n"+text.FgRed.Sprint("❌ Copy Failures"))
		t := newTable(w)
		t.AppendHeader(table.Row{"Environment", "Path", "Error"})
		for _, f := range res.Failures {
			t.AppendRow(table.Row{f.Environment, f.Path, truncate(errString(f.Err), 60)})
		}
		t.Render()
	}

	if len(input.Uploads) > 0 {
		title := "☁️  Uploads"
		if input.UploadAccount != "" {
			title += " - Account: " + input.UploadAccount
		}
		fmt.Fprintln(w, "\n"+text.FgCyan.Sprint(title))
		t := newTable(w)
		t.AppendHeader(table.Row{"Environment", "Object", "Status"})
		for _, u := range input.Uploads {
			status := text.FgGreen.Sprint("✅ uploaded")
			if u.Err != nil {
				status = text.FgRed.Sprint("❌ " + truncate(u.Err.Error(), 50))
			}
			t.AppendRow(table.Row{u.Environment, u.URI, status})
		}
		t.Render()
	}

	if !res.Succeeded() {
		drawDiagnostics(w, input)
		return
	}

	if res.DryRun {
		fmt.Fprintln(w, text.FgCyan.Sprintf("\n🧪 Firmware would be renamed to: %s", res.TargetName))
		return
	}

	fmt.Fprintln(w, text.FgGreen.Sprintf("\n🎉 Firmware renamed successfully to: %s", res.TargetName))
	fmt.Fprintln(w, "🚀 Ready for OTA deployment!")
}

func drawDiagnostics(w io.Writer, input model.RenderPublishInput) {
	artifact := input.Result.Artifact
	if artifact == "" {
		artifact = "firmware image"
	}

	fmt.Fprintln(w, text.FgYellow.Sprintf("\n⚠️  No %s found in build directories", artifact))
	fmt.Fprintln(w, "💡 Make sure the build completed successfully")

	if len(input.Result.Listings) == 0 {
		return
	}

	fmt.Fprintln(w, "\n📁 Available build files:")
	for _, l := range input.Result.Listings {
		fmt.Fprintf(w, "  %s/\n", l.Environment)
		for _, f := range l.Files {
			fmt.Fprintf(w, "    %s\n", f)
		}
	}
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	return t
}

func versionOrigin(r resolver.Resolution) string {
	switch r.Marker {
	case resolver.MarkerFallback:
		return text.FgYellow.Sprint("(fallback, no version marker found)")
	case resolver.MarkerDocTag:
		return text.Faint.Sprintf("(@version in %s)", r.Source)
	default:
		return text.Faint.Sprintf("(FIRMWARE_VERSION in %s)", r.Source)
	}
}

func formatSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func shortHash(sum string) string {
	if len(sum) <= 12 {
		return sum
	}
	return sum[:12]
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
