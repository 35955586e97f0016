package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dmitrijs2005/placebot/internal/access"
	"github.com/dmitrijs2005/placebot/internal/intake"
	"github.com/dmitrijs2005/placebot/internal/placefile"
	"github.com/dmitrijs2005/placebot/internal/publish"
	"github.com/dmitrijs2005/placebot/internal/roblox"
	"github.com/dmitrijs2005/placebot/internal/storage"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

func renderHelp(w io.Writer, maxSize int64, policy access.Policy) {
	fmt.Fprintln(w, bold("Commands:"))
	fmt.Fprintln(w, "  upload <path>                validate and store a place file")
	fmt.Fprintln(w, "  publish <file_id> [place_id] publish a stored file; omit place_id to create a new place")
	fmt.Fprintln(w, "  status                       storage statistics")
	fmt.Fprintln(w, "  place <place_id>             public details of a place")
	fmt.Fprintln(w, "  cleanup [hours]              remove old uploads (administrators only)")
	fmt.Fprintln(w, "  exit | quit                  leave")
	fmt.Fprintf(w, "Formats: %s (binary), %s (XML)\n", placefile.ExtBinary, placefile.ExtXML)
	fmt.Fprintf(w, "Max file size: %s\n", humanize.IBytes(uint64(maxSize)))
	fmt.Fprintf(w, "Access: requires %s\n", policy.Required())
}

func renderUpload(w io.Writer, res intake.Result) {
	if !res.Accepted {
		fmt.Fprintln(w, red("Upload rejected: "+res.Reason()))
		return
	}
	md := res.Verdict.Metadata
	fmt.Fprintln(w, green("Upload accepted"))
	fmt.Fprintf(w, "  File ID:  %s\n", res.UploadID)
	fmt.Fprintf(w, "  Name:     %s\n", md.DeclaredName)
	fmt.Fprintf(w, "  Type:     %s\n", md.FileType.Label())
	fmt.Fprintf(w, "  Size:     %s\n", humanize.IBytes(uint64(res.Size)))
	if len(md.ServiceNames) > 0 {
		fmt.Fprintf(w, "  Services: %s\n", strings.Join(md.ServiceNames, ", "))
	}
	fmt.Fprintf(w, "  Digest:   %s\n", res.Digest)
	fmt.Fprintf(w, "Next: publish %s [place_id]\n", res.UploadID)
}

func renderOutcome(w io.Writer, out publish.Outcome) {
	switch out.Status {
	case publish.Success:
		fmt.Fprintln(w, green("Game published successfully!"))
	case publish.PartialSuccess:
		fmt.Fprintln(w, yellow("Partially successful: "+out.Message))
	default:
		fmt.Fprintln(w, red(fmt.Sprintf("Publish failed at %s: %s", out.Step, out.Message)))
		return
	}

	fmt.Fprintf(w, "  Place ID: %d\n", out.TargetID)
	fmt.Fprintf(w, "  Account:  %s\n", out.Account.Label())
	fmt.Fprintf(w, "  Type:     %s\n", out.UploadType)
	if out.Status == publish.Success {
		fmt.Fprintf(w, "  Play:     %s\n", out.PlayURL)
	}
	if out.EditURL != "" {
		fmt.Fprintf(w, "  Edit:     %s\n", out.EditURL)
	}
}

func renderStats(w io.Writer, st storage.Stats, backend string, maxSize int64) {
	fmt.Fprintln(w, bold("Bot status"))
	fmt.Fprintf(w, "  Storage:      %s\n", backend)
	fmt.Fprintf(w, "  Files:        %s\n", humanize.Comma(int64(st.FileCount)))
	fmt.Fprintf(w, "  Total size:   %s\n", humanize.IBytes(uint64(st.TotalSize)))
	if st.FileCount > 0 {
		fmt.Fprintf(w, "  Average size: %s\n", humanize.IBytes(uint64(st.AverageSize)))
	}
	exts := make([]string, 0, len(st.FileTypes))
	for ext := range st.FileTypes {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	for _, ext := range exts {
		label := ext
		if label == "" {
			label = "(none)"
		}
		fmt.Fprintf(w, "  %-13s %d\n", label+":", st.FileTypes[ext])
	}
	fmt.Fprintf(w, "  Max file size: %s\n", humanize.IBytes(uint64(maxSize)))
}

func renderPlace(w io.Writer, d roblox.PlaceDetails) {
	fmt.Fprintln(w, bold(fmt.Sprintf("Place %d", d.PlaceID)))
	fmt.Fprintf(w, "  Name:    %s\n", d.Name)
	if d.Builder != "" {
		fmt.Fprintf(w, "  Builder: %s\n", d.Builder)
	}
	if d.Description != "" {
		fmt.Fprintf(w, "  About:   %s\n", d.Description)
	}
	if d.URL != "" {
		fmt.Fprintf(w, "  URL:     %s\n", d.URL)
	}
}
