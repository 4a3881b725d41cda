// Package buildinfo exposes version metadata injected at link time.
//
// Build with:
//
//	go build -ldflags "-X github.com/rosterhq/roster/internal/buildinfo.buildVersion=v1.2.3 \
//	  -X github.com/rosterhq/roster/internal/buildinfo.buildDate=2025-01-15 \
//	  -X github.com/rosterhq/roster/internal/buildinfo.buildCommit=abc1234"
package buildinfo

import (
	"fmt"
	"io"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

// PrintBuildData writes the build version, date and commit to w.
func PrintBuildData(w io.Writer) {
	tmpl := `Build version: %s
Build date: %s
Build commit: %s
`
	fmt.Fprintf(w, tmpl, buildVersion, buildDate, buildCommit)
}
