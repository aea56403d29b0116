// Package buildinfo carries version data stamped in at link time:
//
//	go build -ldflags "-X github.com/dmitrijs2005/authkeeper/internal/buildinfo.Version=v1.0.0"
package buildinfo

import (
	"fmt"
	"io"
)

var (
	Version = ""
	Date    = ""
	Commit  = ""
)

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// PrintBuildData writes the three build fields to w, one per line.
func PrintBuildData(w io.Writer) {
	fmt.Fprintf(w, "Build version: %s\n", orNA(Version))
	fmt.Fprintf(w, "Build date: %s\n", orNA(Date))
	fmt.Fprintf(w, "Build commit: %s\n", orNA(Commit))
}
