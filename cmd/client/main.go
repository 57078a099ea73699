package main

import (
	"fmt"
	"os"

	"github.com/MKhiriev/go-page-builder/internal/adapter"
	"github.com/MKhiriev/go-page-builder/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	build := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)

	if err := newRootCommand(build, adapter.NewHTTPBuilderAdapter).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
