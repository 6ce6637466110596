package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/tanq16/workshopdl/internal/output"
	"github.com/tanq16/workshopdl/internal/workshop"
)

// exitOnError reports err. Tolerated outcomes leave the exit status at 0.
func exitOnError(err error) {
	if err == nil {
		return
	}
	if workshop.IsTolerated(err) {
		output.PrintError(describe(err))
		return
	}
	output.PrintError(fmt.Sprintf("Error: %v", err))
	os.Exit(1)
}

func describe(err error) string {
	switch {
	case errors.Is(err, workshop.ErrCancelled):
		return "Cancelled."
	case errors.Is(err, workshop.ErrQueryFailed):
		return "Failed to get file details."
	case errors.Is(err, workshop.ErrDownloadNotStarted):
		return "Failed to start download. (Are you logged in to Steam?)"
	case errors.Is(err, workshop.ErrNoInstallInfo):
		return "Failed to retrieve downloaded file info. It may not have downloaded properly."
	default:
		return err.Error()
	}
}
