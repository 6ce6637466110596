package workshop

import "errors"

// Outcomes that end a run early without it being a failure of the tool.
var (
	ErrQueryFailed        = errors.New("failed to get file details")
	ErrCancelled          = errors.New("cancelled")
	ErrDownloadNotStarted = errors.New("failed to start download (are you logged in to Steam?)")
	ErrNoInstallInfo      = errors.New("failed to retrieve downloaded file info, it may not have downloaded properly")
)

// IsTolerated reports whether err is one of the early-exit outcomes above.
func IsTolerated(err error) bool {
	return errors.Is(err, ErrQueryFailed) ||
		errors.Is(err, ErrCancelled) ||
		errors.Is(err, ErrDownloadNotStarted) ||
		errors.Is(err, ErrNoInstallInfo)
}
