package utils

// WorkshopJob is everything a single download-and-decode run needs to know.
type WorkshopJob struct {
	ID               string
	WorkshopID       uint64
	OutputPath       string
	PreserveEncoded  bool
	AssumeYes        bool
	ShowProgress     bool
	HTTPClientConfig HTTPClientConfig
}
