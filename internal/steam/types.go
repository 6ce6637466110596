package steam

import (
	"strconv"
	"time"
)

// PublishedFileID names a Workshop item.
type PublishedFileID uint64

func (id PublishedFileID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// SteamID is a 64-bit Steam account identifier.
type SteamID uint64

func (id SteamID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// Result mirrors the EResult codes the Steam services report.
type Result int

const (
	ResultNone         Result = 0
	ResultOK           Result = 1
	ResultFail         Result = 2
	ResultFileNotFound Result = 9
	ResultAccessDenied Result = 15
	ResultTimeout      Result = 16
)

func (r Result) String() string {
	switch r {
	case ResultOK:
		return "OK"
	case ResultFail:
		return "Failure"
	case ResultFileNotFound:
		return "File Not Found"
	case ResultAccessDenied:
		return "Access Denied"
	case ResultTimeout:
		return "Timeout"
	default:
		return "Result(" + strconv.Itoa(int(r)) + ")"
	}
}

type ItemDetails struct {
	PublishedFileID PublishedFileID
	Result          Result
	Title           string
	Description     string
	Owner           SteamID
	VotesUp         uint32
	VotesDown       uint32
	FileSize        uint64
	FileURL         string
	TimeUpdated     time.Time
}

type InstallInfo struct {
	Folder     string
	SizeOnDisk uint64
	TimeStamp  time.Time
}

// QueryHandle correlates a QueryItem request with its QueryCompleted callback.
type QueryHandle uint64

// Callback is any payload delivered to registered handlers by RunCallbacks.
type Callback any

type QueryCompleted struct {
	Handle  QueryHandle
	Details []ItemDetails
	Err     error
}

type PersonaStateChange struct {
	SteamID SteamID
}

type DownloadItemResult struct {
	AppID           uint32
	PublishedFileID PublishedFileID
	Result          Result
}
