package utils

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/c2h5oh/datasize"
)

// FormatBytes renders a size for log output, e.g. "1.5 MB".
func FormatBytes(bytes uint64) string {
	return datasize.ByteSize(bytes).HumanReadable()
}

// FormatMiB renders a size in mebibytes with two decimals, e.g. "1.50MiB".
func FormatMiB(bytes uint64) string {
	return fmt.Sprintf("%.2fMiB", float64(bytes)/1024/1024)
}

// DisplayPath strips the Windows extended-length prefix that absolute paths can carry.
func DisplayPath(path string) string {
	return strings.TrimPrefix(path, `\\?\`)
}

// FirstLine returns text up to the first line break, without a trailing carriage return.
func FirstLine(text string) string {
	line, _, _ := strings.Cut(text, "\n")
	return strings.TrimSuffix(line, "\r")
}

// ParseWorkshopID accepts a bare item ID or a Workshop page URL carrying it
// in the id query parameter.
func ParseWorkshopID(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("workshop ID is empty")
	}
	raw := s
	if strings.Contains(s, "://") {
		u, err := url.Parse(s)
		if err != nil {
			return 0, fmt.Errorf("invalid workshop URL: %w", err)
		}
		raw = u.Query().Get("id")
		if raw == "" {
			return 0, fmt.Errorf("workshop URL has no id parameter")
		}
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid workshop ID %q", raw)
	}
	return id, nil
}
