package output

import (
	"os"

	"github.com/schollz/progressbar/v3"
)

// NewBytesBar returns a byte-counting progress bar on stderr. The bar is an
// io.Writer, so it can sit behind an io.MultiWriter while copying.
func NewBytesBar(total int64, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions64(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(description),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetElapsedTime(false),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionShowCount(),
		progressbar.OptionShowBytes(true),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "━",
			SaucerHead:    "━",
			SaucerPadding: " ",
			BarStart:      "•",
			BarEnd:        "•",
		}),
	)
}
