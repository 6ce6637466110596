package workshop

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/tanq16/workshopdl/internal/decode"
	"github.com/tanq16/workshopdl/internal/output"
	"github.com/tanq16/workshopdl/internal/steam"
	"github.com/tanq16/workshopdl/internal/utils"
)

// Prompter asks a yes/no question with a default answer.
type Prompter func(question string, def bool) (bool, error)

type Runner struct {
	Orchestrator *Orchestrator
	Confirm      Prompter
}

func NewRunner(client steam.Client, confirm Prompter) *Runner {
	return &Runner{Orchestrator: NewOrchestrator(client), Confirm: confirm}
}

// Info fetches and prints the item's details and owner.
func (r *Runner) Info(ctx context.Context, id steam.PublishedFileID) (steam.ItemDetails, error) {
	output.PrintInfo(fmt.Sprintf("Getting info for %s...", id))
	fmt.Println()
	details, err := r.Orchestrator.FetchDetails(ctx, id)
	if err != nil {
		return details, err
	}
	author, err := r.Orchestrator.ResolveOwner(ctx, details.Owner)
	if err != nil {
		return details, err
	}
	output.PrintField("Name", details.Title)
	output.PrintField("Author", author)
	output.PrintField("Desc. (first line)", utils.FirstLine(details.Description))
	output.PrintField("Upvotes", strconv.FormatUint(uint64(details.VotesUp), 10))
	output.PrintField("Downvotes", strconv.FormatUint(uint64(details.VotesDown), 10))
	fmt.Println()
	return details, nil
}

// Run performs the whole download: details, confirmation, download, copy and
// decode. Early exits are reported through the tolerated errors.
func (r *Runner) Run(ctx context.Context, job utils.WorkshopJob) (*decode.Result, error) {
	id := steam.PublishedFileID(job.WorkshopID)
	logger := log.With().Str("job", job.ID).Logger()

	details, err := r.Info(ctx, id)
	if err != nil {
		return nil, err
	}

	confirmed := true
	if !job.AssumeYes {
		question := fmt.Sprintf("Download this file? (%s)", utils.FormatMiB(details.FileSize))
		if confirmed, err = r.Confirm(question, true); err != nil {
			return nil, err
		}
	}
	if !confirmed {
		return nil, ErrCancelled
	}

	output.PrintSuccess("Starting download...")
	res, err := r.Orchestrator.Download(ctx, id)
	if err != nil {
		return nil, err
	}
	logger.Debug().Str("op", "workshop/runner").Msgf("download result %s", res.Result)
	info, err := r.Orchestrator.InstallPath(id)
	if err != nil {
		return nil, err
	}
	output.PrintSuccess("Successfully downloaded file.")
	logger.Info().Str("op", "workshop/runner").Msgf("item installed at %s (%s)", info.Folder, utils.FormatBytes(info.SizeOnDisk))

	var bar *progressbar.ProgressBar
	if job.ShowProgress {
		if size, err := decode.TreeSize(info.Folder); err == nil {
			bar = output.NewBytesBar(size, "Copying")
		}
	}
	finishBar := func() {
		if bar != nil && !bar.IsFinished() {
			bar.Finish()
		}
	}
	defer finishBar()
	opts := decode.Options{
		Preserve: job.PreserveEncoded,
		OnDecode: func(path string) {
			finishBar()
			output.PrintDebug(fmt.Sprintf("Decoding %s...", filepath.Base(path)))
		},
	}
	if bar != nil {
		opts.Progress = bar
	}
	result, err := decode.Process(info.Folder, job.OutputPath, opts)
	if err != nil {
		return result, err
	}
	output.PrintSuccess(fmt.Sprintf("Completed! The decoded files are in `%s`.", utils.DisplayPath(result.Root)))
	return result, nil
}
