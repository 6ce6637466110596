package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tanq16/workshopdl/internal/output"
	"github.com/tanq16/workshopdl/internal/steam"
	"github.com/tanq16/workshopdl/internal/utils"
	"github.com/tanq16/workshopdl/internal/workshop"
)

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info [WORKSHOP_ID or URL]",
		Short: "Show a workshop file's details without downloading it",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			id, err := utils.ParseWorkshopID(args[0])
			if err != nil {
				output.PrintError(err.Error())
				os.Exit(1)
			}
			cfg := loadConfig(cmd)
			client, stop := startClient(cfg, cfg.HTTPClientConfig())
			runner := workshop.NewRunner(client, output.StdinConfirm)
			details, err := runner.Info(cmd.Context(), steam.PublishedFileID(id))
			stop()
			if err == nil {
				output.PrintField("Size", utils.FormatMiB(details.FileSize))
			}
			exitOnError(err)
		},
	}
	return cmd
}
