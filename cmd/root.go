package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/tanq16/workshopdl/internal/config"
	"github.com/tanq16/workshopdl/internal/output"
	"github.com/tanq16/workshopdl/internal/steam"
	"github.com/tanq16/workshopdl/internal/utils"
	"github.com/tanq16/workshopdl/internal/workshop"
)

var (
	workshopID      string
	outputFolder    string
	preserveEncoded bool
	assumeYes       bool
	configPath      string
	appID           uint32
	steamcmdPath    string
	username        string
	installDir      string
	debug           bool
	logFile         string
	logCloser       io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "workshopdl --workshop-id ID --output-folder DIR",
	Short: "Downloads and decodes a workshop file from the Steam Workshop",
	Long: `Downloads and decodes a workshop file from the Steam Workshop.

The workshop ID is the last number in the item's URL, e.g. 2785198049 in
https://steamcommunity.com/sharedfiles/filedetails/?id=2785198049
The full URL is accepted as well.

Examples:
  workshopdl -w 2785198049 -o ./f45-loadouts
  workshopdl -w 2785198049 -o ./f45-loadouts --preserve-encoded
  workshopdl info 2785198049`,
	Version: utils.WorkshopDLVersion,
	Args:    cobra.NoArgs,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		closer, err := utils.InitLogger(debug, logFile)
		if err != nil {
			output.PrintWarning(fmt.Sprintf("Logging to file disabled: %v", err))
		}
		logCloser = closer
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCloser != nil {
			logCloser.Close()
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		id, err := utils.ParseWorkshopID(workshopID)
		if err != nil {
			output.PrintError(err.Error())
			os.Exit(1)
		}
		cfg := loadConfig(cmd)
		job := utils.WorkshopJob{
			ID:               uuid.New().String(),
			WorkshopID:       id,
			OutputPath:       outputFolder,
			PreserveEncoded:  preserveEncoded,
			AssumeYes:        assumeYes,
			ShowProgress:     output.IsInteractive(os.Stderr),
			HTTPClientConfig: cfg.HTTPClientConfig(),
		}
		log.Debug().Str("op", "cmd/root").Str("job", job.ID).Msgf("starting download of %d", id)

		client, stop := startClient(cfg, job.HTTPClientConfig)
		output.PrintTitle(fmt.Sprintf("Steam Workshop Downloader (app %d)", cfg.AppID))
		runner := workshop.NewRunner(client, output.StdinConfirm)
		_, err = runner.Run(cmd.Context(), job)
		stop()
		exitOnError(err)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&workshopID, "workshop-id", "w", "", "ID (or URL) of the workshop file to download")
	rootCmd.Flags().StringVarP(&outputFolder, "output-folder", "o", "", "Where to place the decoded files")
	rootCmd.Flags().BoolVarP(&preserveEncoded, "preserve-encoded", "P", false, "Do not delete the encoded files")
	rootCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Download without asking for confirmation")
	rootCmd.MarkFlagRequired("workshop-id")
	rootCmd.MarkFlagRequired("output-folder")

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default "+config.DefaultPath()+")")
	rootCmd.PersistentFlags().Uint32Var(&appID, "app-id", utils.DefaultAppID, "Steam app ID the workshop item belongs to")
	rootCmd.PersistentFlags().StringVar(&steamcmdPath, "steamcmd", "", "Path to the steamcmd executable")
	rootCmd.PersistentFlags().StringVar(&username, "username", "", "Steam account for steamcmd (anonymous if empty)")
	rootCmd.PersistentFlags().StringVar(&installDir, "install-dir", "", "Directory steamcmd downloads into")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Also write logs to this file")

	rootCmd.AddCommand(newInfoCmd())
	rootCmd.AddCommand(newDecodeCmd())
}

// loadConfig merges the config file, environment and any flags set on cmd.
func loadConfig(cmd *cobra.Command) *config.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		output.PrintError(fmt.Sprintf("Error loading config: %v", err))
		os.Exit(1)
	}
	flags := cmd.Flags()
	if flags.Changed("app-id") {
		cfg.AppID = appID
	}
	if flags.Changed("steamcmd") {
		cfg.SteamCMDPath = steamcmdPath
	}
	if flags.Changed("username") {
		cfg.Username = username
	}
	if flags.Changed("install-dir") {
		cfg.InstallDir = installDir
	}
	if err := cfg.Validate(); err != nil {
		output.PrintError(fmt.Sprintf("Invalid config: %v", err))
		os.Exit(1)
	}
	return cfg
}

// startClient initialises the Steam backend and its callback pump. The
// returned stop function halts both.
func startClient(cfg *config.Config, httpCfg utils.HTTPClientConfig) (steam.Client, func()) {
	backend, err := steam.NewBackend(steam.BackendConfig{
		AppID:        cfg.AppID,
		SteamCMDPath: cfg.SteamCMDPath,
		Username:     cfg.Username,
		InstallDir:   cfg.InstallDir,
		APIKey:       cfg.APIKey,
		HTTPClient:   utils.NewWorkshopHTTPClient(httpCfg),
	})
	if err != nil {
		output.PrintError(fmt.Sprintf("Error initializing Steam client: %v", err))
		os.Exit(1)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := workshop.StartPump(ctx, backend, cfg.PollInterval)
	return backend, func() {
		cancel()
		<-done
		backend.Shutdown()
	}
}
