package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/tanq16/workshopdl/internal/decode"
	"github.com/tanq16/workshopdl/internal/output"
	"github.com/tanq16/workshopdl/internal/utils"
)

func newDecodeCmd() *cobra.Command {
	var outputPath string
	var preserve bool

	cmd := &cobra.Command{
		Use:   "decode [DIR] [--output OUTPUT_DIR]",
		Short: "Decode an already downloaded workshop folder",
		Long: `Decode an already downloaded workshop folder.

Without --output the folder is decoded in place; with it, the folder's
contents are copied there first and the original is left untouched.`,
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			src := args[0]
			opts := decode.Options{
				Preserve: preserve,
				OnDecode: func(path string) {
					output.PrintDebug(fmt.Sprintf("Decoding %s...", filepath.Base(path)))
				},
			}
			root := src
			if outputPath != "" {
				res, err := decode.Process(src, outputPath, opts)
				if err != nil {
					output.PrintError(fmt.Sprintf("Error: %v", err))
					os.Exit(1)
				}
				root = res.Root
			} else {
				if _, err := decode.DecodeTree(src, opts); err != nil {
					output.PrintError(fmt.Sprintf("Error: %v", err))
					os.Exit(1)
				}
				if _, err := decode.RemoveItemInfo(src); err != nil {
					output.PrintError(fmt.Sprintf("Error: %v", err))
					os.Exit(1)
				}
			}
			if abs, err := filepath.Abs(root); err == nil {
				root = abs
			}
			output.PrintSuccess(fmt.Sprintf("Completed! The decoded files are in `%s`.", utils.DisplayPath(root)))
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Copy into this directory before decoding")
	cmd.Flags().BoolVarP(&preserve, "preserve-encoded", "P", false, "Do not delete the encoded files")
	return cmd
}
