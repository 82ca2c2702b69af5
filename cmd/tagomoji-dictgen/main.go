// Command tagomoji-dictgen compiles a source dictionary directory
// (char.def, matrix.def, unk.def, *.csv) into the binary format
// tagomoji.OpenDir loads at runtime.
package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/tagomoji/tagomoji/internal/dicbuild"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var delimiter string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "tagomoji-dictgen <output_dir> <input_dir> <encoding>",
		Short: "Compile a source dictionary into tagomoji's binary format",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			} else {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}

			outputDir, inputDir, encoding := args[0], args[1], args[2]
			if err := dicbuild.Build(inputDir, outputDir, delimiter, encoding); err != nil {
				log.Error().Err(err).Msg("dictionary build failed")
				return err
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().StringVarP(&delimiter, "delimiter", "d", ",", "field delimiter used in *.csv and unk.def")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	return cmd
}
