package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"setlist/internal/assemble"
	"setlist/internal/config"
	"setlist/internal/console"
	"setlist/internal/library"
	"setlist/internal/resolve"
)

func newBuildCommand(ctx *commandContext) *cobra.Command {
	var (
		inputPath  string
		libraryDir string
		outputPath string
		format     string
		relative   bool
		color      bool
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Resolve a setlist against the library and write a playlist",
		Long: `Resolve every song in a setlist file against the music library and write
an M3U or PLS playlist. Songs that do not match a library entry exactly are
confirmed interactively. Without --output the playlist is printed.

The setlist holds one record per song, four lines each:

  Shoot to Thrill
  AC/DC
  Back in Black
  5:18`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(inputPath) == "" {
				return usageErrorf("missing required flag --input")
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			opts := assemble.Options{
				Format:        format,
				RelativePaths: cfg.Playlist.RelativePaths,
				RunID:         uuid.NewString(),
			}
			if cmd.Flags().Changed("relative") {
				opts.RelativePaths = relative
			}
			if opts.InputPath, err = config.ExpandPath(inputPath); err != nil {
				return err
			}
			if libraryDir != "" {
				if opts.LibraryDir, err = config.ExpandPath(libraryDir); err != nil {
					return err
				}
			}
			if outputPath != "" {
				if opts.OutputPath, err = config.ExpandPath(outputPath); err != nil {
					return err
				}
			}

			logger, logFile, err := ctx.newLogger(opts.RunID)
			if err != nil {
				return err
			}
			defer logFile.Close()

			out := cmd.OutOrStdout()
			con := console.New(cmd.InOrStdin(), out)
			if !color {
				con.SetColor(false)
			}
			builder, err := assemble.NewBuilder(cfg, library.FS{}, con, out, logger)
			if err != nil {
				return err
			}
			summary, err := builder.Run(cmd.Context(), opts)
			if err != nil {
				if errors.Is(err, resolve.ErrAborted) {
					con.Display("Aborting", console.StyleWarning)
				}
				return err
			}
			if summary.OutputPath == "" {
				return nil
			}

			con.Display(fmt.Sprintf("Wrote %d tracks to %s", len(summary.Tracks), summary.OutputPath), console.StyleSuccess)
			fmt.Fprintln(out, renderSummaryTable(summary))
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Setlist text file to read")
	cmd.Flags().StringVarP(&libraryDir, "library", "l", "", "Music library root (defaults to paths.library_dir)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Playlist file to write (prints to the console when omitted)")
	cmd.Flags().StringVar(&format, "format", "", "Playlist format: m3u or pls (defaults to the output extension, then playlist.format)")
	cmd.Flags().BoolVar(&relative, "relative", false, "Write paths relative to the playlist directory")
	cmd.Flags().BoolVar(&color, "color", true, "Colorize prompts when attached to a terminal")
	return cmd
}
