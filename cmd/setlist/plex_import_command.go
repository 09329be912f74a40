package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"setlist/internal/assemble"
	"setlist/internal/config"
	"setlist/internal/console"
	"setlist/internal/library"
	"setlist/internal/plexhtml"
	"setlist/internal/songs"
)

func newPlexImportCommand() *cobra.Command {
	var (
		inputPath  string
		outputPath string
		overwrite  bool
	)

	cmd := &cobra.Command{
		Use:         "plex-import",
		Short:       "Convert a saved Plex playlist page into a setlist file",
		Args:        noArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(inputPath) == "" {
				return usageErrorf("missing required flag --input")
			}
			input, err := config.ExpandPath(inputPath)
			if err != nil {
				return err
			}
			if !library.IsFile(input) {
				return fmt.Errorf("%w: %s", assemble.ErrInputNotFound, input)
			}

			target := strings.TrimSpace(outputPath)
			if target == "" {
				target = strings.TrimSuffix(input, filepath.Ext(input)) + ".txt"
			} else if target, err = config.ExpandPath(target); err != nil {
				return err
			}

			con := console.New(cmd.InOrStdin(), cmd.OutOrStdout())
			if library.IsFile(target) && !overwrite {
				ok, err := con.Confirm(fmt.Sprintf("File %q exists, overwrite?", target), true)
				if err != nil {
					return err
				}
				if !ok {
					con.Display("Aborting!", console.StyleWarning)
					return nil
				}
			}

			file, err := os.Open(input)
			if err != nil {
				return fmt.Errorf("open plex export: %w", err)
			}
			defer file.Close()
			requests, err := plexhtml.Parse(file)
			if err != nil {
				return err
			}
			if err := songs.WriteFile(target, requests); err != nil {
				return err
			}
			con.Display(fmt.Sprintf("File %q written with %d songs", target, len(requests)), console.StyleSuccess)
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Plex playlist HTML page")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Setlist file to write (defaults to the input name with .txt)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing setlist without asking")
	return cmd
}
