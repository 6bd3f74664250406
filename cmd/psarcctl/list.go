package main

import (
	"fmt"

	"github.com/openfret/psarckit/psarc"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newListCmd())
}

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <archive>",
		Short: "List archive members with their sizes",
		Long: `The list command prints every named member of a PSARC archive in
entry order, one per line, with its unpacked size.

Example:
  psarcctl list songs.psarc
  psarcctl list songs.psarc --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(args)
		},
	}
	return cmd
}

func runList(args []string) error {
	archivePath := args[0]

	log.Debug("opening archive", "path", archivePath)

	a, err := psarc.Open(archivePath)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer a.Close()

	members := a.List()

	if jsonOut {
		type entry struct {
			Name string `json:"name"`
			Size uint64 `json:"size"`
		}
		out := make([]entry, 0, len(members))
		for _, m := range members {
			out = append(out, entry{Name: m.Name, Size: m.Size})
		}
		return printJSON(out)
	}

	for _, m := range members {
		printInfo("  %s (%d bytes)\n", m.Name, m.Size)
	}
	return nil
}
