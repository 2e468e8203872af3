package main

import (
	"os"

	"github.com/sguzman/lantern-leaf/internal/shell"
	"github.com/spf13/cobra"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats [SOURCE]",
	Short: "Show reading-time stats for a book",
	Example: paragraph(`lantern stats book.txt
lantern stats book.txt --json`),
	Args: cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		sess, err := openSession(args)
		if err != nil {
			return err
		}

		snap := sess.Snapshot()
		if statsJSON {
			return writeJSONOut(snap.Stats)
		}
		shell.NewRenderer(int(width)).Stats(os.Stdout, snap)
		return nil
	},
}

func init() {
	statsCmd.Flags().BoolVarP(&statsJSON, "json", "j", false, "print as JSON")
}
