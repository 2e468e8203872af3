package main

import (
	"fmt"
	"strings"

	"github.com/sguzman/lantern-leaf/internal/shell"
	"github.com/spf13/cobra"
)

var (
	exportOut      string
	exportCompress bool
)

var exportCmd = &cobra.Command{
	Use:   "export [SOURCE]",
	Short: "Write the audio script for a book",
	Long:  paragraph(fmt.Sprintf("\n%s the spoken-text script, one cleaned sentence per line, grouped by page. Name an output ending in .zst (or pass --compress) to write a compressed script.", keyword("Export"))),
	Example: paragraph(`lantern export book.txt -o book.script
lantern export book.txt -o book.script --compress`),
	Args: cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		sess, err := openSession(args)
		if err != nil {
			return err
		}

		out := exportOut
		if exportCompress && !strings.HasSuffix(out, ".zst") {
			out += ".zst"
		}

		snap := sess.Snapshot()
		if err := shell.ExportScript(out, sess.AudioScript(), snap.Settings.PauseAfterSentence); err != nil {
			return err
		}
		fmt.Println("Wrote audio script to:", out)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output path for the script")
	exportCmd.Flags().BoolVar(&exportCompress, "compress", false, "zstd-compress the script")
	_ = exportCmd.MarkFlagRequired("out")
}
