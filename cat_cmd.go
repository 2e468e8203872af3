package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/sguzman/lantern-leaf/internal/reader"
	"github.com/spf13/cobra"
)

var (
	catPage int
	catAll  bool
	catCopy bool
	catJSON bool
)

var catCmd = &cobra.Command{
	Use:   "cat [SOURCE]",
	Short: "Print paginated book text",
	Long:  paragraph(fmt.Sprintf("\n%s a book as plain paginated text. Point it at a file or a directory, or pipe text in.", keyword("Print"))),
	Example: paragraph(`lantern cat book.txt
lantern cat book.txt --page 3
lantern cat --all book.txt | less`),
	Args: cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		sess, err := openSession(args)
		if err != nil {
			return err
		}

		if catAll {
			return catAllPages(sess)
		}

		snap := sess.Snapshot()
		if catPage > 0 {
			snap = sess.Apply(reader.SetPage{Page: catPage - 1})
		}

		if catCopy {
			if err := clipboard.WriteAll(snap.PageText); err != nil {
				return fmt.Errorf("unable to copy to clipboard: %w", err)
			}
			fmt.Printf("Copied page %d to the clipboard.\n", snap.CurrentPage+1)
			return nil
		}
		if catJSON {
			return writeJSONOut(snap)
		}
		fmt.Println(snap.PageText)
		return nil
	},
}

func catAllPages(sess *reader.Session) error {
	snap := sess.Snapshot()
	pages := make([]string, 0, snap.TotalPages)
	for i := 0; i < snap.TotalPages; i++ {
		snap = sess.Apply(reader.SetPage{Page: i})
		pages = append(pages, snap.PageText)
	}

	if catJSON {
		return writeJSONOut(pages)
	}
	text := strings.Join(pages, "\n\n")
	if catCopy {
		if err := clipboard.WriteAll(text); err != nil {
			return fmt.Errorf("unable to copy to clipboard: %w", err)
		}
		fmt.Printf("Copied %d pages to the clipboard.\n", len(pages))
		return nil
	}
	fmt.Println(text)
	return nil
}

func writeJSONOut(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	catCmd.Flags().IntVarP(&catPage, "page", "p", 0, "page to print (1-based)")
	catCmd.Flags().BoolVarP(&catAll, "all", "a", false, "print every page")
	catCmd.Flags().BoolVarP(&catCopy, "copy", "c", false, "copy the output to the clipboard")
	catCmd.Flags().BoolVarP(&catJSON, "json", "j", false, "print as JSON")
}
