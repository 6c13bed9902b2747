package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"fdb/pkg/models"
)

var (
	listTag   string
	listLimit int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List cataloged entries, newest first",
	Run:   runList,
}

func init() {
	listCmd.Flags().StringVar(&listTag, "tag", "", "Only show entries carrying this tag")
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "Maximum number of entries (0 = all)")
	rootCmd.AddCommand(listCmd)
}

// describe renders the dimension/duration/tag summary column.
func describe(d *models.EntryDetail) string {
	var parts []string
	if w, h := d.Attr("width"), d.Attr("height"); w != "" && h != "" {
		parts = append(parts, fmt.Sprintf("(%sx%s)", w, h))
	}
	if dur := d.Attr("duration"); dur != "" {
		parts = append(parts, fmt.Sprintf("[%ss]", dur))
	}
	if desc := d.Attr("description"); desc != "" {
		parts = append(parts, desc)
	}
	parts = append(parts, "{"+strings.Join(d.Tags(), ", ")+"}")
	return strings.Join(parts, " ")
}

func runList(cmd *cobra.Command, args []string) {
	if listTag == "" && len(args) > 0 {
		listTag = args[0]
	}

	cat, err := openCatalog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
		os.Exit(1)
	}
	defer cat.Close()

	details, err := cat.List(listLimit, listTag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing entries: %v\n", err)
		os.Exit(1)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tTYPE\tSIZE\tINFO")
	for i := range details {
		d := &details[i]
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n",
			d.Entry.ID,
			d.Entry.Timestamp,
			d.Entry.FileType,
			d.Entry.FileSize,
			describe(d),
		)
	}
	w.Flush()
}
