package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var tagCmd = &cobra.Command{
	Use:   "tag [id] [tags...]",
	Short: "Attach tags to an existing entry",
	Args:  cobra.MinimumNArgs(2),
	Run:   runTag,
}

func init() {
	rootCmd.AddCommand(tagCmd)
}

func runTag(cmd *cobra.Command, args []string) {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid ID: %v\n", err)
		os.Exit(1)
	}

	cat, err := openCatalog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
		os.Exit(1)
	}
	defer cat.Close()

	if err := cat.Tag(id, args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error tagging entry: %v\n", err)
		os.Exit(1)
	}
	color.Green("Tagged entry %d.", id)
}
