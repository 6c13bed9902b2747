package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var addTags []string

var addCmd = &cobra.Command{
	Use:   "add [paths...]",
	Short: "Ingest files or directories into the store",
	Long: `add hashes each file and copies new content into the store. Files whose
content is already cataloged are skipped. Directories are walked
recursively; dotfiles are ignored.`,
	Args: cobra.MinimumNArgs(1),
	Run:  runAdd,
}

func init() {
	addCmd.Flags().StringArrayVarP(&addTags, "tag", "t", nil, "Tag to attach to every ingested file (repeatable)")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) {
	cat, err := openCatalog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
		os.Exit(1)
	}
	defer cat.Close()

	added, err := cat.AddPaths(args, addTags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error adding files: %v\n", err)
		os.Exit(1)
	}

	if added == 0 {
		color.Yellow("Nothing new to add.")
	} else {
		color.Green("Added %d file(s).", added)
	}
}
