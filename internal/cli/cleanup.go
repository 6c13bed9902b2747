package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove database records whose blob is missing",
	Run:   runCleanup,
}

func init() {
	rootCmd.AddCommand(cleanupCmd)
}

func runCleanup(cmd *cobra.Command, args []string) {
	cat, err := openCatalog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
		os.Exit(1)
	}
	defer cat.Close()

	removed, err := cat.Cleanup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error cleaning up: %v\n", err)
		os.Exit(1)
	}

	for _, o := range removed {
		fmt.Printf("Removed record for missing blob: %s (ID: %d)\n", o.FileName, o.ID)
	}
	if len(removed) == 0 {
		fmt.Println("Store is clean. No missing blobs found.")
	} else {
		fmt.Printf("Cleaned up %d record(s).\n", len(removed))
	}
}
