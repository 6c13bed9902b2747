package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var showLog bool

var showCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Print one entry with its attributes as JSON",
	Args:  cobra.ExactArgs(1),
	Run:   runShow,
}

func init() {
	showCmd.Flags().BoolVar(&showLog, "log", false, "Also print the entry's action log")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) {
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

	detail, err := cat.Show(id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	encoder.Encode(detail)

	if showLog {
		actions, err := cat.Actions(id)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading log: %v\n", err)
			os.Exit(1)
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ACTION\tTIME")
		for _, a := range actions {
			fmt.Fprintf(w, "%s\t%s\n", a.Action, a.Timestamp)
		}
		w.Flush()
	}
}
