package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fdb/internal/catalog"
	"fdb/internal/config"
	"fdb/internal/logger"
)

var (
	storeDir   string
	configPath string
	verbose    bool
	dryRun     bool
)

var rootCmd = &cobra.Command{
	Use:   "fdb",
	Short: "Content-addressed media catalog",
	Long: `fdb ingests files into a store directory, deduplicates them by content,
extracts metadata (EXIF, video streams) and thumbnails, and keeps a
searchable SQLite catalog of everything it has seen.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&storeDir, "store", "s", "", "Store directory (or FDB_STORE, or config default_store)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: user config dir)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&dryRun, "dry-run", "n", false, "Record metadata without writing blobs or thumbnails")
}

// openCatalog resolves the store directory and opens it. Callers own
// the returned catalog and must Close it.
func openCatalog() (*catalog.Catalog, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	dir := storeDir
	if dir == "" {
		dir = os.Getenv("FDB_STORE")
	}
	if dir == "" {
		dir = cfg.DefaultStore
	}
	if dir == "" {
		return nil, fmt.Errorf("no store directory: use --store, FDB_STORE or default_store in the config")
	}

	return catalog.Open(dir, cfg, dryRun)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
