package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/kerbaras/bookshelf/pkg/app"
	"github.com/kerbaras/bookshelf/pkg/config"
	"github.com/kerbaras/bookshelf/pkg/data"
	"github.com/kerbaras/bookshelf/pkg/integrations"
	"github.com/kerbaras/bookshelf/pkg/services"
	"github.com/kerbaras/bookshelf/pkg/sources"
	"github.com/spf13/cobra"
)

var (
	cfg       config.Config
	logger    *slog.Logger
	logCloser io.Closer
	catalog   *services.Catalog

	// startupNotice is set when the catalog file did not exist yet.
	startupNotice string
)

var rootCmd = &cobra.Command{
	Use:   "bookshelf",
	Short: "A small library catalog for physical and digital books",
	Long:  "Record physical and digital books, loan them out and take them back, with the catalog kept in a spreadsheet",
	// commands print their own errors through cobra.CheckErr
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		// Launch TUI by default
		c := openCatalog()
		a := app.NewApp(c, coverStore(), sources.NewOpenLibrary(cfg.OpenLibraryURL), startupNotice)
		if err := a.Run(); err != nil {
			cobra.CheckErr(err)
		}
	},
}

func init() {
	rootCmd.PersistentPreRunE = setup
	rootCmd.PersistentPostRunE = teardown

	flags := rootCmd.PersistentFlags()
	flags.StringP("file", "f", config.DefaultFile, "catalog file")
	flags.String("backend", config.BackendXLSX, "storage backend: xlsx, duckdb or memory")
	flags.String("duplicates", string(services.DuplicatesAllow), "duplicate title policy: allow or reject")
	flags.String("log-level", "info", "log level: debug, info, warn or error")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(findCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(loanCmd)
	rootCmd.AddCommand(returnCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(lookupCmd)
}

// setup merges .env, environment and flags, in increasing priority.
func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load()
	if err != nil {
		return err
	}
	cfg = loaded

	flags := cmd.Flags()
	if flags.Changed("file") {
		cfg.File, _ = flags.GetString("file")
	}
	if flags.Changed("backend") {
		cfg.Backend, _ = flags.GetString("backend")
	}
	if flags.Changed("duplicates") {
		v, _ := flags.GetString("duplicates")
		policy, err := services.ParseDuplicatePolicy(v)
		if err != nil {
			return err
		}
		cfg.Duplicates = policy
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// the TUI owns the terminal, so it only logs to a file
	var fallback io.Writer = cmd.ErrOrStderr()
	if !cmd.HasParent() {
		fallback = io.Discard
	}
	logger, logCloser, err = cfg.NewLogger(fallback)
	return err
}

func teardown(cmd *cobra.Command, args []string) error {
	var errs []error
	if catalog != nil {
		errs = append(errs, catalog.Close())
	}
	if logCloser != nil {
		errs = append(errs, logCloser.Close())
	}
	return errors.Join(errs...)
}

// openCatalog loads the configured storage. A missing catalog file is not
// fatal: the catalog starts empty and is created on the first save.
func openCatalog() *services.Catalog {
	c, err := services.NewCatalog(cfg.Storage(),
		services.WithDuplicatePolicy(cfg.Duplicates),
		services.WithLogger(logger),
	)
	if errors.Is(err, data.ErrStorageMissing) {
		startupNotice = fmt.Sprintf("No catalog found at %s. Starting with an empty library.", cfg.File)
		err = nil
	}
	cobra.CheckErr(err)

	catalog = c
	return c
}

func coverStore() *integrations.CoverStore {
	return integrations.NewCoverStore(cfg.CoversDir)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
