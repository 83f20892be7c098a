// Package main contains the cli implementation of the tool. It uses cobra
// package for cli tool implementation.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/spf13/cobra"

	"dbsr/internal/config"
	"dbsr/internal/report"
	"dbsr/internal/rewrite"
	"dbsr/internal/walker"
)

type runFlags struct {
	configFile    string
	host          string
	db            string
	user          string
	pass          string
	search        string
	replace       string
	dryRun        bool
	maxIterations int
	includeTables []string
	excludeTables []string
	timeout       int
}

func main() {
	flags := &runFlags{}
	rootCmd := &cobra.Command{
		Use:   "dbsr",
		Short: "Content-aware search and replace across a MySQL/MariaDB database",
		Long: `dbsr scans every text-like column of every table in a database, rewrites
matches of --search to --replace, and writes the result back -- understanding
PHP-style serialized values, JSON, and base64 envelopes along the way so that
embedded length prefixes stay correct.

Examples:
  dbsr --db mydb --user root --pass secret --search old.example --replace new.example
  dbsr --config dbsr.toml --dry-run`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, flags)
		},
	}

	rootCmd.Flags().StringVar(&flags.configFile, "config", "", "Path to a TOML config file")
	rootCmd.Flags().StringVar(&flags.host, "host", "localhost", "Database host[:port]")
	rootCmd.Flags().StringVar(&flags.db, "db", "", "Database name")
	rootCmd.Flags().StringVar(&flags.user, "user", "", "Database user")
	rootCmd.Flags().StringVar(&flags.pass, "pass", "", "Database password")
	rootCmd.Flags().StringVar(&flags.search, "search", "", "Text to search for")
	rootCmd.Flags().StringVar(&flags.replace, "replace", "", "Text to replace matches with")
	rootCmd.Flags().BoolVarP(&flags.dryRun, "dry-run", "d", false, "Report what would change without writing any rows")
	rootCmd.Flags().IntVar(&flags.maxIterations, "max-iterations", rewrite.DefaultMaxIterations, "Maximum rewrite passes per cell")
	rootCmd.Flags().StringSliceVar(&flags.includeTables, "include-tables", nil, "Only scan these tables (comma-separated)")
	rootCmd.Flags().StringSliceVar(&flags.excludeTables, "exclude-tables", nil, "Never scan these tables (comma-separated)")
	rootCmd.Flags().IntVar(&flags.timeout, "timeout", 30, "Connection timeout in seconds")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, flags *runFlags) error {
	if flags.configFile != "" {
		if err := applyConfigFile(cmd, flags); err != nil {
			return err
		}
	}

	if flags.db == "" {
		return fmt.Errorf("--db is required")
	}
	if flags.search == "" {
		return fmt.Errorf("--search is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(flags.timeout)*time.Second)
	defer cancel()

	dsn := buildDSN(flags)
	db, err := walker.Connect(ctx, dsn)
	if err != nil {
		return err
	}
	defer func() {
		_ = db.Close()
	}()

	rpt := report.New(os.Stdout)
	w := walker.New(db, rpt, walker.Options{
		IncludeTables: flags.includeTables,
		ExcludeTables: flags.excludeTables,
		DryRun:        flags.dryRun,
		MaxIterations: flags.maxIterations,
	})

	result, err := w.Run(context.Background(), flags.search, flags.replace)
	if err != nil {
		return err
	}

	fmt.Printf("done: %d rows examined, %d rows updated across %d table(s)\n",
		result.TotalExamined(), result.TotalUpdated(), len(result.Tables))
	if result.HasErrors() {
		fmt.Println("completed with per-row or per-table errors; see ERROR lines above")
	}
	return nil
}

// applyConfigFile loads flags.configFile and fills in any flag that the
// user did not explicitly pass on the command line. It consults
// cmd.Flags().Changed rather than comparing against each flag's default
// value, so that e.g. an explicit --host=localhost is never overridden
// by a config file carrying a different host -- a default-value
// comparison cannot tell "left alone" apart from "explicitly set to the
// default".
func applyConfigFile(cmd *cobra.Command, flags *runFlags) error {
	f, err := config.Load(flags.configFile)
	if err != nil {
		return err
	}
	set := cmd.Flags().Changed

	if !set("host") && f.Host != "" {
		flags.host = f.Host
	}
	if !set("db") && f.DB != "" {
		flags.db = f.DB
	}
	if !set("user") && f.User != "" {
		flags.user = f.User
	}
	if !set("pass") && f.Pass != "" {
		flags.pass = f.Pass
	}
	if !set("search") && f.Search != "" {
		flags.search = f.Search
	}
	if !set("replace") && f.Replace != "" {
		flags.replace = f.Replace
	}
	if !set("max-iterations") && f.MaxIterations > 0 {
		flags.maxIterations = f.MaxIterations
	}
	if !set("include-tables") && len(f.IncludeTables) > 0 {
		flags.includeTables = f.IncludeTables
	}
	if !set("exclude-tables") && len(f.ExcludeTables) > 0 {
		flags.excludeTables = f.ExcludeTables
	}
	if !set("dry-run") && f.DryRun {
		flags.dryRun = f.DryRun
	}
	return nil
}

func buildDSN(flags *runFlags) string {
	cfg := mysql.NewConfig()
	cfg.User = flags.user
	cfg.Passwd = flags.pass
	cfg.Net = "tcp"
	cfg.Addr = flags.host
	cfg.DBName = flags.db
	cfg.ParseTime = false
	return cfg.FormatDSN()
}
