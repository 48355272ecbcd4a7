// Command gdpmap renders GDP world maps and inspects GDP data files from the
// command line.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/JonMunkholm/gdpmap/internal/config"
	"github.com/JonMunkholm/gdpmap/internal/core"
	"github.com/JonMunkholm/gdpmap/internal/countries"
	"github.com/JonMunkholm/gdpmap/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{}
	if err := a.execute(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		printError(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// execute runs the command line in args. The log file is closed whether or
// not the command succeeds.
func (a *app) execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if cerr := a.close(); err == nil {
		err = cerr
	}
	return err
}

// printError prints err and, when there is one, its user message.
func printError(w io.Writer, err error) {
	fmt.Fprintln(w, "error:", err)
	if core.IsUserFacing(err) {
		fmt.Fprintln(w, core.FormatUserError(err))
	}
}

// app is the state shared by every subcommand, filled in before each run.
type app struct {
	cfg      *config.Config
	info     config.GDPInfo
	codes    core.CodeNameMap
	closeLog func() error

	logLevel      string
	logFormat     string
	gdpInfoFile   string
	countriesFile string
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "gdpmap",
		Short: "Render GDP by country on a world map",
		Long: `Render GDP by country on a world map.

Settings come from the environment (and a .env file if present); flags
override them. The dataset is described by a gdpinfo file with gdpfile,
country_name, country_code, separator, quote, min_year and max_year.

Example: gdpmap --gdpinfo isp_gdp.yaml render --year 1960 --year 2010`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug|info|warn|error (default from LOG_LEVEL)")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "Log format: text|json (default from LOG_FORMAT)")
	root.PersistentFlags().StringVar(&a.gdpInfoFile, "gdpinfo", "", "Dataset description file (default from GDPINFO_FILE)")
	root.PersistentFlags().StringVar(&a.countriesFile, "countries", "", "Country code CSV with code and name columns (default: built-in world map)")

	root.AddCommand(
		newRenderCmd(a),
		newResolveCmd(a),
		newReconcileCmd(a),
		newHistoryCmd(a),
	)
	return root
}

// setup loads configuration, logging, the dataset description and the
// country codes. Flags win over the environment.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	if a.logFormat != "" {
		cfg.Logging.Format = a.logFormat
	}
	if a.gdpInfoFile != "" {
		cfg.Render.GDPInfoFile = a.gdpInfoFile
	}
	if a.countriesFile != "" {
		cfg.Render.CountriesFile = a.countriesFile
	}

	closeLog, err := logging.SetupWriter(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.File)
	if err != nil {
		return err
	}
	a.closeLog = closeLog

	info, err := config.LoadGDPInfo(cfg.Render.GDPInfoFile)
	if err != nil {
		return err
	}

	codes, err := countries.Open(cfg.Render.CountriesFile)
	if err != nil {
		return fmt.Errorf("load countries: %w", err)
	}

	a.cfg = cfg
	a.info = info
	a.codes = codes
	return nil
}

// close releases the log file opened by setup. It is safe to call twice.
func (a *app) close() error {
	if a.closeLog == nil {
		return nil
	}
	closeLog := a.closeLog
	a.closeLog = nil
	return closeLog()
}
