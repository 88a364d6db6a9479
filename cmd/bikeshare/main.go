// Command bikeshare explores US bikeshare trip data
// Without -city it runs the interactive prompt loop; with -city it prints one report and exits
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"bikeshare/internal/adapters/console"
	"bikeshare/internal/adapters/source"
	"bikeshare/internal/core/filter"
	"bikeshare/internal/core/version"
	"bikeshare/internal/modkit"
	"bikeshare/internal/modkit/module"
	"bikeshare/internal/modkit/repokit"
	"bikeshare/internal/platform/config"
	perr "bikeshare/internal/platform/errors"
	"bikeshare/internal/platform/logger"
	"bikeshare/internal/platform/store"
	"bikeshare/internal/platform/validate"

	exploredom "bikeshare/internal/services/explore/domain"
	exploremod "bikeshare/internal/services/explore/module"
	sessiondom "bikeshare/internal/services/session/domain"
	sessionmod "bikeshare/internal/services/session/module"

	"github.com/joho/godotenv"
)

// cliOptions are the command line flags
type cliOptions struct {
	City     string `flag:"city"`
	Month    string `flag:"month" validate:"required"`
	Day      string `flag:"day" validate:"required"`
	Raw      int    `flag:"raw" validate:"min=0"`
	PageSize int    `flag:"page-size" validate:"min=0,max=1000"`
	Format   string `flag:"format" validate:"oneof=text json"`
	Version  bool   `flag:"version"`
}

func mustSetEnv(key, val string) {
	if val != "" {
		_ = os.Setenv(key, val)
	}
}

func parseFlags(args []string) (cliOptions, error) {
	var o cliOptions
	fs := flag.NewFlagSet("bikeshare", flag.ContinueOnError)
	fs.StringVar(&o.City, "city", "", "city for a one-shot report: Chicago, New York City or Washington")
	fs.StringVar(&o.Month, "month", "all", "month filter, January..June or all")
	fs.StringVar(&o.Day, "day", "all", "day of week filter, Monday..Sunday or all")
	fs.IntVar(&o.Raw, "raw", 0, "raw data pages to print in one-shot mode")
	fs.IntVar(&o.PageSize, "page-size", 0, "records per raw data page (default BIKESHARE_PAGE_SIZE or 5)")
	fs.StringVar(&o.Format, "format", "text", "output format: text or json")
	fs.BoolVar(&o.Version, "version", false, "print the version and exit")
	if err := fs.Parse(args); err != nil {
		return o, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "bad flags")
	}
	if err := validate.Struct(o); err != nil {
		return o, err
	}
	if o.City == "" && o.Format == "json" {
		return o, perr.WithField(perr.InvalidArgf("json output needs -city"), "format")
	}
	return o, nil
}

// oneShot turns the selection flags into criteria
func oneShot(o cliOptions) (filter.Criteria, error) {
	city, err := filter.ParseCity(o.City)
	if err != nil {
		return filter.Criteria{}, err
	}
	month, err := filter.ParseMonth(o.Month)
	if err != nil {
		return filter.Criteria{}, err
	}
	day, err := filter.ParseDay(o.Day)
	if err != nil {
		return filter.Criteria{}, err
	}
	return filter.Criteria{City: city, Month: month, Day: day}, nil
}

// openStore connects the database the source needs; csv needs none
func openStore(ctx context.Context, root config.Conf, kind string, l *logger.Logger) (*store.Store, error) {
	if kind == source.KindCSV {
		return &store.Store{}, nil
	}
	st, err := store.Open(ctx, store.FromEnv(root.Prefix("BIKESHARE_"), kind, "bikeshare"), store.WithLogger(*l))
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeSource, "open store")
	}
	if err := repokit.Guard(ctx, st); err != nil {
		_ = st.Close(ctx)
		return nil, err
	}
	return st, nil
}

// finished reports whether err is a clean end of the session
func finished(err error) bool {
	return err == nil || errors.Is(err, io.EOF) || errors.Is(err, context.Canceled)
}

func fail(l *logger.Logger, err error) int {
	l.Error().Err(err).Msg("bikeshare failed")
	_, _ = fmt.Fprintln(os.Stderr, "bikeshare:", err)
	return perr.ExitCode(err)
}

func run() int {
	// .env is optional
	_ = godotenv.Load()
	logger.Init(logger.FromEnv())
	l := logger.Named("bikeshare")

	o, err := parseFlags(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		return fail(l, err)
	}
	if o.Version {
		fmt.Println(version.Info().String())
		return 0
	}
	// flags override env so the modules read a single config
	if o.PageSize > 0 {
		mustSetEnv("BIKESHARE_PAGE_SIZE", strconv.Itoa(o.PageSize))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := config.New()
	srcOpts := source.FromConfig(root)
	st, err := openStore(ctx, root, srcOpts.Kind, l)
	if err != nil {
		return fail(l, err)
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	deps := modkit.Deps{Cfg: root, Log: *l, PG: st.PG, CH: st.CH}
	loader, err := source.New(deps, srcOpts)
	if err != nil {
		return fail(l, err)
	}

	var (
		prompter sessiondom.Prompter
		guards   sessiondom.Guards
		renderer sessiondom.Renderer = console.NewText(os.Stdout)
	)
	if o.Format == "json" {
		renderer = console.NewJSON(os.Stdout)
	}
	if o.City != "" {
		crit, err := oneShot(o)
		if err != nil {
			return fail(l, err)
		}
		script := console.NewScript(crit, o.Raw)
		prompter, guards = script, script
	} else {
		tm := console.NewTerm(os.Stdin, os.Stdout)
		prompter = console.NewPrompter(tm)
		guards = console.NewGuards(tm, sessionmod.FromConfig(root).PageSize)
	}

	ex := exploremod.New(deps)
	sm := sessionmod.New(deps, modkit.WithPorts(sessionmod.Ports{
		Prompter: prompter,
		Loader:   loader,
		Reporter: module.MustPortsOf[exploredom.ReportPort](ex),
		Guards:   guards,
		Renderer: renderer,
	}))

	sum, err := module.MustPortsOf[sessiondom.RunnerPort](sm).Run(ctx)
	l.Info().
		Int("iterations", sum.Iterations).
		Int("pages", sum.Pages).
		Int("recovered", sum.Recovered).
		Str("source", srcOpts.Kind).
		Msg("session ended")
	if finished(err) {
		return 0
	}
	return fail(l, err)
}

func main() { os.Exit(run()) }
