// Command ls-astroclock computes charts, searches for planetary
// configurations and serves both over HTTP or an interactive prompt.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-astroclock/internal/astro"
	"github.com/litescript/ls-astroclock/internal/config"
	"github.com/litescript/ls-astroclock/internal/ephem"
	"github.com/litescript/ls-astroclock/internal/logging"
	"github.com/litescript/ls-astroclock/internal/position"
	"github.com/litescript/ls-astroclock/internal/search"
	"github.com/litescript/ls-astroclock/internal/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// app carries the global flags and the configuration they resolve to.
type app struct {
	configPath string
	logLevel   string
	ephemeris  string
	lat, lng   float64
	zodiac     string
	helio      bool

	cfg *config.Config
	log *logging.Logger
	now func() time.Time
}

func newRootCmd() *cobra.Command {
	a := &app{now: time.Now}

	root := &cobra.Command{
		Use:           "ls-astroclock",
		Short:         "Astrological charts and planetary event search",
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&a.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/ls-astroclock/config.toml)")
	f.StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	f.StringVar(&a.ephemeris, "ephemeris", "", "directory of ephemeris tables")
	f.Float64Var(&a.lat, "lat", config.DefaultLatitude, "observer latitude in degrees")
	f.Float64Var(&a.lng, "lng", config.DefaultLongitude, "observer longitude in degrees east")
	f.StringVar(&a.zodiac, "zodiac", "", "zodiac: tropical, raman, lahiri, fagan-bradley")
	f.BoolVar(&a.helio, "helio", false, "heliocentric positions")

	root.AddCommand(positionsCmd(a))
	root.AddCommand(searchCmd(a))
	root.AddCommand(frequencyCmd(a))
	root.AddCommand(dasaCmd(a))
	root.AddCommand(convertCmd(a))
	root.AddCommand(fetchCmd(a))
	root.AddCommand(serveCmd(a))
	root.AddCommand(tuiCmd(a))
	root.AddCommand(versionCmd())
	return root
}

// setup loads the configuration and applies flags given on the command
// line over it.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if flags.Changed("ephemeris") {
		cfg.EphemerisDir = a.ephemeris
	}
	if flags.Changed("lat") {
		cfg.Latitude = a.lat
	}
	if flags.Changed("lng") {
		cfg.Longitude = a.lng
	}
	if flags.Changed("zodiac") {
		cfg.Zodiac = a.zodiac
	}
	if flags.Changed("helio") {
		cfg.Heliocentric = a.helio
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	a.log = logging.New(logging.ParseLevel(cfg.LogLevel))
	a.log.SetOutput(cmd.ErrOrStderr())
	a.log.Debug("config loaded", "ephemeris", cfg.EphemerisDir, "zodiac", cfg.Zodiac)
	return nil
}

// service loads the ephemeris tables and returns a position service.
func (a *app) service(ctx context.Context) (*position.Service, error) {
	store, err := ephem.LoadDir(ctx, a.cfg.EphemerisDir, a.log)
	if err != nil {
		return nil, err
	}
	a.log.Debug("ephemeris loaded", "tables", len(store.Coverage()))
	return position.NewService(store), nil
}

// view returns the configured view over freshly loaded tables.
func (a *app) view(ctx context.Context) (position.View, error) {
	svc, err := a.service(ctx)
	if err != nil {
		return position.View{}, err
	}
	pctx, err := a.cfg.Context()
	if err != nil {
		return position.View{}, err
	}
	return svc.View(pctx), nil
}

// searchOptions returns the configured search bounds; a positive timeout
// overrides the configured one.
func (a *app) searchOptions(timeout time.Duration) search.Options {
	opts := search.DefaultOptions()
	opts.Timeout = a.cfg.SearchTimeout.Duration
	if timeout > 0 {
		opts.Timeout = timeout
	}
	return opts
}

// resolveTime returns the Julian Day given by an --at string or a --jd
// number, defaulting to now.
func (a *app) resolveTime(at string, jd float64, jdSet bool) (float64, error) {
	switch {
	case jdSet:
		if !astro.WithinBounds(jd) {
			return 0, fmt.Errorf("jd %v outside supported range %v..%v", jd, astro.MinJD, astro.MaxJD)
		}
		return jd, nil
	case at != "":
		v, err := astro.ParseJD(at)
		if err != nil {
			return 0, err
		}
		if !astro.WithinBounds(v) {
			return 0, fmt.Errorf("time %s outside supported range", at)
		}
		return v, nil
	default:
		return astro.JulianDay(a.now()), nil
	}
}
