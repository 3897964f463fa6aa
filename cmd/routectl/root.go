package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vitalvas/waypoint/mux"
	"github.com/vitalvas/waypoint/routeconf"
	"gopkg.in/yaml.v3"
)

// errNoResult is returned when a path does not match or no URL can be
// built, so the command exits non-zero without it being a table error.
var errNoResult = errors.New("no result")

type rootOptions struct {
	routesFile string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "routectl",
		Short: "Check and exercise route tables",
		Long: `routectl loads a YAML route table and checks it, matches request
paths against it, or builds URLs from variable values.

Routes are tried in table order; the first match or the first route able
to build a URL wins.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.routesFile, "file", "f", "routes.yaml", "Route table file")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log route registration")

	cmd.AddCommand(
		checkCmd(opts),
		matchCmd(opts),
		urlCmd(opts),
		versionCmd(),
	)

	return cmd
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// loadRouter loads the route table and registers it on a new router.
func loadRouter(cmd *cobra.Command, opts *rootOptions) (*mux.Router, error) {
	f, err := routeconf.LoadFile(opts.routesFile)
	if err != nil {
		return nil, err
	}

	logger := newLogger(cmd.ErrOrStderr(), opts.verbose)
	return f.Router(routeconf.WithLogger(logger))
}

func checkCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the route table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			router, err := loadRouter(cmd, opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			return router.Walk(func(route *mux.Route, _ *mux.Router) error {
				names, err := route.GetVarNames()
				if err != nil {
					return err
				}
				name := route.GetName()
				if name == "" {
					name = "-"
				}
				_, err = fmt.Fprintf(out, "%-16s %-40s %s\n", name, route.GetPattern(), strings.Join(names, ","))
				return err
			})
		},
	}
}

// matchResult is printed by the match command.
type matchResult struct {
	Route   string            `yaml:"route,omitempty"`
	Pattern string            `yaml:"pattern"`
	Vars    map[string]string `yaml:"vars"`
}

func matchCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "match PATH",
		Short: "Match a request path against the route table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			router, err := loadRouter(cmd, opts)
			if err != nil {
				return err
			}

			var m mux.RouteMatch
			if !router.Match(args[0], &m) {
				return fmt.Errorf("%w: %s matches no route", errNoResult, args[0])
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			defer enc.Close()

			return enc.Encode(matchResult{
				Route:   m.Route.GetName(),
				Pattern: m.Route.GetPattern(),
				Vars:    m.Vars,
			})
		},
	}
}

func urlCmd(opts *rootOptions) *cobra.Command {
	var base string

	cmd := &cobra.Command{
		Use:   "url [NAME=VALUE...]",
		Short: "Build a URL from variable values",
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseValues(args)
			if err != nil {
				return err
			}

			router, err := loadRouter(cmd, opts)
			if err != nil {
				return err
			}

			u, ok := router.URL(base, values)
			if !ok {
				return fmt.Errorf("%w: no route builds a URL for %s", errNoResult, formatValues(values))
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), u)
			return err
		},
	}

	cmd.Flags().StringVar(&base, "base", "", "Base path prepended to the built URL")

	return cmd
}

// parseValues converts NAME=VALUE arguments into a map.
func parseValues(args []string) (map[string]string, error) {
	values := make(map[string]string, len(args))
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid value %q, expected NAME=VALUE", arg)
		}
		values[name] = value
	}
	return values, nil
}

func formatValues(values map[string]string) string {
	pairs := make([]string, 0, len(values))
	for k, v := range values {
		pairs = append(pairs, k+"="+v)
	}
	sort.Strings(pairs)
	return "{" + strings.Join(pairs, " ") + "}"
}
