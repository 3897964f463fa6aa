package routeconf

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"sort"

	"github.com/vitalvas/waypoint/mux"
	"gopkg.in/yaml.v3"
)

// File is a decoded route table.
type File struct {
	Routes []Route `yaml:"routes"`
}

// Route describes one route of the table.
type Route struct {
	// Name registers the route under a name (see mux.Router.Get) and
	// selects its handler when WithHandlers is used.
	Name string `yaml:"name,omitempty"`

	// Pattern is the mux route pattern.
	Pattern string `yaml:"pattern"`

	// Defaults holds variable defaults, see mux.Route.Default.
	Defaults map[string]string `yaml:"defaults,omitempty"`

	// Fallbacks holds route-level defaults, see mux.Route.Fallback.
	Fallbacks map[string]string `yaml:"fallbacks,omitempty"`

	// Restrictions maps variable names to restrictions.
	Restrictions map[string]Restriction `yaml:"restrictions,omitempty"`
}

// Restriction is a macro name or a set of accepted tokens.
type Restriction struct {
	Macro  string
	Tokens []string
}

// MarshalYAML encodes the restriction as a scalar (macro) or a sequence
// (tokens).
func (r Restriction) MarshalYAML() (any, error) {
	if r.Macro != "" {
		return r.Macro, nil
	}
	return r.Tokens, nil
}

// UnmarshalYAML decodes the restriction from a scalar or a sequence.
func (r *Restriction) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		r.Macro = node.Value
		r.Tokens = nil
		return nil
	case yaml.SequenceNode:
		var tokens []string
		if err := node.Decode(&tokens); err != nil {
			return err
		}
		r.Macro = ""
		r.Tokens = tokens
		return nil
	default:
		return fmt.Errorf("routeconf: line %d: restriction must be a macro name or a list of tokens", node.Line)
	}
}

// Load decodes a route table from r.
func Load(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &f, nil
		}
		return nil, fmt.Errorf("routeconf: %w", err)
	}

	return &f, nil
}

// LoadFile decodes the route table stored at path.
func LoadFile(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("routeconf: %w", err)
	}
	defer fh.Close()

	return Load(fh)
}

// Option configures Register.
type Option func(*options)

type options struct {
	logger   *slog.Logger
	handlers map[string]http.Handler
}

// WithLogger sets the logger used to report registered routes.
// Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithHandlers attaches handlers to routes by route name. Routes without
// a handler are still registered and used for matching and URL building.
func WithHandlers(handlers map[string]http.Handler) Option {
	return func(o *options) {
		o.handlers = handlers
	}
}

// Register appends the routes of f to router in table order. It returns
// the configuration errors of all routes joined; routes with errors are
// registered anyway, and the router reports them through Err.
func (f *File) Register(router *mux.Router, opts ...Option) error {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	var errs []error
	for i, rc := range f.Routes {
		route := rc.apply(router.NewRoute(rc.Pattern))

		if h, ok := o.handlers[rc.Name]; ok && rc.Name != "" {
			route.Handler(h)
		}

		if err := route.GetError(); err != nil {
			errs = append(errs, fmt.Errorf("routeconf: route %d (%s): %w", i, rc.Pattern, err))
			o.logger.Error("invalid route", slog.Int("index", i), slog.String("pattern", rc.Pattern), slog.Any("error", err))
			continue
		}

		o.logger.Debug("route registered",
			slog.Int("index", i),
			slog.String("name", rc.Name),
			slog.String("pattern", rc.Pattern),
			slog.Bool("handler", route.GetHandler() != nil),
		)
	}

	return errors.Join(errs...)
}

// Router builds a new mux.Router holding the routes of f.
func (f *File) Router(opts ...Option) (*mux.Router, error) {
	router := mux.NewRouter()
	if err := f.Register(router, opts...); err != nil {
		return nil, err
	}
	return router, nil
}

// apply configures route from the table entry. Map entries are applied in
// key order so the first reported error does not depend on map iteration.
func (rc Route) apply(route *mux.Route) *mux.Route {
	for _, name := range sortedKeys(rc.Restrictions) {
		restriction := rc.Restrictions[name]
		if restriction.Macro != "" {
			route.RestrictMacro(name, restriction.Macro)
		} else {
			route.Restrict(name, restriction.Tokens...)
		}
	}

	for _, name := range sortedKeys(rc.Defaults) {
		route.Default(name, rc.Defaults[name])
	}

	for _, key := range sortedKeys(rc.Fallbacks) {
		route.Fallback(key, rc.Fallbacks[key])
	}

	if rc.Name != "" {
		route.Name(rc.Name)
	}

	return route
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
