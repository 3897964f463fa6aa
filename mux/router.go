package mux

import (
	"errors"
	"net/http"
	"sync"
)

// Router holds an ordered list of routes. Matching and URL building try
// the routes in registration order and the first success wins.
//
// It implements the http.Handler interface, so it can be registered to serve
// requests:
//
//	r := mux.NewRouter()
//	r.HandleFunc("/<controller>/<action>/[id]", handler).
//		Default("action", "index").
//		RestrictInt("id")
//	http.ListenAndServe(":8080", r)
type Router struct {
	// NotFoundHandler is called when no route matches.
	// If nil, http.NotFound is used.
	NotFoundHandler http.Handler

	routes      []*Route
	namedRoutes map[string]*Route
	middlewares []MiddlewareFunc

	// handlerCache caches the middleware-wrapped handler per route
	// to avoid re-wrapping on every request.
	handlerCache sync.Map // map[*Route]http.Handler
}

// NewRouter returns a new router instance.
func NewRouter() *Router {
	return &Router{
		namedRoutes: make(map[string]*Route),
	}
}

// ServeHTTP dispatches the handler registered in the matched route. The
// request path is cleaned of dot segments before matching, and the route
// and its variables are stored in the request context (see Vars).
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	var (
		match   RouteMatch
		handler http.Handler
	)

	if r.Match(cleanPath(req.URL.Path), &match) {
		handler = match.Handler
		if handler == nil {
			handler = r.notFoundHandler()
		}
		req = setRouteContext(req, match.Route, match.Vars)
	} else {
		handler = r.notFoundHandler()
	}

	handler.ServeHTTP(w, req)
}

func (r *Router) notFoundHandler() http.Handler {
	if r.NotFoundHandler != nil {
		return r.NotFoundHandler
	}
	return defaultNotFoundHandler
}

// Match matches path against the routes in order. When no route matches,
// match.MatchErr is set to ErrNotFound. A nil match only reports whether
// some route matches.
func (r *Router) Match(path string, match *RouteMatch) bool {
	if match == nil {
		match = &RouteMatch{}
	}

	for _, route := range r.routes {
		if !route.Match(path, match) {
			continue
		}

		if match.Handler != nil && len(r.middlewares) > 0 {
			if cached, ok := r.handlerCache.Load(match.Route); ok {
				match.Handler = cached.(http.Handler)
			} else {
				wrapped := r.applyMiddleware(match.Handler)
				r.handlerCache.Store(match.Route, wrapped)
				match.Handler = wrapped
			}
		}
		match.MatchErr = nil
		return true
	}

	match.MatchErr = ErrNotFound
	return false
}

// URL builds a path from the first route able to build one for values.
func (r *Router) URL(base string, values map[string]string) (string, bool) {
	for _, route := range r.routes {
		if u, ok := route.URL(base, values); ok {
			return u, true
		}
	}
	return "", false
}

// --- Route factory methods ---

// NewRoute compiles pattern and appends the route to the router.
// Configuration errors are recorded on the route and reported by Err.
func (r *Router) NewRoute(pattern string) *Route {
	route := NewRoute(pattern)
	route.namedRoutes = r.namedRoutes
	r.routes = append(r.routes, route)
	return route
}

// Handle registers a new route for pattern with the given handler.
func (r *Router) Handle(pattern string, handler http.Handler) *Route {
	return r.NewRoute(pattern).Handler(handler)
}

// HandleFunc registers a new route for pattern with the given handler
// function.
func (r *Router) HandleFunc(pattern string, f func(http.ResponseWriter, *http.Request)) *Route {
	return r.NewRoute(pattern).HandlerFunc(f)
}

// Get returns a route registered with the given name.
func (r *Router) Get(name string) *Route {
	return r.namedRoutes[name]
}

// Routes returns the registered routes in order.
func (r *Router) Routes() []*Route {
	return append([]*Route(nil), r.routes...)
}

// Err returns the configuration errors of all routes, joined. A router
// with a non-nil Err has a broken route table and should not be served.
func (r *Router) Err() error {
	var errs []error
	for _, route := range r.routes {
		if route.err != nil {
			errs = append(errs, route.err)
		}
	}
	return errors.Join(errs...)
}

// Walk calls walkFn for each route in registration order.
func (r *Router) Walk(walkFn WalkFunc) error {
	for _, route := range r.routes {
		if err := walkFn(route, r); err != nil {
			return err
		}
	}
	return nil
}

// applyMiddleware wraps the handler with all registered middleware.
func (r *Router) applyMiddleware(handler http.Handler) http.Handler {
	for i := len(r.middlewares) - 1; i >= 0; i-- {
		handler = r.middlewares[i].Middleware(handler)
	}
	return handler
}

// Use appends a MiddlewareFunc to the chain. Middleware is applied to
// matched handlers only.
func (r *Router) Use(mwf ...MiddlewareFunc) {
	r.middlewares = append(r.middlewares, mwf...)
}
