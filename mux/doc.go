// Package mux implements a bidirectional route pattern: a pattern is
// compiled once, then used both to match request paths, extracting named
// variables, and to build canonical paths from variable values.
//
// # Patterns
//
// A pattern is a sequence of '/'-separated fragments. A fragment is either
// literal text, a required variable written <name>, or an optional
// variable written [name]. Literal text may surround a variable:
//
//	/<controller>/<action>/[id]
//	/archive/page-<n>
//	/files/<name>.<format>
//
// The first '.' of a fragment starts a new segment, so <name>.<format>
// compiles to two variables, the second one written after a dot when URLs
// are built.
//
// Literal text is matched without regard to case: "/Home" matches "/home"
// and "/HOME".
//
// # Matching
//
// A request path is split into tokens on both '/' and '.', and the n-th
// segment of the pattern is matched against the n-th token:
//
//	r := mux.MustCompile("/<controller>/<action>/[id]").
//		Default("id", "0")
//
//	var match mux.RouteMatch
//	if r.Match("/blog/show/42", &match) {
//	    // match.Vars: controller=blog action=show id=42
//	}
//
// A missing token is accepted only for an optional variable, which is then
// bound to its default. Extra tokens never match.
//
// # Restrictions
//
// Variables accept any token by default. Restrictions narrow them, both
// for matching and for URL building:
//
//	r.RestrictInt("id")                       // ASCII digits
//	r.Restrict("action", "index", "show")     // one of, case-insensitive
//	r.RestrictMacro("id", "uuid")             // named pattern
//
// Available macros: int, uuid, alpha, alphanum, slug, hex, date.
//
// # Defaults
//
// Default sets the value an optional variable takes when absent from the
// path, and the value at which URL building collapses:
//
//	r := mux.MustCompile("/<controller>/[action]/[id]").
//		Default("action", "index")
//
//	r.URL("", map[string]string{"controller": "home", "action": "index"})
//	// "/home", true
//
// Fallback adds a route-level default that need not correspond to any
// variable. It is added to matched variables for names still unbound:
//
//	r.Fallback("area", "public")
//
// DefaultFrom resolves a default through a caller supplied NameFunc, for
// example to use the registered name of a handler type.
//
// Building stops at the first optional variable that is missing or equal
// to its default. A required variable placed after such an optional
// variable can therefore never be emitted; patterns should keep optional
// variables at the end.
//
// # Errors
//
// Malformed patterns and restrictions or defaults naming an unknown
// variable are configuration errors. Configuration methods record the
// first one on the route (see Route.GetError and Router.Err) and the route
// then neither matches nor builds URLs. Compile returns it directly and
// MustCompile panics.
//
// Failing to match or to build a URL is not an error: Match returns false
// and URL returns false, so a caller can try the next route.
//
// # Router
//
// Router keeps routes in registration order. Match and URL try each route
// in turn. Router implements http.Handler and stores the matched route and
// variables in the request context:
//
//	r := mux.NewRouter()
//	r.HandleFunc("/<controller>/<action>/[id]", handler).
//		Default("action", "index").
//		RestrictInt("id")
//
//	func handler(w http.ResponseWriter, req *http.Request) {
//	    id, ok := mux.VarGet(req, "id")
//	    ...
//	}
//
// # Concurrency
//
// Routes and routers are configured once, from a single goroutine. After
// that Match, URL and ServeHTTP only read shared state and may be called
// concurrently.
package mux
