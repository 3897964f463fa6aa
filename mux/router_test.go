package mux

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func varsHandler(w http.ResponseWriter, r *http.Request) {
	route := CurrentRoute(r)
	if route != nil {
		w.Header().Set("X-Route", route.GetPattern())
	}
	id, _ := VarGet(r, "id")
	_, _ = w.Write([]byte(id))
}

func TestRouterMatch(t *testing.T) {
	router := NewRouter()
	first := router.HandleFunc("/blog/<slug>", varsHandler)
	second := router.HandleFunc("/<controller>/<action>/[id]", varsHandler)
	require.NoError(t, router.Err())

	t.Run("first route wins", func(t *testing.T) {
		var m RouteMatch
		require.True(t, router.Match("/blog/hello", &m))
		assert.Same(t, first, m.Route)
		assert.Equal(t, map[string]string{"slug": "hello"}, m.Vars)
		assert.NoError(t, m.MatchErr)
	})

	t.Run("falls through to next route", func(t *testing.T) {
		var m RouteMatch
		require.True(t, router.Match("/shop/list/3", &m))
		assert.Same(t, second, m.Route)
		assert.Equal(t, "3", m.Vars["id"])
		assert.NotNil(t, m.Handler)
	})

	t.Run("no match", func(t *testing.T) {
		var m RouteMatch
		assert.False(t, router.Match("/a/b/c/d", &m))
		assert.ErrorIs(t, m.MatchErr, ErrNotFound)
		assert.Nil(t, m.Route)
	})

	t.Run("nil result", func(t *testing.T) {
		assert.True(t, router.Match("/blog/hello", nil))
		assert.False(t, router.Match("/a/b/c/d", nil))
	})
}

func TestRouterURL(t *testing.T) {
	router := NewRouter()
	router.NewRoute("/article/<id>").RestrictInt("id")
	router.NewRoute("/<controller>/<action>")

	u, ok := router.URL("", map[string]string{"id": "7"})
	assert.True(t, ok)
	assert.Equal(t, "/article/7", u)

	u, ok = router.URL("", map[string]string{"id": "abc", "controller": "blog", "action": "show"})
	assert.True(t, ok)
	assert.Equal(t, "/blog/show", u)

	_, ok = router.URL("", map[string]string{"slug": "x"})
	assert.False(t, ok)
}

func TestRouterServeHTTP(t *testing.T) {
	t.Run("dispatches with vars in context", func(t *testing.T) {
		router := NewRouter()
		router.HandleFunc("/item/<id>", varsHandler).RestrictInt("id")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/Item/42", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "42", w.Body.String())
		assert.Equal(t, "/item/<id>", w.Header().Get("X-Route"))
	})

	t.Run("cleans dot segments", func(t *testing.T) {
		router := NewRouter()
		router.HandleFunc("/shop/<id>", varsHandler)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.URL.Path = "/blog/../shop/9"

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, "9", w.Body.String())
	})

	t.Run("default not found", func(t *testing.T) {
		router := NewRouter()
		router.HandleFunc("/item/<id>", varsHandler).RestrictInt("id")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/item/abc", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("custom not found", func(t *testing.T) {
		router := NewRouter()
		router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))
		assert.Equal(t, http.StatusTeapot, w.Code)
	})

	t.Run("route without handler is not found", func(t *testing.T) {
		router := NewRouter()
		router.NewRoute("/build-only/<id>")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/build-only/1", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestRouterMiddleware(t *testing.T) {
	router := NewRouter()
	router.HandleFunc("/<id>", varsHandler)

	var calls int
	router.Use(func(next http.Handler) http.Handler {
		calls++
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Middleware", "1")
			next.ServeHTTP(w, r)
		})
	})

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/5", nil))
		assert.Equal(t, "1", w.Header().Get("X-Middleware"))
		assert.Equal(t, "5", w.Body.String())
	}
	assert.Equal(t, 1, calls, "wrapped handler is cached per route")
}

func TestRouterNamedRoutes(t *testing.T) {
	router := NewRouter()
	item := router.NewRoute("/item/<id>").Name("item")

	assert.Same(t, item, router.Get("item"))
	assert.Nil(t, router.Get("missing"))

	router.NewRoute("/other/<id>").Name("item")
	assert.ErrorIs(t, router.Err(), ErrRouteNameExist)
	assert.Same(t, item, router.Get("item"))
}

func TestRouterErr(t *testing.T) {
	router := NewRouter()
	router.NewRoute("/<ok>")
	router.NewRoute("/<broken")
	router.NewRoute("/<id>").RestrictInt("missing")

	err := router.Err()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidPattern)
	assert.ErrorIs(t, err, ErrUnknownVar)

	assert.NoError(t, NewRouter().Err())
}

func TestRouterWalk(t *testing.T) {
	router := NewRouter()
	router.NewRoute("/a/<x>")
	router.NewRoute("/b/<x>")
	router.NewRoute("/c/<x>")

	var patterns []string
	err := router.Walk(func(route *Route, r *Router) error {
		assert.Same(t, router, r)
		patterns = append(patterns, route.GetPattern())
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"/a/<x>", "/b/<x>", "/c/<x>"}, patterns)

	stop := errors.New("stop")
	patterns = nil
	err = router.Walk(func(route *Route, _ *Router) error {
		patterns = append(patterns, route.GetPattern())
		if len(patterns) == 2 {
			return stop
		}
		return nil
	})
	assert.ErrorIs(t, err, stop)
	assert.Len(t, patterns, 2)

	routes := router.Routes()
	require.Len(t, routes, 3)
	routes[0] = nil
	assert.NotNil(t, router.Routes()[0])
}

func BenchmarkRouterServeHTTP(b *testing.B) {
	router := NewRouter()
	router.HandleFunc("/blog/<slug>", varsHandler)
	router.HandleFunc("/<controller>/<action>/[id]", varsHandler).RestrictInt("id")

	req := httptest.NewRequest(http.MethodGet, "/shop/list/42", nil)
	w := httptest.NewRecorder()

	for i := 0; i < b.N; i++ {
		router.ServeHTTP(w, req)
	}
}
