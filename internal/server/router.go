package server

import (
	"net/http"
	"strings"
)

// LoginRouter routes requests on the short-lived login server. It implements
// [Router] on top of [http.ServeMux], rejecting methods other than the one a
// route was registered with.
type LoginRouter struct {
	mux         *http.ServeMux
	middlewares []Middleware
}

// NewLoginRouter creates an empty [LoginRouter].
func NewLoginRouter() *LoginRouter {
	return &LoginRouter{mux: http.NewServeMux()}
}

// Use appends [Middleware] to the stack. Middleware registered first runs
// outermost.
func (r *LoginRouter) Use(middleware ...Middleware) {
	r.middlewares = append(r.middlewares, middleware...)
}

// Handle registers a handler for the given HTTP method and path, wrapped in
// the middleware stack. Requests with any other method get a 405.
func (r *LoginRouter) Handle(method, path string, handler http.Handler) {
	wrapped := r.wrap(handler)
	r.mux.HandleFunc(path, func(w http.ResponseWriter, req *http.Request) {
		if !strings.EqualFold(req.Method, method) {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		wrapped.ServeHTTP(w, req)
	})
}

// Handler registers a [Handler] on every route it reports.
func (r *LoginRouter) Handler(handler Handler) {
	wrapped := r.wrap(handler)
	for _, route := range handler.Routes() {
		r.mux.Handle(route, wrapped)
	}
}

func (r *LoginRouter) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// wrap layers the middleware stack around handler, last added innermost.
func (r *LoginRouter) wrap(handler http.Handler) http.Handler {
	wrapped := handler
	for i := len(r.middlewares) - 1; i >= 0; i-- {
		wrapped = r.middlewares[i](wrapped)
	}
	return wrapped
}
