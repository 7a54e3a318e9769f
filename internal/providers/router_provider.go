package providers

import (
	"net/http"

	"avd/internal/structures"
)

type RouterProviderInterface interface {
	Get(url string, handler http.Handler)
	Post(url string, handler http.Handler)
	Put(url string, handler http.Handler)
	Delete(url string, handler http.Handler)
	GetRoutes() []structures.Route
}

type RouterProvider struct {
	routes []structures.Route
}

func (rp *RouterProvider) Get(url string, handler http.Handler) {
	rp.add(http.MethodGet, url, handler)
}

func (rp *RouterProvider) Post(url string, handler http.Handler) {
	rp.add(http.MethodPost, url, handler)
}

func (rp *RouterProvider) Put(url string, handler http.Handler) {
	rp.add(http.MethodPut, url, handler)
}

func (rp *RouterProvider) Delete(url string, handler http.Handler) {
	rp.add(http.MethodDelete, url, handler)
}

// add merges method handlers registered under the same url into a single
// route dispatching by request method.
func (rp *RouterProvider) add(method, url string, handler http.Handler) {
	for i, route := range rp.routes {
		if route.Url == url {
			existing := rp.routes[i].Handler.(*methodMux)
			existing.handlers[method] = handler
			return
		}
	}
	mux := &methodMux{handlers: map[string]http.Handler{method: handler}}
	rp.routes = append(rp.routes, structures.Route{Url: url, Handler: mux})
}

func (rp *RouterProvider) GetRoutes() []structures.Route {
	return rp.routes
}

func NewRouterProvider() RouterProviderInterface {
	return &RouterProvider{}
}

type methodMux struct {
	handlers map[string]http.Handler
}

func (m *methodMux) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if handler, ok := m.handlers[r.Method]; ok {
		handler.ServeHTTP(w, r)
		return
	}
	http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
}
