// Package routes defines declarative route groups registered against a
// standard library ServeMux.
package routes

import "net/http"

// Group organizes routes under a shared path prefix.
type Group struct {
	Prefix   string
	Routes   []Route
	Children []Group
}

// Wrap returns a copy of the group with every handler, including those
// of child groups, wrapped by the given middleware.
func (g Group) Wrap(mw func(http.Handler) http.Handler) Group {
	wrapped := Group{Prefix: g.Prefix}

	wrapped.Routes = make([]Route, len(g.Routes))
	for i, route := range g.Routes {
		handler := mw(route.Handler)
		wrapped.Routes[i] = Route{
			Method:  route.Method,
			Pattern: route.Pattern,
			Handler: handler.ServeHTTP,
		}
	}

	wrapped.Children = make([]Group, len(g.Children))
	for i, child := range g.Children {
		wrapped.Children[i] = child.Wrap(mw)
	}

	return wrapped
}

// Register adds every route from the given groups to the mux.
func Register(mux *http.ServeMux, groups ...Group) {
	for _, group := range groups {
		registerGroup(mux, "", group)
	}
}

func registerGroup(mux *http.ServeMux, parentPrefix string, group Group) {
	fullPrefix := parentPrefix + group.Prefix
	for _, route := range group.Routes {
		pattern := route.Method + " " + fullPrefix + route.Pattern
		mux.HandleFunc(pattern, route.Handler)
	}
	for _, child := range group.Children {
		registerGroup(mux, fullPrefix, child)
	}
}
