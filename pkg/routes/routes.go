// Package routes declares HTTP route groups and registers them on a ServeMux.
package routes

import "net/http"

// Route binds an HTTP method and pattern to a handler.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
}

// Group organizes routes under a common prefix. Children inherit the
// parent's prefix.
type Group struct {
	Prefix   string
	Routes   []Route
	Children []Group
}

// Patterns returns the fully qualified ServeMux patterns of the group and its children.
func (g Group) Patterns() []string {
	var patterns []string
	g.walk("", func(pattern string, _ func(http.ResponseWriter, *http.Request)) {
		patterns = append(patterns, pattern)
	})
	return patterns
}

// Register adds all routes from the given groups to the mux.
func Register(mux *http.ServeMux, groups ...Group) {
	for _, group := range groups {
		group.walk("", mux.HandleFunc)
	}
}

func (g Group) walk(parentPrefix string, visit func(pattern string, handler func(http.ResponseWriter, *http.Request))) {
	prefix := parentPrefix + g.Prefix
	for _, route := range g.Routes {
		visit(route.Method+" "+prefix+route.Pattern, route.Handler)
	}
	for _, child := range g.Children {
		child.walk(prefix, visit)
	}
}
