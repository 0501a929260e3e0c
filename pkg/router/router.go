package router

import (
	"strings"

	"github.com/loomui/loom/pkg/fiber"
)

// Params are the :param segment values extracted from a matched hash.
type Params map[string]string

// route is one pattern registration.
type route struct {
	segments []string
	comp     fiber.ComponentFunc
}

// Router maps hash patterns onto components. Registrations are matched
// in order; the first pattern whose segments all match wins.
type Router struct {
	loc      *Location
	routes   []route
	notFound fiber.ComponentFunc
}

// New creates a Router over the given Location.
func New(loc *Location) *Router {
	return &Router{loc: loc}
}

// Location returns the router's hash source.
func (r *Router) Location() *Location {
	return r.loc
}

// Handle registers a component for a hash pattern. Segments beginning
// with ':' capture the corresponding hash segment as a param:
//
//	r.Handle("#/users/:id", UserPage)
func (r *Router) Handle(pattern string, comp fiber.ComponentFunc) {
	r.routes = append(r.routes, route{
		segments: splitHash(pattern),
		comp:     comp,
	})
}

// NotFound sets the component rendered when no pattern matches.
func (r *Router) NotFound(comp fiber.ComponentFunc) {
	r.notFound = comp
}

// Navigate pushes a new hash through the router's Location.
func (r *Router) Navigate(hash string) {
	r.loc.Set(hash)
}

// Match resolves a hash against the registered patterns.
func (r *Router) Match(hash string) (fiber.ComponentFunc, Params, bool) {
	segs := splitHash(hash)
	for _, rt := range r.routes {
		if params, ok := matchSegments(rt.segments, segs); ok {
			return rt.comp, params, true
		}
	}
	return nil, nil, false
}

// Outlet is a component that subscribes to the Location and renders
// the matched route, passing the extracted params in props under
// "params". Unmatched hashes render the NotFound component, or nothing.
func (r *Router) Outlet(c *fiber.Ctx, props fiber.Props) any {
	hash := fiber.UseSource[string](c, r.loc)

	comp, params, ok := r.Match(hash)
	if !ok {
		if r.notFound != nil {
			return fiber.H(r.notFound, fiber.Props{"hash": hash})
		}
		c.Logger().Warn("no route matched", "hash", hash)
		return nil
	}

	return fiber.H(comp, fiber.Props{"params": params})
}

// splitHash normalizes "#/a/b/" into ["a", "b"].
func splitHash(hash string) []string {
	hash = strings.TrimPrefix(hash, "#")
	hash = strings.Trim(hash, "/")
	if hash == "" {
		return nil
	}
	return strings.Split(hash, "/")
}

// matchSegments matches concrete and :param segments positionally.
func matchSegments(pattern, segs []string) (Params, bool) {
	if len(pattern) != len(segs) {
		return nil, false
	}
	var params Params
	for i, p := range pattern {
		if strings.HasPrefix(p, ":") {
			if params == nil {
				params = make(Params)
			}
			params[p[1:]] = segs[i]
			continue
		}
		if p != segs[i] {
			return nil, false
		}
	}
	return params, true
}
