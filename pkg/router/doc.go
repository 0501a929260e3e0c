// Package router provides a hash-based client-side router for Loom.
//
// Location is an external hash-change event source: the runtime core
// knows nothing about it beyond the fiber.Source interface. Router
// maps hash patterns with :param segments onto components and exposes
// an Outlet component that subscribes to the Location and renders the
// matched route.
//
//	loc := router.NewLocation("#/")
//	r := router.New(loc)
//	r.Handle("#/", HomePage)
//	r.Handle("#/users/:id", UserPage)
//	rt.Mount(container, fiber.H(r.Outlet, nil))
package router
