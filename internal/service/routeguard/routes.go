package routeguard

import "strings"

// Route binds a path to its access policy. Prefix routes match any
// path below them (e.g. "/admin" covers "/admin/orders").
type Route struct {
	Path   string
	Prefix bool
	Policy AccessPolicy
}

// RouteTable is the static route registry, an external read-only input
// to the guard.
type RouteTable []Route

// Policy resolves a path to its access policy. Exact matches win over
// prefix matches; among prefixes the longest wins. Unknown paths get
// the zero policy (public).
func (t RouteTable) Policy(path string) AccessPolicy {
	var (
		best    AccessPolicy
		bestLen = -1
	)
	for _, r := range t {
		if !r.Prefix {
			if r.Path == path {
				return r.Policy
			}
			continue
		}
		if path == r.Path || strings.HasPrefix(path, r.Path+"/") {
			if len(r.Path) > bestLen {
				best = r.Policy
				bestLen = len(r.Path)
			}
		}
	}
	if bestLen >= 0 {
		return best
	}
	return AccessPolicy{}
}

// DefaultRoutes is the storefront's route set.
func DefaultRoutes() RouteTable {
	authOnly := AccessPolicy{RequiresAuth: true}
	adminOnly := AccessPolicy{RequiresAuth: true, RequiresAdmin: true}
	guestOnly := AccessPolicy{RequiresGuest: true}

	return RouteTable{
		{Path: "/", Policy: AccessPolicy{}},
		{Path: "/about", Policy: AccessPolicy{}},
		{Path: "/login", Policy: guestOnly},
		{Path: "/register", Policy: guestOnly},
		{Path: "/products", Prefix: true, Policy: AccessPolicy{}},
		{Path: "/orders", Prefix: true, Policy: authOnly},
		{Path: "/cart", Policy: authOnly},
		{Path: "/checkout", Policy: authOnly},
		{Path: "/profile", Policy: authOnly},
		{Path: "/recharge", Policy: authOnly},
		{Path: "/admin", Prefix: true, Policy: adminOnly},
	}
}
