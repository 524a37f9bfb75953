package middleware

import (
	"net/http"
	"strings"

	"mecaflow/internal/domain"
	"mecaflow/internal/http/response"
)

// anonymousAuthPaths are the auth endpoints that must work without a
// session: login, registration, the reset flow, logout (so a stale cookie
// can always be cleared) and the denied landing the gate redirects to.
// Everything else under /auth, /auth/profile included, goes through the
// gate like any other route.
var anonymousAuthPaths = map[string]struct{}{
	"/auth/login":           {},
	"/auth/register":        {},
	"/auth/logout":          {},
	"/auth/forgot-password": {},
	"/auth/reset-password":  {},
	"/auth/denied":          {},
}

// bypassPrefixes are reachable without a session. The bare root is allowed
// too so the landing page can offer the login link.
var bypassPrefixes = []string{"/health", "/static", "/robots.txt"}

// moduleTable maps a role to the module-name segments it may reach.
// Administrators match any path and are not listed.
var moduleTable = map[domain.RoleName][]string{
	domain.RoleEmployee: {"asistencias", "diagnosticos", "vehiculos", "pagos", "facturas"},
	domain.RoleClient:   {"diagnosticos", "vehiculos", "facturas"},
}

// Gate is the single authorization decision point. Every request passes
// through it; handlers never re-check roles.
type Gate struct{}

func NewGate() *Gate { return &Gate{} }

func (g *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		if bypassed(path) {
			next.ServeHTTP(w, r)
			return
		}

		caller, ok := CallerFromContext(r.Context())
		if !ok {
			if isAPIPath(path) {
				response.Error(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "inicia sesión para continuar", nil)
				return
			}
			http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
			return
		}

		// The assistant and the caller's own profile are open to every
		// authenticated role.
		if strings.HasPrefix(path, "/api/chat") || path == "/auth/profile" {
			next.ServeHTTP(w, r)
			return
		}

		if g.allows(caller.Role, path, r.Method) {
			next.ServeHTTP(w, r)
			return
		}

		if isAPIPath(path) {
			response.Error(w, r, http.StatusForbidden, "FORBIDDEN", "no tienes acceso a este módulo", nil)
			return
		}
		http.Redirect(w, r, "/auth/denied", http.StatusSeeOther)
	})
}

func (g *Gate) allows(role domain.RoleName, path, method string) bool {
	if role == domain.RoleAdministrator {
		return true
	}
	// Hard deletes are an administrator escape hatch everywhere.
	if method == http.MethodDelete {
		return false
	}
	modules, known := moduleTable[role]
	if !known {
		return false
	}
	matched := false
	for _, module := range modules {
		if strings.Contains(path, module) {
			matched = true
			break
		}
	}
	if !matched {
		return false
	}
	// Client accounts are read-only inside their modules.
	if role == domain.RoleClient && isMutating(method) {
		return false
	}
	return true
}

func bypassed(path string) bool {
	if path == "/" {
		return true
	}
	if _, ok := anonymousAuthPaths[path]; ok {
		return true
	}
	for _, prefix := range bypassPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func isAPIPath(path string) bool {
	return strings.HasPrefix(path, "/api/")
}

func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}
