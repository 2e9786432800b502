package gateway

import (
	"net/http"
	"strings"

	"github.com/Naveenp7/meditrack-ai-sub001/pkg/types"
)

// rolePolicy describes which roles may perform a method on a path prefix.
// The first matching rule wins; paths with no rule are open to any
// authenticated user.
type rolePolicy struct {
	method       string
	pathPrefix   string
	allowedRoles []types.UserRole
}

// Prescribing and care planning are provider actions. Reads are open to
// both roles, subject to patient self-scoping below.
var rolePolicies = []rolePolicy{
	{"POST", "/api/v1/medications", []types.UserRole{types.RoleDoctor}},
	{"PUT", "/api/v1/medications", []types.UserRole{types.RoleDoctor}},
	{"DELETE", "/api/v1/medications", []types.UserRole{types.RoleDoctor}},
	{"POST", "/api/v1/care-plans", []types.UserRole{types.RoleDoctor}},
	{"PUT", "/api/v1/care-plans", []types.UserRole{types.RoleDoctor}},
	{"POST", "/api/v1/users", []types.UserRole{types.RoleDoctor}},
	{"DELETE", "/api/v1/users", []types.UserRole{types.RoleDoctor}},
}

// roleMiddleware enforces role-based access for portal routes
func (s *Service) roleMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isUnauthenticatedPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		claims, ok := ClaimsFromContext(r.Context())
		if !ok {
			s.writeErrorResponse(w, http.StatusUnauthorized, "user claims not found in context")
			return
		}

		if !roleAllowed(claims.Role, r.Method, r.URL.Path) {
			s.logger.WithUserID(claims.UserID).Warnf("Role %s denied %s %s", claims.Role, r.Method, r.URL.Path)
			s.writeErrorResponse(w, http.StatusForbidden, "insufficient role for this operation")
			return
		}

		if !patientScopeAllowed(claims, r.URL.Path) {
			s.logger.WithUserID(claims.UserID).Warnf("Patient denied access to %s", r.URL.Path)
			s.writeErrorResponse(w, http.StatusForbidden, "patients may only access their own records")
			return
		}

		// Forward the validated identity to downstream services
		r.Header.Set("X-User-ID", claims.UserID)
		r.Header.Set("X-User-Role", string(claims.Role))
		r.Header.Set("X-User-Email", claims.Email)

		next.ServeHTTP(w, r)
	})
}

// roleAllowed checks the role policy table for a matching rule
func roleAllowed(role types.UserRole, method, path string) bool {
	for _, policy := range rolePolicies {
		if policy.method != method || !strings.HasPrefix(path, policy.pathPrefix) {
			continue
		}
		for _, allowed := range policy.allowedRoles {
			if role == allowed {
				return true
			}
		}
		return false
	}
	return true
}

// patientScopeAllowed restricts patients to their own /patients/{id}/ routes
func patientScopeAllowed(claims *UserClaims, path string) bool {
	if claims.Role != types.RolePatient {
		return true
	}

	const prefix = "/api/v1/patients/"
	if !strings.HasPrefix(path, prefix) {
		return true
	}

	rest := strings.TrimPrefix(path, prefix)
	patientID := rest
	if idx := strings.Index(rest, "/"); idx >= 0 {
		patientID = rest[:idx]
	}

	return patientID == claims.UserID
}
