package handlers

import (
	"net/http"

	"school-portal/internal/domain"
	"school-portal/internal/infrastructure/security"
	"school-portal/internal/transport/web/middleware"
	"school-portal/internal/transport/web/render"
)

// Dashboard handles GET /dashboard. Dispatch is a total switch over the role
// enumeration; a stored role outside it renders the literal "Unknown role"
// body at 200.
func (h *AuthHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.UserFromContext(r.Context())
	if !ok {
		// RequireUser guards this route; reaching here without a user is a
		// wiring bug, not a client error.
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	role := domain.ParseRole(u.Role)
	if role == domain.RoleUnknown {
		// The plain-text body renders no flash, so leave any pending
		// message for the next templated page.
		h.views.Text(w, http.StatusOK, unknownRoleBody)
		return
	}

	data := render.Data{
		Flash:    security.PopFlash(w, r, h.secureCookies),
		Username: u.Username,
		Role:     u.Role,
	}

	switch role {
	case domain.RoleStudent:
		h.views.Page(w, http.StatusOK, "student_dashboard.html", data)
	case domain.RoleTeacher:
		h.views.Page(w, http.StatusOK, "teacher_dashboard.html", data)
	case domain.RoleParent:
		h.views.Page(w, http.StatusOK, "parent_dashboard.html", data)
	case domain.RoleAccountant:
		h.views.Page(w, http.StatusOK, "accountant_dashboard.html", data)
	case domain.RoleBursar:
		h.views.Page(w, http.StatusOK, "bursar_dashboard.html", data)
	case domain.RoleDirector:
		h.views.Page(w, http.StatusOK, "director_dashboard.html", data)
	}
}
