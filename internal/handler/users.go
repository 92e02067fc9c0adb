package handler

import (
	"net/http"
	"strconv"

	"github.com/edusys/school-payments/internal/middleware"
	"github.com/edusys/school-payments/internal/models"
	"github.com/edusys/school-payments/internal/service"
)

// ListUsers returns a page of staff users
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	size, _ := strconv.Atoi(q.Get("size"))

	users, err := h.svc.ListUsers(models.Role(q.Get("role")), q.Get("q"), page, size)
	if err != nil {
		h.respondError(w, err)
		return
	}
	if users == nil {
		users = []models.User{}
	}
	h.respondJSON(w, http.StatusOK, users)
}

// CreateUser registers a new staff user
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	actorID, _ := middleware.UserID(r.Context())
	var req service.CreateUserInput
	if err := h.decodeJSON(r, &req); err != nil {
		h.respondError(w, err)
		return
	}

	user, err := h.svc.CreateUser(actorID, req)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, user)
}

type setActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}

// SetUserActive enables or disables a staff user
func (h *Handler) SetUserActive(w http.ResponseWriter, r *http.Request) {
	actorID, _ := middleware.UserID(r.Context())
	id, err := pathID(r)
	if err != nil {
		h.respondError(w, err)
		return
	}
	var req setActiveRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.respondError(w, err)
		return
	}

	if err := h.svc.SetUserActive(actorID, id, *req.Active); err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]bool{"active": *req.Active})
}

// ListCourses returns all courses
func (h *Handler) ListCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.svc.ListCourses()
	if err != nil {
		h.respondError(w, err)
		return
	}
	if courses == nil {
		courses = []models.Course{}
	}
	h.respondJSON(w, http.StatusOK, courses)
}

type createCourseRequest struct {
	Name string `json:"name" validate:"required"`
	Code string `json:"code" validate:"required"`
}

// CreateCourse registers a new course
func (h *Handler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	actorID, _ := middleware.UserID(r.Context())
	var req createCourseRequest
	if err := h.decodeJSON(r, &req); err != nil {
		h.respondError(w, err)
		return
	}

	course := &models.Course{Name: req.Name, Code: req.Code}
	if err := h.svc.CreateCourse(actorID, course); err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, course)
}

// ListAudit returns a page of the audit trail
func (h *Handler) ListAudit(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	size, _ := strconv.Atoi(q.Get("size"))
	actorID, _ := strconv.ParseInt(q.Get("actor"), 10, 64)

	entries, err := h.svc.ListAudit(q.Get("entity"), actorID, page, size)
	if err != nil {
		h.respondError(w, err)
		return
	}
	if entries == nil {
		entries = []models.AuditEntry{}
	}
	h.respondJSON(w, http.StatusOK, entries)
}
