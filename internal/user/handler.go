package user

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"school-service/internal/web"
)

type Handler struct {
	service  Service
	render   *web.Renderer
	validate *validator.Validate
	logger   *slog.Logger
}

func NewHandler(service Service, render *web.Renderer, logger *slog.Logger) *Handler {
	return &Handler{
		service:  service,
		render:   render,
		validate: validator.New(),
		logger:   logger,
	}
}

// RegisterRoutes mounts the admin account-management pages.
func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/add_student", h.AddStudentPage)
	router.Post("/add_student", h.AddStudent)
	router.Get("/manage_students", h.ManageStudents)
	router.Post("/manage_students", h.DeleteStudent)

	router.Get("/add_teacher", h.AddTeacherPage)
	router.Post("/add_teacher", h.AddTeacher)
	router.Get("/manage_teachers", h.ManageTeachers)
	router.Post("/manage_teachers", h.DeleteTeacher)
}

func (h *Handler) AddStudentPage(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, r, "add_student.html", web.Page{Title: "Add Student"})
}

func (h *Handler) AddStudent(w http.ResponseWriter, r *http.Request) {
	h.addUser(w, r, RoleStudent, "add_student.html", "Add Student", "Student added successfully!", "/manage_students")
}

func (h *Handler) ManageStudents(w http.ResponseWriter, r *http.Request) {
	h.listUsers(w, r, RoleStudent, "manage_students.html", "Manage Students")
}

func (h *Handler) DeleteStudent(w http.ResponseWriter, r *http.Request) {
	h.deleteUser(w, r, "student_id", "/manage_students")
}

func (h *Handler) AddTeacherPage(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, r, "add_teacher.html", web.Page{Title: "Add Teacher"})
}

func (h *Handler) AddTeacher(w http.ResponseWriter, r *http.Request) {
	h.addUser(w, r, RoleTeacher, "add_teacher.html", "Add Teacher", "Teacher added successfully!", "/manage_teachers")
}

func (h *Handler) ManageTeachers(w http.ResponseWriter, r *http.Request) {
	h.listUsers(w, r, RoleTeacher, "manage_teachers.html", "Manage Teachers")
}

func (h *Handler) DeleteTeacher(w http.ResponseWriter, r *http.Request) {
	h.deleteUser(w, r, "teacher_id", "/manage_teachers")
}

// addUser creates an account with the given role from the submitted form.
func (h *Handler) addUser(w http.ResponseWriter, r *http.Request, role Role, template, title, notice, redirect string) {
	if err := r.ParseForm(); err != nil {
		h.render.RenderError(w, r, http.StatusBadRequest)
		return
	}

	form := CreateForm{
		Name:     r.PostFormValue("name"),
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}
	if err := h.validate.Struct(form); err != nil {
		h.logger.Warn("validation failed", "role", role, "error", err)
		h.render.Render(w, r, template, web.Page{Title: title, Error: "All fields are required"})
		return
	}

	h.logger.Info("creating account", "role", role, "username", form.Username)
	_, err := h.service.Create(r.Context(), form, role)
	if err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			h.render.Render(w, r, template, web.Page{Title: title, Error: "Username already taken"})
			return
		}
		h.logger.Error("failed to create account", "role", role, "error", err)
		h.render.RenderError(w, r, http.StatusInternalServerError)
		return
	}

	web.SetFlash(w, notice)
	http.Redirect(w, r, redirect, http.StatusSeeOther)
}

// listUsers renders all accounts of the given role.
func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request, role Role, template, title string) {
	users, err := h.service.ListByRole(r.Context(), role)
	if err != nil {
		h.logger.Error("failed to list accounts", "role", role, "error", err)
		h.render.RenderError(w, r, http.StatusInternalServerError)
		return
	}
	h.render.Render(w, r, template, web.Page{Title: title, Data: users})
}

// deleteUser removes the account named by the form field. A missing or
// already deleted id is a silent no-op.
func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request, field, redirect string) {
	if err := r.ParseForm(); err != nil {
		h.render.RenderError(w, r, http.StatusBadRequest)
		return
	}

	id, err := strconv.Atoi(r.PostFormValue(field))
	if err == nil {
		if err := h.service.Delete(r.Context(), id); err != nil && !errors.Is(err, ErrInvalidInput) {
			h.logger.Error("failed to delete account", "id", id, "error", err)
			h.render.RenderError(w, r, http.StatusInternalServerError)
			return
		}
	}

	http.Redirect(w, r, redirect, http.StatusSeeOther)
}
