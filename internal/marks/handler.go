package marks

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"school-service/internal/user"
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

// RegisterRoutes mounts the marks pages. The role gate runs before these.
func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/add_marks", h.AddMarksPage)
	router.Post("/add_marks", h.AddMarks)
	router.Get("/view_marks", h.ViewMarks)
}

// AddMarksPage renders the form with all students as the selection source.
func (h *Handler) AddMarksPage(w http.ResponseWriter, r *http.Request) {
	students, err := h.service.ListStudents(r.Context())
	if err != nil {
		h.logger.Error("failed to list students", "error", err)
		h.render.RenderError(w, r, http.StatusInternalServerError)
		return
	}
	h.render.Render(w, r, "add_marks.html", web.Page{Title: "Add Marks", Data: students})
}

// AddMarks records one mark and returns to the form.
func (h *Handler) AddMarks(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render.RenderError(w, r, http.StatusBadRequest)
		return
	}

	studentID, _ := strconv.Atoi(r.PostFormValue("student_id"))
	score, scoreErr := strconv.ParseFloat(r.PostFormValue("marks"), 64)

	form := AddForm{
		StudentID: studentID,
		Subject:   r.PostFormValue("subject"),
		Score:     score,
	}
	if scoreErr != nil || h.validate.Struct(form) != nil {
		h.renderAddMarks(w, r, "Please select a student, a subject and a non-negative score")
		return
	}

	_, err := h.service.Add(r.Context(), form)
	if err != nil {
		if errors.Is(err, ErrStudentNotFound) {
			h.renderAddMarks(w, r, "Selected student does not exist")
			return
		}
		h.logger.Error("failed to add marks", "student_id", form.StudentID, "error", err)
		h.render.RenderError(w, r, http.StatusInternalServerError)
		return
	}

	h.logger.Info("marks added", "student_id", form.StudentID, "subject", form.Subject)

	web.SetFlash(w, "Marks added successfully!")
	http.Redirect(w, r, "/add_marks", http.StatusSeeOther)
}

// ViewMarks lists the marks belonging to the logged-in student only.
func (h *Handler) ViewMarks(w http.ResponseWriter, r *http.Request) {
	principal, ok := user.FromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	rows, err := h.service.ListForStudent(r.Context(), principal.ID)
	if err != nil {
		h.logger.Error("failed to list marks", "student_id", principal.ID, "error", err)
		h.render.RenderError(w, r, http.StatusInternalServerError)
		return
	}
	h.render.Render(w, r, "view_marks.html", web.Page{Title: "My Marks", Data: rows})
}

func (h *Handler) renderAddMarks(w http.ResponseWriter, r *http.Request, message string) {
	students, err := h.service.ListStudents(r.Context())
	if err != nil {
		h.render.RenderError(w, r, http.StatusInternalServerError)
		return
	}
	h.render.Render(w, r, "add_marks.html", web.Page{Title: "Add Marks", Error: message, Data: students})
}
