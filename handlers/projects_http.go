package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"kbbridge/appctx"
	"kbbridge/core"
	"kbbridge/core/log"
	"kbbridge/models"
	"kbbridge/models/api"
	"kbbridge/services"
)

const maxRequestBodyBytes = 64 << 10

type ProjectsHTTPHandler struct {
	projectsService     services.ProjectsService
	defaultCategoryName string
}

// NewProjectsHTTPHandler creates the control API handler. defaultCategoryName is
// the category new projects land in when the request names none.
func NewProjectsHTTPHandler(projectsService services.ProjectsService, defaultCategoryName string) *ProjectsHTTPHandler {
	return &ProjectsHTTPHandler{
		projectsService:     projectsService,
		defaultCategoryName: defaultCategoryName,
	}
}

func (h *ProjectsHTTPHandler) HandleNewProject(w http.ResponseWriter, r *http.Request) {
	log.Info("📋 New project request received", "request_id", requestID(r), "remote_addr", r.RemoteAddr)

	var req api.NewProjectRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.ChannelName) == "" {
		h.writeError(w, http.StatusBadRequest, "channel_name is required")
		return
	}

	project, err := h.projectsService.CreateProject(r.Context(), models.CreateProjectParams{
		Name:         req.ChannelName,
		CategoryName: req.CategoryName,
		Guideline:    req.Guideline,
	})
	if err != nil {
		h.writeServiceError(w, r, "create project", err, func(err error) string {
			switch {
			case errors.Is(err, core.ErrCategoryNotFound):
				return fmt.Sprintf("category %q not found", h.categoryOrDefault(req.CategoryName))
			case errors.Is(err, core.ErrProjectExists):
				return fmt.Sprintf("project %q already exists", req.ChannelName)
			}
			return ""
		})
		return
	}

	resp, err := api.DomainProjectToNewProjectResponse(project)
	if err != nil {
		log.Error("❌ Failed to map created project", "request_id", requestID(r), "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	log.Info("✅ Project created", "request_id", requestID(r), "name", project.Name, "channel_id", project.ID)
	h.writeJSONResponse(w, http.StatusOK, resp)
}

func (h *ProjectsHTTPHandler) HandleCompleteProject(w http.ResponseWriter, r *http.Request) {
	h.handleTransition(w, r, "complete", models.ProjectStateActive, models.ProjectStateCompleted,
		h.projectsService.CompleteProject)
}

func (h *ProjectsHTTPHandler) HandleReactivateProject(w http.ResponseWriter, r *http.Request) {
	h.handleTransition(w, r, "reactivate", models.ProjectStateCompleted, models.ProjectStateActive,
		h.projectsService.ReactivateProject)
}

func (h *ProjectsHTTPHandler) handleTransition(
	w http.ResponseWriter,
	r *http.Request,
	action string,
	from, to models.ProjectState,
	transition func(ctx context.Context, name string) (*models.Project, error),
) {
	log.Info("📋 Project transition request received",
		"request_id", requestID(r), "action", action, "remote_addr", r.RemoteAddr)

	var req api.ProjectNameRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.ChannelName) == "" {
		h.writeError(w, http.StatusBadRequest, "channel_name is required")
		return
	}

	project, err := transition(r.Context(), req.ChannelName)
	if err != nil {
		h.writeServiceError(w, r, action+" project", err, func(err error) string {
			switch {
			case errors.Is(err, core.ErrProjectWrongState):
				return fmt.Sprintf("project %q is already %s", req.ChannelName, to)
			case errors.Is(err, core.ErrProjectNotFound):
				return fmt.Sprintf("no %s project named %q", from, req.ChannelName)
			case errors.Is(err, core.ErrCategoryNotFound):
				return "lifecycle category not found, run setup first"
			}
			return ""
		})
		return
	}

	log.Info("✅ Project transitioned", "request_id", requestID(r), "name", project.Name, "state", project.State)
	h.writeJSONResponse(w, http.StatusOK, api.StatusMessageResponse{
		Status:  api.StatusSuccess,
		Message: fmt.Sprintf("project %q is now %s", project.Name, project.State),
	})
}

func (h *ProjectsHTTPHandler) HandleListProjects(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status == "" {
		status = string(models.ProjectStateActive)
	}
	state, err := models.ParseProjectState(status)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "status must be active or completed")
		return
	}

	projects, err := h.projectsService.ListProjects(r.Context(), state)
	if err != nil {
		h.writeServiceError(w, r, "list projects", err, func(err error) string {
			if errors.Is(err, core.ErrCategoryNotFound) {
				return "lifecycle category not found, run setup first"
			}
			return ""
		})
		return
	}

	summaries, err := api.DomainProjectsToAPIProjectSummaries(projects)
	if err != nil {
		log.Error("❌ Failed to map projects", "request_id", requestID(r), "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	h.writeJSONResponse(w, http.StatusOK, summaries)
}

func (h *ProjectsHTTPHandler) HandleSetup(w http.ResponseWriter, r *http.Request) {
	log.Info("📋 Setup request received", "request_id", requestID(r), "remote_addr", r.RemoteAddr)

	categories, err := h.projectsService.EnsureLifecycleCategories(r.Context())
	if err != nil {
		h.writeServiceError(w, r, "setup", err, func(error) string { return "" })
		return
	}

	resp, err := api.DomainLifecycleCategoriesToSetupResponse(categories)
	if err != nil {
		log.Error("❌ Failed to map lifecycle categories", "request_id", requestID(r), "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	h.writeJSONResponse(w, http.StatusOK, resp)
}

func (h *ProjectsHTTPHandler) SetupEndpoints(router *mux.Router) {
	log.Info("🚀 Registering project API endpoints")

	router.HandleFunc("/new_project", h.HandleNewProject).Methods("POST")
	router.HandleFunc("/complete_project", h.HandleCompleteProject).Methods("POST")
	router.HandleFunc("/reactivate_project", h.HandleReactivateProject).Methods("POST")
	router.HandleFunc("/list_projects", h.HandleListProjects).Methods("GET")
	router.HandleFunc("/setup", h.HandleSetup).Methods("POST")

	log.Info("✅ Project API endpoints registered")
}

// writeServiceError maps service errors to status codes. describe supplies the
// client-facing message for known errors; anything it leaves empty is reported
// as an internal error with the cause kept in the logs.
func (h *ProjectsHTTPHandler) writeServiceError(
	w http.ResponseWriter,
	r *http.Request,
	operation string,
	err error,
	describe func(error) string,
) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, core.ErrInvalidArgument):
		status = http.StatusBadRequest
	case errors.Is(err, core.ErrProjectExists):
		status = http.StatusConflict
	case core.IsPreconditionFailed(err), core.IsNotFoundError(err):
		status = http.StatusNotFound
	}

	message := describe(err)
	if message == "" {
		if status == http.StatusBadRequest {
			message = "invalid request"
		} else {
			message = "internal error"
		}
	}

	if status == http.StatusInternalServerError {
		log.Error("❌ Failed to "+operation, "request_id", requestID(r), "error", err)
	} else {
		log.Warn("⚠️ Could not "+operation, "request_id", requestID(r), "status", status, "error", err)
	}
	h.writeError(w, status, message)
}

func (h *ProjectsHTTPHandler) writeError(w http.ResponseWriter, statusCode int, message string) {
	h.writeJSONResponse(w, statusCode, api.StatusMessageResponse{Status: api.StatusError, Message: message})
}

func (h *ProjectsHTTPHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error("❌ Failed to encode JSON response", "error", err)
	}
}

func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	return json.NewDecoder(r.Body).Decode(dst)
}

func (h *ProjectsHTTPHandler) categoryOrDefault(name string) string {
	if strings.TrimSpace(name) == "" {
		return h.defaultCategoryName
	}
	return name
}

// requestID returns the id set by the request id middleware, or "" outside it
func requestID(r *http.Request) string {
	id, _ := appctx.GetRequestID(r.Context())
	return id
}
