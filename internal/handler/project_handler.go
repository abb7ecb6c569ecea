package handler

import (
	"log"
	"net/http"
	"strings"

	"taskboard/internal/model"
	"taskboard/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProjectHandler struct {
	projects   *repository.ProjectRepository
	workspaces *repository.WorkspaceRepository
}

func NewProjectHandler(projects *repository.ProjectRepository, workspaces *repository.WorkspaceRepository) *ProjectHandler {
	return &ProjectHandler{projects: projects, workspaces: workspaces}
}

type CreateProjectRequest struct {
	WorkspaceID string `json:"workspaceId" binding:"required,uuid"`
	Name        string `json:"name" binding:"required,max=191"`
	Description string `json:"description" binding:"omitempty,max=1000"`
}

type UpdateProjectRequest struct {
	WorkspaceID *string `json:"workspaceId" binding:"omitempty,uuid"`
	Name        *string `json:"name" binding:"omitempty,max=191"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
}

// Create creates a project inside an existing workspace. A dangling
// workspace reference is reported as not-found, not as a validation failure.
// @Summary      Create a project
// @Tags         Projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateProjectRequest true "Project payload"
// @Success      201 {object} map[string]interface{}
// @Failure      400 {object} map[string]interface{}
// @Failure      404 {object} map[string]interface{}
// @Router       /projects [post]
func (h *ProjectHandler) Create(c *gin.Context) {
	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "A workspace ID and project name are required")
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		respondError(c, http.StatusBadRequest, "Project name is required")
		return
	}

	workspaceID, err := uuid.Parse(req.WorkspaceID)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid workspace ID")
		return
	}

	exists, err := h.workspaces.Exists(c.Request.Context(), workspaceID)
	if err != nil {
		log.Printf("❌ Failed to check workspace: %v", err)
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	if !exists {
		respondError(c, http.StatusNotFound, "Workspace not found")
		return
	}

	project := &model.Project{
		WorkspaceID: workspaceID,
		Name:        name,
		Description: strings.TrimSpace(req.Description),
	}
	if err := h.projects.Create(c.Request.Context(), project); err != nil {
		log.Printf("❌ Failed to create project: %v", err)
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondOK(c, http.StatusCreated, project)
}

// GetAll lists projects, newest first, optionally filtered by workspace.
// @Summary      List projects
// @Tags         Projects
// @Produce      json
// @Security     BearerAuth
// @Param        workspaceId query string false "Filter by workspace"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} map[string]interface{}
// @Router       /projects [get]
func (h *ProjectHandler) GetAll(c *gin.Context) {
	var filter *uuid.UUID
	if raw := c.Query("workspaceId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid workspace ID filter")
			return
		}
		filter = &id
	}

	projects, err := h.projects.GetAll(c.Request.Context(), filter)
	if err != nil {
		log.Printf("❌ Failed to list projects: %v", err)
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	respondOK(c, http.StatusOK, projects)
}

// GetByID fetches one project.
// @Summary      Get a project by id
// @Tags         Projects
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Project ID"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} map[string]interface{}
// @Router       /projects/{id} [get]
func (h *ProjectHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid project ID")
		return
	}

	project, err := h.projects.GetByID(c.Request.Context(), id)
	if err != nil {
		log.Printf("❌ Failed to load project: %v", err)
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	if project == nil {
		respondError(c, http.StatusNotFound, "Project not found")
		return
	}

	respondOK(c, http.StatusOK, project)
}

// Update merges the provided fields onto an existing project. Moving the
// project to another workspace re-validates that the workspace exists.
// @Summary      Update a project
// @Tags         Projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Project ID"
// @Param        request body UpdateProjectRequest true "Fields to update"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} map[string]interface{}
// @Router       /projects/{id} [put]
func (h *ProjectHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid project ID")
		return
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	project, err := h.projects.GetByID(c.Request.Context(), id)
	if err != nil {
		log.Printf("❌ Failed to load project: %v", err)
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	if project == nil {
		respondError(c, http.StatusNotFound, "Project not found")
		return
	}

	if req.WorkspaceID != nil {
		workspaceID, err := uuid.Parse(*req.WorkspaceID)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid workspace ID")
			return
		}
		if workspaceID != project.WorkspaceID {
			exists, err := h.workspaces.Exists(c.Request.Context(), workspaceID)
			if err != nil {
				log.Printf("❌ Failed to check workspace: %v", err)
				respondError(c, http.StatusInternalServerError, "Internal server error")
				return
			}
			if !exists {
				respondError(c, http.StatusNotFound, "Workspace not found")
				return
			}
			project.WorkspaceID = workspaceID
		}
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			respondError(c, http.StatusBadRequest, "Project name is required")
			return
		}
		project.Name = name
	}
	if req.Description != nil {
		project.Description = strings.TrimSpace(*req.Description)
	}

	if err := h.projects.Update(c.Request.Context(), project); err != nil {
		log.Printf("❌ Failed to update project: %v", err)
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondOK(c, http.StatusOK, project)
}

// Delete removes a project and cascades to its boards.
// @Summary      Delete a project
// @Tags         Projects
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Project ID"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} map[string]interface{}
// @Router       /projects/{id} [delete]
func (h *ProjectHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid project ID")
		return
	}

	deleted, err := h.projects.Delete(c.Request.Context(), id)
	if err != nil {
		log.Printf("❌ Failed to delete project: %v", err)
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	if !deleted {
		respondError(c, http.StatusNotFound, "Project not found")
		return
	}

	respondOK(c, http.StatusOK, gin.H{"message": "Project deleted successfully"})
}
