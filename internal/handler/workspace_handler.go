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

type WorkspaceHandler struct {
	workspaces *repository.WorkspaceRepository
}

func NewWorkspaceHandler(workspaces *repository.WorkspaceRepository) *WorkspaceHandler {
	return &WorkspaceHandler{workspaces: workspaces}
}

type CreateWorkspaceRequest struct {
	Name        string `json:"name" binding:"required,max=191"`
	Description string `json:"description" binding:"omitempty,max=1000"`
}

type UpdateWorkspaceRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=191"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
}

// Create creates a workspace.
// @Summary      Create a workspace
// @Tags         Workspaces
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateWorkspaceRequest true "Workspace payload"
// @Success      201 {object} map[string]interface{}
// @Failure      400 {object} map[string]interface{}
// @Router       /workspaces [post]
func (h *WorkspaceHandler) Create(c *gin.Context) {
	var req CreateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Workspace name is required")
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		respondError(c, http.StatusBadRequest, "Workspace name is required")
		return
	}

	workspace := &model.Workspace{
		Name:        name,
		Description: strings.TrimSpace(req.Description),
	}
	if err := h.workspaces.Create(c.Request.Context(), workspace); err != nil {
		log.Printf("❌ Failed to create workspace: %v", err)
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondOK(c, http.StatusCreated, workspace)
}

// GetAll lists workspaces, newest first.
// @Summary      List workspaces
// @Tags         Workspaces
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} map[string]interface{}
// @Router       /workspaces [get]
func (h *WorkspaceHandler) GetAll(c *gin.Context) {
	workspaces, err := h.workspaces.GetAll(c.Request.Context())
	if err != nil {
		log.Printf("❌ Failed to list workspaces: %v", err)
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	respondOK(c, http.StatusOK, workspaces)
}

// GetByID fetches one workspace.
// @Summary      Get a workspace by id
// @Tags         Workspaces
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Workspace ID"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} map[string]interface{}
// @Router       /workspaces/{id} [get]
func (h *WorkspaceHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid workspace ID")
		return
	}

	workspace, err := h.workspaces.GetByID(c.Request.Context(), id)
	if err != nil {
		log.Printf("❌ Failed to load workspace: %v", err)
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	if workspace == nil {
		respondError(c, http.StatusNotFound, "Workspace not found")
		return
	}

	respondOK(c, http.StatusOK, workspace)
}

// Update merges the provided fields onto an existing workspace.
// @Summary      Update a workspace
// @Tags         Workspaces
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Workspace ID"
// @Param        request body UpdateWorkspaceRequest true "Fields to update"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} map[string]interface{}
// @Router       /workspaces/{id} [put]
func (h *WorkspaceHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid workspace ID")
		return
	}

	var req UpdateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	workspace, err := h.workspaces.GetByID(c.Request.Context(), id)
	if err != nil {
		log.Printf("❌ Failed to load workspace: %v", err)
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	if workspace == nil {
		respondError(c, http.StatusNotFound, "Workspace not found")
		return
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			respondError(c, http.StatusBadRequest, "Workspace name is required")
			return
		}
		workspace.Name = name
	}
	if req.Description != nil {
		workspace.Description = strings.TrimSpace(*req.Description)
	}

	if err := h.workspaces.Update(c.Request.Context(), workspace); err != nil {
		log.Printf("❌ Failed to update workspace: %v", err)
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondOK(c, http.StatusOK, workspace)
}

// Delete removes a workspace and cascades to its projects and boards.
// @Summary      Delete a workspace
// @Tags         Workspaces
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Workspace ID"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} map[string]interface{}
// @Router       /workspaces/{id} [delete]
func (h *WorkspaceHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid workspace ID")
		return
	}

	deleted, err := h.workspaces.Delete(c.Request.Context(), id)
	if err != nil {
		log.Printf("❌ Failed to delete workspace: %v", err)
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	if !deleted {
		respondError(c, http.StatusNotFound, "Workspace not found")
		return
	}

	respondOK(c, http.StatusOK, gin.H{"message": "Workspace deleted successfully"})
}
