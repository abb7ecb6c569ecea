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

type BoardHandler struct {
	boards   *repository.BoardRepository
	projects *repository.ProjectRepository
}

func NewBoardHandler(boards *repository.BoardRepository, projects *repository.ProjectRepository) *BoardHandler {
	return &BoardHandler{boards: boards, projects: projects}
}

type CreateBoardRequest struct {
	ProjectID   string `json:"projectId" binding:"required,uuid"`
	Name        string `json:"name" binding:"required,max=191"`
	Description string `json:"description" binding:"omitempty,max=1000"`
	Position    *int   `json:"position" binding:"omitempty,gte=0"`
}

type UpdateBoardRequest struct {
	ProjectID   *string `json:"projectId" binding:"omitempty,uuid"`
	Name        *string `json:"name" binding:"omitempty,max=191"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
	Position    *int    `json:"position" binding:"omitempty,gte=0"`
}

// Create creates a board inside an existing project. Position defaults to 0.
// @Summary      Create a board
// @Tags         Boards
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateBoardRequest true "Board payload"
// @Success      201 {object} map[string]interface{}
// @Failure      400 {object} map[string]interface{}
// @Failure      404 {object} map[string]interface{}
// @Router       /boards [post]
func (h *BoardHandler) Create(c *gin.Context) {
	var req CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "A project ID and board name are required")
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		respondError(c, http.StatusBadRequest, "Board name is required")
		return
	}

	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid project ID")
		return
	}

	exists, err := h.projects.Exists(c.Request.Context(), projectID)
	if err != nil {
		log.Printf("❌ Failed to check project: %v", err)
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	if !exists {
		respondError(c, http.StatusNotFound, "Project not found")
		return
	}

	board := &model.Board{
		ProjectID:   projectID,
		Name:        name,
		Description: strings.TrimSpace(req.Description),
	}
	if req.Position != nil {
		board.Position = *req.Position
	}

	if err := h.boards.Create(c.Request.Context(), board); err != nil {
		log.Printf("❌ Failed to create board: %v", err)
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondOK(c, http.StatusCreated, board)
}

// GetAll lists boards ordered by position (ties: newest first), optionally
// filtered by project.
// @Summary      List boards
// @Tags         Boards
// @Produce      json
// @Security     BearerAuth
// @Param        projectId query string false "Filter by project"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} map[string]interface{}
// @Router       /boards [get]
func (h *BoardHandler) GetAll(c *gin.Context) {
	var filter *uuid.UUID
	if raw := c.Query("projectId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid project ID filter")
			return
		}
		filter = &id
	}

	boards, err := h.boards.GetAll(c.Request.Context(), filter)
	if err != nil {
		log.Printf("❌ Failed to list boards: %v", err)
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	respondOK(c, http.StatusOK, boards)
}

// GetByID fetches one board.
// @Summary      Get a board by id
// @Tags         Boards
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Board ID"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} map[string]interface{}
// @Router       /boards/{id} [get]
func (h *BoardHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid board ID")
		return
	}

	board, err := h.boards.GetByID(c.Request.Context(), id)
	if err != nil {
		log.Printf("❌ Failed to load board: %v", err)
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	if board == nil {
		respondError(c, http.StatusNotFound, "Board not found")
		return
	}

	respondOK(c, http.StatusOK, board)
}

// Update merges the provided fields onto an existing board. Moving the board
// to another project re-validates that the project exists; on failure the
// stored projectId is left untouched.
// @Summary      Update a board
// @Tags         Boards
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Board ID"
// @Param        request body UpdateBoardRequest true "Fields to update"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} map[string]interface{}
// @Router       /boards/{id} [put]
func (h *BoardHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid board ID")
		return
	}

	var req UpdateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	board, err := h.boards.GetByID(c.Request.Context(), id)
	if err != nil {
		log.Printf("❌ Failed to load board: %v", err)
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	if board == nil {
		respondError(c, http.StatusNotFound, "Board not found")
		return
	}

	if req.ProjectID != nil {
		projectID, err := uuid.Parse(*req.ProjectID)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid project ID")
			return
		}
		if projectID != board.ProjectID {
			exists, err := h.projects.Exists(c.Request.Context(), projectID)
			if err != nil {
				log.Printf("❌ Failed to check project: %v", err)
				respondError(c, http.StatusInternalServerError, "Internal server error")
				return
			}
			if !exists {
				respondError(c, http.StatusNotFound, "Project not found")
				return
			}
			board.ProjectID = projectID
		}
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			respondError(c, http.StatusBadRequest, "Board name is required")
			return
		}
		board.Name = name
	}
	if req.Description != nil {
		board.Description = strings.TrimSpace(*req.Description)
	}
	if req.Position != nil {
		board.Position = *req.Position
	}

	if err := h.boards.Update(c.Request.Context(), board); err != nil {
		log.Printf("❌ Failed to update board: %v", err)
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondOK(c, http.StatusOK, board)
}

// Delete removes a board.
// @Summary      Delete a board
// @Tags         Boards
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Board ID"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} map[string]interface{}
// @Router       /boards/{id} [delete]
func (h *BoardHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid board ID")
		return
	}

	deleted, err := h.boards.Delete(c.Request.Context(), id)
	if err != nil {
		log.Printf("❌ Failed to delete board: %v", err)
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	if !deleted {
		respondError(c, http.StatusNotFound, "Board not found")
		return
	}

	respondOK(c, http.StatusOK, gin.H{"message": "Board deleted successfully"})
}
