package handler

import (
	"errors"
	"log"
	"net/http"

	"taskboard/internal/model"
	"taskboard/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UserHandler struct {
	repo repository.UserRepositoryInterface
}

func NewUserHandler(repo repository.UserRepositoryInterface) *UserHandler {
	return &UserHandler{repo: repo}
}

type CreateUserRequest struct {
	Name  string `json:"name" binding:"required,min=1"`
	Email string `json:"email" binding:"required,email"`
}

type UpdateUserRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=1"`
	Email *string `json:"email" binding:"omitempty,email"`
}

// GetAll lists all users, newest first.
// @Summary      List users
// @Tags         Users
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Router       /users [get]
func (h *UserHandler) GetAll(c *gin.Context) {
	users, err := h.repo.FindAll(c.Request.Context())
	if err != nil {
		log.Printf("❌ Failed to list users: %v", err)
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	respondOK(c, http.StatusOK, users)
}

// Create registers a new user.
// @Summary      Create a user
// @Tags         Users
// @Accept       json
// @Produce      json
// @Param        request body CreateUserRequest true "User payload"
// @Success      201 {object} map[string]interface{}
// @Failure      400 {object} map[string]interface{}
// @Router       /users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Name and a valid email are required")
		return
	}

	user := &model.User{Name: req.Name, Email: req.Email}
	if err := h.repo.Create(c.Request.Context(), user); err != nil {
		if errors.Is(err, repository.ErrEmailAlreadyExists) {
			respondError(c, http.StatusBadRequest, "Email already exists")
			return
		}
		log.Printf("❌ Failed to create user: %v", err)
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondOK(c, http.StatusCreated, user)
}

// GetByID fetches one user.
// @Summary      Get a user by id
// @Tags         Users
// @Produce      json
// @Param        id path string true "User ID"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} map[string]interface{}
// @Router       /users/{id} [get]
func (h *UserHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid user ID")
		return
	}

	user, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		log.Printf("❌ Failed to load user: %v", err)
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	if user == nil {
		respondError(c, http.StatusNotFound, "User not found")
		return
	}

	respondOK(c, http.StatusOK, user)
}

// Update merges the provided fields onto an existing user.
// @Summary      Update a user
// @Tags         Users
// @Accept       json
// @Produce      json
// @Param        id path string true "User ID"
// @Param        request body UpdateUserRequest true "Fields to update"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} map[string]interface{}
// @Router       /users/{id} [put]
func (h *UserHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	user, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		log.Printf("❌ Failed to load user: %v", err)
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	if user == nil {
		respondError(c, http.StatusNotFound, "User not found")
		return
	}

	if req.Email != nil && *req.Email != user.Email {
		existing, err := h.repo.FindByEmail(c.Request.Context(), *req.Email)
		if err != nil {
			log.Printf("❌ Failed to check email: %v", err)
			respondError(c, http.StatusInternalServerError, "Internal server error")
			return
		}
		if existing != nil && existing.ID != user.ID {
			respondError(c, http.StatusBadRequest, "Email already exists")
			return
		}
		user.Email = *req.Email
	}
	if req.Name != nil {
		user.Name = *req.Name
	}

	if err := h.repo.Update(c.Request.Context(), user); err != nil {
		log.Printf("❌ Failed to update user: %v", err)
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondOK(c, http.StatusOK, user)
}

// Delete removes a user.
// @Summary      Delete a user
// @Tags         Users
// @Produce      json
// @Param        id path string true "User ID"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} map[string]interface{}
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid user ID")
		return
	}

	deleted, err := h.repo.Delete(c.Request.Context(), id)
	if err != nil {
		log.Printf("❌ Failed to delete user: %v", err)
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	if !deleted {
		respondError(c, http.StatusNotFound, "User not found")
		return
	}

	respondOK(c, http.StatusOK, gin.H{"message": "User deleted successfully"})
}
