package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"taskboard/internal/handler"
	"taskboard/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func setupProjectRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	gin.SetMode(gin.TestMode)
	gormDB, mock := setupHandlerDB(t)

	projectHandler := handler.NewProjectHandler(
		repository.NewProjectRepository(gormDB),
		repository.NewWorkspaceRepository(gormDB),
	)

	r := gin.Default()
	r.POST("/projects", projectHandler.Create)
	r.GET("/projects", projectHandler.GetAll)

	return r, mock
}

// A syntactically valid workspaceId that matches no workspace is a
// not-found, not a validation failure.
func TestProjectHandler_Create_MissingWorkspace(t *testing.T) {
	router, mock := setupProjectRouter(t)

	workspaceID := uuid.New()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "workspaces" WHERE id = .*`).
		WithArgs(workspaceID.String()).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	resp := postJSON(router, "/projects", handler.CreateProjectRequest{
		WorkspaceID: workspaceID.String(),
		Name:        "Website",
	})

	assert.Equal(t, http.StatusNotFound, resp.Code)

	var body envelope
	err := json.Unmarshal(resp.Body.Bytes(), &body)
	assert.NoError(t, err)
	assert.False(t, body.Success)
	assert.Equal(t, "Workspace not found", body.Error)
	// No INSERT ran
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectHandler_Create(t *testing.T) {
	router, mock := setupProjectRouter(t)

	workspaceID := uuid.New()
	generatedID := uuid.New()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "workspaces" WHERE id = .*`).
		WithArgs(workspaceID.String()).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "projects"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(generatedID.String()))
	mock.ExpectCommit()

	resp := postJSON(router, "/projects", handler.CreateProjectRequest{
		WorkspaceID: workspaceID.String(),
		Name:        "Website",
		Description: "Marketing site",
	})

	assert.Equal(t, http.StatusCreated, resp.Code)

	var body envelope
	err := json.Unmarshal(resp.Body.Bytes(), &body)
	assert.NoError(t, err)
	assert.True(t, body.Success)
	assert.Equal(t, generatedID.String(), body.Data["id"])
	assert.Equal(t, workspaceID.String(), body.Data["workspaceId"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectHandler_Create_MalformedWorkspaceID(t *testing.T) {
	router, mock := setupProjectRouter(t)

	resp := postJSON(router, "/projects", gin.H{
		"workspaceId": "not-a-uuid",
		"name":        "Website",
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectHandler_GetAll_InvalidFilter(t *testing.T) {
	router, mock := setupProjectRouter(t)

	req, _ := http.NewRequest("GET", "/projects?workspaceId=nope", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var body envelope
	err := json.Unmarshal(resp.Body.Bytes(), &body)
	assert.NoError(t, err)
	assert.Equal(t, "Invalid workspace ID filter", body.Error)
	assert.NoError(t, mock.ExpectationsWereMet())
}
