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
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupHandlerDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		DSN:                  "sqlmock_db_0",
		DriverName:           "postgres",
		Conn:                 db,
		PreferSimpleProtocol: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	assert.NoError(t, err)

	return gormDB, mock
}

func setupWorkspaceRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	gin.SetMode(gin.TestMode)
	gormDB, mock := setupHandlerDB(t)

	workspaceHandler := handler.NewWorkspaceHandler(repository.NewWorkspaceRepository(gormDB))

	r := gin.Default()
	r.POST("/workspaces", workspaceHandler.Create)
	r.GET("/workspaces/:id", workspaceHandler.GetByID)
	r.DELETE("/workspaces/:id", workspaceHandler.Delete)

	return r, mock
}

func TestWorkspaceHandler_Create(t *testing.T) {
	router, mock := setupWorkspaceRouter(t)

	generatedID := uuid.New()
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "workspaces"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(generatedID.String()))
	mock.ExpectCommit()

	resp := postJSON(router, "/workspaces", handler.CreateWorkspaceRequest{
		Name:        "  Acme  ",
		Description: "Main workspace",
	})

	assert.Equal(t, http.StatusCreated, resp.Code)

	var body envelope
	err := json.Unmarshal(resp.Body.Bytes(), &body)
	assert.NoError(t, err)
	assert.True(t, body.Success)
	assert.Equal(t, generatedID.String(), body.Data["id"])
	assert.Equal(t, "Acme", body.Data["name"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkspaceHandler_Create_BlankName(t *testing.T) {
	router, mock := setupWorkspaceRouter(t)

	resp := postJSON(router, "/workspaces", gin.H{"name": "   "})

	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var body envelope
	err := json.Unmarshal(resp.Body.Bytes(), &body)
	assert.NoError(t, err)
	assert.False(t, body.Success)
	assert.Equal(t, "Workspace name is required", body.Error)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkspaceHandler_GetByID_InvalidID(t *testing.T) {
	router, mock := setupWorkspaceRouter(t)

	req, _ := http.NewRequest("GET", "/workspaces/not-a-uuid", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkspaceHandler_Delete_Missing(t *testing.T) {
	router, mock := setupWorkspaceRouter(t)

	id := uuid.New()
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "boards" WHERE project_id IN \(SELECT`).
		WithArgs(id.String()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM "projects" WHERE workspace_id = .*`).
		WithArgs(id.String()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM "workspaces"`).
		WithArgs(id.String()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	req, _ := http.NewRequest("DELETE", "/workspaces/"+id.String(), nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusNotFound, resp.Code)

	var body envelope
	err := json.Unmarshal(resp.Body.Bytes(), &body)
	assert.NoError(t, err)
	assert.False(t, body.Success)
	assert.Equal(t, "Workspace not found", body.Error)
	assert.NoError(t, mock.ExpectationsWereMet())
}
