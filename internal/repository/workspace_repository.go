package repository

import (
	"context"
	"errors"

	"taskboard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WorkspaceRepository struct {
	db *gorm.DB
}

func NewWorkspaceRepository(db *gorm.DB) *WorkspaceRepository {
	return &WorkspaceRepository{db: db}
}

func (r *WorkspaceRepository) Create(ctx context.Context, workspace *model.Workspace) error {
	return r.db.WithContext(ctx).Create(workspace).Error
}

func (r *WorkspaceRepository) GetAll(ctx context.Context) ([]model.Workspace, error) {
	var workspaces []model.Workspace
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&workspaces).Error
	return workspaces, err
}

func (r *WorkspaceRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Workspace, error) {
	var workspace model.Workspace
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&workspace).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &workspace, nil
}

func (r *WorkspaceRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Workspace{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *WorkspaceRepository) Update(ctx context.Context, workspace *model.Workspace) error {
	return r.db.WithContext(ctx).Save(workspace).Error
}

// Delete removes a workspace together with its projects and their boards in
// a single transaction, so a partial failure cannot leave orphaned rows.
// Returns whether a workspace row was actually removed.
func (r *WorkspaceRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	var deleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		projectIDs := tx.Model(&model.Project{}).Select("id").Where("workspace_id = ?", id)

		if err := tx.Where("project_id IN (?)", projectIDs).Delete(&model.Board{}).Error; err != nil {
			return err
		}
		if err := tx.Where("workspace_id = ?", id).Delete(&model.Project{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&model.Workspace{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}
