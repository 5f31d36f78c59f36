package gormstore

import (
	"context"
	"fmt"

	"github.com/01moynul/binner-golang/internal/models"
	"github.com/01moynul/binner-golang/internal/requestctx"
)

func (s *Store) AddProject(ctx context.Context, project *models.Project) (*models.Project, error) {
	project.UserID = requestctx.UserID(ctx)
	if project.DateCreatedUtc.IsZero() {
		project.DateCreatedUtc = s.now()
	}
	row := newProjectRow(project)
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, fmt.Errorf("insert project: %w", translate(err))
	}
	project.ProjectID = row.ProjectID
	return project, nil
}

func (s *Store) UpdateProject(ctx context.Context, project *models.Project) (*models.Project, error) {
	project.UserID = requestctx.UserID(ctx)
	var lookup projectRow
	if err := s.scoped(ctx).Select("project_id").Where("project_id = ?", project.ProjectID).First(&lookup).Error; err != nil {
		return nil, notFound(err, "Project", project.ProjectID)
	}

	err := s.scoped(ctx).Model(&projectRow{}).
		Where("project_id = ?", project.ProjectID).
		Select("name", "description", "location").
		Updates(newProjectRow(project)).Error
	if err != nil {
		return nil, fmt.Errorf("update project: %w", translate(err))
	}
	return s.GetProject(ctx, project.ProjectID)
}

func (s *Store) DeleteProject(ctx context.Context, projectID int64) (bool, error) {
	res := s.scoped(ctx).Where("project_id = ?", projectID).Delete(&projectRow{})
	if res.Error != nil {
		return false, fmt.Errorf("delete project: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *Store) GetProject(ctx context.Context, projectID int64) (*models.Project, error) {
	var row projectRow
	if err := s.scoped(ctx).Where("project_id = ?", projectID).First(&row).Error; err != nil {
		return nil, notFound(err, "Project", projectID)
	}
	return row.model(), nil
}

func (s *Store) GetProjectByName(ctx context.Context, name string) (*models.Project, error) {
	var row projectRow
	if err := s.scoped(ctx).Where("name = ?", name).Order("project_id").First(&row).Error; err != nil {
		return nil, notFound(err, "Project", name)
	}
	return row.model(), nil
}

func (s *Store) GetProjects(ctx context.Context, req models.PaginatedRequest) ([]*models.Project, error) {
	var rows []projectRow
	if err := paginate(s.scoped(ctx), req, models.ProjectSortColumns, "project_id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	projects := make([]*models.Project, 0, len(rows))
	for i := range rows {
		projects = append(projects, rows[i].model())
	}
	return projects, nil
}
