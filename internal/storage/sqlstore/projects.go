package sqlstore

import (
	"context"
	"fmt"

	"github.com/01moynul/binner-golang/internal/models"
	"github.com/01moynul/binner-golang/internal/requestctx"
	"github.com/01moynul/binner-golang/internal/storage"
)

func (s *Store) AddProject(ctx context.Context, project *models.Project) (*models.Project, error) {
	project.UserID = requestctx.UserID(ctx)
	if project.DateCreatedUtc.IsZero() {
		project.DateCreatedUtc = s.now()
	}
	query := `INSERT INTO projects (name, description, location, date_created_utc, user_id)
VALUES (@name, @description, @location, @date_created_utc, @user_id)`
	id, err := s.insert(ctx, query, project)
	if err != nil {
		return nil, fmt.Errorf("insert project: %w", err)
	}
	project.ProjectID = id
	return project, nil
}

func (s *Store) UpdateProject(ctx context.Context, project *models.Project) (*models.Project, error) {
	project.UserID = requestctx.UserID(ctx)
	lookup := `SELECT project_id FROM projects WHERE project_id = @project_id AND ` + userScope
	found, err := queryRows[models.Project](ctx, s, lookup, project, scope(ctx))
	if err != nil {
		return nil, fmt.Errorf("find project: %w", err)
	}
	if len(found) == 0 {
		return nil, storage.NotFound("Project", project.ProjectID)
	}

	query := `UPDATE projects SET name = @name, description = @description, location = @location
WHERE project_id = @project_id AND ` + userScope
	if _, err := s.execute(ctx, query, project, scope(ctx)); err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	return s.GetProject(ctx, project.ProjectID)
}

func (s *Store) DeleteProject(ctx context.Context, projectID int64) (bool, error) {
	query := `DELETE FROM projects WHERE project_id = @project_id AND ` + userScope
	n, err := s.execute(ctx, query, Params{"project_id": projectID}, scope(ctx))
	if err != nil {
		return false, fmt.Errorf("delete project: %w", err)
	}
	return n > 0, nil
}

func (s *Store) GetProject(ctx context.Context, projectID int64) (*models.Project, error) {
	query := `SELECT * FROM projects WHERE project_id = @project_id AND ` + userScope
	return queryOne[models.Project](ctx, s, "Project", projectID, query, Params{"project_id": projectID}, scope(ctx))
}

func (s *Store) GetProjectByName(ctx context.Context, name string) (*models.Project, error) {
	query := `SELECT * FROM projects WHERE name = @name AND ` + userScope + ` ORDER BY project_id`
	return queryOne[models.Project](ctx, s, "Project", name, query, Params{"name": name}, scope(ctx))
}

func (s *Store) GetProjects(ctx context.Context, req models.PaginatedRequest) ([]*models.Project, error) {
	req = req.Normalize()
	query := `SELECT * FROM projects WHERE ` + userScope + ` ` +
		orderBy(req.OrderColumn(models.ProjectSortColumns, "project_id"), "project_id", req.Direction.SQL()) +
		` LIMIT @limit OFFSET @offset`
	projects, err := queryRows[models.Project](ctx, s, query, scope(ctx), page(req))
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}
