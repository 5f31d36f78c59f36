package sqlstore

import (
	"context"
	"errors"
	"testing"

	"github.com/01moynul/binner-golang/internal/models"
	"github.com/01moynul/binner-golang/internal/storage"
)

func TestProjectCRUD(t *testing.T) {
	s := openTestStore(t)
	ctx := userCtx(3)

	added, err := s.AddProject(ctx, &models.Project{Name: "Clock", Description: "Nixie clock", Location: "Desk"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if added.ProjectID == 0 || added.DateCreatedUtc.IsZero() {
		t.Fatalf("added = %+v", added)
	}

	byName, err := s.GetProjectByName(ctx, "Clock")
	if err != nil {
		t.Fatalf("by name: %v", err)
	}
	if byName.Description != "Nixie clock" || byName.UserID == nil || *byName.UserID != 3 {
		t.Fatalf("by name = %+v", byName)
	}

	added.Location = "Lab"
	updated, err := s.UpdateProject(ctx, added)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Location != "Lab" {
		t.Fatalf("location = %q, want Lab", updated.Location)
	}

	list, err := s.GetProjects(ctx, models.PaginatedRequest{})
	if err != nil || len(list) != 1 {
		t.Fatalf("list = %v, %v", list, err)
	}
	other, err := s.GetProjects(userCtx(4), models.PaginatedRequest{})
	if err != nil || len(other) != 0 {
		t.Fatalf("other user list = %v, %v", other, err)
	}

	deleted, err := s.DeleteProject(ctx, added.ProjectID)
	if err != nil || !deleted {
		t.Fatalf("delete = %v, %v", deleted, err)
	}
	if _, err := s.GetProject(ctx, added.ProjectID); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("get after delete err = %v", err)
	}
}

func TestUpdateMissingProject(t *testing.T) {
	s := openTestStore(t)
	_, err := s.UpdateProject(context.Background(), &models.Project{ProjectID: 42, Name: "Ghost"})
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDeletingProjectDetachesParts(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	project, err := s.AddProject(ctx, &models.Project{Name: "Radio"})
	if err != nil {
		t.Fatalf("add project: %v", err)
	}
	part := mustAddPart(t, ctx, s, &models.Part{PartNumber: "2N3904", ProjectID: &project.ProjectID})

	if _, err := s.DeleteProject(ctx, project.ProjectID); err != nil {
		t.Fatalf("delete project: %v", err)
	}
	got, err := s.GetPart(ctx, part.PartID)
	if err != nil {
		t.Fatalf("get part: %v", err)
	}
	if got.ProjectID != nil {
		t.Fatalf("project id = %v, want nil after project delete", *got.ProjectID)
	}
}
