package sqlstore

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/01moynul/binner-golang/internal/models"
	"github.com/01moynul/binner-golang/internal/storage"
)

func TestPartRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	project, err := s.AddProject(ctx, &models.Project{Name: "Synth"})
	if err != nil {
		t.Fatalf("add project: %v", err)
	}
	created := time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC)
	in := &models.Part{
		Quantity:               25,
		LowStockThreshold:      5,
		PartNumber:             "LM358",
		ManufacturerPartNumber: "LM358DR",
		Manufacturer:           "Texas Instruments",
		DigiKeyPartNumber:      "296-1395-1-ND",
		MouserPartNumber:       "595-LM358DR",
		Description:            "Dual op amp",
		MountingTypeID:         2,
		ProjectID:              &project.ProjectID,
		Keywords:               []string{"opamp", "dual"},
		DatasheetURL:           "https://www.ti.com/lit/ds/symlink/lm358.pdf",
		Location:               "Shelf A",
		BinNumber:              "1",
		BinNumber2:             "B",
		Cost:                   0.42,
		DateCreatedUtc:         created,
	}
	added := mustAddPart(t, ctx, s, in)
	if added.PartID == 0 {
		t.Fatal("expected generated part id")
	}

	got, err := s.GetPart(ctx, added.PartID)
	if err != nil {
		t.Fatalf("get part: %v", err)
	}
	if got.PartNumber != in.PartNumber || got.Manufacturer != in.Manufacturer || got.Cost != in.Cost {
		t.Fatalf("part = %+v, want %+v", got, in)
	}
	if !reflect.DeepEqual(got.Keywords, in.Keywords) {
		t.Fatalf("keywords = %v, want %v", got.Keywords, in.Keywords)
	}
	if got.ProjectID == nil || *got.ProjectID != project.ProjectID {
		t.Fatalf("project id = %v, want %d", got.ProjectID, project.ProjectID)
	}
	if got.PartTypeID != nil {
		t.Fatalf("part type id = %v, want nil", *got.PartTypeID)
	}
	if !got.DateCreatedUtc.Equal(created) {
		t.Fatalf("date = %v, want %v", got.DateCreatedUtc, created)
	}
	if got.UserID != nil {
		t.Fatalf("anonymous part user = %v, want nil", *got.UserID)
	}

	byNumber, err := s.GetPartByNumber(ctx, "LM358")
	if err != nil {
		t.Fatalf("get by number: %v", err)
	}
	if byNumber.PartID != added.PartID {
		t.Fatalf("by number id = %d, want %d", byNumber.PartID, added.PartID)
	}
}

func TestAddPartDefaultsCreatedDate(t *testing.T) {
	s := openTestStore(t)
	fixed := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	added := mustAddPart(t, context.Background(), s, &models.Part{PartNumber: "1N4148"})
	if !added.DateCreatedUtc.Equal(fixed) {
		t.Fatalf("date = %v, want %v", added.DateCreatedUtc, fixed)
	}
}

func TestUpdatePart(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	added := mustAddPart(t, ctx, s, &models.Part{PartNumber: "NE555", Quantity: 1})

	added.Quantity = 10
	added.Keywords = []string{"timer"}
	updated, err := s.UpdatePart(ctx, added)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Quantity != 10 || !reflect.DeepEqual(updated.Keywords, []string{"timer"}) {
		t.Fatalf("updated = %+v", updated)
	}
}

func TestUpdateMissingPartReturnsNotFound(t *testing.T) {
	s := openTestStore(t)
	_, err := s.UpdatePart(context.Background(), &models.Part{PartID: 999, PartNumber: "X"})
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if want := "record not found for Part = 999"; err.Error() != want {
		t.Fatalf("message = %q, want %q", err.Error(), want)
	}
}

func TestDanglingReferenceIsInvalidArgument(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	missing := int64(999)

	_, err := s.AddPart(ctx, &models.Part{PartNumber: "R1", ProjectID: &missing})
	if !errors.Is(err, storage.ErrInvalidArgument) {
		t.Fatalf("add err = %v, want ErrInvalidArgument", err)
	}

	added := mustAddPart(t, ctx, s, &models.Part{PartNumber: "R2"})
	added.PartTypeID = &missing
	if _, err := s.UpdatePart(ctx, added); !errors.Is(err, storage.ErrInvalidArgument) {
		t.Fatalf("update err = %v, want ErrInvalidArgument", err)
	}
}

func TestDeletePart(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	added := mustAddPart(t, ctx, s, &models.Part{PartNumber: "BC547"})

	deleted, err := s.DeletePart(ctx, added.PartID)
	if err != nil || !deleted {
		t.Fatalf("delete = %v, %v", deleted, err)
	}
	if _, err := s.GetPart(ctx, added.PartID); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("get after delete err = %v, want ErrNotFound", err)
	}
	deleted, err = s.DeletePart(ctx, added.PartID)
	if err != nil || deleted {
		t.Fatalf("second delete = %v, %v, want false", deleted, err)
	}
}

func TestPartsAreScopedToUser(t *testing.T) {
	s := openTestStore(t)
	alice, bob := userCtx(1), userCtx(2)
	part := mustAddPart(t, alice, s, &models.Part{PartNumber: "ATMEGA328P"})
	mustAddPart(t, bob, s, &models.Part{PartNumber: "STM32F103"})

	if part.UserID == nil || *part.UserID != 1 {
		t.Fatalf("owner = %v, want 1", part.UserID)
	}
	if _, err := s.GetPart(bob, part.PartID); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("foreign get err = %v, want ErrNotFound", err)
	}
	if _, err := s.UpdatePart(bob, &models.Part{PartID: part.PartID, PartNumber: "HIJACK"}); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("foreign update err = %v, want ErrNotFound", err)
	}
	if deleted, _ := s.DeletePart(bob, part.PartID); deleted {
		t.Fatal("foreign delete removed the row")
	}

	list, err := s.GetParts(alice, models.PaginatedRequest{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].PartNumber != "ATMEGA328P" {
		t.Fatalf("alice list = %v", list)
	}
	count, err := s.GetPartsCount(context.Background())
	if err != nil || count != 2 {
		t.Fatalf("anonymous count = %d, %v, want 2", count, err)
	}
	count, err = s.GetPartsCount(bob)
	if err != nil || count != 1 {
		t.Fatalf("bob count = %d, %v, want 1", count, err)
	}
}

func TestGetPartsPaginatesAndSorts(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	for _, pn := range []string{"C", "A", "E", "B", "D"} {
		mustAddPart(t, ctx, s, &models.Part{PartNumber: pn})
	}

	page1, err := s.GetParts(ctx, models.PaginatedRequest{Page: 1, Results: 2, OrderBy: "partNumber"})
	if err != nil {
		t.Fatalf("page 1: %v", err)
	}
	page2, err := s.GetParts(ctx, models.PaginatedRequest{Page: 2, Results: 2, OrderBy: "partNumber"})
	if err != nil {
		t.Fatalf("page 2: %v", err)
	}
	got := []string{page1[0].PartNumber, page1[1].PartNumber, page2[0].PartNumber, page2[1].PartNumber}
	if want := []string{"A", "B", "C", "D"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}

	desc, err := s.GetParts(ctx, models.PaginatedRequest{Results: 1, OrderBy: "partNumber", Direction: "Descending"})
	if err != nil {
		t.Fatalf("desc: %v", err)
	}
	if desc[0].PartNumber != "E" {
		t.Fatalf("desc first = %s, want E", desc[0].PartNumber)
	}

	// Unknown sort keys fall back to the primary key.
	byID, err := s.GetParts(ctx, models.PaginatedRequest{OrderBy: "part_number; DROP TABLE parts"})
	if err != nil {
		t.Fatalf("fallback sort: %v", err)
	}
	if len(byID) != 5 || byID[0].PartNumber != "C" {
		t.Fatalf("fallback order first = %v", byID[0].PartNumber)
	}
}

func TestGetPartsByValue(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	mustAddPart(t, ctx, s, &models.Part{PartNumber: "R1", BinNumber: "7"})
	mustAddPart(t, ctx, s, &models.Part{PartNumber: "R2", BinNumber: "8"})

	parts, err := s.GetPartsByValue(ctx, "binNumber", "7", models.PaginatedRequest{})
	if err != nil {
		t.Fatalf("by value: %v", err)
	}
	if len(parts) != 1 || parts[0].PartNumber != "R1" {
		t.Fatalf("parts = %v", parts)
	}
	if _, err := s.GetPartsByValue(ctx, "cost", "1", models.PaginatedRequest{}); !errors.Is(err, storage.ErrInvalidArgument) {
		t.Fatalf("unknown filter err = %v, want ErrInvalidArgument", err)
	}
}

func TestFindPartsRanksResults(t *testing.T) {
	s := openTestStore(t)
	ctx := userCtx(1)
	mustAddPart(t, ctx, s, &models.Part{PartNumber: "XYZ", Description: "contains lm358 clone"})
	mustAddPart(t, ctx, s, &models.Part{PartNumber: "LM358N"})
	mustAddPart(t, ctx, s, &models.Part{PartNumber: "LM358"})
	mustAddPart(t, ctx, s, &models.Part{PartNumber: "UNRELATED"})
	mustAddPart(t, userCtx(2), s, &models.Part{PartNumber: "LM358"})

	results, err := s.FindParts(ctx, "lm358")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("results = %d, want 3", len(results))
	}
	wantRanks := []int{storage.RankExactPartNumber, storage.RankPartNumber, storage.RankOtherField}
	for i, r := range results {
		if r.Rank != wantRanks[i] {
			t.Fatalf("result %d (%s) rank = %d, want %d", i, r.Result.PartNumber, r.Rank, wantRanks[i])
		}
	}

	empty, err := s.FindParts(ctx, "  ")
	if err != nil || len(empty) != 0 {
		t.Fatalf("blank search = %v, %v", empty, err)
	}
}

func TestFindPartsMatchesKeywordsColumn(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	mustAddPart(t, ctx, s, &models.Part{PartNumber: "P1", Keywords: []string{"through-hole", "timer"}})

	results, err := s.FindParts(ctx, "timer")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(results) != 1 || results[0].Rank != storage.RankOtherField {
		t.Fatalf("results = %+v", results)
	}
}

func TestGetLowStockParts(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	mustAddPart(t, ctx, s, &models.Part{PartNumber: "LOW", Quantity: 2, LowStockThreshold: 5})
	mustAddPart(t, ctx, s, &models.Part{PartNumber: "EDGE", Quantity: 5, LowStockThreshold: 5})
	mustAddPart(t, ctx, s, &models.Part{PartNumber: "OK", Quantity: 50, LowStockThreshold: 5})
	mustAddPart(t, ctx, s, &models.Part{PartNumber: "UNTRACKED", Quantity: 0})

	parts, err := s.GetLowStockParts(ctx, models.PaginatedRequest{OrderBy: "partNumber"})
	if err != nil {
		t.Fatalf("low stock: %v", err)
	}
	if len(parts) != 2 || parts[0].PartNumber != "EDGE" || parts[1].PartNumber != "LOW" {
		t.Fatalf("low stock = %v", parts)
	}
}
