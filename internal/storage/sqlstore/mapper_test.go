package sqlstore

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/01moynul/binner-golang/internal/models"
)

func TestScanAllConvertsColumns(t *testing.T) {
	s := openTestStore(t)
	rows, err := s.db.QueryContext(context.Background(), `SELECT
    1 AS part_id,
    '3' AS quantity,
    'a, b,,c' AS keywords,
    NULL AS project_id,
    5 AS part_type_id,
    2.5 AS cost,
    '2024-01-02 03:04:05' AS date_created_utc,
    'ignored' AS not_a_field`)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	defer rows.Close()

	parts, err := scanAll[models.Part](rows)
	if err != nil {
		t.Fatalf("scanAll: %v", err)
	}
	if len(parts) != 1 {
		t.Fatalf("rows = %d, want 1", len(parts))
	}
	p := parts[0]
	if p.PartID != 1 || p.Quantity != 3 || p.Cost != 2.5 {
		t.Fatalf("numbers = %d/%d/%v", p.PartID, p.Quantity, p.Cost)
	}
	if want := []string{"a", "b", "c"}; !reflect.DeepEqual(p.Keywords, want) {
		t.Fatalf("keywords = %v, want %v", p.Keywords, want)
	}
	if p.ProjectID != nil {
		t.Fatalf("project_id = %v, want nil", *p.ProjectID)
	}
	if p.PartTypeID == nil || *p.PartTypeID != 5 {
		t.Fatalf("part_type_id = %v, want 5", p.PartTypeID)
	}
	if want := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC); !p.DateCreatedUtc.Equal(want) {
		t.Fatalf("date = %v, want %v", p.DateCreatedUtc, want)
	}
}

func TestAssignConversions(t *testing.T) {
	var n int64
	if err := assign(reflect.ValueOf(&n).Elem(), []byte("42")); err != nil || n != 42 {
		t.Fatalf("bytes to int = %d, %v", n, err)
	}
	var f float64
	if err := assign(reflect.ValueOf(&f).Elem(), []byte("1.25")); err != nil || f != 1.25 {
		t.Fatalf("bytes to float = %v, %v", f, err)
	}
	var s string
	if err := assign(reflect.ValueOf(&s).Elem(), []byte("text")); err != nil || s != "text" {
		t.Fatalf("bytes to string = %q, %v", s, err)
	}
	var tm time.Time
	if err := assign(reflect.ValueOf(&tm).Elem(), "2024-03-04T05:06:07Z"); err != nil || tm.Hour() != 5 {
		t.Fatalf("string to time = %v, %v", tm, err)
	}
	if err := assign(reflect.ValueOf(&n).Elem(), "abc"); err == nil {
		t.Fatal("expected error parsing abc as integer")
	}
}
