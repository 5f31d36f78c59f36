package handlers_test

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/01moynul/binner-golang/internal/export"
	"github.com/01moynul/binner-golang/internal/testutil"
	"github.com/xuri/excelize/v2"
)

// workbookOf builds an .xlsx upload from rows.
func workbookOf(t *testing.T, rows ...[]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("write row %d: %v", i+1, err)
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

func TestExportThenImport(t *testing.T) {
	env := testutil.Setup(t, false)
	createPart(t, env, map[string]interface{}{"partNumber": "LM317", "quantity": 5, "location": "A"}, "")
	createPart(t, env, map[string]interface{}{"partNumber": "TL072", "quantity": 8, "location": "B"}, "")

	w := testutil.DoRequest(env.Router, http.MethodGet, "/part/export", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("export: expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != export.ContentType {
		t.Errorf("unexpected content type %q", ct)
	}
	workbook := w.Body.Bytes()

	parts, err := export.ReadParts(bytes.NewReader(workbook))
	if err != nil {
		t.Fatalf("exported workbook does not parse: %v", err)
	}
	if len(parts) != 2 {
		t.Fatalf("expected 2 exported rows, got %d", len(parts))
	}

	// Importing the same rows for another user adds them; importing again updates.
	token := testutil.GenerateTestToken(11, "importer@example.com")
	w = testutil.DoUpload(env.Router, "/part/import", "parts.xlsx", workbook, token)
	if w.Code != http.StatusOK {
		t.Fatalf("import: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	if resp["added"].(float64) != 2 || resp["updated"].(float64) != 0 {
		t.Errorf("first import: %v", resp)
	}

	w = testutil.DoUpload(env.Router, "/part/import", "parts.xlsx", workbook, token)
	resp = testutil.ParseResponse(w)
	if resp["added"].(float64) != 0 || resp["updated"].(float64) != 2 {
		t.Errorf("second import: %v", resp)
	}
}

func TestImportRejectsBadUploads(t *testing.T) {
	env := testutil.Setup(t, false)

	w := testutil.DoRequest(env.Router, http.MethodPost, "/part/import", nil, "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("no file: expected 400, got %d", w.Code)
	}
	w = testutil.DoUpload(env.Router, "/part/import", "parts.csv", []byte("a,b"), "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("wrong extension: expected 400, got %d", w.Code)
	}
	w = testutil.DoUpload(env.Router, "/part/import", "parts.xlsx", []byte("not a zip"), "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("corrupt workbook: expected 400, got %d", w.Code)
	}
}

func TestImportPartialSheetKeepsOtherFields(t *testing.T) {
	env := testutil.Setup(t, false)
	createPart(t, env, map[string]interface{}{
		"partNumber": "LM358", "quantity": 1, "description": "Dual op amp", "location": "Drawer 4", "binNumber": "12",
	}, "")

	upload := workbookOf(t,
		[]interface{}{"Part Number", "Quantity"},
		[]interface{}{"LM358", 40},
	)
	w := testutil.DoUpload(env.Router, "/part/import", "parts.xlsx", upload, "")
	if w.Code != http.StatusOK {
		t.Fatalf("import: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(env.Router, http.MethodGet, "/part?partNumber=LM358", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", w.Code)
	}
	part := testutil.ParseResponse(w)
	if part["quantity"].(float64) != 40 {
		t.Errorf("quantity = %v, want 40", part["quantity"])
	}
	if part["description"] != "Dual op amp" || part["location"] != "Drawer 4" || part["binNumber"] != "12" {
		t.Errorf("fields missing from the sheet were changed: %v", part)
	}
}

func TestImportWithUnknownProjectWritesNothing(t *testing.T) {
	env := testutil.Setup(t, false)

	upload := workbookOf(t,
		[]interface{}{"Part Number", "Quantity", "Project Id"},
		[]interface{}{"R1", 1},
		[]interface{}{"R2", 2, 999},
	)
	w := testutil.DoUpload(env.Router, "/part/import", "parts.xlsx", upload, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("import: expected 400, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(env.Router, http.MethodGet, "/part/count", nil, "")
	if resp := testutil.ParseResponse(w); resp["count"].(float64) != 0 {
		t.Errorf("count = %v, want 0 after rejected import", resp["count"])
	}
}
