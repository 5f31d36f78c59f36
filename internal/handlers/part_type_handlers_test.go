package handlers_test

import (
	"net/http"
	"testing"

	"github.com/01moynul/binner-golang/internal/storage"
	"github.com/01moynul/binner-golang/internal/testutil"
)

func TestPartTypes(t *testing.T) {
	env := testutil.Setup(t, false)
	token := testutil.GenerateTestToken(7, "maker@example.com")

	w := testutil.DoRequest(env.Router, http.MethodGet, "/partType/list", nil, token)
	if list := testutil.ParseList(w); len(list) != len(storage.BuiltInPartTypes) {
		t.Fatalf("expected %d built-in types, got %d", len(storage.BuiltInPartTypes), len(list))
	}

	w = testutil.DoRequest(env.Router, http.MethodPost, "/partType", map[string]interface{}{"name": "Potentiometer"}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("create: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	created := testutil.ParseResponse(w)

	w = testutil.DoRequest(env.Router, http.MethodPost, "/partType", map[string]interface{}{"name": " Potentiometer ", "parentPartTypeId": ""}, token)
	if testutil.ParseResponse(w)["partTypeId"] != created["partTypeId"] {
		t.Error("get-or-create returned a new type for an existing name")
	}

	w = testutil.DoRequest(env.Router, http.MethodGet, "/partType/list", nil, token)
	if list := testutil.ParseList(w); len(list) != len(storage.BuiltInPartTypes)+1 {
		t.Errorf("expected custom type in list, got %d entries", len(list))
	}

	// Another user sees the built-ins but not the custom type.
	other := testutil.GenerateTestToken(8, "other@example.com")
	w = testutil.DoRequest(env.Router, http.MethodGet, "/partType/list", nil, other)
	if list := testutil.ParseList(w); len(list) != len(storage.BuiltInPartTypes) {
		t.Errorf("other user: expected %d types, got %d", len(storage.BuiltInPartTypes), len(list))
	}

	w = testutil.DoRequest(env.Router, http.MethodPost, "/partType", map[string]interface{}{}, token)
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing name: expected 400, got %d", w.Code)
	}
}
