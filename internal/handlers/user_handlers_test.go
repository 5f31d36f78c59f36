package handlers_test

import (
	"net/http"
	"testing"

	"github.com/01moynul/binner-golang/internal/testutil"
)

func TestRegisterAndLogin(t *testing.T) {
	env := testutil.Setup(t, true)

	w := testutil.DoRequest(env.Router, http.MethodPost, "/auth/register", map[string]interface{}{
		"name":     "Ada",
		"email":    "Ada@Example.com",
		"password": "correct-horse",
	}, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	if resp["token"] == "" || resp["token"] == nil {
		t.Fatal("register: expected a token")
	}
	user := resp["user"].(map[string]interface{})
	if user["email"] != "ada@example.com" {
		t.Errorf("expected normalized email, got %v", user["email"])
	}
	if _, leaked := user["passwordHash"]; leaked {
		t.Error("password hash must not be serialized")
	}

	w = testutil.DoRequest(env.Router, http.MethodPost, "/auth/register", map[string]interface{}{
		"email":    "ada@example.com",
		"password": "another-pass",
	}, "")
	if w.Code != http.StatusConflict {
		t.Errorf("duplicate register: expected 409, got %d", w.Code)
	}

	w = testutil.DoRequest(env.Router, http.MethodPost, "/auth/login", map[string]interface{}{
		"email":    "ada@example.com",
		"password": "correct-horse",
	}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d", w.Code)
	}
	token, _ := testutil.ParseResponse(w)["token"].(string)

	// The issued token opens the protected routes.
	w = testutil.DoRequest(env.Router, http.MethodGet, "/part/count", nil, token)
	if w.Code != http.StatusOK {
		t.Errorf("protected route with token: expected 200, got %d", w.Code)
	}
}

func TestLogin_Rejected(t *testing.T) {
	env := testutil.Setup(t, false)
	testutil.DoRequest(env.Router, http.MethodPost, "/auth/register", map[string]interface{}{
		"email":    "grace@example.com",
		"password": "hopper-1906",
	}, "")

	cases := []struct {
		name     string
		body     map[string]interface{}
		expected int
	}{
		{"wrong password", map[string]interface{}{"email": "grace@example.com", "password": "nope-nope"}, http.StatusUnauthorized},
		{"unknown email", map[string]interface{}{"email": "nobody@example.com", "password": "hopper-1906"}, http.StatusUnauthorized},
		{"invalid email", map[string]interface{}{"email": "grace", "password": "hopper-1906"}, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := testutil.DoRequest(env.Router, http.MethodPost, "/auth/login", tc.body, "")
			if w.Code != tc.expected {
				t.Errorf("expected %d, got %d", tc.expected, w.Code)
			}
		})
	}
}

func TestRegister_ShortPassword(t *testing.T) {
	env := testutil.Setup(t, false)
	w := testutil.DoRequest(env.Router, http.MethodPost, "/auth/register", map[string]interface{}{
		"email":    "short@example.com",
		"password": "123",
	}, "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}
