package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRegisterSuccess(t *testing.T) {
	db := freshDB()
	router := setupAuthRouter(db)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("POST", "/api/auth/register", map[string]interface{}{
		"email":    "new@test.com",
		"password": "password123",
		"name":     "New User",
	}))

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	resp := parseResponse(w)
	if resp["token"] == nil || resp["token"] == "" {
		t.Error("expected a token in the response")
	}
	user := resp["user"].(map[string]interface{})
	if user["email"] != "new@test.com" {
		t.Errorf("unexpected email: %v", user["email"])
	}
	if user["role"] != "customer" {
		t.Errorf("expected role customer, got %v", user["role"])
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := freshDB()
	router := setupAuthRouter(db)
	seedTestUser(db, "taken@test.com", "customer")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("POST", "/api/auth/register", map[string]interface{}{
		"email":    "taken@test.com",
		"password": "password123",
	}))

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRegisterValidation(t *testing.T) {
	db := freshDB()
	router := setupAuthRouter(db)

	cases := []struct {
		name string
		body map[string]interface{}
	}{
		{"missing email", map[string]interface{}{"password": "password123"}},
		{"invalid email", map[string]interface{}{"email": "not-an-email", "password": "password123"}},
		{"short password", map[string]interface{}{"email": "a@test.com", "password": "short"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, jsonRequest("POST", "/api/auth/register", tc.body))
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", w.Code)
			}
		})
	}
}

func TestLoginSuccess(t *testing.T) {
	db := freshDB()
	router := setupAuthRouter(db)
	seedTestUser(db, "login@test.com", "customer")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("POST", "/api/auth/login", map[string]interface{}{
		"email":    "login@test.com",
		"password": "password123",
	}))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := parseResponse(w)
	if resp["token"] == nil || resp["token"] == "" {
		t.Error("expected a token in the response")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	db := freshDB()
	router := setupAuthRouter(db)
	seedTestUser(db, "login2@test.com", "customer")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("POST", "/api/auth/login", map[string]interface{}{
		"email":    "login2@test.com",
		"password": "wrongpassword",
	}))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	db := freshDB()
	router := setupAuthRouter(db)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("POST", "/api/auth/login", map[string]interface{}{
		"email":    "nobody@test.com",
		"password": "password123",
	}))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestGetProfile(t *testing.T) {
	db := freshDB()
	router := setupAuthRouter(db)
	user, token := seedTestUser(db, "profile@test.com", "customer")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("GET", "/api/auth/profile", nil, token))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := parseResponse(w)
	if resp["id"] != user.ID.String() {
		t.Errorf("expected id %s, got %v", user.ID, resp["id"])
	}
	if resp["email"] != "profile@test.com" {
		t.Errorf("unexpected email: %v", resp["email"])
	}
}

func TestGetProfileRequiresAuth(t *testing.T) {
	db := freshDB()
	router := setupAuthRouter(db)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("GET", "/api/auth/profile", nil))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestChangePassword(t *testing.T) {
	db := freshDB()
	router := setupAuthRouter(db)
	_, token := seedTestUser(db, "pw@test.com", "customer")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("PUT", "/api/auth/password", map[string]interface{}{
		"old_password": "password123",
		"new_password": "newpassword456",
	}, token))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// Old password no longer works, new one does.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("POST", "/api/auth/login", map[string]interface{}{
		"email":    "pw@test.com",
		"password": "password123",
	}))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected old password rejected, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("POST", "/api/auth/login", map[string]interface{}{
		"email":    "pw@test.com",
		"password": "newpassword456",
	}))
	if w.Code != http.StatusOK {
		t.Errorf("expected new password accepted, got %d", w.Code)
	}
}

func TestChangePasswordWrongOld(t *testing.T) {
	db := freshDB()
	router := setupAuthRouter(db)
	_, token := seedTestUser(db, "pw2@test.com", "customer")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("PUT", "/api/auth/password", map[string]interface{}{
		"old_password": "notmypassword",
		"new_password": "newpassword456",
	}, token))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
