package handler

import (
	"net/http"
	"testing"

	"github.com/samidhothar/SafeProvinceMonitor/internal/portal/testutil"
)

func TestAuthRegisterAndLogin(t *testing.T) {
	env := setupPortalTest(t)

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/auth/register", map[string]interface{}{
		"username": "citizen01",
		"name":     "Hassan Mahmood",
		"email":    "hassan@example.com",
		"password": "s3cret-pass",
	}, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	user := resp["data"].(map[string]interface{})["user"].(map[string]interface{})
	if user["role"] != "PUBLIC" {
		t.Errorf("Expected PUBLIC role for self-registered user, got %v", user["role"])
	}
	if _, leaked := user["password_hash"]; leaked {
		t.Error("Password hash must not be serialized")
	}

	// 重复用户名
	w2 := testutil.DoRequest(env.Router, "POST", "/api/v1/auth/register", map[string]interface{}{
		"username": "citizen01",
		"name":     "Someone Else",
		"email":    "else@example.com",
		"password": "s3cret-pass",
	}, "")
	if w2.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for duplicate username, got %d", w2.Code)
	}

	w3 := testutil.DoRequest(env.Router, "POST", "/api/v1/auth/login", map[string]interface{}{
		"username": "citizen01",
		"password": "s3cret-pass",
	}, "")
	if w3.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w3.Code, w3.Body.String())
	}
	resp3 := testutil.ParseResponse(w3)
	tokens := resp3["data"].(map[string]interface{})["tokens"].(map[string]interface{})
	if tokens["access_token"] == "" || tokens["refresh_token"] == "" {
		t.Error("Expected non-empty token pair")
	}
	if tokens["expires_in"].(float64) <= 0 {
		t.Errorf("Expected positive expires_in, got %v", tokens["expires_in"])
	}
}

func TestAuthLoginWrongPassword(t *testing.T) {
	env := setupPortalTest(t)
	testutil.SeedTestUser(t, env.DB, "user-auth-001", "officer01", "DISTRICT_OFFICER")

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/auth/login", map[string]interface{}{
		"username": "officer01",
		"password": "wrong-password",
	}, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("Expected 401, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAuthMeReturnsCapabilities(t *testing.T) {
	env := setupPortalTest(t)
	testutil.SeedTestUser(t, env.DB, "test-admin-001", "admin", "ADMIN")

	w := testutil.DoRequest(env.Router, "GET", "/api/v1/auth/me", nil, testutil.AdminTestToken())
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	caps := data["capabilities"].(map[string]interface{})
	if caps["can_edit_projects"] != true || caps["can_verify_feedback"] != true {
		t.Errorf("Expected admin capabilities, got %v", caps)
	}

	w2 := testutil.DoRequest(env.Router, "GET", "/api/v1/auth/me", nil, "")
	if w2.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 without token, got %d", w2.Code)
	}
}
