package handler

import (
	"net/http"
	"testing"

	"github.com/samidhothar/SafeProvinceMonitor/internal/portal/entity"
	"github.com/samidhothar/SafeProvinceMonitor/internal/portal/testutil"
)

func TestFeedbackSubmitAndList(t *testing.T) {
	env := setupPortalTest(t)
	testutil.SeedCatalog(t, env.DB)
	testutil.SeedProject(t, env.DB, "proj-fb-001", nil)

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/feedback", map[string]interface{}{
		"project_id":   "proj-fb-001",
		"citizen_name": "Ahmad Ali",
		"rating":       4,
		"comment":      "Great progress on this project!",
	}, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w2 := testutil.DoRequest(env.Router, "GET", "/api/v1/projects/proj-fb-001/feedback", nil, "")
	if w2.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w2.Code, w2.Body.String())
	}
	resp := testutil.ParseResponse(w2)
	items := resp["data"].(map[string]interface{})["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("Expected 1 public feedback, got %d", len(items))
	}
	row := items[0].(map[string]interface{})
	if row["is_verified"] != false {
		t.Errorf("Expected new feedback unverified, got %v", row["is_verified"])
	}
	if _, leaked := row["ip_address"]; leaked {
		t.Error("IP address must not be serialized")
	}
}

func TestFeedbackRatingBounds(t *testing.T) {
	env := setupPortalTest(t)
	testutil.SeedCatalog(t, env.DB)
	testutil.SeedProject(t, env.DB, "proj-fb-002", nil)

	for _, rating := range []int{0, 6, -1} {
		w := testutil.DoRequest(env.Router, "POST", "/api/v1/feedback", map[string]interface{}{
			"project_id":   "proj-fb-002",
			"citizen_name": "Fatima Khan",
			"rating":       rating,
			"comment":      "out of range",
		}, "")
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400 for rating %d, got %d", rating, w.Code)
		}
	}
}

func TestFeedbackSubmitUnknownProject(t *testing.T) {
	env := setupPortalTest(t)
	testutil.SeedCatalog(t, env.DB)

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/feedback", map[string]interface{}{
		"project_id":   "no-such-project",
		"citizen_name": "Ali Raza",
		"rating":       3,
		"comment":      "where is it",
	}, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestFeedbackVerifyRequiresCapability(t *testing.T) {
	env := setupPortalTest(t)
	testutil.SeedCatalog(t, env.DB)
	testutil.SeedProject(t, env.DB, "proj-fb-003", nil)

	fb := &entity.Feedback{
		ID:          "fb-verify-001",
		ProjectID:   "proj-fb-003",
		CitizenName: "Zainab Ahmed",
		Rating:      2,
		Comment:     "Could be better managed.",
		IsPublic:    true,
	}
	env.DB.Create(fb)

	// PUBLIC role cannot verify
	w := testutil.DoRequest(env.Router, "POST", "/api/v1/feedback/fb-verify-001/verify",
		map[string]interface{}{"is_public": false}, testutil.PublicTestToken())
	if w.Code != http.StatusForbidden {
		t.Fatalf("Expected 403 for PUBLIC role, got %d: %s", w.Code, w.Body.String())
	}

	// ADMIN verifies and hides it
	w2 := testutil.DoRequest(env.Router, "POST", "/api/v1/feedback/fb-verify-001/verify",
		map[string]interface{}{"is_public": false}, testutil.AdminTestToken())
	if w2.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w2.Code, w2.Body.String())
	}
	resp := testutil.ParseResponse(w2)
	data := resp["data"].(map[string]interface{})
	if data["is_verified"] != true || data["is_public"] != false {
		t.Errorf("Expected verified hidden feedback, got %v", data)
	}

	// Hidden feedback disappears from the public listing
	w3 := testutil.DoRequest(env.Router, "GET", "/api/v1/projects/proj-fb-003/feedback", nil, "")
	resp3 := testutil.ParseResponse(w3)
	items := resp3["data"].(map[string]interface{})["items"].([]interface{})
	if len(items) != 0 {
		t.Errorf("Expected hidden feedback excluded from public list, got %d items", len(items))
	}
}
