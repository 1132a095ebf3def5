package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/samidhothar/SafeProvinceMonitor/internal/config"
	"github.com/samidhothar/SafeProvinceMonitor/internal/middleware"
	"github.com/samidhothar/SafeProvinceMonitor/internal/portal/entity"
	"github.com/samidhothar/SafeProvinceMonitor/internal/portal/repository"
	"github.com/samidhothar/SafeProvinceMonitor/internal/portal/service"
	"github.com/samidhothar/SafeProvinceMonitor/internal/portal/testutil"
	"github.com/shopspring/decimal"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = testutil.JWTSecret
	cfg.JWT.AccessTokenExpire = 2 * time.Hour
	cfg.JWT.RefreshTokenExpire = 168 * time.Hour
	cfg.JWT.Issuer = "reform-portal"
	cfg.Feedback.RateLimitPerHour = 5
	return cfg
}

func setupPortalTest(t *testing.T) *testutil.TestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)
	router := testutil.SetupRouter()

	cfg := testConfig()
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:6379"})
	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, rdb, cfg)
	h := NewHandlers(services, cfg)

	v1 := router.Group("/api/v1")
	v1.POST("/auth/register", h.Auth.Register)
	v1.POST("/auth/login", h.Auth.Login)
	v1.POST("/auth/refresh", h.Auth.Refresh)
	v1.GET("/dashboard/stats", h.Dashboard.Stats)
	v1.GET("/dashboard/finance-summary", h.Dashboard.FinanceSummary)
	v1.GET("/dashboard/map", h.Dashboard.Map)
	v1.GET("/sectors", h.Catalog.Sectors)
	v1.GET("/districts", h.Catalog.Districts)
	v1.GET("/contractors", h.Catalog.Contractors)
	v1.GET("/projects", h.Project.List)
	v1.GET("/projects/export/csv", h.Project.ExportCSV)
	v1.GET("/projects/:id", h.Project.Get)
	v1.GET("/projects/:id/kpi-history", h.Project.KPIHistory)
	v1.GET("/projects/:id/feedback", h.Feedback.ListByProject)
	v1.POST("/feedback", h.Feedback.Submit)

	authorized := v1.Group("")
	authorized.Use(middleware.JWTAuth(cfg.JWT.Secret))
	authorized.GET("/auth/me", h.Auth.Me)
	authorized.POST("/auth/logout", h.Auth.Logout)
	editors := authorized.Group("")
	editors.Use(middleware.RequireEditProjects())
	{
		editors.POST("/projects", h.Project.Create)
		editors.PUT("/projects/:id", h.Project.Update)
		editors.DELETE("/projects/:id", h.Project.Delete)
		editors.POST("/projects/:id/kpi", h.Project.RecordKPI)
		editors.POST("/projects/:id/recompute", h.Project.Recompute)
		editors.POST("/projects/recompute", h.Project.RecomputeAll)
	}
	moderators := authorized.Group("")
	moderators.Use(middleware.RequireVerifyFeedback())
	{
		moderators.POST("/feedback/:id/verify", h.Feedback.Verify)
	}

	return &testutil.TestEnv{DB: db, Router: router, T: t}
}

func TestProjectCreateAndGet(t *testing.T) {
	env := setupPortalTest(t)
	testutil.SeedCatalog(t, env.DB)
	token := testutil.AdminTestToken()

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/projects", map[string]interface{}{
		"name":             "Model School Upgrade",
		"sector_id":        "sector-001",
		"district_id":      "district-001",
		"contractor_id":    "contractor-001",
		"start_date":       "2026-01-01",
		"planned_end":      "2026-12-31",
		"budget_allocated": "5000000",
		"kpi_target":       "120",
		"kpi_unit":         "Facilities",
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	projectID := data["id"].(string)
	if data["status"] != entity.ProjectStatusOnTrack {
		t.Errorf("Expected new project ON_TRACK, got %v", data["status"])
	}

	// Contractor total_projects counter incremented
	var contractor entity.Contractor
	env.DB.First(&contractor, "id = ?", "contractor-001")
	if contractor.TotalProjects != 1 {
		t.Errorf("Expected contractor total_projects 1, got %d", contractor.TotalProjects)
	}

	// Detail carries derived metrics
	w2 := testutil.DoRequest(env.Router, "GET", "/api/v1/projects/"+projectID+"?as_of=2026-07-02", nil, "")
	if w2.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w2.Code, w2.Body.String())
	}
	resp2 := testutil.ParseResponse(w2)
	detail := resp2["data"].(map[string]interface{})
	metrics := detail["metrics"].(map[string]interface{})
	if metrics["budget_utilization_percent"] != "0" {
		t.Errorf("Expected zero budget utilization, got %v", metrics["budget_utilization_percent"])
	}
	if metrics["is_delayed"] != false {
		t.Errorf("Expected not delayed, got %v", metrics["is_delayed"])
	}
}

func TestProjectCreateRequiresEditCapability(t *testing.T) {
	env := setupPortalTest(t)
	testutil.SeedCatalog(t, env.DB)

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/projects", map[string]interface{}{
		"name":             "Unauthorized Project",
		"sector_id":        "sector-001",
		"district_id":      "district-001",
		"start_date":       "2026-01-01",
		"planned_end":      "2026-12-31",
		"budget_allocated": "1000",
		"kpi_target":       "10",
	}, testutil.PublicTestToken())
	if w.Code != http.StatusForbidden {
		t.Fatalf("Expected 403 for PUBLIC role, got %d: %s", w.Code, w.Body.String())
	}

	w2 := testutil.DoRequest(env.Router, "POST", "/api/v1/projects", nil, "")
	if w2.Code != http.StatusUnauthorized {
		t.Fatalf("Expected 401 without token, got %d: %s", w2.Code, w2.Body.String())
	}
}

func TestProjectRecomputeDelayed(t *testing.T) {
	env := setupPortalTest(t)
	testutil.SeedCatalog(t, env.DB)
	token := testutil.AdminTestToken()

	// 200-day project, 100 days elapsed, stored progress far behind schedule
	testutil.SeedProject(t, env.DB, "proj-recompute-001", func(p *entity.Project) {
		p.ProgressPercent = decimal.NewFromInt(20)
	})

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/projects/proj-recompute-001/recompute", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if data["status"] != entity.ProjectStatusDelayed {
		t.Errorf("Expected DELAYED for 30-point gap, got %v", data["status"])
	}
}

func TestProjectRecomputeCompleteSetsActualEnd(t *testing.T) {
	env := setupPortalTest(t)
	testutil.SeedCatalog(t, env.DB)
	token := testutil.AdminTestToken()

	testutil.SeedProject(t, env.DB, "proj-complete-001", func(p *entity.Project) {
		p.ProgressPercent = decimal.NewFromInt(100)
	})

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/projects/proj-complete-001/recompute", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if data["status"] != entity.ProjectStatusComplete {
		t.Errorf("Expected COMPLETE at 100%% progress, got %v", data["status"])
	}
	if data["actual_end"] == nil {
		t.Error("Expected actual_end to be set on completion")
	}

	var contractor entity.Contractor
	env.DB.First(&contractor, "id = ?", "contractor-001")
	if contractor.CompletedProjects != 1 {
		t.Errorf("Expected contractor completed_projects 1, got %d", contractor.CompletedProjects)
	}
}

func TestRecordKPIUpsertsHistory(t *testing.T) {
	env := setupPortalTest(t)
	testutil.SeedCatalog(t, env.DB)
	token := testutil.AdminTestToken()
	testutil.SeedProject(t, env.DB, "proj-kpi-001", nil)

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/projects/proj-kpi-001/kpi", map[string]interface{}{
		"kpi_achieved": "70",
		"date":         "2026-05-01",
		"notes":        "field survey",
	}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// Same project, same date: second write overwrites instead of duplicating
	w2 := testutil.DoRequest(env.Router, "POST", "/api/v1/projects/proj-kpi-001/kpi", map[string]interface{}{
		"kpi_achieved": "75",
		"date":         "2026-05-01",
	}, token)
	if w2.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w2.Code, w2.Body.String())
	}

	w3 := testutil.DoRequest(env.Router, "GET", "/api/v1/projects/proj-kpi-001/kpi-history", nil, "")
	resp := testutil.ParseResponse(w3)
	items := resp["data"].(map[string]interface{})["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("Expected 1 history row after upsert, got %d", len(items))
	}
	row := items[0].(map[string]interface{})
	if row["kpi_achieved"] != "75" {
		t.Errorf("Expected overwritten kpi_achieved 75, got %v", row["kpi_achieved"])
	}

	var project entity.Project
	env.DB.First(&project, "id = ?", "proj-kpi-001")
	if !project.KPIAchieved.Equal(decimal.NewFromInt(75)) {
		t.Errorf("Expected project kpi_achieved 75, got %s", project.KPIAchieved)
	}
}

func TestProjectListFilters(t *testing.T) {
	env := setupPortalTest(t)
	testutil.SeedCatalog(t, env.DB)
	env.DB.Create(&entity.Sector{ID: "sector-002", Name: "Healthcare"})

	testutil.SeedProject(t, env.DB, "proj-filter-001", nil)
	testutil.SeedProject(t, env.DB, "proj-filter-002", func(p *entity.Project) {
		p.SectorID = "sector-002"
		p.Status = entity.ProjectStatusDelayed
	})

	w := testutil.DoRequest(env.Router, "GET", "/api/v1/projects?sector_id=sector-002", nil, "")
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	items := data["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("Expected 1 filtered project, got %d", len(items))
	}

	w2 := testutil.DoRequest(env.Router, "GET", "/api/v1/projects?status=DELAYED", nil, "")
	resp2 := testutil.ParseResponse(w2)
	items2 := resp2["data"].(map[string]interface{})["items"].([]interface{})
	if len(items2) != 1 {
		t.Fatalf("Expected 1 DELAYED project, got %d", len(items2))
	}
}

func TestProjectExportCSV(t *testing.T) {
	env := setupPortalTest(t)
	testutil.SeedCatalog(t, env.DB)
	testutil.SeedProject(t, env.DB, "proj-export-001", nil)

	w := testutil.DoRequest(env.Router, "GET", "/api/v1/projects/export/csv", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("Expected text/csv, got %s", ct)
	}
	if w.Header().Get("Content-Disposition") == "" {
		t.Error("Expected Content-Disposition header")
	}
	body := w.Body.String()
	if len(body) == 0 {
		t.Fatal("Expected non-empty CSV body")
	}
}
