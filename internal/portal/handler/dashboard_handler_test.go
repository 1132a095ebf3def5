package handler

import (
	"net/http"
	"testing"

	"github.com/samidhothar/SafeProvinceMonitor/internal/portal/entity"
	"github.com/samidhothar/SafeProvinceMonitor/internal/portal/testutil"
	"github.com/shopspring/decimal"
)

func TestDashboardStats(t *testing.T) {
	env := setupPortalTest(t)
	testutil.SeedCatalog(t, env.DB)

	testutil.SeedProject(t, env.DB, "proj-stats-001", func(p *entity.Project) {
		p.Status = entity.ProjectStatusComplete
		p.ProgressPercent = decimal.NewFromInt(100)
	})
	testutil.SeedProject(t, env.DB, "proj-stats-002", func(p *entity.Project) {
		p.Status = entity.ProjectStatusDelayed
		p.ProgressPercent = decimal.NewFromInt(30)
	})

	w := testutil.DoRequest(env.Router, "GET", "/api/v1/dashboard/stats", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})

	if data["total_projects"] != float64(2) {
		t.Errorf("Expected 2 total projects, got %v", data["total_projects"])
	}
	if data["completed_projects"] != float64(1) {
		t.Errorf("Expected 1 completed project, got %v", data["completed_projects"])
	}
	if data["completion_percentage"] != "50" {
		t.Errorf("Expected completion percentage 50, got %v", data["completion_percentage"])
	}
	if data["average_progress"] != "65" {
		t.Errorf("Expected average progress 65, got %v", data["average_progress"])
	}
}

func TestDashboardFinanceSummaryKeepsEmptyGroups(t *testing.T) {
	env := setupPortalTest(t)
	testutil.SeedCatalog(t, env.DB)
	env.DB.Create(&entity.Sector{ID: "sector-empty", Name: "Agriculture"})

	testutil.SeedProject(t, env.DB, "proj-fin-001", func(p *entity.Project) {
		p.BudgetAllocated = decimal.NewFromInt(1000000)
		p.BudgetSpent = decimal.NewFromInt(300000)
	})

	w := testutil.DoRequest(env.Router, "GET", "/api/v1/dashboard/finance-summary", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	bySector := data["by_sector"].([]interface{})
	if len(bySector) != 2 {
		t.Fatalf("Expected 2 sector rows including the empty one, got %d", len(bySector))
	}

	var agRow, edRow map[string]interface{}
	for _, raw := range bySector {
		row := raw.(map[string]interface{})
		switch row["name"] {
		case "Agriculture":
			agRow = row
		case "Education":
			edRow = row
		}
	}
	if agRow == nil || edRow == nil {
		t.Fatal("Expected both Agriculture and Education rows")
	}
	if agRow["project_count"] != float64(0) || agRow["utilization_percentage"] != "0" {
		t.Errorf("Expected zero row for empty sector, got %v", agRow)
	}
	if edRow["utilization_percentage"] != "30" {
		t.Errorf("Expected 30 utilization for Education, got %v", edRow["utilization_percentage"])
	}
}

func TestDashboardMapOnlyLocatedProjects(t *testing.T) {
	env := setupPortalTest(t)
	testutil.SeedCatalog(t, env.DB)

	lat := decimal.RequireFromString("31.5804")
	lng := decimal.RequireFromString("74.3587")
	testutil.SeedProject(t, env.DB, "proj-map-001", func(p *entity.Project) {
		p.Latitude = &lat
		p.Longitude = &lng
	})
	testutil.SeedProject(t, env.DB, "proj-map-002", nil) // no coordinates

	w := testutil.DoRequest(env.Router, "GET", "/api/v1/dashboard/map", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	items := resp["data"].(map[string]interface{})["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("Expected 1 map point, got %d", len(items))
	}
	point := items[0].(map[string]interface{})
	if point["id"] != "proj-map-001" {
		t.Errorf("Expected located project on map, got %v", point["id"])
	}
	if point["district"] != "Lahore" {
		t.Errorf("Expected district name on map point, got %v", point["district"])
	}
}
