// 命令行工具：向门户数据库灌入演示数据（板块、行政区、承建商、
// 项目、采购、KPI历史、公众反馈）。重复执行是幂等的。
package main

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/samidhothar/SafeProvinceMonitor/internal/config"
	"github.com/samidhothar/SafeProvinceMonitor/internal/portal/entity"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.User,
		cfg.Database.Password, cfg.Database.DBName, cfg.Database.SSLMode,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&entity.User{},
		&entity.Sector{},
		&entity.District{},
		&entity.Contractor{},
		&entity.Project{},
		&entity.Procurement{},
		&entity.KPIHistory{},
		&entity.Feedback{},
	); err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	log.Println("Loading demo data...")

	admin := seedAdmin(db)
	sectors := seedSectors(db)
	districts := seedDistricts(db)
	contractors := seedContractors(db)
	projects := seedProjects(db, sectors, districts, contractors, admin)
	seedProcurements(db, projects, contractors)
	seedKPIHistory(db, projects, admin)
	seedFeedback(db, projects)

	log.Println("Demo data loaded successfully")
}

func newID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:32]
}

func seedAdmin(db *gorm.DB) *entity.User {
	var admin entity.User
	if err := db.Where("username = ?", "admin").First(&admin).Error; err == nil {
		return &admin
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}
	admin = entity.User{
		ID:           newID(),
		Username:     "admin",
		Name:         "System Administrator",
		Email:        "admin@reformportal.gov.pk",
		PasswordHash: string(hash),
		Role:         entity.RoleAdmin,
		Department:   "IT Department",
		IsVerified:   true,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatalf("Failed to create admin user: %v", err)
	}
	log.Println("Created admin user: admin/admin123")
	return &admin
}

func seedSectors(db *gorm.DB) []entity.Sector {
	seeds := []entity.Sector{
		{Name: "Education", Icon: "🎓", Color: "#0d6efd", Description: "Educational infrastructure and programs"},
		{Name: "Healthcare", Icon: "🏥", Color: "#198754", Description: "Medical facilities and health services"},
		{Name: "Transportation", Icon: "🚗", Color: "#ffc107", Description: "Roads, bridges, and transport infrastructure"},
		{Name: "Water & Sanitation", Icon: "💧", Color: "#0dcaf0", Description: "Water supply and sanitation systems"},
		{Name: "Energy", Icon: "⚡", Color: "#fd7e14", Description: "Power generation and distribution"},
		{Name: "Agriculture", Icon: "🌾", Color: "#6f42c1", Description: "Agricultural development and support"},
	}

	for i := range seeds {
		seeds[i].ID = newID()
		db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(&seeds[i])
	}

	var sectors []entity.Sector
	db.Order("name ASC").Find(&sectors)
	return sectors
}

func seedDistricts(db *gorm.DB) []entity.District {
	type districtSeed struct {
		Name       string
		Lat, Lng   string
		Population int64
	}
	seeds := []districtSeed{
		{"Lahore", "31.5804", "74.3587", 11126285},
		{"Karachi", "24.8607", "67.0011", 14910352},
		{"Islamabad", "33.6844", "73.0479", 1014825},
		{"Rawalpindi", "33.5651", "73.0169", 2098231},
		{"Faisalabad", "31.4504", "73.1350", 3204726},
		{"Multan", "30.1575", "71.5249", 1871843},
		{"Peshawar", "34.0151", "71.5249", 1970042},
		{"Quetta", "30.1798", "66.9750", 1001205},
		{"Sialkot", "32.4945", "74.5229", 655852},
		{"Gujranwala", "32.1877", "74.1945", 2027001},
	}

	for _, s := range seeds {
		lat := decimal.RequireFromString(s.Lat)
		lng := decimal.RequireFromString(s.Lng)
		pop := s.Population
		district := entity.District{
			ID:         newID(),
			Name:       s.Name,
			Latitude:   &lat,
			Longitude:  &lng,
			Population: &pop,
		}
		db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(&district)
	}

	var districts []entity.District
	db.Order("name ASC").Find(&districts)
	return districts
}

func seedContractors(db *gorm.DB) []entity.Contractor {
	type contractorSeed struct {
		Name, RegNo, Rating string
	}
	seeds := []contractorSeed{
		{"Punjab Construction Co.", "PCC-001", "4.5"},
		{"Sindh Infrastructure Ltd.", "SIL-002", "4.2"},
		{"KPK Development Corp.", "KDC-003", "4.0"},
		{"Balochistan Builders", "BB-004", "3.8"},
		{"National Construction", "NC-005", "4.7"},
		{"Federal Works Agency", "FWA-006", "4.3"},
		{"Premier Engineering", "PE-007", "4.1"},
		{"Elite Infrastructure", "EI-008", "4.4"},
	}
	cities := []string{"Lahore", "Karachi", "Islamabad"}

	for _, s := range seeds {
		contractor := entity.Contractor{
			ID:                 newID(),
			Name:               s.Name,
			RegistrationNumber: s.RegNo,
			ContactPerson:      "Director " + strings.Fields(s.Name)[0],
			Phone:              fmt.Sprintf("+92-%d-%d", 300+rand.Intn(100), 1000000+rand.Intn(9000000)),
			Email:              fmt.Sprintf("contact@%s.com", strings.ReplaceAll(strings.ReplaceAll(strings.ToLower(s.Name), " ", ""), ".", "")),
			Address:            fmt.Sprintf("%d Business District, %s", 1+rand.Intn(999), cities[rand.Intn(len(cities))]),
			Rating:             decimal.RequireFromString(s.Rating),
			IsActive:           true,
		}
		db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "registration_number"}},
			DoNothing: true,
		}).Create(&contractor)
	}

	var contractors []entity.Contractor
	db.Order("name ASC").Find(&contractors)
	return contractors
}

var projectNames = []string{
	"School Building Renovation", "Hospital Equipment Upgrade", "Road Construction Phase 1",
	"Water Treatment Plant", "Solar Power Installation", "Agricultural Training Center",
	"Bridge Construction", "Health Clinic Establishment", "IT Lab Setup",
	"Irrigation System Upgrade", "Community Center Building", "Emergency Response Unit",
	"Public Transport Enhancement", "Waste Management System", "Digital Literacy Program",
	"Rural Electrification", "Market Infrastructure", "Sports Complex Development",
	"Library Modernization", "Healthcare Equipment", "Road Maintenance",
	"Water Distribution Network", "Renewable Energy Project", "Skill Development Center",
	"Emergency Services Upgrade", "Educational Technology", "Public Safety Initiative",
	"Environmental Protection", "Infrastructure Modernization", "Community Development",
}

var kpiUnits = []string{"Percentage", "Units", "People Served", "Kilometers", "Facilities"}

func seedProjects(db *gorm.DB, sectors []entity.Sector, districts []entity.District, contractors []entity.Contractor, admin *entity.User) []entity.Project {
	statuses := []string{
		entity.ProjectStatusComplete,
		entity.ProjectStatusOnTrack,
		entity.ProjectStatusAtRisk,
		entity.ProjectStatusDelayed,
	}
	today := time.Now().UTC().Truncate(24 * time.Hour)

	for _, baseName := range projectNames {
		sector := sectors[rand.Intn(len(sectors))]
		district := districts[rand.Intn(len(districts))]
		contractor := contractors[rand.Intn(len(contractors))]
		status := statuses[rand.Intn(len(statuses))]

		startDate := today.AddDate(0, 0, -(30 + rand.Intn(336)))
		duration := 90 + rand.Intn(641)
		plannedEnd := startDate.AddDate(0, 0, duration)

		var actualEnd *time.Time
		if status == entity.ProjectStatusComplete {
			end := startDate.AddDate(0, 0, duration-30+rand.Intn(91))
			actualEnd = &end
		}

		allocated := decimal.NewFromInt(int64(500000 + rand.Intn(49500001)))
		spent := allocated.Mul(decimal.NewFromFloat(0.1 + rand.Float64()*0.8)).Round(2)

		var progress int
		switch status {
		case entity.ProjectStatusComplete:
			progress = 100
		case entity.ProjectStatusOnTrack:
			progress = 30 + rand.Intn(51)
		case entity.ProjectStatusAtRisk:
			progress = 20 + rand.Intn(41)
		default:
			progress = 10 + rand.Intn(41)
		}

		kpiTarget := 80 + rand.Intn(21)
		kpiAchieved := 60 + rand.Intn(kpiTarget-60+1)

		lat := district.Latitude.Add(decimal.NewFromFloat(rand.Float64()*0.2 - 0.1)).Round(7)
		lng := district.Longitude.Add(decimal.NewFromFloat(rand.Float64()*0.2 - 0.1)).Round(7)
		contractorID := contractor.ID

		project := entity.Project{
			ID:              newID(),
			Name:            fmt.Sprintf("%s - %s", baseName, district.Name),
			Description:     fmt.Sprintf("Implementation of %s in %s district to improve %s services.", strings.ToLower(baseName), district.Name, strings.ToLower(sector.Name)),
			SectorID:        sector.ID,
			DistrictID:      district.ID,
			ContractorID:    &contractorID,
			StartDate:       startDate,
			PlannedEnd:      plannedEnd,
			ActualEnd:       actualEnd,
			Status:          status,
			ProgressPercent: decimal.NewFromInt(int64(progress)),
			BudgetAllocated: allocated,
			BudgetSpent:     spent,
			KPITarget:       decimal.NewFromInt(int64(kpiTarget)),
			KPIAchieved:     decimal.NewFromInt(int64(kpiAchieved)),
			KPIUnit:         kpiUnits[rand.Intn(len(kpiUnits))],
			Latitude:        &lat,
			Longitude:       &lng,
			CreatedBy:       admin.ID,
		}

		var existing entity.Project
		if err := db.Where("name = ?", project.Name).First(&existing).Error; err == nil {
			continue
		}
		if err := db.Create(&project).Error; err != nil {
			log.Printf("Failed to create project %s: %v", project.Name, err)
		}
	}

	var projects []entity.Project
	db.Find(&projects)
	return projects
}

func seedProcurements(db *gorm.DB, projects []entity.Project, contractors []entity.Contractor) {
	for i := range projects {
		p := &projects[i]
		num := 1 + rand.Intn(2)
		for j := 1; j <= num; j++ {
			tenderAmount := p.BudgetAllocated.Mul(decimal.NewFromFloat(0.8 + rand.Float64()*0.4)).Round(2)
			awardAmount := tenderAmount.Mul(decimal.NewFromFloat(0.9 + rand.Float64()*0.2)).Round(2)

			proc := entity.Procurement{
				ID:           newID(),
				ProjectID:    p.ID,
				ContractorID: contractors[rand.Intn(len(contractors))].ID,
				TenderID:     fmt.Sprintf("TND-%s-%02d", p.ID[:8], j),
				TenderTitle:  fmt.Sprintf("Tender for %s - Phase %d", p.Name, j),
				TenderAmount: tenderAmount,
				AwardAmount:  awardAmount,
				AwardDate:    p.StartDate.AddDate(0, 0, rand.Intn(31)),
				IsActive:     true,
			}
			db.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "tender_id"}},
				DoNothing: true,
			}).Create(&proc)
		}
	}
}

func seedKPIHistory(db *gorm.DB, projects []entity.Project, admin *entity.User) {
	for i := range projects {
		p := &projects[i]
		endDate := p.PlannedEnd
		if p.ActualEnd != nil {
			endDate = *p.ActualEnd
		}

		for n := 5; n <= 10; n++ {
			recordDate := p.StartDate.AddDate(0, 0, n*30)
			if recordDate.After(endDate) {
				break
			}

			base := p.KPITarget.Mul(decimal.NewFromFloat(float64(n) / 10))
			achieved := base.Add(decimal.NewFromInt(int64(rand.Intn(16) - 5)))
			if achieved.GreaterThan(p.KPITarget) {
				achieved = p.KPITarget
			}
			if achieved.IsNegative() {
				achieved = decimal.Zero
			}

			snapshot := entity.KPIHistory{
				ID:          newID(),
				ProjectID:   p.ID,
				Date:        recordDate,
				KPIAchieved: achieved.Round(2),
				Notes:       fmt.Sprintf("KPI update #%d - Progress tracking", n),
				RecordedBy:  admin.ID,
			}
			db.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "project_id"}, {Name: "date"}},
				DoNothing: true,
			}).Create(&snapshot)
		}
	}
}

var feedbackComments = []string{
	"Great progress on this project!",
	"The work quality is excellent.",
	"Some delays noticed but overall good.",
	"Happy with the improvements.",
	"Could be better managed.",
	"Excellent implementation.",
	"Minor issues with coordination.",
	"Very satisfied with results.",
	"Good work by the team.",
	"Some areas need improvement.",
}

var citizenNames = []string{
	"Ahmad Ali", "Fatima Khan", "Muhammad Hassan", "Ayesha Malik",
	"Ali Raza", "Zainab Ahmed", "Usman Shah", "Hina Butt",
	"Tariq Mahmood", "Saira Batool",
}

func seedFeedback(db *gorm.DB, projects []entity.Project) {
	for i := range projects {
		var count int64
		db.Model(&entity.Feedback{}).Where("project_id = ?", projects[i].ID).Count(&count)
		if count > 0 {
			continue
		}

		num := 2 + rand.Intn(4)
		for j := 0; j < num; j++ {
			fb := entity.Feedback{
				ID:           newID(),
				ProjectID:    projects[i].ID,
				CitizenName:  citizenNames[rand.Intn(len(citizenNames))],
				CitizenEmail: fmt.Sprintf("citizen%d@example.com", 1+rand.Intn(100)),
				Rating:       3 + rand.Intn(3),
				Comment:      feedbackComments[rand.Intn(len(feedbackComments))],
				IsVerified:   rand.Intn(2) == 0,
				IsPublic:     true,
				IPAddress:    fmt.Sprintf("192.168.1.%d", 1+rand.Intn(255)),
				UserAgent:    "Mozilla/5.0 (compatible; citizen feedback)",
			}
			db.Create(&fb)
		}
	}
}
