package cmd

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/geocasagroup/portal/internal/catalog"
	catalogDatamodel "github.com/geocasagroup/portal/internal/core/datamodel/catalog"
	grantDatamodel "github.com/geocasagroup/portal/internal/core/datamodel/grant"
	userDatamodel "github.com/geocasagroup/portal/internal/core/datamodel/user"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with the reference catalog and sample accounts",
	Long:  `Seed the reference catalog mirror tables, the admin account and a sample staff account for development.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			for _, table := range []string{"office_grants", "division_grants", "department_grants", "offices", "divisions", "departments"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared catalog and grant tables")
		}

		seedCatalog(db)
		adminID := seedUser(db, "admin@geocasagroup.com", "Administrateur", "Direction", true)
		staffID := seedUser(db, "claire.dupont@geocasagroup.com", "Claire Dupont", "Agent foncier", false)
		_ = adminID

		// The sample staff account gets a narrow grant set so the selector
		// shows a filtered catalog during development.
		seedGrants(db, staffID)

		fmt.Println("Seeding complete")
	},
}

func seedCatalog(db *gorm.DB) {
	for _, d := range catalog.Departments() {
		row := catalogDatamodel.Department{
			ID:            d.ID,
			NameEn:        d.Name.En,
			NameFr:        d.Name.Fr,
			DescriptionEn: d.Description.En,
			DescriptionFr: d.Description.Fr,
			Color:         d.Color,
			Icon:          d.Icon,
			Services:      strings.Join(d.Services, ","),
		}
		if err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error; err != nil {
			log.Fatalf("failed to seed department %s: %v", d.ID, err)
		}
	}

	for _, dv := range catalog.Divisions() {
		row := catalogDatamodel.Division{
			ID:            dv.ID,
			NameEn:        dv.Name.En,
			NameFr:        dv.Name.Fr,
			DescriptionEn: dv.Description.En,
			DescriptionFr: dv.Description.Fr,
		}
		if err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error; err != nil {
			log.Fatalf("failed to seed division %s: %v", dv.ID, err)
		}

		for _, o := range dv.Offices {
			officeRow := catalogDatamodel.Office{
				ID:            o.ID,
				DivisionID:    o.DivisionID,
				NameEn:        o.Name.En,
				NameFr:        o.Name.Fr,
				DescriptionEn: o.Description.En,
				DescriptionFr: o.Description.Fr,
			}
			if err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&officeRow).Error; err != nil {
				log.Fatalf("failed to seed office %s: %v", o.ID, err)
			}
		}
	}

	fmt.Println("Seeded reference catalog")
}

func seedUser(db *gorm.DB, email, name, jobTitle string, isAdmin bool) int64 {
	var existing userDatamodel.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		fmt.Println("user already exists:", email)
		return existing.ID
	}
	if err != gorm.ErrRecordNotFound {
		log.Fatalf("failed to look up user %s: %v", email, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	row := userDatamodel.User{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		JobTitle:     jobTitle,
		Language:     "fr",
		IsAdmin:      isAdmin,
		IsActive:     true,
	}
	if err := db.Create(&row).Error; err != nil {
		log.Fatalf("failed to insert user %s: %v", email, err)
	}
	fmt.Println("Seeded user:", email)
	return row.ID
}

func seedGrants(db *gorm.DB, userID int64) {
	var count int64
	db.Model(&grantDatamodel.DivisionGrant{}).Where("user_id = ?", userID).Count(&count)
	if count > 0 {
		fmt.Println("sample grants already exist")
		return
	}

	department, _ := catalog.DepartmentByID(catalog.LandCadastralDepartmentID)
	division, _ := catalog.DivisionByID("documentation")
	office := division.Offices[0]

	if err := db.Create(&grantDatamodel.DepartmentGrant{
		UserID:       userID,
		DepartmentID: department.ID,
		Name:         department.Name.Fr,
		IsPrimary:    true,
	}).Error; err != nil {
		log.Fatalf("failed to seed department grant: %v", err)
	}

	if err := db.Create(&grantDatamodel.DivisionGrant{
		UserID:     userID,
		DivisionID: division.ID,
		Name:       division.Name.Fr,
		IsPrimary:  true,
	}).Error; err != nil {
		log.Fatalf("failed to seed division grant: %v", err)
	}

	if err := db.Create(&grantDatamodel.OfficeGrant{
		UserID:             userID,
		OfficeID:           office.ID,
		DivisionID:         &office.DivisionID,
		Name:               office.Name.Fr,
		IsPrimary:          true,
		Role:               "Agent foncier",
		AccessLevel:        "Editor",
		CanViewDocuments:   true,
		CanCreateDocuments: true,
	}).Error; err != nil {
		log.Fatalf("failed to seed office grant: %v", err)
	}

	fmt.Println("Seeded sample grants for user", userID)
}
