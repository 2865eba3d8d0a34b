package database

import (
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"conformo/internal/config"
	"conformo/internal/models"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	const maxAttempts = 10
	for i := 1; i <= maxAttempts; i++ {
		log.Printf("trying to connect to DB (attempt %d/%d)...", i, maxAttempts)

		DB, err = gorm.Open(postgres.Open(cfg.DBDSN), &gorm.Config{})
		if err == nil {
			log.Println("connected to DB successfully")
			break
		}

		log.Printf("failed to connect to DB: %v", err)
		time.Sleep(2 * time.Second)
	}

	if err != nil {
		log.Fatalf("failed to connect to db after %d attempts: %v", maxAttempts, err)
	}

	err = DB.AutoMigrate(
		&models.Organization{},
		&models.User{},
		&models.Asset{},
		&models.Risk{},
		&models.RiskTemplate{},
		&models.Control{},
		&models.SoAItem{},
		&models.NonConformity{},
		&models.Audit{},
		&models.AuditChecklistItem{},
		&models.Policy{},
		&models.ActivityLog{},
	)
	if err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	createDefaultAdmin(cfg)
	seedRiskTemplates()

	if cfg.DemoMode {
		seedDemoOrganization(cfg.DemoOrgName)
	}
}

// the admin account comes from config only, never from self-registration
func createDefaultAdmin(cfg *config.Config) {
	username := cfg.AdminUsername
	if username == "" {
		username = "admin@conformo.local"
	}
	password := cfg.AdminPassword
	if password == "" {
		password = "Admin123!"
	}

	var count int64
	if err := DB.Model(&models.User{}).
		Where("role = ?", models.RoleAdmin).
		Count(&count).Error; err != nil {
		log.Printf("failed to check admin user: %v", err)
		return
	}
	if count > 0 {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("failed to hash default admin password: %v", err)
		return
	}

	admin := models.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	}

	if err := DB.Create(&admin).Error; err != nil {
		log.Printf("failed to create default admin: %v", err)
		return
	}

	log.Printf("created default admin user: %s", username)
}

// seedDemoOrganization makes sure the demo tenant exists and is provisioned.
func seedDemoOrganization(name string) {
	var org models.Organization
	err := DB.Where("name = ?", name).First(&org).Error
	if err == nil {
		return
	}

	org = models.Organization{
		Name:      name,
		Industry:  "Servizi IT",
		ISMSScope: "Sistemi informativi e servizi erogati dalla sede principale",
	}
	if err := DB.Create(&org).Error; err != nil {
		log.Printf("failed to create demo organization: %v", err)
		return
	}
	if err := ProvisionOrganization(org.ID); err != nil {
		log.Printf("failed to provision demo organization: %v", err)
		return
	}

	log.Printf("created demo organization: %s (id=%d)", name, org.ID)
}
