// Migration script to hash legacy plaintext passwords across all three
// account tables. Safe to rerun; already-hashed rows are skipped.
package main

import (
	"log"
	"strings"

	"liftakids-api/config"
	"liftakids-api/controllers"
	"liftakids-api/models"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	config.InitDB()

	migrated := 0
	migrated += migrateAdmins()
	migrated += migrateDonors()
	migrated += migrateInstitutions()

	log.Printf("Password migration completed, %d accounts updated", migrated)
}

func migrateAdmins() int {
	var admins []models.Admin
	if err := config.DB.Find(&admins).Error; err != nil {
		log.Fatal("Failed to fetch admins:", err)
	}

	count := 0
	for _, admin := range admins {
		hashed, ok := rehash(admin.Email, admin.Password)
		if !ok {
			continue
		}
		if err := config.DB.Model(&models.Admin{}).
			Where("admin_id = ?", admin.AdminID).
			Update("password", hashed).Error; err != nil {
			log.Printf("Failed to update admin %s: %v", admin.Email, err)
			continue
		}
		count++
	}
	return count
}

func migrateDonors() int {
	var donors []models.Donor
	if err := config.DB.Find(&donors).Error; err != nil {
		log.Fatal("Failed to fetch donors:", err)
	}

	count := 0
	for _, donor := range donors {
		hashed, ok := rehash(donor.Email, donor.Password)
		if !ok {
			continue
		}
		if err := config.DB.Model(&models.Donor{}).
			Where("donor_id = ?", donor.DonorID).
			Update("password", hashed).Error; err != nil {
			log.Printf("Failed to update donor %s: %v", donor.Email, err)
			continue
		}
		count++
	}
	return count
}

func migrateInstitutions() int {
	var institutions []models.Institution
	if err := config.DB.Find(&institutions).Error; err != nil {
		log.Fatal("Failed to fetch institutions:", err)
	}

	count := 0
	for _, institution := range institutions {
		hashed, ok := rehash(institution.Email, institution.Password)
		if !ok {
			continue
		}
		if err := config.DB.Model(&models.Institution{}).
			Where("institution_id = ?", institution.InstitutionID).
			Update("password", hashed).Error; err != nil {
			log.Printf("Failed to update institution %s: %v", institution.Email, err)
			continue
		}
		count++
	}
	return count
}

// rehash returns the bcrypt hash for a plaintext password, or ok=false when
// the stored value is already hashed.
func rehash(email, password string) (string, bool) {
	// bcrypt hashes start with $2
	if strings.HasPrefix(password, "$2") {
		log.Printf("Account %s already has hashed password, skipping", email)
		return "", false
	}
	hashed, err := controllers.HashPassword(password)
	if err != nil {
		log.Printf("Failed to hash password for %s: %v", email, err)
		return "", false
	}
	return hashed, true
}
