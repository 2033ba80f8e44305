package main

import (
	"context"
	"log"
	"os"

	"memberreg/internal/database"
	"memberreg/internal/domain"
	"memberreg/internal/repository"
)

// Seeds the picklist options the registration form depends on. Safe to rerun:
// each field's option set is replaced wholesale.
func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "memberreg.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	picklists := repository.NewPicklistRepository(db)
	ctx := context.Background()

	seed := map[domain.PicklistField][]domain.PicklistOption{
		domain.FieldSalutation: {
			{Value: "Mr.", Label: "Mr."},
			{Value: "Ms.", Label: "Ms."},
			{Value: "Mrs.", Label: "Mrs."},
			{Value: "Dr.", Label: "Dr."},
		},
		domain.FieldGender: {
			{Value: "Male", Label: "Male"},
			{Value: "Female", Label: "Female"},
			{Value: "Other", Label: "Other"},
		},
		domain.FieldCountry: {
			{Value: "India", Label: "India"},
			{Value: "United States", Label: "United States"},
			{Value: "United Kingdom", Label: "United Kingdom"},
			{Value: "Australia", Label: "Australia"},
		},
		domain.FieldState: {
			{Value: "Karnataka", Label: "Karnataka"},
			{Value: "Maharashtra", Label: "Maharashtra"},
			{Value: "Tamil Nadu", Label: "Tamil Nadu"},
			{Value: "Telangana", Label: "Telangana"},
			{Value: "Delhi", Label: "Delhi"},
		},
		domain.FieldOccupation: {
			{Value: "Salaried", Label: "Salaried"},
			{Value: "Self-Employed", Label: "Self-Employed"},
			{Value: "Student", Label: "Student"},
			{Value: "Retired", Label: "Retired"},
		},
		domain.FieldProofOfIdentity: {
			{Value: "Passport", Label: "Passport"},
			{Value: "Driving License", Label: "Driving License"},
			{Value: "National ID", Label: "National ID"},
		},
	}

	for field, options := range seed {
		if err := picklists.ReplaceOptions(ctx, field, options); err != nil {
			log.Fatalf("seeding %s failed: %v", field, err)
		}
		log.Printf("Seeded %s (%d options)", field, len(options))
	}

	log.Println("Seed completed")
}
