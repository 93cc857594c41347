package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"drilltrack/pkg/utils"
)

const defaultOrgID = "00000000-0000-0000-0000-000000000001"

type staffSeed struct {
	FirstName string
	LastName  string
	Email     string
	Role      string
	Password  string
}

var staffData = []staffSeed{
	{"Dana", "Whitfield", "admin@drilltrack.local", "admin", "admin-change-me"},
	{"Ray", "Ortega", "ray.ortega@drilltrack.local", "manager", "manager-change-me"},
	{"Mike", "Kowalski", "mike.kowalski@drilltrack.local", "driller", "driller-change-me"},
	{"Sam", "Beaulieu", "sam.beaulieu@drilltrack.local", "driller", "driller-change-me"},
	{"Pat", "Nguyen", "pat.nguyen@drilltrack.local", "viewer", "viewer-change-me"},
}

// SeedStaff creates the initial accounts. Existing emails are left
// untouched, so rerunning never resets a changed password.
func SeedStaff(db *pgxpool.Pool) {
	log.Println("seeding staff_members...")
	ctx := context.Background()

	query := `
		INSERT INTO staff_members (org_id, first_name, last_name, email, role, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (email) DO NOTHING;
	`

	for _, s := range staffData {
		hash, err := utils.HashPassword(s.Password)
		if err != nil {
			log.Fatalf("failed to hash password for %s: %v", s.Email, err)
		}
		if _, err := db.Exec(ctx, query, defaultOrgID, s.FirstName, s.LastName, s.Email, s.Role, hash); err != nil {
			log.Fatalf("failed to seed staff member %s: %v", s.Email, err)
		}
	}
	log.Printf("  %d staff members checked/created", len(staffData))
}
