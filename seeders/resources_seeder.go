package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

type rigSeed struct {
	Name    string
	RigType string
}

var rigData = []rigSeed{
	{"Rig 01", "CME-75"},
	{"Rig 02", "CME-55"},
	{"Rig 03", "Geoprobe 7822DT"},
	{"Rig 04", "Diedrich D-50"},
}

var crewData = []struct {
	Name      string
	LeadEmail string
}{
	{"North Crew", "mike.kowalski@drilltrack.local"},
	{"South Crew", "sam.beaulieu@drilltrack.local"},
}

// SeedResources fills the rig and crew registries. Crews are linked to
// their lead by email, so SeedStaff must have run first.
func SeedResources(db *pgxpool.Pool) {
	log.Println("seeding rigs and crews...")
	ctx := context.Background()

	for _, r := range rigData {
		_, err := db.Exec(ctx, `
			INSERT INTO rigs (org_id, name, rig_type)
			SELECT $1, $2, $3
			WHERE NOT EXISTS (SELECT 1 FROM rigs WHERE name = $2);`,
			defaultOrgID, r.Name, r.RigType)
		if err != nil {
			log.Fatalf("failed to seed rig %s: %v", r.Name, err)
		}
	}
	log.Printf("  %d rigs checked/created", len(rigData))

	for _, c := range crewData {
		_, err := db.Exec(ctx, `
			INSERT INTO crews (org_id, name, lead_id)
			SELECT $1, $2, (SELECT id FROM staff_members WHERE email = $3)
			WHERE NOT EXISTS (SELECT 1 FROM crews WHERE name = $2);`,
			defaultOrgID, c.Name, c.LeadEmail)
		if err != nil {
			log.Fatalf("failed to seed crew %s: %v", c.Name, err)
		}
	}
	log.Printf("  %d crews checked/created", len(crewData))
}
