package seeders

import (
	"context"
	"errors"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedDemo creates a sample project with one work order and its rate
// schedule, enough to click through the queue, board and billing views.
func SeedDemo(db *pgxpool.Pool) {
	log.Println("seeding demo project and work order...")
	ctx := context.Background()

	tx, err := db.Begin(ctx)
	if err != nil {
		log.Fatalf("failed to begin demo seed transaction: %v", err)
	}
	defer tx.Rollback(ctx)

	var projectID string
	err = tx.QueryRow(ctx, `
		INSERT INTO projects (org_id, name, project_number, client_name, location)
		SELECT $1, 'Riverside Substation Expansion', 'P-2026-014', 'Acme Power', 'Riverside, OH'
		WHERE NOT EXISTS (SELECT 1 FROM projects WHERE project_number = 'P-2026-014')
		RETURNING id;`, defaultOrgID).Scan(&projectID)
	if errors.Is(err, pgx.ErrNoRows) {
		log.Println("  demo project already exists, skipping")
		return
	}
	if err != nil {
		log.Fatalf("failed to seed demo project: %v", err)
	}

	var workOrderID string
	err = tx.QueryRow(ctx, `
		INSERT INTO work_orders (org_id, project_id, wo_number, name, scope, priority, status, estimated_cost, location)
		VALUES ($1, $2, 'WO-2026-001', 'Geotech borings, substation pad', '6 SPT borings to 50 ft', 'high', 'approved', 18500, '1200 River Rd')
		RETURNING id;`, defaultOrgID, projectID).Scan(&workOrderID)
	if err != nil {
		log.Fatalf("failed to seed demo work order: %v", err)
	}

	borings := []struct {
		Label string
		Depth float64
	}{
		{"B-1", 50}, {"B-2", 50}, {"B-3", 50}, {"B-4", 75}, {"B-5", 50}, {"B-6", 50},
	}
	for i, b := range borings {
		_, err := tx.Exec(ctx, `
			INSERT INTO wo_borings (work_order_id, boring_id_label, boring_type, planned_depth, sort_order)
			VALUES ($1, $2, 'SPT', $3, $4);`, workOrderID, b.Label, b.Depth, i)
		if err != nil {
			log.Fatalf("failed to seed demo boring %s: %v", b.Label, err)
		}
	}

	rates := []struct {
		Unit  string
		Rate  float64
		Label string
		Qty   float64
	}{
		{"Drilling", 25, "ft", 325},
		{"Mobilization", 500, "ls", 1},
		{"Grouting", 8, "ft", 325},
	}
	for i, r := range rates {
		_, err := tx.Exec(ctx, `
			INSERT INTO wo_rate_schedule (work_order_id, billing_unit, rate, unit_label, estimated_quantity, sort_order)
			VALUES ($1, $2, $3, $4, $5, $6);`, workOrderID, r.Unit, r.Rate, r.Label, r.Qty, i)
		if err != nil {
			log.Fatalf("failed to seed demo rate line %s: %v", r.Unit, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		log.Fatalf("failed to commit demo seed: %v", err)
	}
	log.Println("  demo project, work order, borings and rate schedule created")
}
