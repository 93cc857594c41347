package main

import (
	"flag"
	"log"

	"drilltrack/pkg/config"
	"drilltrack/pkg/database/postgresql"
	"drilltrack/seeders"
)

func main() {
	runStaff := flag.Bool("staff", false, "seed the initial staff accounts")
	runResources := flag.Bool("resources", false, "seed rigs and crews")
	runDemo := flag.Bool("demo", false, "seed a demo project with a work order")
	runAll := flag.Bool("all", false, "run every seeder")
	flag.Parse()

	if !*runStaff && !*runResources && !*runDemo && !*runAll {
		log.Println("no seeder selected")
		flag.PrintDefaults()
		log.Println("example: go run ./seeders/cmd/seed -all")
		return
	}

	cfg := config.New()
	dbPool := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer dbPool.Close()

	// Order matters: crews reference staff, demo data references both.
	if *runAll || *runStaff {
		seeders.SeedStaff(dbPool)
	}
	if *runAll || *runResources {
		seeders.SeedResources(dbPool)
	}
	if *runAll || *runDemo {
		seeders.SeedDemo(dbPool)
	}
	log.Println("seeding finished")
}
