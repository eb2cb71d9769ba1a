package main

import (
	"log"

	"github.com/ubada123/SchoolSoftware/app/config"
	"github.com/ubada123/SchoolSoftware/app/database"
)

// Runs the schema migrations without starting the server. The server also
// migrates at boot; this exists for deploy pipelines that migrate first.
func main() {
	config.InitDB()
	db := config.GetDB()
	if db == nil {
		log.Fatal("Failed to get database instance")
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		log.Fatal("Migration failed:", err)
	}
	log.Println("Migrations completed successfully")
}
