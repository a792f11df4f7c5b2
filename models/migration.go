package models

import (
	"log"

	"bitbucket.org/mmdatafocus/mis_backend/config"
)

func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&User{},
		&AuditRecord{},
	)
	if err != nil {
		log.Fatal(err)
	}

	// Each company keeps its rows in its own table. The schema is
	// shared, so migrate the same struct once per registered table.
	for _, company := range AllCompanies() {
		if err := db.Table(company.Table).AutoMigrate(&MisRow{}); err != nil {
			log.Fatal(err)
		}
	}
}
