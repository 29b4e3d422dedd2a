package jobs

import (
	"context"
	"log"

	"brickstock.GO/config"
	catalogRepo "brickstock.GO/model/repository/catalog"
	"brickstock.GO/service/catalogapi"
)

func init() {
	config.CronJobs["catalogsync"] = config.CronJob{Schedule: "0 4 * * *", Job: CatalogSyncJob}
}

// CatalogSyncJob refreshes the canonical color table from the catalog
// service. New colors are created, existing ones get RGB backfilled; names
// already populated are never churned.
func CatalogSyncJob(args ...string) {
	db, err := config.NewDB()
	if err != nil {
		log.Printf("catalogsync: db: %v", err)
		return
	}
	client := catalogapi.NewClientFromEnv()
	colors, err := client.FetchColors(context.Background())
	if err != nil {
		log.Printf("catalogsync: fetch colors: %v", err)
		return
	}

	repo := catalogRepo.NewCatalogRepository(db)
	synced := 0
	for _, c := range colors {
		if c.Name == "" {
			continue
		}
		if _, err := repo.UpsertColor("catalog", c.ID, c.Name, c.RGB); err != nil {
			log.Printf("catalogsync: color %s: %v", c.Name, err)
			continue
		}
		synced++
	}
	log.Printf("catalogsync: %d colors synced", synced)
}
