package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"brickstock.GO/config"
	"brickstock.GO/graphql/resolvers"
	catalogEntity "brickstock.GO/model/entity/catalog"
)

var searchIndexCmd = &cobra.Command{
	Use:   "search:index",
	Short: "Index the part catalog into Elasticsearch",
	Run: func(cmd *cobra.Command, args []string) {
		db, err := config.NewDB()
		if err != nil {
			fmt.Printf("Database connection failed: %v\n", err)
			return
		}

		var parts []catalogEntity.Part
		if err := db.Find(&parts).Error; err != nil {
			fmt.Printf("Load parts failed: %v\n", err)
			return
		}

		svc := resolvers.GetSearchService()
		ctx := context.Background()
		indexed := 0
		for i := range parts {
			p := &parts[i]
			doc := map[string]interface{}{
				"part_id":         p.PartID,
				"shape_key":       p.ShapeKey,
				"name":            p.Name,
				"image_url":       p.ImageURL,
				"is_printed":      p.IsPrinted,
				"is_minifig_part": p.IsMinifigPart,
			}
			if err := svc.IndexPart(ctx, strconv.FormatUint(uint64(p.PartID), 10), doc); err != nil {
				fmt.Printf("  [skip] %s: %v\n", p.ShapeKey, err)
				continue
			}
			indexed++
		}
		fmt.Printf("Indexed %d of %d parts.\n", indexed, len(parts))
	},
}

func init() {
	rootCmd.AddCommand(searchIndexCmd)
}
