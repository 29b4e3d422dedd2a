package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"brickstock.GO/config"
	inventoryService "brickstock.GO/service/inventory"
)

var (
	importFile string
	importMode string
)

var inventoryImportCmd = &cobra.Command{
	Use:   "inventory:import",
	Short: "Import a vendor XML export into the inventory",
	Run: func(cmd *cobra.Command, args []string) {
		start := time.Now()

		f, err := os.Open(importFile)
		if err != nil {
			fmt.Printf("Failed to open file: %v\n", err)
			return
		}
		defer f.Close()

		mode, err := inventoryService.ParseMode(importMode)
		if err != nil {
			fmt.Println(err)
			return
		}

		db, err := config.NewDB()
		if err != nil {
			fmt.Printf("Database connection failed: %v\n", err)
			return
		}

		summary, err := inventoryService.ImportVendorExport(db, f, inventoryService.ImportOptions{
			Source:   "vendorxml",
			FileName: filepath.Base(importFile),
			Mode:     mode,
		})
		if err != nil {
			fmt.Printf("Import failed: %v\n", err)
			return
		}

		for _, item := range summary.UnmappedItems {
			fmt.Printf("  [unmapped] part=%q color=%q qty=%d\n", item.PartID, item.ColorID, item.Quantity)
		}

		fmt.Printf(`
=== Import Report ===
Batch:          #%d
Lots parsed:    %d
Pieces parsed:  %d
Lots imported:  %d
Pieces added:   %d
Unmapped lots:  %d
Mode:           %s
Total time:     %s
=====================
`, summary.BatchID, summary.TotalLots, summary.TotalPieces,
			summary.MappedLots, summary.MappedPieces, summary.UnmappedLots,
			mode, time.Since(start).Round(time.Millisecond))
	},
}

func init() {
	inventoryImportCmd.Flags().StringVarP(&importFile, "file", "f", "", "Vendor XML export path (required)")
	inventoryImportCmd.MarkFlagRequired("file")
	inventoryImportCmd.Flags().StringVarP(&importMode, "mode", "m", "add", "Import mode: add or merge")
	rootCmd.AddCommand(inventoryImportCmd)
}
