package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"brickstock.GO/config"
	"brickstock.GO/service/catalogapi"
	inventoryService "brickstock.GO/service/inventory"
)

var (
	setFetchMode      string
	setFetchCondition string
)

var setFetchCmd = &cobra.Command{
	Use:   "sets:fetch <set-id>",
	Short: "Fetch a set inventory from the catalog service and import it",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		mode, err := inventoryService.ParseMode(setFetchMode)
		if err != nil {
			fmt.Println(err)
			return
		}

		db, err := config.NewDB()
		if err != nil {
			fmt.Printf("Database connection failed: %v\n", err)
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		summary, err := inventoryService.ImportRemoteSet(
			ctx, db, catalogapi.NewClientFromEnv(), args[0], mode, setFetchCondition)
		if err != nil {
			fmt.Printf("Fetch failed: %v\n", err)
			return
		}

		fmt.Printf("Imported set %s: batch #%d, %d lots, %d pieces\n",
			args[0], summary.BatchID, summary.MappedLots, summary.MappedPieces)
	},
}

func init() {
	setFetchCmd.Flags().StringVarP(&setFetchMode, "mode", "m", "add", "Import mode: add or merge")
	setFetchCmd.Flags().StringVarP(&setFetchCondition, "condition", "c", "", "Lot condition: N or U (default unset)")
	rootCmd.AddCommand(setFetchCmd)
}
