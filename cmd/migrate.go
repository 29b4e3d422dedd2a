package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"brickstock.GO/config"
)

var migrateCmd = &cobra.Command{
	Use:   "db:migrate",
	Short: "Apply pending schema migrations",
	Run: func(cmd *cobra.Command, args []string) {
		if err := config.Migrate(); err != nil {
			fmt.Printf("Migration failed: %v\n", err)
			return
		}
		fmt.Println("Schema is up to date.")
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
