package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"brickstock.GO/config"
	"brickstock.GO/service/media"
)

var mediaCacheCmd = &cobra.Command{
	Use:   "media:cache",
	Short: "Download part images and generate webp thumbnails",
	Run: func(cmd *cobra.Command, args []string) {
		config.LoadAppConfig()

		db, err := config.NewDB()
		if err != nil {
			fmt.Printf("Database connection failed: %v\n", err)
			return
		}

		written, err := media.NewService(db, config.AppConfig.MediaDir).CacheAll()
		if err != nil {
			fmt.Printf("Media cache failed: %v\n", err)
			return
		}
		fmt.Printf("Wrote %d thumbnails to %s\n", written, config.AppConfig.MediaDir)
	},
}

func init() {
	rootCmd.AddCommand(mediaCacheCmd)
}
