package config

import (
	"os"
	"sync"
)

// AppConfig holds global application configuration
var AppConfig *Config
var once sync.Once

type Config struct {
	AppName       string
	Port          string
	Env           string
	Debug         bool
	MediaDir      string
	CatalogAPIURL string
	// Add more fields as needed
}

// LoadAppConfig initializes the global AppConfig variable
func LoadAppConfig() {
	once.Do(func() {
		mediaDir := os.Getenv("MEDIA_DIR")
		if mediaDir == "" {
			mediaDir = "media/parts"
		}
		AppConfig = &Config{
			AppName:       os.Getenv("APP_NAME"),
			Port:          os.Getenv("PORT"),
			Env:           os.Getenv("APP_ENV"),
			Debug:         os.Getenv("DEBUG") == "true",
			MediaDir:      mediaDir,
			CatalogAPIURL: os.Getenv("CATALOG_API_URL"),
		}
	})
}
