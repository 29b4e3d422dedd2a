package config

// GetAuthSkipperPaths returns a list of paths to skip authentication for
func GetAuthSkipperPaths() []string {
	// Read-only catalog lookups and GraphQL are public
	return []string{"/api/parts/:shapeKey", "/api/inventory/lots", "/graphql"}
}
