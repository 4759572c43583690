package config

import (
	"os"
	"path/filepath"
)

// Addr is where the scoreboard server listens, ":8080" unless APP_PORT is
// set.
func Addr() string {
	port, ok := os.LookupEnv("APP_PORT")
	if !ok || port == "" {
		return ":8080"
	}
	return ":" + port
}

// RecordsPath is the SQLite file finished games are written to when no
// DATABASE_URL is given.
func RecordsPath() string {
	if path, ok := os.LookupEnv("MINES_RECORDS_PATH"); ok {
		return path
	}
	return filepath.Join("~", ".mines", "records.db")
}
