package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
)

type Database struct {
	Username string
	Password string
	Host     string
	Port     uint16
	DBName   string
	SSLMode  string
}

func loadPassword() (string, error) {
	password, ok := os.LookupEnv("POSTGRES_PASSWORD")
	if ok {
		return password, nil
	}

	passwordFile, ok := os.LookupEnv("POSTGRES_PASSWORD_FILE")
	if !ok {
		return "", fmt.Errorf("no POSTGRES_PASSWORD or POSTGRES_PASSWORD_FILE env variable set")
	}

	data, err := os.ReadFile(passwordFile)
	if err != nil {
		return "", fmt.Errorf("unable to read from password file: %w", err)
	}

	return strings.TrimSpace(string(data)), nil
}

func lookup(key string) (string, error) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return "", fmt.Errorf("no %s env variable set", key)
	}
	return v, nil
}

func NewDatabase() (*Database, error) {
	username, err := lookup("POSTGRES_USER")
	if err != nil {
		return nil, err
	}

	password, err := loadPassword()
	if err != nil {
		return nil, fmt.Errorf("unable to load password: %w", err)
	}

	host, err := lookup("POSTGRES_HOST")
	if err != nil {
		return nil, err
	}

	portStr, err := lookup("POSTGRES_PORT")
	if err != nil {
		return nil, err
	}
	port, err := strconv.ParseUint(portStr, 10, 16)
	if err != nil {
		return nil, fmt.Errorf("unable to convert port to int: %w", err)
	}

	dbName, err := lookup("POSTGRES_DB")
	if err != nil {
		return nil, err
	}

	sslMode, ok := os.LookupEnv("POSTGRES_SSLMODE")
	if !ok {
		sslMode = "disable"
	}

	return &Database{
		Username: username,
		Password: password,
		Host:     host,
		Port:     uint16(port),
		DBName:   dbName,
		SSLMode:  sslMode,
	}, nil
}

func (c Database) URL() string {
	return fmt.Sprintf(
		"postgresql://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(c.Username),
		url.QueryEscape(c.Password),
		c.Host,
		c.Port,
		c.DBName,
		c.SSLMode,
	)
}

// DatabaseURL prefers DATABASE_URL and falls back to the POSTGRES_*
// variables. ok is false when neither is configured.
func DatabaseURL() (dbURL string, ok bool, err error) {
	if dbURL, ok := os.LookupEnv("DATABASE_URL"); ok {
		return dbURL, true, nil
	}
	if _, ok := os.LookupEnv("POSTGRES_HOST"); !ok {
		return "", false, nil
	}
	cfg, err := NewDatabase()
	if err != nil {
		return "", true, err
	}
	return cfg.URL(), true, nil
}
