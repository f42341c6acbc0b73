package store

import (
	"fmt"
	"os"
	"strconv"

	"github.com/halcyon-marine/aistrack/internal/aiserr"
)

// Config holds the connection parameters the DB collaborator reads from
// the environment. All fields are required; a missing or malformed value
// yields a ConfigurationError, which is fatal at startup.
type Config struct {
	Hostname string
	Port     int
	Username string
	Password string
	Name     string
}

// LoadConfig reads DB_HOSTNAME, DB_PORT, DB_USERNAME, DB_PASSWORD and
// DB_NAME from the environment.
func LoadConfig() (Config, error) {
	hostname, err := requireEnv("DB_HOSTNAME")
	if err != nil {
		return Config{}, err
	}
	portStr, err := requireEnv("DB_PORT")
	if err != nil {
		return Config{}, err
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return Config{}, aiserr.New(aiserr.KindConfigurationError, "LoadConfig",
			fmt.Sprintf("DB_PORT %q is not a valid port number", portStr))
	}
	username, err := requireEnv("DB_USERNAME")
	if err != nil {
		return Config{}, err
	}
	password, err := requireEnv("DB_PASSWORD")
	if err != nil {
		return Config{}, err
	}
	name, err := requireEnv("DB_NAME")
	if err != nil {
		return Config{}, err
	}

	return Config{
		Hostname: hostname,
		Port:     port,
		Username: username,
		Password: password,
		Name:     name,
	}, nil
}

func requireEnv(key string) (string, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return "", aiserr.New(aiserr.KindConfigurationError, "LoadConfig", "missing required environment variable: "+key)
	}
	return v, nil
}
