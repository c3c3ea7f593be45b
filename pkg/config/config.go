package config

import "os"

type Config struct {
	Port        string
	Env         string
	PostgresUrl string
	MongoURI    string
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("ENV", "development"),
		PostgresUrl: getEnv("POSTGRES_URL", "http://localhost:5432"),
		MongoURI:    getEnv("MONGO_URI", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
