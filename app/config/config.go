package config

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/lib/pq"
)

type Config struct {
	DB        *sql.DB
	JWTSecret []byte
}

var AppConfig *Config

func InitDB() {
	psqlInfo := os.Getenv("DATABASE_URL")
	if psqlInfo == "" {
		host := envOr("DB_HOST", "localhost")
		port := envOr("DB_PORT", "5432")
		user := envOr("DB_USER", "postgres")
		password := os.Getenv("DB_PASSWORD")
		dbname := envOr("DB_NAME", "school_admin")

		psqlInfo = fmt.Sprintf("host=%s port=%s user=%s dbname=%s sslmode=disable", host, port, user, dbname)
		if password != "" {
			psqlInfo += " password=" + password
		}
	}

	db, err := sql.Open("postgres", psqlInfo)
	if err != nil {
		log.Fatal("Failed to open database connection:", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	log.Println("Testing database connection...")
	if err = db.Ping(); err != nil {
		log.Printf("Database connection failed: %v", err)
		log.Println("Set DATABASE_URL or DB_HOST/DB_PORT/DB_USER/DB_PASSWORD/DB_NAME and try again")
		log.Fatal("Cannot establish database connection")
	}

	AppConfig = &Config{
		DB:        db,
		JWTSecret: jwtSecret(),
	}
	log.Println("Database connected successfully")
}

func GetDB() *sql.DB {
	return AppConfig.DB
}

func JWTSecret() []byte {
	return AppConfig.JWTSecret
}

func jwtSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "school-admin-secret-key" // Default for development
	}
	return []byte(secret)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
