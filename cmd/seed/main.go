package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"accountsvc/config"
	"accountsvc/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	codes := helpers.UUIDCodeGenerator{}

	seedUser(db, "active@example.com", "active-demo", "Seoul", "ACTIVE", codes.NewCode())
	seedUser(db, "pending@example.com", "pending-demo", "Incheon", "PENDING", codes.NewCode())
}

func seedUser(db *sql.DB, email, nickname, address, status, code string) {
	var id int64
	err := db.QueryRow(`
		INSERT INTO users (email, nickname, address, status, certification_code)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO UPDATE SET nickname = EXCLUDED.nickname
		RETURNING id
	`, email, nickname, address, status, code).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user %s: %v", email, err)
	}
	fmt.Printf("seeded user: id=%d email=%s status=%s certification_code=%s\n", id, email, status, code)
}
