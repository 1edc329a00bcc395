package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

type seedCourse struct {
	name     string
	location string
	province string
}

// A starter set of well-known South African courses so a fresh database has
// something to search and review.
var seedCourses = []seedCourse{
	{"Fancourt Links", "George", "Western Cape"},
	{"Fancourt Montagu", "George", "Western Cape"},
	{"Leopard Creek Country Club", "Malelane", "Mpumalanga"},
	{"Gary Player Country Club", "Sun City", "North West"},
	{"Durban Country Club", "Durban", "KwaZulu-Natal"},
	{"Humewood Golf Club", "Gqeberha", "Eastern Cape"},
	{"Royal Johannesburg & Kensington", "Johannesburg", "Gauteng"},
	{"Arabella Golf Club", "Kleinmond", "Western Cape"},
	{"Pearl Valley", "Paarl", "Western Cape"},
	{"St Francis Links", "St Francis Bay", "Eastern Cape"},
}

func main() {
	fmt.Println("seeding courses into database...")

	err := godotenv.Load()
	if err != nil {
		log.Println("warning: .env file not found, use system environment variables.")
	}

	DSN := os.Getenv("DB_DSN")

	pool, err := pgxpool.New(context.Background(), DSN)
	if err != nil {
		log.Fatalf("cannot connect DB: %v", err)
	}
	defer pool.Close()

	query := `
		INSERT INTO courses (id, name, location, province)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (name) DO NOTHING
	`
	for _, c := range seedCourses {
		_, err = pool.Exec(context.Background(), query, uuid.New(), c.name, c.location, c.province)
		if err != nil {
			log.Fatalf("cannot add course '%s': %v", c.name, err)
		}
	}

	fmt.Printf("seeded %d courses successfully!\n", len(seedCourses))
}
