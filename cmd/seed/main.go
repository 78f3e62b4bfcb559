package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/nareswara/libris/config"
	"github.com/nareswara/libris/internal/domain/entity"
	"github.com/nareswara/libris/pkg/helpers"
)

type seedBook struct {
	Title  string
	Author string
	Year   int
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "admin@libris.local"
	password := "admin123"
	username := "admin"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO users (username, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE SET username = EXCLUDED.username
		RETURNING id
	`, username, email, hash, entity.RoleAdmin).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s password=%s\n", id, email, password)

	// Seed books only into an empty catalog; reruns stay idempotent.
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM books`).Scan(&count); err != nil {
		log.Fatalf("failed to count books: %v", err)
	}
	if count > 0 {
		fmt.Printf("catalog already has %d books, skipping book seed\n", count)
		return
	}

	books := []seedBook{
		{Title: "The Great Gatsby", Author: "F. Scott Fitzgerald", Year: 1925},
		{Title: "1984", Author: "George Orwell", Year: 1949},
		{Title: "To Kill a Mockingbird", Author: "Harper Lee", Year: 1960},
		{Title: "Pride and Prejudice", Author: "Jane Austen", Year: 1813},
		{Title: "Moby-Dick", Author: "Herman Melville", Year: 1851},
	}
	for _, b := range books {
		if _, err := db.Exec(`
			INSERT INTO books (title, author, year)
			VALUES ($1, $2, $3)
		`, b.Title, b.Author, b.Year); err != nil {
			log.Fatalf("failed to seed book %q: %v", b.Title, err)
		}
	}
	fmt.Printf("seeded %d books\n", len(books))
}
