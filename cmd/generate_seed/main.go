// Command generate_seed creates a seed database with sample public domain
// books. Point SEED_DATABASE_PATH at the output and the server copies it
// into place on first run.
//
// Usage: go run cmd/generate_seed/main.go [-db path/to/seed.db]
package main

import (
	"flag"
	"log"
	"os"

	"github.com/mrlokans/readinglog/internal/database"
	"github.com/mrlokans/readinglog/internal/database/books"
)

const defaultSeedDatabasePath = "./seed/books.db"

type seedBook struct {
	title  string
	author string
	readOn string
	rating int
}

var seedBooks = []seedBook{
	{"Pride and Prejudice", "Jane Austen", "2024-01-14", 5},
	{"The Adventures of Sherlock Holmes", "Arthur Conan Doyle", "2024-02-02", 5},
	{"Meditations", "Marcus Aurelius", "2024-03-21", 4},
	{"The Time Machine", "H. G. Wells", "2024-04-09", 4},
	{"Walden", "Henry David Thoreau", "2024-05-30", 3},
	{"Frankenstein", "Mary Shelley", "2024-07-18", 5},
	{"The Art of War", "Sun Tzu", "", 4},
	{"Dracula", "Bram Stoker", "2024/09/05", 4},
}

func main() {
	dbPath := flag.String("db", defaultSeedDatabasePath, "path to the seed database file")
	flag.Parse()

	log.Printf("Generating seed database at %s...", *dbPath)

	// Delete existing seed database to start fresh
	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing seed database: %v", err)
	}

	db, err := database.NewDatabase(*dbPath, "")
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	repo := books.NewRepository(db.DB)
	for _, b := range seedBooks {
		id, err := repo.Insert(b.title, b.author, b.readOn, b.rating)
		if err != nil {
			log.Printf("Failed to save book %s: %v", b.title, err)
			continue
		}
		log.Printf("Saved: %s by %s (id %d)", b.title, b.author, id)
	}

	log.Printf("Seed database ready at %s", *dbPath)
}
