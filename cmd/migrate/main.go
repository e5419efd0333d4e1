package main

import (
	"fmt"
	"os"
	"passreset/internal/db"
)

const usage = "usage: migrate up|down"

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	databaseURL := os.Getenv("POSTGRESQL_URL")
	if databaseURL == "" {
		fmt.Fprintln(os.Stderr, "error: POSTGRESQL_URL must be set")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "up":
		version, err := db.ApplyMigrations(databaseURL)
		exitOnError(err)
		fmt.Printf("schema is at version %d\n", version)
	case "down":
		exitOnError(db.RollbackMigrations(databaseURL))
		fmt.Println("schema has been dropped")
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
