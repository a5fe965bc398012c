package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"billfold/internal/config"
)

const (
	migrationsSource = "file://db/migrations"
	usage            = "usage: migrate [up|down|steps N|force V|version]"
)

func main() {
	log.SetPrefix("billfold-migrate: ")
	log.SetFlags(0)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	m, err := migrate.New(migrationsSource, cfg.DB.DSN())
	if err != nil {
		log.Fatalf("opening %s against the invoice store: %v", migrationsSource, err)
	}
	defer m.Close()

	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(1)
	}

	switch cmd := os.Args[1]; cmd {
	case "up":
		if err := m.Up(); errors.Is(err, migrate.ErrNoChange) {
			log.Println("schema already current")
		} else if err != nil {
			log.Fatalf("up: %v", err)
		} else {
			log.Println("schema migrated up")
		}

	case "down":
		if err := m.Down(); errors.Is(err, migrate.ErrNoChange) {
			log.Println("nothing to revert")
		} else if err != nil {
			log.Fatalf("down: %v", err)
		} else {
			log.Println("schema reverted")
		}

	case "steps":
		n, err := argInt("steps")
		if err != nil {
			log.Fatal(err)
		}
		if err := m.Steps(n); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalf("steps %d: %v", n, err)
		}
		log.Printf("applied %d migration steps", n)

	case "force":
		v, err := argInt("force")
		if err != nil {
			log.Fatal(err)
		}
		if err := m.Force(v); err != nil {
			log.Fatalf("force %d: %v", v, err)
		}
		log.Printf("schema version forced to %d", v)

	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			log.Fatalf("reading schema version: %v", err)
		}
		fmt.Printf("version: %d, dirty: %v\n", version, dirty)

	default:
		fmt.Printf("unknown command: %s\n%s\n", cmd, usage)
		os.Exit(1)
	}
}

func argInt(cmd string) (int, error) {
	if len(os.Args) < 3 {
		return 0, fmt.Errorf("%s requires a number argument", cmd)
	}
	n, err := strconv.Atoi(os.Args[2])
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a number", cmd, os.Args[2])
	}
	return n, nil
}
