// fotoadmin bootstraps and manages admin accounts. The HTTP API deliberately
// has no way to create an admin, so the first one is made here.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/wijvancees/fotobestel/internal/auth"
	"github.com/wijvancees/fotobestel/internal/config"
	"github.com/wijvancees/fotobestel/internal/db"
	"github.com/wijvancees/fotobestel/internal/domain"
	"github.com/wijvancees/fotobestel/internal/store"
)

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "add-admin":
		cmd := flag.NewFlagSet("add-admin", flag.ExitOnError)
		email := cmd.String("email", "", "email for the new admin")
		password := cmd.String("password", "", "password for the new admin")
		name := cmd.String("name", "", "display name for the new admin")
		cmd.Parse(os.Args[2:])
		if *email == "" || *password == "" || *name == "" {
			fmt.Println("email, password and name are required")
			cmd.PrintDefaults()
			os.Exit(1)
		}
		addAdmin(*email, *password, *name)
	case "promote":
		cmd := flag.NewFlagSet("promote", flag.ExitOnError)
		email := cmd.String("email", "", "email of the account to promote")
		cmd.Parse(os.Args[2:])
		if *email == "" {
			fmt.Println("email is required")
			cmd.PrintDefaults()
			os.Exit(1)
		}
		promote(*email)
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("usage: fotoadmin <add-admin|promote> [flags]")
}

func openUserStore() *store.UserStore {
	cfg := config.Load()
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	return store.NewUserStore(database)
}

func addAdmin(email, password, name string) {
	if len(password) < auth.MinPasswordLength {
		log.Fatalf("password must be at least %d characters", auth.MinPasswordLength)
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	users := openUserStore()
	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		IsAdmin:      true,
		CreatedAt:    time.Now().UTC(),
	}
	if err := users.Create(context.Background(), user); err != nil {
		log.Fatalf("failed to create admin: %v", err)
	}
	fmt.Printf("admin %q created\n", email)
}

func promote(email string) {
	users := openUserStore()
	user, err := users.GetByEmail(context.Background(), email)
	if err != nil {
		log.Fatalf("failed to look up user: %v", err)
	}
	if user == nil {
		log.Fatalf("no account with email %q", email)
	}
	if err := users.SetAdmin(context.Background(), user.ID, true); err != nil {
		log.Fatalf("failed to promote user: %v", err)
	}
	fmt.Printf("%q is now an admin\n", email)
}
