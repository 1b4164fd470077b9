package main

import (
	"context"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"bookstore/internal/config"
	"bookstore/internal/db"
	"bookstore/internal/handler"
	"bookstore/internal/model"
	"bookstore/internal/repository"
)

// practiceUsers are the fixed users seeded for local practice.
// The plaintext passwords are hashed before insert.
var practiceUsers = []struct {
	Name     string
	Email    string
	Password string
}{
	{Name: "Ana Torres", Email: "ana@example.com", Password: "password123"},
	{Name: "Luis Pérez", Email: "luis@example.com", Password: "password123"},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	bookRepo := repository.NewBookRepository(gormDB)

	createdUsers := 0
	for _, u := range practiceUsers {
		if _, err := userRepo.FindByEmail(ctx, u.Email); err == nil {
			continue
		} else if err != gorm.ErrRecordNotFound {
			log.Fatalf("Failed to check user %s: %v", u.Email, err)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), 10)
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}
		user := &model.User{Name: u.Name, Email: u.Email, PasswordHash: string(hash)}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create user %s: %v", u.Email, err)
		}
		createdUsers++
	}
	log.Printf("Seeded %d users", createdUsers)

	createdBooks := 0
	catalog := handler.PracticeCatalog()
	for i := range catalog {
		created, err := bookRepo.CreateIfAbsent(ctx, &catalog[i])
		if err != nil {
			log.Fatalf("Failed to seed book %q: %v", catalog[i].Title, err)
		}
		if created {
			createdBooks++
		}
	}
	log.Printf("Seeded %d books", createdBooks)

	log.Println("Seed completed")
}
