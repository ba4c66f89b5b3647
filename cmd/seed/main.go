package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/oksasatya/car-collection/config"
	"github.com/oksasatya/car-collection/internal/application"
	pginfra "github.com/oksasatya/car-collection/internal/infrastructure/postgres"
	"github.com/oksasatya/car-collection/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)

	ctx := context.Background()
	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), pginfra.PoolOptions{
		MaxConns:        cfg.DBMaxConns,
		MinConns:        cfg.DBMinConns,
		MaxConnLifetime: cfg.DBMaxConnLife,
	})
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	svc := application.NewService(
		pginfra.NewUserRepository(pool),
		application.NewPasswordEncoder(cfg.PasswordHashing),
		logger,
	)

	in := application.SignupInput{
		Email:     "demo@example.com",
		Password:  "password123",
		FirstName: "Demo",
		LastName:  "User",
	}
	u, err := svc.Signup(ctx, in)
	if errors.Is(err, application.ErrEmailTaken) {
		fmt.Printf("demo user already exists: email=%s\n", in.Email)
		return
	}
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%d email=%s\n", u.ID, u.Email)
}
