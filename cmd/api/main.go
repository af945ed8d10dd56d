package main

import (
	"context"
	"log"
	"os"

	"github.com/Enterprise-CMCS/managed-care-review-sub003/auth"
	"github.com/Enterprise-CMCS/managed-care-review-sub003/db"
	"github.com/Enterprise-CMCS/managed-care-review-sub003/store"
	"github.com/Enterprise-CMCS/managed-care-review-sub003/submission"
)

func main() {
	ctx := context.Background()

	connString := os.Getenv("DATABASE_URL")
	pool, err := db.NewPool(ctx, connString)
	if err != nil {
		log.Fatalf("bootstrap database pool: %v", err)
	}
	defer pool.Close()

	packageStore := store.New(pool)
	engine := submission.NewEngine(submission.DefaultPolicy())
	authService := auth.NewService(os.Getenv("JWT_SECRET"))

	log.Printf("submission services ready: store=%t engine=%t auth=%t",
		packageStore != nil, engine != nil, authService != nil)
}
