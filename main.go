package main

import (
	"log"
	"os"

	"clubreg-backend/conn"
	"clubreg-backend/disciplines"
	"clubreg-backend/login"
	"clubreg-backend/marketing"
	"clubreg-backend/members"
	"clubreg-backend/migrations"
	"clubreg-backend/registration"
	"clubreg-backend/stats"
	"clubreg-backend/subscriptions"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("[BOOT] no .env file found, relying on system environment")
	}

	db, err := conn.NewMySQL()
	if err != nil {
		log.Fatalf("[BOOT] database connection failed: %v", err)
	}
	defer db.Close()

	migrations.Init(db)
	if err := migrations.Migrate(); err != nil {
		log.Fatalf("[BOOT] migrations failed: %v", err)
	}
	if err := migrations.SeedDisciplines(); err != nil {
		log.Fatalf("[BOOT] discipline seed failed: %v", err)
	}
	if err := migrations.SeedDefaultPlans(); err != nil {
		log.Fatalf("[BOOT] plan seed failed: %v", err)
	}

	discRepo := disciplines.NewRepository(db)
	memberRepo := members.NewRepository(db)
	subsRepo := subscriptions.NewRepository(db)
	stripeSvc := subscriptions.NewStripeFromEnv(subsRepo)
	if stripeSvc == nil {
		log.Println("[BOOT] STRIPE_SECRET_KEY not set, payments disabled")
	}

	feed := registration.NewFeed()
	store := registration.NewSQLStore(db, memberRepo, subsRepo)

	marketing.NewService(db).Start()

	r := gin.Default()
	disciplines.NewHandler(discRepo).RegisterRoutes(r)
	subscriptions.NewHandler(subsRepo, stripeSvc).RegisterRoutes(r)
	members.NewHandler(memberRepo, subsRepo).RegisterRoutes(r)
	registration.NewHandler(subsRepo, store, feed).RegisterRoutes(r)
	registration.RegisterReferenceRoutes(r)
	stats.NewHandler(db).RegisterRoutes(r)
	r.POST("/admin/login", login.Handler)
	r.POST("/admin/logout", login.LogoutHandler)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("[BOOT] club registration API listening on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("[BOOT] server failed: %v", err)
	}
}
