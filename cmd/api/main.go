package main

import (
	"context"
	"flag"
	"log"

	"tienda/internal/config"
	"tienda/internal/domain/model"
	"tienda/internal/events"
	"tienda/internal/handler"
	"tienda/internal/infra/db"
	infraRepo "tienda/internal/infra/repository"
	"tienda/internal/server"
	"tienda/internal/usecase"
	"tienda/internal/validator"

	"github.com/joho/godotenv"
)

func main() {
	seed := flag.Bool("seed", false, "insert the fixture catalog when the products table is empty")
	flag.Parse()

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	gormDB, err := db.Connect(cfg)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	if err := gormDB.AutoMigrate(
		&model.Product{},
		&model.Cart{},
		&model.CartLine{},
	); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	productRepo := infraRepo.NewProductGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)

	if *seed {
		if err := seedCatalog(context.Background(), productRepo, gormDB); err != nil {
			log.Fatalf("seed: %v", err)
		}
	}

	var pub events.Publisher = events.NoopPublisher{}
	if cfg.RabbitMQURL != "" {
		rp, err := events.NewRabbitPublisher(cfg.RabbitMQURL)
		if err != nil {
			log.Fatalf("rabbitmq: %v", err)
		}
		defer rp.Close()
		pub = rp
	}

	productUC := usecase.NewProductUsecase(productRepo, validator.NewProductValidator())
	cartUC := usecase.NewCartUsecase(cartRepo, productRepo)

	productH := handler.NewProductHandler(productUC, pub)
	cartH := handler.NewCartHandler(cartUC)

	e := server.New(productH, cartH)
	if err := server.Start(e, ":"+cfg.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
