package main

import (
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"walletroast/internal/analyzer"
	"walletroast/internal/handlers"
	"walletroast/internal/price"
	"walletroast/internal/roast"
	"walletroast/internal/routes"
	"walletroast/pkg/config"
	"walletroast/pkg/helius"
)

func main() {
	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file found, relying on process environment")
	}

	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetLevel(log.InfoLevel)

	// Initialize database
	config.InitDB()
	config.ExecuteMigrations()

	// Initialize RabbitMQ (optional, will log warning if not configured)
	var publisher analyzer.Publisher
	if os.Getenv("RABBITMQ_HOST") != "" {
		config.InitRabbitMQ()
		defer func() {
			if config.RabbitMQ != nil {
				config.RabbitMQ.Close()
			}
		}()

		pub, err := config.NewPublisher()
		if err != nil {
			log.Warnf("Failed to create publisher, snapshots stay synchronous: %v", err)
		} else {
			defer pub.Close()
			publisher = pub
		}
		log.Info("RabbitMQ initialized successfully")
	} else {
		log.Info("RabbitMQ not configured, skipping initialization")
	}

	heliusClient := helius.NewClient(os.Getenv("HELIUS_API_KEY"))
	priceOracle := price.NewOracle(os.Getenv("COINGECKO_API_KEY"))
	roaster := roast.NewGenerator(os.Getenv("OPENAI_API_KEY"))

	handlers.Analysis = analyzer.New(heliusClient, priceOracle, roaster, config.DB, publisher)
	handlers.Roaster = roaster

	// Set up router
	r := routes.SetupRouter()

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
