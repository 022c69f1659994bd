package main

import (
	"encoding/json"
	"os"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"walletroast/internal/metrics"
	"walletroast/internal/models"
	"walletroast/internal/price"
	"walletroast/pkg/config"
	"walletroast/schedule"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file found, relying on process environment")
	}

	log.SetFormatter(&log.JSONFormatter{})
	log.SetLevel(log.InfoLevel)

	// Initialize database
	config.InitDB()

	// Initialize RabbitMQ
	config.InitRabbitMQ()
	defer config.RabbitMQ.Close()

	// Periodic jobs: rank refresh every five minutes, price warm hourly
	oracle := price.NewOracle(os.Getenv("COINGECKO_API_KEY"))

	c := cron.New()
	if _, err := c.AddFunc("*/5 * * * *", func() {
		if err := schedule.RefreshRanks(); err != nil {
			log.Errorf("Rank refresh job failed: %v", err)
		}
	}); err != nil {
		log.Fatal("Failed to register rank refresh job: ", err)
	}
	if _, err := c.AddFunc("@hourly", func() {
		schedule.WarmSolPrice(oracle)
	}); err != nil {
		log.Fatal("Failed to register price warm job: ", err)
	}
	c.Start()
	defer c.Stop()

	// Create consumer for wallet snapshot queue
	msgConsumer, err := config.NewConsumer(config.AnalysisQueue)
	if err != nil {
		log.Fatal("Failed to create consumer: ", err)
	}
	defer msgConsumer.Close()

	log.Info("Wallet snapshot worker started, waiting for messages...")

	err = msgConsumer.Consume(func(msg []byte) error {
		var snap models.WalletSnapshot
		if err := json.Unmarshal(msg, &snap); err != nil {
			log.Errorf("Failed to unmarshal snapshot message: %v", err)
			return err
		}

		if err := models.UpsertWalletSnapshot(config.DB, snap); err != nil {
			log.Errorf("Failed to upsert snapshot for %s: %v", snap.Address, err)
			metrics.RecordDatabaseOperation("upsert", "failed")
			return err
		}

		metrics.RecordDatabaseOperation("upsert", "success")
		log.Infof("Snapshot stored for %s (score %d)", snap.Address, snap.Score)
		return nil
	})

	if err != nil {
		log.Fatal("Failed to start consumer: ", err)
	}
}
