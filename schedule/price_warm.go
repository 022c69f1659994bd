package schedule

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"walletroast/internal/price"
)

// WarmSolPrice refreshes the SOL price cache so the first analysis after a
// cache expiry does not pay the CoinGecko round trip.
func WarmSolPrice(oracle *price.Oracle) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	priceUsd := oracle.GetSolPriceUSD(ctx)
	log.Infof("SOL price cache warmed: $%.2f", priceUsd)
}
