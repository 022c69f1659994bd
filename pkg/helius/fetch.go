package helius

import (
	"context"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"
)

// ErrInsufficientData is reported when every lookup method failed and no
// balance or transaction evidence could be established for the address.
// A wallet that answers successfully but is simply empty is not an error;
// it comes back as empty data.
var ErrInsufficientData = errors.New("insufficient on-chain data for address")

// GetWalletData aggregates everything needed for one analysis: balance,
// signature list (with fallbacks), transaction details for a bounded
// prefix, and token holdings. Individual lookup failures degrade to empty
// sections; only when every lookup fails does the fetch report
// ErrInsufficientData.
func (c *Client) GetWalletData(ctx context.Context, address string, maxTransactions int) (*WalletData, error) {
	data := &WalletData{}
	anySucceeded := false

	balance, err := c.GetBalance(ctx, address)
	if err != nil {
		log.WithError(err).WithField("address", address).Warn("Balance lookup failed")
	} else {
		data.BalanceSol = balance
		anySucceeded = true
	}

	signatures, sigOK := c.fetchSignaturesWithFallback(ctx, address)
	data.Signatures = signatures
	anySucceeded = anySucceeded || sigOK

	if maxTransactions <= 0 || maxTransactions > detailPrefix {
		maxTransactions = detailPrefix
	}
	data.Transactions = c.fetchTransactionDetails(ctx, data.Signatures, maxTransactions)

	// Final fallback: the REST endpoint produces transactions directly,
	// without signature records.
	if len(data.Signatures) == 0 && len(data.Transactions) == 0 {
		transactions, err := c.GetEnhancedTransactionsByAddress(ctx, address, signaturePageLimit)
		if err != nil {
			log.WithError(err).WithField("address", address).Warn("Enhanced transaction fallback failed")
		} else {
			data.Transactions = transactions
			anySucceeded = true
		}
	}

	tokens, err := c.GetTokenAccounts(ctx, address)
	if err != nil {
		log.WithError(err).WithField("address", address).Warn("Token account lookup failed")
	} else {
		data.Tokens = tokens
		anySucceeded = true
	}

	if !anySucceeded {
		return nil, ErrInsufficientData
	}

	return data, nil
}

// fetchSignaturesWithFallback tries the primary signature-list method,
// then the legacy one. First non-empty result wins. The second return
// reports whether either call answered at all.
func (c *Client) fetchSignaturesWithFallback(ctx context.Context, address string) ([]SignatureRecord, bool) {
	signatures, err := c.GetSignatures(ctx, address, signaturePageLimit)
	if err != nil {
		log.WithError(err).WithField("address", address).Warn("Signature lookup failed")
	}
	if len(signatures) > 0 {
		return signatures, true
	}
	primaryOK := err == nil

	legacy, legacyErr := c.GetLegacySignatures(ctx, address, signaturePageLimit)
	if legacyErr != nil {
		log.WithError(legacyErr).WithField("address", address).Debug("Legacy signature lookup failed")
	}
	return legacy, primaryOK || legacyErr == nil
}

// fetchTransactionDetails expands the first maxTransactions signatures in
// fixed-size batches, sleeping between batches to respect the provider's
// request budget.
func (c *Client) fetchTransactionDetails(ctx context.Context, signatures []SignatureRecord, maxTransactions int) []EnhancedTransaction {
	if len(signatures) == 0 {
		return nil
	}
	if len(signatures) > maxTransactions {
		signatures = signatures[:maxTransactions]
	}

	var transactions []EnhancedTransaction
	for start := 0; start < len(signatures); start += detailBatchSize {
		end := start + detailBatchSize
		if end > len(signatures) {
			end = len(signatures)
		}

		for _, sig := range signatures[start:end] {
			tx, err := c.GetTransaction(ctx, sig.Signature)
			if err != nil {
				log.WithError(err).WithField("signature", sig.Signature).Debug("Transaction detail lookup failed")
				continue
			}
			transactions = append(transactions, *tx)
		}

		if end < len(signatures) {
			select {
			case <-time.After(interBatchDelay):
			case <-ctx.Done():
				return transactions
			}
		}
	}

	return transactions
}
