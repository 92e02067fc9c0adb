package verify

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// PaymentsAPI is the slice of the backend the executor mutates through.
// *client.Client satisfies it.
type PaymentsAPI interface {
	VerifyPayment(ctx context.Context, installmentID, verifierID int64) error
	RejectPayment(ctx context.Context, installmentID int64, reason string, verifierID int64) error
}

// BatchResult partitions a batch by outcome. Order follows the request
// order within each slice.
type BatchResult struct {
	Succeeded []int64
	Failed    []int64
}

// Executor issues verify/reject commands against the backend. After any
// command the caller must re-fetch and re-aggregate; the backend owns the
// resulting status and verifier metadata.
type Executor struct {
	api PaymentsAPI
	log *logrus.Logger
}

// NewExecutor initializes an executor
func NewExecutor(api PaymentsAPI, log *logrus.Logger) *Executor {
	return &Executor{api: api, log: log}
}

// VerifyBatch verifies the given installments one request at a time, in
// order, so the server-side audit trail reflects the batch order. A failed
// installment is recorded and the batch moves on; it never aborts mid-way.
func (e *Executor) VerifyBatch(ctx context.Context, installmentIDs []int64, verifierID int64) BatchResult {
	var result BatchResult
	for _, id := range installmentIDs {
		if err := e.api.VerifyPayment(ctx, id, verifierID); err != nil {
			e.log.Warnf("Verification of installment %d failed: %v", id, err)
			result.Failed = append(result.Failed, id)
			continue
		}
		result.Succeeded = append(result.Succeeded, id)
	}
	return result
}

// Reject refuses one submitted payment. An empty or whitespace reason fails
// locally before any request is made.
func (e *Executor) Reject(ctx context.Context, installmentID int64, reason string, verifierID int64) error {
	if strings.TrimSpace(reason) == "" {
		return fmt.Errorf("rejection reason is required")
	}
	return e.api.RejectPayment(ctx, installmentID, reason, verifierID)
}
