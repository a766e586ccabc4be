package accounting

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// RemoveTransaction deletes a transaction owned by the user and drops
// it from the session in place; no re-fetch is needed since removal
// cannot change the order of the remaining entries.
func (a *Aggregator) RemoveTransaction(ctx context.Context, userID, transactionID uuid.UUID) error {
	if err := a.verifyTransactionOwnership(ctx, userID, transactionID); err != nil {
		return err
	}

	if err := a.transactionRepo.Delete(ctx, transactionID); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	a.withSession(userID, func(s *session) {
		kept := s.transactions[:0:0]
		for _, t := range s.transactions {
			if t.ID != transactionID {
				kept = append(kept, t)
			}
		}
		s.transactions = kept
	})

	return nil
}
