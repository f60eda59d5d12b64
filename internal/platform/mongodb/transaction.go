package mongodb

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/placeshare/places-api/internal/platform/logger"
	"github.com/placeshare/places-api/internal/store"
)

// SessionTxRunner implements store.TxRunner using MongoDB driver
// sessions. The session is carried by the context handed to fn, so every
// collection operation performed with that context joins the same
// multi-document transaction.
type SessionTxRunner struct {
	client *mongo.Client
}

// NewSessionTxRunner creates a TxRunner backed by the given client.
func NewSessionTxRunner(client *mongo.Client) *SessionTxRunner {
	return &SessionTxRunner{client: client}
}

var _ store.TxRunner = (*SessionTxRunner)(nil)

// RunInTransaction executes fn inside a session transaction. If fn
// returns an error the transaction is aborted and the error is returned
// unchanged; session start and commit failures are wrapped in
// store.ErrTransactionFailed.
func (r *SessionTxRunner) RunInTransaction(ctx context.Context, fn store.TxFn) error {
	log := logger.FromContext(ctx)

	session, err := r.client.StartSession()
	if err != nil {
		log.Error("failed to start mongo session",
			slog.String("error", err.Error()))
		return fmt.Errorf("%w: start session: %v", store.ErrTransactionFailed, err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	if err != nil {
		log.Debug("transaction aborted",
			slog.String("error", err.Error()))
		return err
	}

	log.Debug("transaction committed successfully")
	return nil
}
