package mongo

import (
	"context"
	"errors"
	"fmt"
	apperrors "retreat/pkg/errors"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/x/mongo/driver/topology"
)

const transientTransactionLabel = "TransientTransactionError"

// TransactionFunc runs inside a transaction. The ctx it receives is bound to the
// session, so repository calls made with it join the transaction.
type TransactionFunc func(ctx context.Context) error

type TransactionManager interface {
	ExecuteTransaction(ctx context.Context, fn TransactionFunc) error
}

type mongoTransactionManager struct {
	client *mongo.Client
}

func NewTransactionManager(client *mongo.Client) TransactionManager {
	return &mongoTransactionManager{
		client: client,
	}
}

// ExecuteTransaction commits fn atomically. The driver retries fn on transient
// transaction errors such as write conflicts, so fn must be safe to re-run.
func (m *mongoTransactionManager) ExecuteTransaction(ctx context.Context, fn TransactionFunc) error {
	session, err := m.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (any, error) {
		return nil, fn(sessCtx)
	})

	if err != nil {
		if apperrors.IsAppError(err) {
			return err
		}
		return fmt.Errorf("transaction failed: %w", err)
	}

	return nil
}

// IsDuplicateKey reports a unique index violation.
func IsDuplicateKey(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}

// IsTransient reports driver errors that are worth retrying: lost connections,
// timeouts, failed server selection and transactions aborted with the transient label.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || mongo.IsTimeout(err) || mongo.IsNetworkError(err) {
		return true
	}
	if errors.Is(err, mongo.ErrClientDisconnected) {
		return true
	}

	var selErr topology.ServerSelectionError
	if errors.As(err, &selErr) {
		return true
	}

	var labeled mongo.LabeledError
	if errors.As(err, &labeled) && labeled.HasErrorLabel(transientTransactionLabel) {
		return true
	}
	return false
}
