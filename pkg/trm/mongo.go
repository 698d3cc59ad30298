package trm

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

type mongoManager struct {
	client *mongo.Client
}

// NewMongoManager runs callbacks in a multi-document transaction. The callback
// ctx is a mongo.SessionContext, so collection calls made with it join the
// transaction. Requires a replica set or sharded cluster.
func NewMongoManager(client *mongo.Client) Manager {
	return &mongoManager{client: client}
}

func (m *mongoManager) Do(ctx context.Context, callback func(ctx context.Context) error) error {
	if mongo.SessionFromContext(ctx) != nil {
		return callback(ctx)
	}

	session, err := m.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		return nil, callback(sc)
	})
	return err
}
