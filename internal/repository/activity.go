package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/glowcart/glowcart-api/internal/model"
)

// ActivityLogRepository records handled requests for auditing.
type ActivityLogRepository interface {
	Insert(ctx context.Context, entry *model.ActivityLog) error
}

const activityLogCollection = "activity_logs"

type activityLogMongoRepository struct {
	db *mongo.Database
}

func NewActivityLogMongoRepository(db *mongo.Database) ActivityLogRepository {
	return &activityLogMongoRepository{db: db}
}

func (r *activityLogMongoRepository) Insert(ctx context.Context, entry *model.ActivityLog) error {
	_, err := r.db.Collection(activityLogCollection).InsertOne(ctx, entry)
	return err
}
