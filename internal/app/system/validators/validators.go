// internal/app/system/validators/validators.go
package validators

import (
	"context"
	"errors"
	"fmt"

	"github.com/dalemusser/tetsupaint/internal/app/system/inputval"
	"github.com/dalemusser/tetsupaint/internal/domain/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const (
	inquiriesColl = "inquiries"

	codeNamespaceExists = 48
	codeCommandNotFound = 59
	codeNotImplemented  = 115
)

// EnsureAll creates the inquiries collection with its JSON-Schema validator.
// When the collection already exists the validator is refreshed with collMod.
// Servers without validator support (some DocumentDB versions) keep the
// collection unvalidated and a message is logged.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	schema := inquiriesSchema()

	opts := options.CreateCollection().
		SetValidator(schema).
		SetValidationLevel("moderate").
		SetValidationAction("error")
	err := db.CreateCollection(ctx, inquiriesColl, opts)
	if err == nil {
		zap.L().Info("created collection", zap.String("collection", inquiriesColl))
		return nil
	}
	if commandCode(err) != codeNamespaceExists {
		return fmt.Errorf("%s: %w", inquiriesColl, err)
	}

	cmd := bson.D{
		{Key: "collMod", Value: inquiriesColl},
		{Key: "validator", Value: schema},
		{Key: "validationLevel", Value: "moderate"},
		{Key: "validationAction", Value: "error"},
	}
	if err := db.RunCommand(ctx, cmd).Err(); err != nil {
		switch commandCode(err) {
		case codeCommandNotFound, codeNotImplemented:
			zap.L().Info("validator skipped (unsupported)", zap.String("collection", inquiriesColl))
			return nil
		}
		return fmt.Errorf("%s: %w", inquiriesColl, err)
	}
	zap.L().Info("validator ensured", zap.String("collection", inquiriesColl))
	return nil
}

// commandCode returns the server error code carried by err, or 0.
func commandCode(err error) int32 {
	var ce mongo.CommandError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return 0
}

/* ------------------------- JSON-Schema docs ---------------------- */

func inquiriesSchema() bson.M {
	// The subject enum comes from the canonical list in the domain models.
	subjects := bson.A{}
	for _, s := range models.InquirySubjects {
		subjects = append(subjects, s)
	}

	nonBlank := func(max int) bson.M {
		return bson.M{"bsonType": "string", "minLength": 1, "maxLength": max, "pattern": ".*\\S.*"}
	}

	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"reference", "name", "email", "subject", "message", "notified", "created_at"},
			"properties": bson.M{
				"reference":   bson.M{"bsonType": "string", "minLength": 1},
				"name":        nonBlank(inputval.MaxNameLen),
				"email":       bson.M{"bsonType": "string", "minLength": 3, "maxLength": inputval.MaxEmailLen, "pattern": "^[^@\\s]+@[^@\\s]+$"},
				"subject":     bson.M{"enum": subjects},
				"message":     nonBlank(inputval.MaxMessageLen),
				"client_hash": bson.M{"bsonType": "string"},
				"user_agent":  bson.M{"bsonType": "string"},
				"notified":    bson.M{"bsonType": "bool"},
				"notified_at": bson.M{"bsonType": "date"},
				"created_at":  bson.M{"bsonType": "date"},
			},
		},
	}
}
