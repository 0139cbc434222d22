package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tablebook/internal/migrations/mongo/validators"
	"tablebook/pkg/config"
)

const bookingsCollection = "Bookings"

// bookingIndexes returns the index set for the bookings collection. The
// unique slot index is the storage-level guarantee that a slot holds at most
// one booking; its key depends on which slot schema the deployment uses.
func bookingIndexes(slotSchema string) []mongo.IndexModel {
	slotKeys := bson.D{{Key: "date", Value: 1}}
	if slotSchema == config.SlotSchemaDateTimePair {
		slotKeys = append(slotKeys, bson.E{Key: "time", Value: 1})
	}

	return []mongo.IndexModel{
		{
			Keys:    slotKeys,
			Options: options.Index().SetUnique(true).SetName("uniq_slot"),
		},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}
}

func RunMigration(ctx context.Context, client *mongo.Client, dbName, slotSchema string) error {
	db := client.Database(dbName)
	fmt.Printf("🚀 Running Mongo migrations on database: %s\n", dbName)

	if err := ensureCollection(ctx, db, bookingsCollection, validators.BookingValidator); err != nil {
		return fmt.Errorf("failed to ensure collection %s: %w", bookingsCollection, err)
	}
	if err := ensureIndexes(ctx, db, bookingsCollection, bookingIndexes(slotSchema)); err != nil {
		return fmt.Errorf("failed to ensure indexes for %s: %w", bookingsCollection, err)
	}

	fmt.Println("✅ All migrations applied successfully.")
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		fmt.Printf("🆕 Creating collection: %s\n", name)
		opts := options.CreateCollection().SetValidator(validator)
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed creating %s: %w", name, err)
		}
		return nil
	}

	fmt.Printf("ℹ️ Collection %s already exists — updating validator if needed\n", name)
	command := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
	}
	if err := db.RunCommand(ctx, command).Err(); err != nil {
		fmt.Printf("⚠️ Warning: failed updating validator for %s: %v\n", name, err)
	}

	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database, name string, models []mongo.IndexModel) error {
	coll := db.Collection(name)
	if _, err := coll.Indexes().CreateMany(ctx, models); err != nil {
		return err
	}
	fmt.Printf("📚 Ensured indexes for %s\n", name)
	return nil
}
