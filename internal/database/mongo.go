// internal/database/mongo.go
package database

import (
	"context"
	"fmt"
	"time"

	"prestige-motors-api-server/config"
	"prestige-motors-api-server/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

const connectTimeout = 5 * time.Second

// MongoStore is the structured catalog store.
type MongoStore struct {
	db  *mongo.Database
	log *zap.SugaredLogger
}

// Open connects to MongoDB, brings the schema up to SchemaVersion and
// seeds empty collections with the demo dataset. A nil store with an error
// means the structured store is unavailable and the caller must run on the
// snapshot store alone.
func Open(ctx context.Context, cfg config.MongoConfig, log *zap.SugaredLogger) (*MongoStore, error) {
	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	s := &MongoStore{db: client.Database(cfg.DBName), log: log}
	if err := s.ensureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	if err := s.seed(ctx); err != nil {
		return nil, fmt.Errorf("seed demo data: %w", err)
	}
	return s, nil
}

// ensureSchema compares the stored schema version against SchemaVersion
// and (re)creates the index definitions when it is behind. Documents are
// never dropped on upgrade.
func (s *MongoStore) ensureSchema(ctx context.Context) error {
	var info struct {
		Version int `bson:"version"`
	}
	err := s.db.Collection(collSchemaInfo).FindOne(ctx, bson.M{"_id": schemaInfoKey}).Decode(&info)
	if err != nil && err != mongo.ErrNoDocuments {
		return err
	}
	if info.Version >= SchemaVersion {
		return nil
	}

	s.log.Infof("Upgrading catalog schema from version %d to %d", info.Version, SchemaVersion)

	// Secondary indexes backing the listing order.
	_, err = s.db.Collection(CollVehicles).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "createdAt", Value: 1}}},
		{Keys: bson.D{{Key: "updatedAt", Value: 1}}},
	})
	if err != nil {
		return err
	}
	_, err = s.db.Collection(CollInquiries).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: 1}},
	})
	if err != nil {
		return err
	}

	_, err = s.db.Collection(collSchemaInfo).UpdateOne(ctx,
		bson.M{"_id": schemaInfoKey},
		bson.M{"$set": bson.M{"version": SchemaVersion}},
		options.Update().SetUpsert(true),
	)
	return err
}

// seed inserts the demo dataset into each collection that is empty. A
// collection with records is never touched, so seeding is idempotent.
func (s *MongoStore) seed(ctx context.Context) error {
	vehicles := s.db.Collection(CollVehicles)
	count, err := vehicles.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if count == 0 {
		s.log.Info("Vehicle collection empty. Seeding demo catalog...")
		docs := make([]interface{}, 0, 3)
		for _, v := range DemoVehicles(time.Now().UnixMilli()) {
			docs = append(docs, v)
		}
		if _, err := vehicles.InsertMany(ctx, docs); err != nil {
			return err
		}
	} else {
		s.log.Info("Vehicle collection already populated. Seeding skipped.")
	}

	users := s.db.Collection(CollUsers)
	count, err = users.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if count == 0 {
		s.log.Info("User collection empty. Seeding admin account...")
		for _, u := range DemoUsers() {
			if _, err := users.InsertOne(ctx, u); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *MongoStore) Vehicles(ctx context.Context) ([]models.Vehicle, error) {
	cursor, err := s.db.Collection(CollVehicles).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var vehicles []models.Vehicle
	if err := cursor.All(ctx, &vehicles); err != nil {
		return nil, err
	}
	if vehicles == nil {
		vehicles = []models.Vehicle{}
	}
	return vehicles, nil
}

func (s *MongoStore) VehicleByID(ctx context.Context, id string) (*models.Vehicle, error) {
	var v models.Vehicle
	err := s.db.Collection(CollVehicles).FindOne(ctx, bson.M{"_id": id}).Decode(&v)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *MongoStore) SaveVehicle(ctx context.Context, v models.Vehicle) error {
	_, err := s.db.Collection(CollVehicles).ReplaceOne(ctx,
		bson.M{"_id": v.ID}, v, options.Replace().SetUpsert(true))
	return err
}

func (s *MongoStore) DeleteVehicle(ctx context.Context, id string) (bool, error) {
	result, err := s.db.Collection(CollVehicles).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return result.DeletedCount > 0, nil
}

func (s *MongoStore) Users(ctx context.Context) ([]models.User, error) {
	cursor, err := s.db.Collection(CollUsers).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

func (s *MongoStore) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := s.db.Collection(CollUsers).FindOne(ctx, bson.M{"_id": username}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// InsertInquiry stores a contact inquiry. Inquiries live outside the
// synchronized vehicle/user pair and are not mirrored to the snapshot.
func (s *MongoStore) InsertInquiry(ctx context.Context, inq models.Inquiry) error {
	_, err := s.db.Collection(CollInquiries).InsertOne(ctx, inq)
	return err
}
