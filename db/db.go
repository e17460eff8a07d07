package db

import (
	"context"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	Client *mongo.Client

	UserCollection          *mongo.Collection
	SalonCollection         *mongo.Collection
	ServiceCollection       *mongo.Collection
	BookingCollection       *mongo.Collection
	WalkInCollection        *mongo.Collection
	TransactionCollection   *mongo.Collection
	AvailabilityCollection  *mongo.Collection
	StaffEarningsCollection *mongo.Collection
	NotificationCollection  *mongo.Collection
)

func Connect() {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		log.Fatalf("Failed to ping MongoDB: %v", err)
	}

	Client = client
	database := client.Database("hawurwanda")

	UserCollection = database.Collection("users")
	SalonCollection = database.Collection("salons")
	ServiceCollection = database.Collection("services")
	BookingCollection = database.Collection("bookings")
	WalkInCollection = database.Collection("walkins")
	TransactionCollection = database.Collection("transactions")
	AvailabilityCollection = database.Collection("availability")
	StaffEarningsCollection = database.Collection("staffearnings")
	NotificationCollection = database.Collection("notifications")

	if err := EnsureIndexes(context.Background()); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	log.Println("Connected to MongoDB")
}

// UserIndexes defines the users collection indexes. Accounts are created
// with email or phone, storing "" for the missing one, so the uniqueness
// indexes are partial over non-empty values: a second phone-only account
// must not collide on email "".
func UserIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_email").
				SetPartialFilterExpression(bson.M{"email": bson.M{"$gt": ""}}),
		},
		{
			Keys: bson.D{{Key: "phone", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_phone").
				SetPartialFilterExpression(bson.M{"phone": bson.M{"$gt": ""}}),
		},
		{Keys: bson.D{{Key: "salonId", Value: 1}}},
		{Keys: bson.D{{Key: "role", Value: 1}}},
	}
}

// EnsureIndexes creates the indexes the application relies on. The unique
// (barberId, timeSlot) index on bookings is the real safety net against
// double-booking races; the handler pre-check only exists for a friendly
// error message.
func EnsureIndexes(ctx context.Context) error {
	_, err := BookingCollection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			// Partial so cancelled and completed bookings release the slot.
			Keys: bson.D{{Key: "barberId", Value: 1}, {Key: "timeSlot", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_barber_timeslot").
				SetPartialFilterExpression(bson.M{"status": bson.M{"$in": []string{"pending", "confirmed"}}}),
		},
		{Keys: bson.D{{Key: "clientId", Value: 1}}},
		{Keys: bson.D{{Key: "salonId", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	})
	if err != nil {
		return err
	}

	_, err = StaffEarningsCollection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "staffId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_staff_date"),
		},
		{Keys: bson.D{{Key: "salonId", Value: 1}, {Key: "date", Value: -1}}},
	})
	if err != nil {
		return err
	}

	_, err = AvailabilityCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "barberId", Value: 1}, {Key: "salonId", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_barber_salon"),
	})
	if err != nil {
		return err
	}

	_, err = UserCollection.Indexes().CreateMany(ctx, UserIndexes())
	if err != nil {
		return err
	}

	_, err = TransactionCollection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "transactionId", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_txn_id"),
		},
		{Keys: bson.D{{Key: "bookingId", Value: 1}}},
	})
	if err != nil {
		return err
	}

	_, err = NotificationCollection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "toUserId", Value: 1}, {Key: "read", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	})
	return err
}
