package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Названия коллекций
const (
	tablesCollection       = "tables"
	reservationsCollection = "reservations"
	settingsCollection     = "venue_settings"
)

// Store подключение к MongoDB
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect подключается к MongoDB и проверяет соединение
func Connect(ctx context.Context, uri, database string, timeout time.Duration) (*Store, error) {
	clientOptions := options.Client().ApplyURI(uri).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("%w: connect: %v", ErrConnect, err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("%w: ping: %v", ErrConnect, err)
	}

	return &Store{client: client, db: client.Database(database)}, nil
}

// Close отключается от MongoDB
func (s *Store) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}

// Tables репозиторий столиков
func (s *Store) Tables() *TableRepository {
	return &TableRepository{collection: s.db.Collection(tablesCollection)}
}

// Reservations репозиторий бронирований
func (s *Store) Reservations() *ReservationRepository {
	return &ReservationRepository{collection: s.db.Collection(reservationsCollection)}
}

// Venues репозиторий настроек заведений
func (s *Store) Venues() *VenueRepository {
	return &VenueRepository{collection: s.db.Collection(settingsCollection)}
}
