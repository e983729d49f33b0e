package mongo

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/1122padelclub/padel-app-sub002/internal/domain"
	reservationRepo "github.com/1122padelclub/padel-app-sub002/internal/infra/storage/reservation"
	tableRepo "github.com/1122padelclub/padel-app-sub002/internal/infra/storage/table"
	venueRepo "github.com/1122padelclub/padel-app-sub002/internal/infra/storage/venue"
)

// Ошибки "не найдено" общие с Postgres хранилищем, чтобы сервисы не зависели от драйвера

// TableRepository столики в коллекции tables
type TableRepository struct {
	collection *mongo.Collection
}

// ListByVenue возвращает все столики заведения
func (r *TableRepository) ListByVenue(ctx context.Context, venueID string) ([]*domain.Table, error) {
	docs, err := findAll(ctx, r.collection, bson.M{"venueId": venueID})
	if err != nil {
		return nil, fmt.Errorf("ListByVenue - %w", err)
	}

	tables := make([]*domain.Table, 0, len(docs))
	for _, doc := range docs {
		tables = append(tables, decodeTable(doc))
	}
	return tables, nil
}

// GetByID получает столик по ID
func (r *TableRepository) GetByID(ctx context.Context, id string) (*domain.Table, error) {
	doc, err := findOne(ctx, r.collection, idFilter(id))
	if err == mongo.ErrNoDocuments {
		return nil, tableRepo.ErrTableNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("GetByID - %w", err)
	}
	return decodeTable(doc), nil
}

// Create создает столик
func (r *TableRepository) Create(ctx context.Context, table *domain.Table) (*domain.Table, error) {
	if table.ID == "" {
		table.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	table.CreatedAt, table.UpdatedAt = now, now

	if _, err := r.collection.InsertOne(ctx, encodeTable(table)); err != nil {
		return nil, fmt.Errorf("%w: Create - insert table: %v", ErrQuery, err)
	}
	return table, nil
}

// Update обновляет столик
func (r *TableRepository) Update(ctx context.Context, table *domain.Table) error {
	set := bson.M{
		"number":    table.Number,
		"capacity":  table.Capacity,
		"updatedAt": time.Now().UTC(),
	}
	if table.IsActive != nil {
		set["isActive"] = *table.IsActive
	}

	result, err := r.collection.UpdateOne(ctx, idFilter(table.ID), bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("%w: Update - update table: %v", ErrQuery, err)
	}
	if result.MatchedCount == 0 {
		return tableRepo.ErrTableNotFound
	}
	return nil
}

// ReservationRepository бронирования в коллекции reservations
type ReservationRepository struct {
	collection *mongo.Collection
}

// Create создает бронирование
func (r *ReservationRepository) Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	if reservation.ID == "" {
		reservation.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	reservation.CreatedAt, reservation.UpdatedAt = now, now

	if _, err := r.collection.InsertOne(ctx, encodeReservation(reservation)); err != nil {
		return nil, fmt.Errorf("%w: Create - insert reservation: %v", ErrQuery, err)
	}
	return reservation, nil
}

// GetByID получает бронирование по ID
func (r *ReservationRepository) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	doc, err := findOne(ctx, r.collection, idFilter(id))
	if err == mongo.ErrNoDocuments {
		return nil, reservationRepo.ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("GetByID - %w", err)
	}
	return decodeReservation(doc), nil
}

// ListByWindow получает бронирования, которые могут касаться окна
// Точное пересечение проверяет движок после нормализации
func (r *ReservationRepository) ListByWindow(ctx context.Context, window domain.ReservationWindow) ([]*domain.Reservation, error) {
	docs, err := findAll(ctx, r.collection, windowFilter(window))
	if err != nil {
		return nil, fmt.Errorf("ListByWindow - %w", err)
	}

	reservations := make([]*domain.Reservation, 0, len(docs))
	for _, doc := range docs {
		reservations = append(reservations, decodeReservation(doc))
	}
	return reservations, nil
}

// UpdateStatus меняет статус бронирования
func (r *ReservationRepository) UpdateStatus(ctx context.Context, id string, status domain.ReservationStatus) error {
	update := bson.M{"$set": bson.M{"status": string(status), "updatedAt": time.Now().UTC()}}

	result, err := r.collection.UpdateOne(ctx, idFilter(id), update)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - update reservation: %v", ErrQuery, err)
	}
	if result.MatchedCount == 0 {
		return reservationRepo.ErrReservationNotFound
	}
	return nil
}

// VenueRepository настройки заведений, _id документа - ID заведения
type VenueRepository struct {
	collection *mongo.Collection
}

// GetByVenueID получает настройки заведения
func (r *VenueRepository) GetByVenueID(ctx context.Context, venueID string) (*domain.VenueSettings, error) {
	doc, err := findOne(ctx, r.collection, bson.M{"_id": venueID})
	if err == mongo.ErrNoDocuments {
		return nil, venueRepo.ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("GetByVenueID - %w", err)
	}
	return decodeVenueSettings(doc), nil
}

// Upsert создает или перезаписывает настройки заведения
func (r *VenueRepository) Upsert(ctx context.Context, settings *domain.VenueSettings) (*domain.VenueSettings, error) {
	now := time.Now().UTC()
	if settings.CreatedAt.IsZero() {
		settings.CreatedAt = now
	}
	settings.UpdatedAt = now

	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, bson.M{"_id": settings.VenueID}, encodeVenueSettings(settings), opts); err != nil {
		return nil, fmt.Errorf("%w: Upsert - replace settings: %v", ErrQuery, err)
	}
	return settings, nil
}

// windowFilter фильтр бронирований окна для всех форм хранения времени
func windowFilter(window domain.ReservationWindow) bson.M {
	earliest := window.From.Add(-time.Duration(domain.MaxDurationMinutes) * time.Minute)

	quoted := make([]string, len(window.Dates))
	for i, d := range window.Dates {
		quoted[i] = regexp.QuoteMeta(d)
	}
	datePrefix := primitive.Regex{Pattern: "^(" + strings.Join(quoted, "|") + ")"}

	return bson.M{
		"venueId": window.VenueID,
		"$or": bson.A{
			bson.M{"startAt": bson.M{"$gte": earliest, "$lt": window.To}},
			bson.M{"startAt.seconds": bson.M{"$gte": earliest.Unix(), "$lt": window.To.Unix()}},
			bson.M{"startAt": datePrefix},
			bson.M{"reservationDate": datePrefix},
			bson.M{"reservationDate": bson.M{"$gte": window.From.AddDate(0, 0, -1), "$lt": window.To}},
			bson.M{
				"startAt":         nil,
				"reservationDate": bson.M{"$in": bson.A{nil, ""}},
				"createdAt":       bson.M{"$gte": window.From.AddDate(0, 0, -1), "$lt": window.To},
			},
		},
	}
}

// idFilter ищет по строковому _id и по ObjectID для старых документов
func idFilter(id string) bson.M {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return bson.M{"_id": bson.M{"$in": bson.A{id, oid}}}
	}
	return bson.M{"_id": id}
}

func findOne(ctx context.Context, collection *mongo.Collection, filter bson.M) (bson.M, error) {
	var doc bson.M
	err := collection.FindOne(ctx, filter).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQuery, err)
	}
	return doc, nil
}

func findAll(ctx context.Context, collection *mongo.Collection, filter bson.M) ([]bson.M, error) {
	cursor, err := collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQuery, err)
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return docs, nil
}
