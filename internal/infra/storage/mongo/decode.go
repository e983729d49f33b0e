package mongo

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/1122padelclub/padel-app-sub002/internal/domain"
)

// Документы пришли из документной базы разных версий приложения:
// числа бывают int32/int64/double/строкой, моменты времени - BSON date,
// строкой или объектом {seconds, nanoseconds}. Декодирование через bson.M
// принимает все эти формы и не падает на отдельной записи.

func decodeTable(doc bson.M) *domain.Table {
	t := &domain.Table{
		ID:       idString(doc["_id"]),
		VenueID:  stringField(doc, "venueId"),
		Number:   stringField(doc, "number"),
		Capacity: intField(doc, "capacity"),
	}
	if v, ok := doc["isActive"].(bool); ok {
		t.IsActive = &v
	}
	t.CreatedAt, _ = timeField(doc["createdAt"])
	t.UpdatedAt, _ = timeField(doc["updatedAt"])
	return t
}

func encodeTable(t *domain.Table) bson.M {
	doc := bson.M{
		"_id":       t.ID,
		"venueId":   t.VenueID,
		"number":    t.Number,
		"capacity":  t.Capacity,
		"createdAt": t.CreatedAt,
		"updatedAt": t.UpdatedAt,
	}
	if t.IsActive != nil {
		doc["isActive"] = *t.IsActive
	}
	return doc
}

func decodeReservation(doc bson.M) *domain.Reservation {
	r := &domain.Reservation{
		ID:              idString(doc["_id"]),
		VenueID:         stringField(doc, "venueId"),
		TableNumber:     stringField(doc, "tableNumber"),
		CustomerName:    stringField(doc, "customerName"),
		CustomerPhone:   stringField(doc, "customerPhone"),
		CustomerEmail:   stringField(doc, "customerEmail"),
		PartySize:       intField(doc, "partySize"),
		ReservationTime: stringField(doc, "reservationTime"),
		DurationMinutes: intField(doc, "durationMinutes"),
		Status:          domain.ReservationStatus(stringField(doc, "status")),
	}

	if tableID := stringField(doc, "tableId"); tableID != "" {
		r.TableID = &tableID
	}
	if notes, ok := doc["notes"].(string); ok {
		r.Notes = &notes
	}

	// reservationDate бывает строкой или датой
	switch v := doc["reservationDate"].(type) {
	case string:
		r.ReservationDate = v
	default:
		if t, ok := timeField(v); ok {
			r.ReservationDate = t.UTC().Format(time.RFC3339)
		}
	}

	r.StartAt, r.StartAtText = instantField(doc["startAt"])
	r.EndAt, r.EndAtText = instantField(doc["endAt"])

	r.CreatedAt, _ = timeField(doc["createdAt"])
	r.UpdatedAt, _ = timeField(doc["updatedAt"])

	return r
}

func encodeReservation(r *domain.Reservation) bson.M {
	doc := bson.M{
		"_id":             r.ID,
		"venueId":         r.VenueID,
		"tableNumber":     r.TableNumber,
		"customerName":    r.CustomerName,
		"customerPhone":   r.CustomerPhone,
		"customerEmail":   r.CustomerEmail,
		"partySize":       r.PartySize,
		"reservationDate": r.ReservationDate,
		"reservationTime": r.ReservationTime,
		"durationMinutes": r.DurationMinutes,
		"status":          string(r.Status),
		"createdAt":       r.CreatedAt,
		"updatedAt":       r.UpdatedAt,
	}
	if r.TableID != nil {
		doc["tableId"] = *r.TableID
	} else {
		doc["tableId"] = nil
	}
	if r.Notes != nil {
		doc["notes"] = *r.Notes
	}
	if r.StartAt != nil {
		doc["startAt"] = *r.StartAt
	}
	if r.EndAt != nil {
		doc["endAt"] = *r.EndAt
	}
	return doc
}

func decodeVenueSettings(doc bson.M) *domain.VenueSettings {
	s := &domain.VenueSettings{
		VenueID:                 idString(doc["_id"]),
		Timezone:                stringField(doc, "timezone"),
		OpenTime:                stringField(doc, "openTime"),
		CloseTime:               stringField(doc, "closeTime"),
		SlotDurationMinutes:     intField(doc, "slotDurationMinutes"),
		DefaultDurationMinutes:  intField(doc, "defaultDurationMinutes"),
		DefaultTableCapacity:    intField(doc, "defaultTableCapacity"),
		AdvanceBookingDays:      intField(doc, "advanceBookingDays"),
		MinBookingNoticeMinutes: intField(doc, "minBookingNoticeMinutes"),
	}
	s.RequireSpecificTable, _ = doc["requireSpecificTable"].(bool)
	s.AutoConfirm, _ = doc["autoConfirm"].(bool)

	if days, ok := doc["closedWeekdays"].(bson.A); ok {
		for _, d := range days {
			if n, ok := toInt(d); ok && n >= int(time.Sunday) && n <= int(time.Saturday) {
				s.ClosedWeekdays = append(s.ClosedWeekdays, time.Weekday(n))
			}
		}
	}

	s.CreatedAt, _ = timeField(doc["createdAt"])
	s.UpdatedAt, _ = timeField(doc["updatedAt"])
	return s
}

func encodeVenueSettings(s *domain.VenueSettings) bson.M {
	days := bson.A{}
	for _, wd := range s.ClosedWeekdays {
		days = append(days, int(wd))
	}
	return bson.M{
		"_id":                     s.VenueID,
		"timezone":                s.Timezone,
		"openTime":                s.OpenTime,
		"closeTime":               s.CloseTime,
		"slotDurationMinutes":     s.SlotDurationMinutes,
		"defaultDurationMinutes":  s.DefaultDurationMinutes,
		"defaultTableCapacity":    s.DefaultTableCapacity,
		"advanceBookingDays":      s.AdvanceBookingDays,
		"minBookingNoticeMinutes": s.MinBookingNoticeMinutes,
		"requireSpecificTable":    s.RequireSpecificTable,
		"autoConfirm":             s.AutoConfirm,
		"closedWeekdays":          days,
		"createdAt":               s.CreatedAt,
		"updatedAt":               s.UpdatedAt,
	}
}

func idString(v interface{}) string {
	switch id := v.(type) {
	case string:
		return id
	case primitive.ObjectID:
		return id.Hex()
	case nil:
		return ""
	default:
		return fmt.Sprint(id)
	}
}

func stringField(doc bson.M, key string) string {
	switch v := doc[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case int32, int64, float64:
		n, _ := toInt(v)
		return strconv.Itoa(n)
	default:
		return ""
	}
}

func intField(doc bson.M, key string) int {
	n, _ := toInt(doc[key])
	return n
}

func toInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return int(n), true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		return i, err == nil
	default:
		return 0, false
	}
}

// timeField разбирает BSON date, time.Time, Timestamp и объект {seconds, nanoseconds}
// Строки здесь не разбираются: их трактовка зависит от часового пояса заведения
func timeField(v interface{}) (time.Time, bool) {
	switch t := v.(type) {
	case primitive.DateTime:
		return t.Time().UTC(), true
	case time.Time:
		return t, true
	case primitive.Timestamp:
		return time.Unix(int64(t.T), 0).UTC(), true
	case bson.M:
		return secondsObject(t)
	case bson.D:
		return secondsObject(t.Map())
	default:
		return time.Time{}, false
	}
}

func secondsObject(m bson.M) (time.Time, bool) {
	seconds, ok := toInt(firstOf(m, "seconds", "_seconds"))
	if !ok {
		return time.Time{}, false
	}
	nanos, _ := toInt(firstOf(m, "nanoseconds", "_nanoseconds"))
	return time.Unix(int64(seconds), int64(nanos)).UTC(), true
}

func firstOf(m bson.M, keys ...string) interface{} {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			return v
		}
	}
	return nil
}

// instantField возвращает момент времени или исходную строку
func instantField(v interface{}) (*time.Time, string) {
	if s, ok := v.(string); ok {
		return nil, strings.TrimSpace(s)
	}
	if t, ok := timeField(v); ok && !t.IsZero() {
		return &t, ""
	}
	return nil, ""
}
