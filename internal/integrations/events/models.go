package events

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	subjectPrefix = "reservations"
	subjectSuffix = "changed"
)

// SubjectAll подписка на изменения бронирований всех заведений
const SubjectAll = subjectPrefix + ".*." + subjectSuffix

// ReservationChanged событие об изменении бронирования
type ReservationChanged struct {
	ReservationID string    `json:"reservationId"`
	VenueID       string    `json:"venueId"`
	Status        string    `json:"status"`
	Date          string    `json:"date"` // день заведения, YYYY-MM-DD
	OccurredAt    time.Time `json:"occurredAt"`
}

// Subject тема NATS для событий заведения
func Subject(venueID string) string {
	return fmt.Sprintf("%s.%s.%s", subjectPrefix, venueID, subjectSuffix)
}

// VenueFromSubject извлекает ID заведения из темы
func VenueFromSubject(subject string) (string, bool) {
	parts := strings.Split(subject, ".")
	if len(parts) != 3 || parts[0] != subjectPrefix || parts[2] != subjectSuffix || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func encode(event ReservationChanged) ([]byte, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("%w: encode: %v", ErrPublish, err)
	}
	return data, nil
}

// decode разбирает сообщение; ID заведения берется из темы, если его нет в теле
func decode(subject string, data []byte) (ReservationChanged, error) {
	var event ReservationChanged
	if err := json.Unmarshal(data, &event); err != nil {
		return event, fmt.Errorf("%w: %s: %v", ErrDecode, subject, err)
	}
	if event.VenueID == "" {
		venueID, ok := VenueFromSubject(subject)
		if !ok {
			return event, fmt.Errorf("%w: %s: venue is unknown", ErrDecode, subject)
		}
		event.VenueID = venueID
	}
	return event, nil
}
