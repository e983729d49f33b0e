package models

import (
	"time"

	"github.com/1122padelclub/padel-app-sub002/internal/domain"
)

// Request модели

// UpdateSettingsRequest запрос на обновление настроек заведения
// Все поля опциональны - обновляются только переданные значения
type UpdateSettingsRequest struct {
	Timezone                *string `json:"timezone,omitempty"`
	OpenTime                *string `json:"openTime,omitempty"`
	CloseTime               *string `json:"closeTime,omitempty"`
	SlotDurationMinutes     *int    `json:"slotDurationMinutes,omitempty"`
	DefaultDurationMinutes  *int    `json:"defaultDurationMinutes,omitempty"`
	DefaultTableCapacity    *int    `json:"defaultTableCapacity,omitempty"`
	AdvanceBookingDays      *int    `json:"advanceBookingDays,omitempty"`
	MinBookingNoticeMinutes *int    `json:"minBookingNoticeMinutes,omitempty"`
	RequireSpecificTable    *bool   `json:"requireSpecificTable,omitempty"`
	AutoConfirm             *bool   `json:"autoConfirm,omitempty"`
	ClosedWeekdays          *[]int  `json:"closedWeekdays,omitempty"` // 0 = воскресенье
}

// ApplyTo применяет переданные поля к настройкам
func (r *UpdateSettingsRequest) ApplyTo(s *domain.VenueSettings) {
	if r.Timezone != nil {
		s.Timezone = *r.Timezone
	}
	if r.OpenTime != nil {
		s.OpenTime = *r.OpenTime
	}
	if r.CloseTime != nil {
		s.CloseTime = *r.CloseTime
	}
	if r.SlotDurationMinutes != nil {
		s.SlotDurationMinutes = *r.SlotDurationMinutes
	}
	if r.DefaultDurationMinutes != nil {
		s.DefaultDurationMinutes = *r.DefaultDurationMinutes
	}
	if r.DefaultTableCapacity != nil {
		s.DefaultTableCapacity = *r.DefaultTableCapacity
	}
	if r.AdvanceBookingDays != nil {
		s.AdvanceBookingDays = *r.AdvanceBookingDays
	}
	if r.MinBookingNoticeMinutes != nil {
		s.MinBookingNoticeMinutes = *r.MinBookingNoticeMinutes
	}
	if r.RequireSpecificTable != nil {
		s.RequireSpecificTable = *r.RequireSpecificTable
	}
	if r.AutoConfirm != nil {
		s.AutoConfirm = *r.AutoConfirm
	}
	if r.ClosedWeekdays != nil {
		weekdays := make([]time.Weekday, 0, len(*r.ClosedWeekdays))
		for _, wd := range *r.ClosedWeekdays {
			weekdays = append(weekdays, time.Weekday(wd))
		}
		s.ClosedWeekdays = weekdays
	}
}

// Response модели

// SettingsResponse действующие настройки заведения
type SettingsResponse struct {
	VenueID                 string     `json:"venueId"`
	Timezone                string     `json:"timezone"`
	OpenTime                string     `json:"openTime"`
	CloseTime               string     `json:"closeTime"`
	SlotDurationMinutes     int        `json:"slotDurationMinutes"`
	DefaultDurationMinutes  int        `json:"defaultDurationMinutes"`
	DefaultTableCapacity    int        `json:"defaultTableCapacity"`
	AdvanceBookingDays      int        `json:"advanceBookingDays"`
	MinBookingNoticeMinutes int        `json:"minBookingNoticeMinutes"`
	RequireSpecificTable    bool       `json:"requireSpecificTable"`
	AutoConfirm             bool       `json:"autoConfirm"`
	ClosedWeekdays          []int      `json:"closedWeekdays"`
	IsDefault               bool       `json:"isDefault"` // настройки не сохранены, действуют значения сервиса
	UpdatedAt               *time.Time `json:"updatedAt,omitempty"`
}
