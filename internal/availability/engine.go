package availability

import (
	"time"

	"github.com/1122padelclub/padel-app-sub002/internal/domain"
)

// Engine движок доступности столиков
// Не хранит состояния между вызовами и безопасен для конкурентного использования
type Engine struct {
	settings Settings
	logger   Logger
}

// NewEngine создает движок с указанными настройками
func NewEngine(settings Settings, logger Logger) *Engine {
	if logger == nil {
		logger = nopLogger{}
	}
	return &Engine{settings: settings, logger: logger}
}

// Settings возвращает настройки движка
func (e *Engine) Settings() Settings {
	return e.settings
}

// View неизменяемый снапшот столиков и бронирований одного заведения
// Все запросы к доступности выполняются поверх него
type View struct {
	venueID       string
	settings      Settings
	tables        []*domain.Table
	tableByID     map[string]*domain.Table
	reservations  []domain.NormalizedReservation
	skipped       int
	totalCapacity int
}

// NewView нормализует снапшот. Входные данные не изменяются.
// Некорректные записи бронирований пропускаются и логируются.
func (e *Engine) NewView(venueID string, tables []*domain.Table, records []*domain.Reservation) *View {
	active := ActiveTables(tables, venueID)

	tableByID := make(map[string]*domain.Table, len(active))
	for _, t := range active {
		if t.ID != "" {
			tableByID[t.ID] = t
		}
	}

	normalized, skipped := NormalizeAll(records, e.settings, e.logger)
	if skipped > 0 {
		e.logger.Warn("availability: venue=%s skipped %d of %d reservation records", venueID, skipped, len(records))
	}

	return &View{
		venueID:       venueID,
		settings:      e.settings,
		tables:        active,
		tableByID:     tableByID,
		reservations:  normalized,
		skipped:       skipped,
		totalCapacity: TotalCapacity(active, e.settings.DefaultTableCapacity),
	}
}

// VenueID возвращает ID заведения снапшота
func (v *View) VenueID() string { return v.venueID }

// Settings возвращает настройки, с которыми построен снапшот
func (v *View) Settings() Settings { return v.settings }

// Tables возвращает активные столики в порядке отображения
func (v *View) Tables() []*domain.Table { return v.tables }

// Reservations возвращает нормализованные бронирования
func (v *View) Reservations() []domain.NormalizedReservation { return v.reservations }

// Skipped количество пропущенных некорректных записей
func (v *View) Skipped() int { return v.skipped }

// TotalCapacity сумма мест активных столиков
func (v *View) TotalCapacity() int { return v.totalCapacity }

// SlotOccupancy возвращает занятость на время clock смены, открывшейся в date
func (v *View) SlotOccupancy(date, clock string) (*domain.OccupancySnapshot, error) {
	instant, err := v.settings.SlotInstant(date, clock)
	if err != nil {
		return nil, err
	}
	return v.OccupancyAt(instant), nil
}

// OccupancyAt возвращает занятость в момент t
//
// 1. Бронирования, занимающие места в момент t (start <= t < end)
// 2. Занятые места = сумма гостей (ограничена общей вместимостью)
// 3. Брони, привязанные к активному столику, занимают свой столик
// 4. Оставшийся спрос без столика распределяется жадно по свободным столикам
func (v *View) OccupancyAt(t time.Time) *domain.OccupancySnapshot {
	overlapping := OverlappingAt(v.reservations, t)

	requested := 0
	poolDemand := 0
	bound := make(map[string]bool)
	occupiedIDs := make([]string, 0)

	for _, r := range overlapping {
		requested += r.PartySize
		if table, ok := v.boundTable(r); ok {
			if !bound[table.ID] {
				bound[table.ID] = true
				occupiedIDs = append(occupiedIDs, table.ID)
			}
			continue
		}
		poolDemand += r.PartySize
	}

	free := make([]*domain.Table, 0, len(v.tables))
	for _, table := range v.tables {
		if !bound[table.ID] {
			free = append(free, table)
		}
	}
	for _, table := range AllocateGreedy(free, poolDemand, v.settings.DefaultTableCapacity) {
		occupiedIDs = append(occupiedIDs, table.ID)
	}

	occupiedCapacity := requested
	if occupiedCapacity > v.totalCapacity {
		occupiedCapacity = v.totalCapacity
	}

	totalTables := len(v.tables)
	occupiedTables := len(occupiedIDs)

	rate := 0.0
	if totalTables > 0 {
		rate = float64(occupiedTables) / float64(totalTables) * 100
	}

	return &domain.OccupancySnapshot{
		Time:              t,
		TotalTables:       totalTables,
		OccupiedTables:    occupiedTables,
		AvailableTables:   totalTables - occupiedTables,
		TotalCapacity:     v.totalCapacity,
		OccupiedCapacity:  occupiedCapacity,
		AvailableCapacity: v.totalCapacity - occupiedCapacity,
		RequestedSeats:    requested,
		OverbookedSeats:   requested - occupiedCapacity,
		OccupancyRate:     rate,
		OccupiedTableIDs:  occupiedIDs,
		Reservations:      overlapping,
	}
}

// DayGrid моменты слотов сетки на дату (слоты после полуночи попадают на следующий день)
func (v *View) DayGrid(date string) ([]time.Time, error) {
	day, err := v.settings.ParseDate(date)
	if err != nil {
		return nil, err
	}

	offsets, err := gridOffsets(v.settings.OpenTime, v.settings.CloseTime, v.settings.SlotDurationMinutes)
	if err != nil {
		return nil, err
	}

	y, m, d := day.Date()
	grid := make([]time.Time, len(offsets))
	for i, offset := range offsets {
		grid[i] = time.Date(y, m, d, 0, offset, 0, 0, v.settings.location())
	}
	return grid, nil
}

// boundTable возвращает активный столик брони, если она к нему привязана
// Бронь на неактивный или неизвестный столик считается спросом без столика
func (v *View) boundTable(r domain.NormalizedReservation) (*domain.Table, bool) {
	if !r.Assigned() {
		return nil, false
	}
	table, ok := v.tableByID[r.TableID]
	return table, ok
}
