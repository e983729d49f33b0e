package availability

import (
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/1122padelclub/padel-app-sub002/internal/domain"
)

// ActiveTables возвращает активные столики заведения в порядке отображения
// Пустой venueID не фильтрует по заведению. Входной слайс не изменяется.
//
// Порядок отображения:
// - метки с числом ("12", "Mesa 3") идут первыми по возрастанию числа
// - метки без цифр ("Barra", "PRUEBA") идут после всех числовых
// - при равенстве сравнивается текст метки, затем ID
func ActiveTables(tables []*domain.Table, venueID string) []*domain.Table {
	active := make([]*domain.Table, 0, len(tables))
	for _, t := range tables {
		if t == nil || !t.Active() {
			continue
		}
		if venueID != "" && t.VenueID != "" && t.VenueID != venueID {
			continue
		}
		active = append(active, t)
	}

	sort.SliceStable(active, func(i, j int) bool {
		return displayLess(active[i], active[j])
	})

	return active
}

// TotalCapacity сумма мест с подстановкой defaultCapacity для пустой/некорректной вместимости
func TotalCapacity(tables []*domain.Table, defaultCapacity int) int {
	total := 0
	for _, t := range tables {
		if t == nil {
			continue
		}
		total += t.EffectiveCapacity(defaultCapacity)
	}
	return total
}

// DisplayKey числовой ключ сортировки метки столика
// ok=false для меток без цифр
func DisplayKey(label string) (int, bool) {
	label = strings.TrimSpace(label)
	if n, err := strconv.Atoi(label); err == nil {
		return n, true
	}

	// первая последовательность цифр ("Mesa 12" -> 12)
	start := strings.IndexFunc(label, unicode.IsDigit)
	if start < 0 {
		return 0, false
	}
	end := start
	for end < len(label) && label[end] >= '0' && label[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(label[start:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

func displayLess(a, b *domain.Table) bool {
	ka, okA := DisplayKey(a.Number)
	kb, okB := DisplayKey(b.Number)

	if okA != okB {
		return okA
	}
	if okA && ka != kb {
		return ka < kb
	}
	if a.Number != b.Number {
		return a.Number < b.Number
	}
	return a.ID < b.ID
}
