package availability

import (
	"sort"

	"github.com/1122padelclub/padel-app-sub002/internal/domain"
)

// AllocateGreedy распределяет спрос (в местах) по столикам жадно:
// столики сортируются по возрастанию вместимости (при равенстве - порядок входа),
// берутся по одному, пока оставшийся спрос > 0.
//
// Это эвристика для оценки количества занятых столиков, когда бронь не привязана
// к конкретному столику, а не реальная рассадка.
// Столики [2,4,4,6] и спрос 5 дают 2 занятых столика (2+4 >= 5).
func AllocateGreedy(tables []*domain.Table, demand, defaultCapacity int) []*domain.Table {
	if demand <= 0 || len(tables) == 0 {
		return []*domain.Table{}
	}

	sorted := make([]*domain.Table, len(tables))
	copy(sorted, tables)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].EffectiveCapacity(defaultCapacity) < sorted[j].EffectiveCapacity(defaultCapacity)
	})

	allocated := make([]*domain.Table, 0)
	remaining := demand
	for _, t := range sorted {
		if remaining <= 0 {
			break
		}
		allocated = append(allocated, t)
		remaining -= t.EffectiveCapacity(defaultCapacity)
	}

	return allocated
}
