package reservation

import "github.com/1122padelclub/padel-app-sub002/pkg/dbmetrics"

// Переиспользуем интерфейс из dbmetrics для работы с БД
// Поддерживает *dbmetrics.DB и транзакцию из контекста
type DBExecutor = dbmetrics.DBExecutor
