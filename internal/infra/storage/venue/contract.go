package venue

import "github.com/1122padelclub/padel-app-sub002/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
