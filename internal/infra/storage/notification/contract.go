package notification

import "github.com/heavyrent/rental-service/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
