package booking

import "github.com/heavyrent/rental-service/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
type TxExecutor = dbmetrics.TxExecutor
