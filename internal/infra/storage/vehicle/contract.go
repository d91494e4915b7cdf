package vehicle

import (
	"github.com/m04kA/SMC-VehicleHealthService/pkg/dbmetrics"
)

type DBExecutor = dbmetrics.DBExecutor
