package scheduler

import "github.com/google/wire"

var Provider = wire.NewSet(
	New,
	NewRunner,
	NewGuard,
)
