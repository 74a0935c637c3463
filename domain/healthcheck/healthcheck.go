package healthcheck

import (
	"github.com/x-xyz/oev-searcher/base/ctx"
)

// HealthCheckUsecase represents the healthCheck's usecases
type HealthCheckUsecase interface {
	Check(context ctx.Ctx) error
}

// HealthCheckRepo is repository layer of healthCheck
type HealthCheckRepo interface {
	PingDB(context ctx.Ctx) error
}

// Pinger is any dependency that can report its own liveness
type Pinger interface {
	Ping(context ctx.Ctx) error
}
