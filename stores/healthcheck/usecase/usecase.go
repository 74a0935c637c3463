package usecase

import (
	"github.com/x-xyz/oev-searcher/base/ctx"
	"github.com/x-xyz/oev-searcher/base/metrics"
	hcdomain "github.com/x-xyz/oev-searcher/domain/healthcheck"
)

type impl struct {
	repo hcdomain.HealthCheckRepo
	met  metrics.Service
}

// New reports the searcher unhealthy as soon as one dependency stops answering
func New(repo hcdomain.HealthCheckRepo) hcdomain.HealthCheckUsecase {
	return &impl{
		repo: repo,
		met:  metrics.New("healthcheck"),
	}
}

func (im *impl) Check(c ctx.Ctx) error {
	defer im.met.BumpTime("check.time").End()
	if err := im.repo.PingDB(c); err != nil {
		im.met.BumpSum("check.count", 1, "healthy", "false")
		return err
	}
	im.met.BumpSum("check.count", 1, "healthy", "true")
	return nil
}
