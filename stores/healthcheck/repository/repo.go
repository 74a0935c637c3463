package repository

import (
	"sort"
	"time"

	"github.com/x-xyz/oev-searcher/base/ctx"
	hcdomain "github.com/x-xyz/oev-searcher/domain/healthcheck"
	"golang.org/x/xerrors"
)

const pingTimeout = 2 * time.Second

type impl struct {
	deps map[string]hcdomain.Pinger
}

// New creates a HealthCheckRepo that pings every named dependency
func New(deps map[string]hcdomain.Pinger) hcdomain.HealthCheckRepo {
	return &impl{
		deps: deps,
	}
}

func (im *impl) PingDB(context ctx.Ctx) error {
	names := make([]string, 0, len(im.deps))
	for name := range im.deps {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		c, cancel := ctx.WithTimeout(context, pingTimeout)
		err := im.deps[name].Ping(c)
		cancel()
		if err != nil {
			context.WithField("err", err).WithField("dep", name).Error("ping failed")
			return xerrors.Errorf("%s: %w", name, err)
		}
	}
	return nil
}
