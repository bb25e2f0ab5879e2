package raffle

import (
	"strings"

	redis "github.com/redis/go-redis/v9"
	"github.com/rifasolidaria/rifa/internal/config"
	"github.com/rifasolidaria/rifa/internal/raffle/repository"
	"github.com/rifasolidaria/rifa/internal/raffle/service"
	"go.uber.org/fx"
)

var Module = fx.Module("raffle.service",
	fx.Provide(provideLocker),
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)

// provideLocker returns nil when redis is not configured; the service
// then serializes allocations in-process only.
func provideLocker(cfg config.Config) *service.Locker {
	addr := strings.TrimSpace(cfg.RedisAddr)
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: strings.TrimSpace(cfg.RedisPassword),
	})
	return service.NewLocker(client)
}
