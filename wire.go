//go:build wireinject
// +build wireinject

package main

import (
	"aozora-resort/passport/passport-gate-server/config"
	"aozora-resort/passport/passport-gate-server/infra"
	"aozora-resort/passport/passport-gate-server/judge"
	"aozora-resort/passport/passport-gate-server/presenter"
	"aozora-resort/passport/passport-gate-server/ticket"

	"github.com/google/wire"
)

func Setup() (*Server, error) {
	wire.Build(
		ProvideServer,
		ProvideApplication,
		config.ProvideConfig,
		config.ProvideKioskConfig,
		infra.ProvideLoggerFactory,
		infra.ProvideHTTPClient,
		infra.ProvideRedisClient,
		ticket.ProvideCache,
		ticket.ProvideGateway,
		judge.ProvideGateway,
		judge.ProvideHistoryGateway,
		judge.ProvideOrchestrator,
		presenter.ProvideHub,
		wire.Bind(new(judge.TicketSource), new(*ticket.Gateway)),
		wire.Bind(new(judge.Judger), new(*judge.Gateway)),
		wire.Bind(new(judge.HistorySource), new(*judge.HistoryGateway)),
		wire.Bind(new(judge.Presenter), new(*presenter.Hub)),
	)
	return nil, nil
}
