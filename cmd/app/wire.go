//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/vat-directory/internal/bootstrap"
	"github.com/yanqian/vat-directory/internal/infra/config"
	httpiface "github.com/yanqian/vat-directory/internal/interface/http"
	"github.com/yanqian/vat-directory/pkg/logger"
)

func initializeApp() (*bootstrap.App, func(), error) {
	wire.Build(
		config.Load,
		logger.New,
		bootstrap.ServiceSet,
		provideLimiter,
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil, nil
}
