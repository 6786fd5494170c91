//go:build wireinject
// +build wireinject

package main

import (
	"io"

	"github.com/google/wire"

	"github.com/yanqian/vat-directory/internal/bootstrap"
	"github.com/yanqian/vat-directory/internal/infra/config"
	"github.com/yanqian/vat-directory/pkg/logger"
)

func initializeServices(stderr io.Writer) (*Services, error) {
	wire.Build(
		config.Load,
		logger.NewWithWriter,
		bootstrap.ServiceSet,
		wire.Struct(new(Services), "*"),
	)
	return nil, nil
}
