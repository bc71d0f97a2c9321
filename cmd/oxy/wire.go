//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package main

import (
	"context"

	"github.com/google/wire"
)

func initializeApp(ctx context.Context, opts Options) (*App, func(), error) {
	wire.Build(providerSet)
	return nil, nil, nil
}
