//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"mecaflow/internal/app"
)

func InitializeApp() (*app.App, error) {
	panic(wire.Build(
		ConfigSet,
		ObservabilitySet,
		InfraSet,
		RepositorySet,
		SecuritySet,
		ServiceSet,
		HTTPSet,
		AppSet,
	))
}

func InitializeMigrationRunner() (*MigrationRunner, error) {
	panic(wire.Build(
		ConfigSet,
		ObservabilitySet,
		provideDB,
		NewMigrationRunner,
	))
}
