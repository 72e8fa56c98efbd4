package bootstrap

import (
	"library-circulation/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DBModule,
	JWTModule,
	components.PersistenceModule,
	components.ChangeFeedModule,
	components.UseCaseModule,
	components.HandlerModule,
)
