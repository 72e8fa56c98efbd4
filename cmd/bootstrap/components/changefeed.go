package components

import (
	"log/slog"

	"library-circulation/internal/infra/changefeed"
	"library-circulation/internal/pkg/config"
	"library-circulation/internal/usecase/queries"
	"library-circulation/internal/usecase/shared"

	"go.uber.org/fx"
)

var ChangeFeedModule = fx.Module("changefeed",
	fx.Provide(
		fx.Annotate(
			NewBroker,
			fx.As(new(shared.ChangePublisher)),
			fx.As(new(queries.ChangeSource)),
		),
	),
)

func NewBroker(cfg config.Config, logger *slog.Logger) *changefeed.Broker {
	return changefeed.NewBroker(cfg.ChangeFeed.Buffer, logger)
}
