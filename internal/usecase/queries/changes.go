package queries

import (
	"context"

	"library-circulation/internal/domain/user"
	"library-circulation/internal/usecase/shared"
)

// ChangeSource is the in-process broker the engine publishes to.
type ChangeSource interface {
	Subscribe(ctx context.Context) <-chan shared.ChangeEvent
}

type ChangeQueries interface {
	// Subscribe streams committed changes visible to identity until ctx ends.
	Subscribe(ctx context.Context, identity user.Identity) (<-chan shared.ChangeEvent, error)
}

type changeQueriesImpl struct {
	source ChangeSource
}

func NewChangeQueries(source ChangeSource) ChangeQueries {
	return &changeQueriesImpl{source: source}
}

func (q *changeQueriesImpl) Subscribe(ctx context.Context, identity user.Identity) (<-chan shared.ChangeEvent, error) {
	if err := identity.Validate(); err != nil {
		return nil, err
	}
	in := q.source.Subscribe(ctx)
	if identity.Role.SeesAllCheckouts() {
		return in, nil
	}

	out := make(chan shared.ChangeEvent, cap(in))
	go func() {
		defer close(out)
		for ev := range in {
			if ev.IsCheckoutEvent() && !identity.Owns(ev.SubjectID) {
				continue
			}
			select {
			case out <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}
