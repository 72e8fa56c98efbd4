package docstore

import (
	"context"
	"time"

	"library-circulation/internal/domain/user"
	"library-circulation/internal/infra"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

type UserRepository struct {
	q queryer
}

func NewUserRepository(q queryer) *UserRepository {
	return &UserRepository{q: q}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	return insertDoc(ctx, r.q, collUsers, u.ID().String(), newUserDoc(u), u.CreatedAt())
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	n, err := updateWhere(ctx, r.q, collUsers, id.String(), goqu.Record{
		colBody:      goqu.L("json_set(body, '$.lastLogin', ?, '$.updatedAt', ?)", at.UnixMicro(), at.UnixMicro()),
		colUpdatedAt: at.UnixMicro(),
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return nil
}
