package store

import (
	"context"
	"fmt"

	"ecsrs/internal/utils"
	"ecsrs/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const lgaTableName = "ecsrs.lgas"

var lgaColumns = utils.StructTagValues(types.LGA{})

type LGARepository struct {
	pool *pgxpool.Pool
}

func NewLGARepository(pool *pgxpool.Pool) *LGARepository {
	return &LGARepository{pool: pool}
}

func (r *LGARepository) AllLGAs(ctx context.Context) ([]*types.LGA, error) {

	query, args, err := psql().Select(lgaColumns...).From(lgaTableName).
		OrderBy("name asc").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate lgas query: %w", err)
	}

	var lgas = make([]*types.LGA, 0)
	if err := pgxscan.Select(ctx, r.pool, &lgas, query, args...); err != nil {
		return nil, utils.WrapError(err, "failed to list lgas")
	}

	return lgas, nil
}

func (r *LGARepository) LGA(ctx context.Context, lgaID string) (*types.LGA, error) {

	query, args, err := psql().Select(lgaColumns...).From(lgaTableName).
		Where(sq.Eq{"id": lgaID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate lga query: %w", err)
	}

	var lga = new(types.LGA)
	err = pgxscan.Get(ctx, r.pool, lga, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrLGANotFound
		}
		return nil, fmt.Errorf("failed to fetch lga: %w", err)
	}

	return lga, nil
}

// UpsertLGA syncs one seed row; matched on code so re-running the seed
// never duplicates areas.
func (r *LGARepository) UpsertLGA(ctx context.Context, lga *types.LGA) error {

	query := `
		INSERT INTO ecsrs.lgas (id, code, name)
		VALUES ($1, $2, $3)
		ON CONFLICT (code)
		DO UPDATE SET name = EXCLUDED.name`

	_, err := r.pool.Exec(ctx, query, lga.ID, lga.Code, lga.Name)
	return utils.ErrorWrapOrNil(err, "failed to upsert lga")
}
