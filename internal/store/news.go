package store

import (
	"context"
	"fmt"
	"time"

	"ecsrs/internal/utils"
	"ecsrs/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const newsTableName = "ecsrs.news"

var newsColumns = utils.StructTagValues(types.News{})

type NewsRepository struct {
	pool *pgxpool.Pool
}

func NewNewsRepository(pool *pgxpool.Pool) *NewsRepository {
	return &NewsRepository{pool: pool}
}

func (r *NewsRepository) PublishedNews(ctx context.Context, limit uint64) ([]*types.News, error) {

	builder := psql().Select(newsColumns...).From(newsTableName).
		Where(sq.Eq{"is_published": true}).
		OrderBy("published_at desc")
	if limit > 0 {
		builder = builder.Limit(limit)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate published news query: %w", err)
	}

	var items = make([]*types.News, 0)
	if err := pgxscan.Select(ctx, r.pool, &items, query, args...); err != nil {
		return nil, utils.WrapError(err, "failed to list published news")
	}

	return items, nil
}

func (r *NewsRepository) AllNews(ctx context.Context) ([]*types.News, error) {

	query, args, err := psql().Select(newsColumns...).From(newsTableName).
		OrderBy("created_at desc").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate news query: %w", err)
	}

	var items = make([]*types.News, 0)
	if err := pgxscan.Select(ctx, r.pool, &items, query, args...); err != nil {
		return nil, utils.WrapError(err, "failed to list news")
	}

	return items, nil
}

func (r *NewsRepository) News(ctx context.Context, newsID string) (*types.News, error) {

	query, args, err := psql().Select(newsColumns...).From(newsTableName).
		Where(sq.Eq{"id": newsID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate news query: %w", err)
	}

	var item = new(types.News)
	err = pgxscan.Get(ctx, r.pool, item, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrNewsNotFound
		}
		return nil, fmt.Errorf("failed to fetch news item: %w", err)
	}

	return item, nil
}

func (r *NewsRepository) CreateNews(ctx context.Context, item *types.News) error {

	now := time.Now()
	item.ID = utils.NanoID()
	item.CreatedAt = now
	item.UpdatedAt = now
	if item.IsPublished && item.PublishedAt == nil {
		item.PublishedAt = &now
	}

	newsMap := utils.StructToMap(item)

	query, args, err := psql().Insert(newsTableName).SetMap(newsMap).ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert news query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create news item")
}

func (r *NewsRepository) UpdateNews(ctx context.Context, newsID string, fields map[string]any) (*types.News, error) {

	fields["updated_at"] = time.Now()

	query, args, err := psql().Update(newsTableName).
		SetMap(fields).
		Where(sq.Eq{"id": newsID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate update news query for item %s: %w", newsID, err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return nil, utils.WrapError(err, "failed to update news item")
	}
	if tag.RowsAffected() == 0 {
		return nil, types.ErrNewsNotFound
	}

	return r.News(ctx, newsID)
}

func (r *NewsRepository) DeleteNews(ctx context.Context, newsID string) error {

	query, args, err := psql().Delete(newsTableName).Where(sq.Eq{"id": newsID}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate delete news query for item %s: %w", newsID, err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to delete news item")
}
