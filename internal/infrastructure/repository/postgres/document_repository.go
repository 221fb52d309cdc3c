package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/matchday-aggregator/internal/domain/document"
	qb "github.com/riskibarqy/matchday-aggregator/internal/platform/querybuilder"
)

type DocumentRepository struct {
	db *sqlx.DB
}

func NewDocumentRepository(db *sqlx.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

func (r *DocumentRepository) Get(ctx context.Context, collection, key string) (document.Document, bool, error) {
	query, args, err := qb.Select(documentColumns...).From(documentTable).
		Where(
			qb.Eq("collection", collection),
			qb.Eq("doc_key", key),
		).
		ToSQL()
	if err != nil {
		return document.Document{}, false, fmt.Errorf("build get document query: %w", err)
	}

	var row documentTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isBindParameterMismatch(err) || isUnnamedPreparedStatementMissing(err) {
			return r.getSingleParam(ctx, collection, key)
		}
		if isNotFound(err) {
			return document.Document{}, false, nil
		}
		return document.Document{}, false, fmt.Errorf("get document %s: %w", document.Path(collection, key), err)
	}

	return documentFromRow(row), true, nil
}

func (r *DocumentRepository) getSingleParam(ctx context.Context, collection, key string) (document.Document, bool, error) {
	query, _, err := qb.Select(documentColumns...).From(documentTable).
		Where(
			qb.Expr("collection = ($1::text[])[1]"),
			qb.Expr("doc_key = ($1::text[])[2]"),
		).
		ToSQL()
	if err != nil {
		return document.Document{}, false, fmt.Errorf("build get document single param fallback query: %w", err)
	}

	var row documentTableModel
	if err := r.db.GetContext(ctx, &row, query, pq.Array([]string{collection, key})); err != nil {
		if isUnnamedPreparedStatementMissing(err) {
			return r.getLiteral(ctx, collection, key)
		}
		if isNotFound(err) {
			return document.Document{}, false, nil
		}
		return document.Document{}, false, fmt.Errorf("get document fallback: %w", err)
	}

	return documentFromRow(row), true, nil
}

func (r *DocumentRepository) getLiteral(ctx context.Context, collection, key string) (document.Document, bool, error) {
	query, args, err := qb.Select(documentColumns...).From(documentTable).
		Where(
			qb.EqLiteral("collection", collection),
			qb.EqLiteral("doc_key", key),
		).
		ToSQL()
	if err != nil {
		return document.Document{}, false, fmt.Errorf("build get document literal fallback query: %w", err)
	}

	var row documentTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return document.Document{}, false, nil
		}
		return document.Document{}, false, fmt.Errorf("get document literal fallback: %w", err)
	}

	return documentFromRow(row), true, nil
}

// Put writes the whole document in one statement.
func (r *DocumentRepository) Put(ctx context.Context, doc document.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	insertModel := documentInsertModel{
		Collection: doc.Collection,
		DocKey:     doc.Key,
		Data:       string(doc.Data),
		UpdatedAt:  doc.UpdatedAt.UTC(),
		EventAt:    doc.EventAt,
	}
	query, args, err := qb.InsertModel(documentTable, insertModel, `ON CONFLICT (collection, doc_key)
DO UPDATE SET
    data = EXCLUDED.data,
    updated_at = EXCLUDED.updated_at,
    event_at = EXCLUDED.event_at`)
	if err != nil {
		return fmt.Errorf("build put document query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("put document %s: %w", doc.Path(), err)
	}
	return nil
}

func (r *DocumentRepository) Delete(ctx context.Context, collection, key string) error {
	query, args, err := qb.DeleteFrom(documentTable).
		Where(
			qb.Eq("collection", collection),
			qb.Eq("doc_key", key),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete document query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete document %s: %w", document.Path(collection, key), err)
	}
	return nil
}

func (r *DocumentRepository) List(ctx context.Context, collection string) ([]document.Document, error) {
	query, args, err := qb.Select(documentColumns...).From(documentTable).
		Where(qb.Eq("collection", collection)).
		OrderBy("doc_key").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list documents query: %w", err)
	}

	var rows []documentTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list documents collection=%s: %w", collection, err)
	}

	out := make([]document.Document, 0, len(rows))
	for _, row := range rows {
		out = append(out, documentFromRow(row))
	}
	return out, nil
}

func (r *DocumentRepository) DeleteEventBefore(ctx context.Context, collection string, cutoff time.Time) (int, error) {
	query, args, err := qb.DeleteFrom(documentTable).
		Where(
			qb.Eq("collection", collection),
			qb.Lt("event_at", cutoff.UTC()),
		).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build delete documents by event query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete documents collection=%s before %s: %w", collection, cutoff.Format(time.RFC3339), err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return int(affected), nil
}

func documentFromRow(row documentTableModel) document.Document {
	doc := document.Document{
		Collection: row.Collection,
		Key:        row.DocKey,
		Data:       row.Data,
		UpdatedAt:  row.UpdatedAt.UTC(),
	}
	if row.EventAt != nil {
		eventAt := row.EventAt.UTC()
		doc.EventAt = &eventAt
	}
	return doc
}
