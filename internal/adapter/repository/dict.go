package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	sq "github.com/Masterminds/squirrel"

	"github.com/eslsoft/jmdictdb/internal/entity"
	"github.com/eslsoft/jmdictdb/internal/infrastructure/database/types"
	"github.com/eslsoft/jmdictdb/internal/repository"
)

type dictRepository struct {
	db *sql.DB
}

// NewDictRepository wraps an open dictionary store handle.
func NewDictRepository(db *sql.DB) repository.DictRepository {
	return &dictRepository{db: db}
}

func (r *dictRepository) Ingest(ctx context.Context, entries []entity.Entry) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin ingest tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, e := range entries {
		if err = upsertEntry(ctx, tx, e); err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit ingest tx: %w", err)
	}
	return nil
}

// upsertEntry replaces one entry wholesale: attributes are overwritten and the
// sense rows are deleted and reinserted. There is no field-level merge.
func upsertEntry(ctx context.Context, tx *sql.Tx, e entity.Entry) error {
	seq, err := strconv.ParseInt(e.Seq, 10, 64)
	if err != nil {
		return fmt.Errorf("ent_seq %q is not numeric: %w", e.Seq, err)
	}

	query, args, err := sq.Insert("entries").
		Columns("ent_seq", "rebs", "kebs").
		Values(seq, types.StringList(e.Readings), types.StringList(e.KanjiForms)).
		Suffix("ON CONFLICT(ent_seq) DO UPDATE SET rebs = excluded.rebs, kebs = excluded.kebs").
		ToSql()
	if err != nil {
		return fmt.Errorf("build entry upsert: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert entry %d: %w", seq, err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM senses WHERE ent_seq = ?", seq); err != nil {
		return fmt.Errorf("delete senses for entry %d: %w", seq, err)
	}

	for _, s := range e.Senses {
		query, args, err := sq.Insert("senses").
			Columns("ent_seq", "sense_order", "pos", "xref", "gloss").
			Values(seq, s.Order,
				types.StringList(s.PartsOfSpeech),
				types.StringList(s.CrossReferences),
				types.StringList(s.Glosses)).
			ToSql()
		if err != nil {
			return fmt.Errorf("build sense insert: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert sense %d of entry %d: %w", s.Order, seq, err)
		}
	}
	return nil
}

func (r *dictRepository) FindByReading(ctx context.Context, reading string) ([]entity.ParsedEntry, error) {
	builder := sq.Select("ent_seq", "rebs", "kebs").
		From("entries").
		Where(sq.Expr("EXISTS (SELECT 1 FROM json_each(entries.rebs) je WHERE je.value = ?)", reading))
	return r.queryEntries(ctx, builder)
}

func (r *dictRepository) FindByKanji(ctx context.Context, kanji string) ([]entity.ParsedEntry, error) {
	builder := sq.Select("ent_seq", "rebs", "kebs").
		From("entries").
		Where(sq.NotEq{"kebs": nil}).
		Where(sq.Expr("EXISTS (SELECT 1 FROM json_each(entries.kebs) je WHERE je.value = ?)", kanji))
	return r.queryEntries(ctx, builder)
}

func (r *dictRepository) queryEntries(ctx context.Context, builder sq.SelectBuilder) ([]entity.ParsedEntry, error) {
	parsed, err := r.scanEntryRows(ctx, builder)
	if err != nil {
		return nil, err
	}

	// Senses are fetched after the entry cursor is closed: the store runs on
	// a single connection.
	for i := range parsed {
		senses, err := r.sensesFor(ctx, parsed[i].Seq)
		if err != nil {
			return nil, err
		}
		parsed[i].Senses = senses
	}
	return parsed, nil
}

func (r *dictRepository) scanEntryRows(ctx context.Context, builder sq.SelectBuilder) ([]entity.ParsedEntry, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build entry query: %w", err)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	parsed := make([]entity.ParsedEntry, 0)
	for rows.Next() {
		var (
			seq  int64
			rebs types.StringList
			kebs types.StringList
		)
		if err := rows.Scan(&seq, &rebs, &kebs); err != nil {
			return nil, fmt.Errorf("scan entry row: %w", err)
		}
		parsed = append(parsed, entity.ParsedEntry{Seq: seq, Readings: rebs, KanjiForms: kebs})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entry rows: %w", err)
	}
	return parsed, nil
}

func (r *dictRepository) sensesFor(ctx context.Context, seq int64) ([]entity.Sense, error) {
	query, args, err := sq.Select("sense_order", "pos", "xref", "gloss").
		From("senses").
		Where(sq.Eq{"ent_seq": seq}).
		OrderBy("sense_order").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sense query: %w", err)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query senses for entry %d: %w", seq, err)
	}
	defer rows.Close()

	var senses []entity.Sense
	for rows.Next() {
		var (
			order            int
			pos, xref, gloss types.StringList
		)
		if err := rows.Scan(&order, &pos, &xref, &gloss); err != nil {
			return nil, fmt.Errorf("scan sense row: %w", err)
		}
		senses = append(senses, entity.Sense{
			Order:           order,
			PartsOfSpeech:   pos,
			CrossReferences: xref,
			Glosses:         gloss,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sense rows: %w", err)
	}
	return senses, nil
}
