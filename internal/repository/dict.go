package repository

import (
	"context"

	"github.com/eslsoft/jmdictdb/internal/entity"
)

// DictRepository defines persistence for dictionary entries.
type DictRepository interface {
	// Ingest writes the whole batch inside one transaction, replacing any
	// previously stored version of each entry. Either everything commits or
	// nothing does.
	Ingest(ctx context.Context, entries []entity.Entry) error
	// FindByReading returns every entry whose reading list contains reading
	// exactly. An empty result is not an error.
	FindByReading(ctx context.Context, reading string) ([]entity.ParsedEntry, error)
	// FindByKanji returns every entry whose kanji form list contains kanji
	// exactly. Entries without kanji forms never match.
	FindByKanji(ctx context.Context, kanji string) ([]entity.ParsedEntry, error)
}
