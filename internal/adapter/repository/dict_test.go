package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eslsoft/jmdictdb/internal/entity"
	"github.com/eslsoft/jmdictdb/internal/infrastructure/database"
	"github.com/eslsoft/jmdictdb/internal/repository"
)

func newTestStore(t *testing.T) (string, *sql.DB, repository.DictRepository) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dict.db")
	db, cleanup, err := database.Connect(path)
	require.NoError(t, err)
	t.Cleanup(cleanup)
	return path, db, NewDictRepository(db)
}

func suruEntry() entity.Entry {
	return entity.Entry{
		Seq:      "1",
		Readings: []string{"する"},
		Senses: []entity.Sense{{
			Order:         0,
			PartsOfSpeech: []string{"v"},
			Glosses:       []string{"to do"},
		}},
	}
}

func TestIngest_RoundTrip(t *testing.T) {
	ctx := context.Background()
	_, _, repo := newTestStore(t)

	require.NoError(t, repo.Ingest(ctx, []entity.Entry{suruEntry()}))

	got, err := repo.FindByReading(ctx, "する")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].Seq)
	assert.Equal(t, []string{"する"}, []string(got[0].Readings))
	assert.Nil(t, got[0].KanjiForms)
	require.Len(t, got[0].Senses, 1)
	assert.Equal(t, []string{"to do"}, []string(got[0].Senses[0].Glosses))
	assert.Equal(t, []string{"v"}, []string(got[0].Senses[0].PartsOfSpeech))
}

func TestIngest_ReplacesPreviousSenses(t *testing.T) {
	ctx := context.Background()
	_, db, repo := newTestStore(t)

	require.NoError(t, repo.Ingest(ctx, []entity.Entry{suruEntry()}))

	updated := suruEntry()
	updated.Senses = []entity.Sense{{
		Order:         0,
		PartsOfSpeech: []string{"v"},
		Glosses:       []string{"to carry out"},
	}}
	require.NoError(t, repo.Ingest(ctx, []entity.Entry{updated}))

	var entryCount, senseCount int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM entries WHERE ent_seq = 1").Scan(&entryCount))
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM senses WHERE ent_seq = 1").Scan(&senseCount))
	assert.Equal(t, 1, entryCount)
	assert.Equal(t, 1, senseCount)

	got, err := repo.FindByReading(ctx, "する")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"to carry out"}, []string(got[0].Senses[0].Glosses))
}

func TestFindByKanji_ExcludesEntriesWithoutKanji(t *testing.T) {
	ctx := context.Background()
	_, _, repo := newTestStore(t)

	require.NoError(t, repo.Ingest(ctx, []entity.Entry{suruEntry()}))

	for _, q := range []string{"する", "為る", ""} {
		got, err := repo.FindByKanji(ctx, q)
		require.NoError(t, err)
		assert.Empty(t, got, "query %q", q)
	}
}

func TestFindByKanji_MatchesMembership(t *testing.T) {
	ctx := context.Background()
	_, _, repo := newTestStore(t)

	taberu := entity.Entry{
		Seq:        "2",
		Readings:   []string{"たべる"},
		KanjiForms: []string{"食べる", "喰べる"},
		Senses: []entity.Sense{{
			Order:   0,
			Glosses: []string{"to eat"},
		}},
	}
	require.NoError(t, repo.Ingest(ctx, []entity.Entry{taberu}))

	got, err := repo.FindByKanji(ctx, "喰べる")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(2), got[0].Seq)
	assert.Equal(t, []string{"食べる", "喰べる"}, []string(got[0].KanjiForms))

	// Exact membership only, no partial match.
	got, err = repo.FindByKanji(ctx, "食べ")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestIngest_PreservesSenseOrder(t *testing.T) {
	ctx := context.Background()
	_, _, repo := newTestStore(t)

	e := suruEntry()
	e.Senses = []entity.Sense{
		{Order: 0, Glosses: []string{"a"}},
		{Order: 1, Glosses: []string{"b"}},
		{Order: 2, Glosses: []string{"c"}},
	}
	// Two passes so the sense rows get fresh physical positions.
	require.NoError(t, repo.Ingest(ctx, []entity.Entry{e}))
	require.NoError(t, repo.Ingest(ctx, []entity.Entry{e}))

	got, err := repo.FindByReading(ctx, "する")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Len(t, got[0].Senses, 3)
	for i, want := range []string{"a", "b", "c"} {
		assert.Equal(t, i, got[0].Senses[i].Order)
		assert.Equal(t, []string{want}, []string(got[0].Senses[i].Glosses))
	}
}

func TestIngest_NonNumericSeqRollsBackWholeBatch(t *testing.T) {
	ctx := context.Background()
	_, _, repo := newTestStore(t)

	bad := entity.Entry{Seq: "abc", Readings: []string{"だめ"}}
	err := repo.Ingest(ctx, []entity.Entry{suruEntry(), bad})
	require.Error(t, err)

	// The entry processed before the failure must not be visible either.
	got, err := repo.FindByReading(ctx, "する")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestReset_DropsIngestedData(t *testing.T) {
	ctx := context.Background()
	path, _, repo := newTestStore(t)

	require.NoError(t, repo.Ingest(ctx, []entity.Entry{suruEntry()}))

	require.NoError(t, database.Reset(path))
	db, cleanup, err := database.Connect(path)
	require.NoError(t, err)
	t.Cleanup(cleanup)

	got, err := NewDictRepository(db).FindByReading(ctx, "する")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestReset_IdempotentWithoutStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.db")
	require.NoError(t, database.Reset(path))
	require.NoError(t, database.Reset(path))
}
