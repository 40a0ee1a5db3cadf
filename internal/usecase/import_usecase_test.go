package usecase

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapter "github.com/eslsoft/jmdictdb/internal/adapter/repository"
	"github.com/eslsoft/jmdictdb/internal/infrastructure/database"
	"github.com/eslsoft/jmdictdb/internal/jmdict"
)

const testDictionary = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE JMdict [
<!ENTITY v "verb">
<!ENTITY n "noun (common)">
]>
<JMdict>
<entry>
<ent_seq>1</ent_seq>
<r_ele><reb>する</reb></r_ele>
<sense><pos>&v;</pos><gloss>to do</gloss></sense>
</entry>
<entry>
<ent_seq>2</ent_seq>
<k_ele><keb>食事</keb></k_ele>
<r_ele><reb>しょくじ</reb></r_ele>
<sense><pos>&n;</pos><gloss>meal</gloss></sense>
<sense><pos>&v;</pos><gloss>to have a meal</gloss></sense>
</entry>
</JMdict>`

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestImport_RunFullPass(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	dictPath := filepath.Join(dir, "JMdict_e")
	require.NoError(t, os.WriteFile(dictPath, []byte(testDictionary), 0o644))

	db, cleanup, err := database.Connect(filepath.Join(dir, "dict.db"))
	require.NoError(t, err)
	t.Cleanup(cleanup)
	repo := adapter.NewDictRepository(db)

	uc := NewImportUsecase(jmdict.ParseDocument, repo, quietLogger())
	count, err := uc.Run(ctx, dictPath)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	got, err := repo.FindByKanji(ctx, "食事")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Len(t, got[0].Senses, 2)
	// DTD entities resolved before structural parsing.
	assert.Equal(t, []string{"noun (common)"}, []string(got[0].Senses[0].PartsOfSpeech))
	assert.Equal(t, []string{"verb"}, []string(got[0].Senses[1].PartsOfSpeech))
}

func TestImport_MissingFile(t *testing.T) {
	uc := NewImportUsecase(jmdict.ParseDocument, &mockDictRepo{}, quietLogger())
	_, err := uc.Run(context.Background(), filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}
