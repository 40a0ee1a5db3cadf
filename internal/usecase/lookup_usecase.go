package usecase

import (
	"context"

	"github.com/eslsoft/jmdictdb/internal/entity"
	"github.com/eslsoft/jmdictdb/internal/repository"
)

// LookupUsecase serves read-side queries against an already built store.
type LookupUsecase struct {
	repo repository.DictRepository
}

func NewLookupUsecase(repo repository.DictRepository) *LookupUsecase {
	return &LookupUsecase{repo: repo}
}

func (u *LookupUsecase) ByReading(ctx context.Context, reading string) ([]entity.ParsedEntry, error) {
	return u.repo.FindByReading(ctx, reading)
}

func (u *LookupUsecase) ByKanji(ctx context.Context, kanji string) ([]entity.ParsedEntry, error) {
	return u.repo.FindByKanji(ctx, kanji)
}

// Lookup dispatches on the query text: anything containing a kanji goes to
// the kanji index, everything else to the reading index.
func (u *LookupUsecase) Lookup(ctx context.Context, query string) ([]entity.ParsedEntry, error) {
	if entity.ContainsKanji(query) {
		return u.repo.FindByKanji(ctx, query)
	}
	return u.repo.FindByReading(ctx, query)
}
