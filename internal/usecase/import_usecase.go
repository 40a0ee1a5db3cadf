package usecase

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/eslsoft/jmdictdb/internal/jmdict"
	"github.com/eslsoft/jmdictdb/internal/repository"
)

// ImportUsecase runs a full rebuild pass: raw dictionary XML in, populated
// store out. The whole source file is loaded into memory; JMdict is a single
// document and entity resolution needs the inline DTD anyway.
type ImportUsecase struct {
	parser jmdict.Parser
	repo   repository.DictRepository
	logger *logrus.Logger
}

func NewImportUsecase(parser jmdict.Parser, repo repository.DictRepository, logger *logrus.Logger) *ImportUsecase {
	return &ImportUsecase{parser: parser, repo: repo, logger: logger}
}

// Run ingests the dictionary file at dictPath and returns the number of
// entries written. Any failure aborts the pass; reruns start from scratch.
func (u *ImportUsecase) Run(ctx context.Context, dictPath string) (int, error) {
	loadStart := time.Now()
	raw, err := os.ReadFile(dictPath)
	if err != nil {
		return 0, fmt.Errorf("read dictionary file: %w", err)
	}
	u.logger.WithFields(logrus.Fields{
		"bytes": len(raw),
		"took":  time.Since(loadStart).Round(time.Millisecond),
	}).Info("dictionary file loaded")

	resolveStart := time.Now()
	resolved, entityCount, err := jmdict.ResolveEntities(string(raw))
	if err != nil {
		return 0, fmt.Errorf("resolve entities: %w", err)
	}
	u.logger.WithFields(logrus.Fields{
		"entities": entityCount,
		"took":     time.Since(resolveStart).Round(time.Millisecond),
	}).Info("entities resolved")

	parseStart := time.Now()
	doc, err := u.parser(resolved)
	if err != nil {
		return 0, fmt.Errorf("parse dictionary: %w", err)
	}
	u.logger.WithFields(logrus.Fields{
		"entries": len(doc.Entries),
		"took":    time.Since(parseStart).Round(time.Millisecond),
	}).Info("document parsed")

	ingestStart := time.Now()
	if err := u.repo.Ingest(ctx, doc.Entries); err != nil {
		return 0, fmt.Errorf("ingest entries: %w", err)
	}
	u.logger.WithFields(logrus.Fields{
		"entries": len(doc.Entries),
		"took":    time.Since(ingestStart).Round(time.Millisecond),
	}).Info("entries ingested")

	return len(doc.Entries), nil
}
