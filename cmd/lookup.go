/*
Copyright © 2025 Eslsoft

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	adapter "github.com/eslsoft/jmdictdb/internal/adapter/repository"
	"github.com/eslsoft/jmdictdb/internal/entity"
	"github.com/eslsoft/jmdictdb/internal/infrastructure/config"
	"github.com/eslsoft/jmdictdb/internal/infrastructure/database"
	"github.com/eslsoft/jmdictdb/internal/usecase"
)

const (
	lookupDBKey      = "lookup.db"
	lookupReadingKey = "lookup.reading"
	lookupKanjiKey   = "lookup.kanji"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <word>",
	Short: "Look up dictionary entries by reading or kanji",
	Long: `Queries the built dictionary database. Without flags the index is picked
from the query itself: words containing kanji go to the kanji index, pure
kana goes to the reading index.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		word := args[0]

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		dbPath := cfg.Database.Path
		if v := viper.GetString(lookupDBKey); v != "" {
			dbPath = v
		}

		db, cleanup, err := database.Connect(dbPath)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer cleanup()

		lookups := usecase.NewLookupUsecase(adapter.NewDictRepository(db))

		var results []entity.ParsedEntry
		switch {
		case viper.GetBool(lookupReadingKey):
			results, err = lookups.ByReading(ctx, word)
		case viper.GetBool(lookupKanjiKey):
			results, err = lookups.ByKanji(ctx, word)
		default:
			results, err = lookups.Lookup(ctx, word)
		}
		if err != nil {
			return fmt.Errorf("lookup %q: %w", word, err)
		}

		cmd.Printf("%d entries for %q\n", len(results), word)
		for _, e := range results {
			printEntry(cmd, e)
		}
		return nil
	},
}

func printEntry(cmd *cobra.Command, e entity.ParsedEntry) {
	cmd.Printf("ent_seq: %d\n", e.Seq)
	cmd.Printf("readings: %s\n", strings.Join(e.Readings, ", "))
	if len(e.KanjiForms) > 0 {
		cmd.Printf("kanji: %s\n", strings.Join(e.KanjiForms, ", "))
	}
	for _, s := range e.Senses {
		pos := strings.Join(s.PartsOfSpeech, ", ")
		if pos == "" {
			pos = "-"
		}
		cmd.Printf("  [%d] %s: %s\n", s.Order+1, pos, strings.Join(s.Glosses, "; "))
		if len(s.CrossReferences) > 0 {
			cmd.Printf("      see also: %s\n", strings.Join(s.CrossReferences, ", "))
		}
	}
}

func init() {
	rootCmd.AddCommand(lookupCmd)

	lookupCmd.Flags().String("db", "", "path to the SQLite database file")
	lookupCmd.Flags().Bool("reading", false, "force lookup by reading")
	lookupCmd.Flags().Bool("kanji", false, "force lookup by kanji")
	lookupCmd.MarkFlagsMutuallyExclusive("reading", "kanji")

	bindFlagToViper(lookupDBKey, lookupCmd.Flags().Lookup("db"))
	bindFlagToViper(lookupReadingKey, lookupCmd.Flags().Lookup("reading"))
	bindFlagToViper(lookupKanjiKey, lookupCmd.Flags().Lookup("kanji"))
}
