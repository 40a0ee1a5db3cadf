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
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	adapter "github.com/eslsoft/jmdictdb/internal/adapter/repository"
	"github.com/eslsoft/jmdictdb/internal/infrastructure/config"
	"github.com/eslsoft/jmdictdb/internal/infrastructure/database"
	"github.com/eslsoft/jmdictdb/internal/infrastructure/logging"
	"github.com/eslsoft/jmdictdb/internal/jmdict"
	"github.com/eslsoft/jmdictdb/internal/usecase"
)

const (
	buildDictKey = "build.dict"
	buildDBKey   = "build.db"
)

// buildCmd rebuilds the dictionary database from scratch. Each run is a full
// replace: the existing store (including -wal/-shm files) is destroyed first.
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Rebuild the dictionary database from the JMdict XML file",
	Long: `Resolves the DTD entities of the JMdict XML distribution, parses the
document and ingests every entry into a fresh SQLite database in a single
transaction.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		start := time.Now()

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		logger, err := logging.NewLogger(cfg)
		if err != nil {
			return fmt.Errorf("create logger: %w", err)
		}

		dictPath := cfg.Dict.Path
		if v := viper.GetString(buildDictKey); v != "" {
			dictPath = v
		}
		dbPath := cfg.Database.Path
		if v := viper.GetString(buildDBKey); v != "" {
			dbPath = v
		}

		if err := database.Reset(dbPath); err != nil {
			return fmt.Errorf("reset database: %w", err)
		}
		db, cleanup, err := database.Connect(dbPath)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer cleanup()

		importer := usecase.NewImportUsecase(jmdict.ParseDocument, adapter.NewDictRepository(db), logger)
		count, err := importer.Run(ctx, dictPath)
		if err != nil {
			return err
		}

		logger.WithFields(logrus.Fields{
			"entries": count,
			"db":      dbPath,
			"took":    time.Since(start).Round(time.Millisecond),
		}).Info("dictionary build complete")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().String("dict", "", "path to the JMdict XML file")
	buildCmd.Flags().String("db", "", "path to the SQLite database file")

	bindFlagToViper(buildDictKey, buildCmd.Flags().Lookup("dict"))
	bindFlagToViper(buildDBKey, buildCmd.Flags().Lookup("db"))
}
