package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/newsdesk-lab/copydesk/pkg/cli/config"
	"github.com/newsdesk-lab/copydesk/pkg/utils/logging"
)

func TestLogger_Configure(t *testing.T) {
	// The logger config mutates the process default; restore it after.
	original := logging.Default()
	t.Cleanup(func() { logging.SetDefault(original) })

	t.Run("console to stdout", func(t *testing.T) {
		closer, err := config.NewLoggerForTest("info", "console", "stdout").Configure()
		gt.NoError(t, err).Required()
		closer()
	})

	t.Run("json to file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "app.log")
		closer, err := config.NewLoggerForTest("debug", "json", path).Configure()
		gt.NoError(t, err).Required()

		logging.Default().Info("hello", "key", "value")
		closer()

		data, err := os.ReadFile(path)
		gt.NoError(t, err).Required()
		gt.B(t, strings.Contains(string(data), `"hello"`)).True()
		gt.B(t, strings.Contains(string(data), `"value"`)).True()
	})

	t.Run("invalid level is rejected", func(t *testing.T) {
		_, err := config.NewLoggerForTest("loud", "console", "stdout").Configure()
		gt.B(t, errors.Is(err, config.ErrInvalidConfig)).True()
	})

	t.Run("invalid format is rejected", func(t *testing.T) {
		_, err := config.NewLoggerForTest("info", "xml", "stdout").Configure()
		gt.B(t, errors.Is(err, config.ErrInvalidConfig)).True()
	})
}

func TestRepository_Configure(t *testing.T) {
	ctx := t.Context()

	t.Run("memory backend", func(t *testing.T) {
		repo, err := config.NewRepositoryForTest("memory", "", "").Configure(ctx)
		gt.NoError(t, err).Required()
		gt.NoError(t, repo.Close())
	})

	t.Run("firestore backend requires a project ID", func(t *testing.T) {
		_, err := config.NewRepositoryForTest("firestore", "", "").Configure(ctx)
		gt.B(t, errors.Is(err, config.ErrInvalidConfig)).True()
	})

	t.Run("unknown backend is rejected", func(t *testing.T) {
		_, err := config.NewRepositoryForTest("dynamo", "", "").Configure(ctx)
		gt.B(t, errors.Is(err, config.ErrInvalidConfig)).True()
	})
}
