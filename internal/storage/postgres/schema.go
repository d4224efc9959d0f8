package postgres

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

// SchemaFS embeds the journal schema files.
//
//go:embed schema/*.sql
var SchemaFS embed.FS

func schemaFiles() ([]string, error) {
	entries, err := fs.ReadDir(SchemaFS, "schema")
	if err != nil {
		return nil, fmt.Errorf("read embedded schema: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

// EnsureSchema applies all embedded SQL files in lexical order. The files are
// idempotent.
func (s *Store) EnsureSchema(ctx context.Context) error {
	files, err := schemaFiles()
	if err != nil {
		return err
	}

	for _, file := range files {
		data, err := fs.ReadFile(SchemaFS, "schema/"+file)
		if err != nil {
			return fmt.Errorf("read schema %s: %w", file, err)
		}
		if strings.TrimSpace(string(data)) == "" {
			continue
		}
		if _, err := s.pool.Exec(ctx, string(data)); err != nil {
			return fmt.Errorf("apply schema %s: %w", file, err)
		}
	}
	return nil
}
