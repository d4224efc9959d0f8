package postgres

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChunks(t *testing.T) {
	require.Empty(t, chunks(0, 10))
	require.Equal(t, [][2]int{{0, 3}}, chunks(3, 10))
	require.Equal(t, [][2]int{{0, 2}, {2, 4}, {4, 5}}, chunks(5, 2))
	require.Equal(t, [][2]int{{0, 1}}, chunks(1, 0))
}

func TestSchemaEmbedded(t *testing.T) {
	files, err := schemaFiles()
	require.NoError(t, err)
	require.NotEmpty(t, files)

	data, err := fs.ReadFile(SchemaFS, "schema/"+files[0])
	require.NoError(t, err)
	sql := string(data)
	require.True(t, strings.Contains(sql, "CREATE TABLE IF NOT EXISTS pools"))
	require.True(t, strings.Contains(sql, "CREATE TABLE IF NOT EXISTS calldata_journal"))
}

func TestNewStoreRequiresDSN(t *testing.T) {
	_, err := NewStore(context.Background(), "", 0, nil)
	require.Error(t, err)
}
