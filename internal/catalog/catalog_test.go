// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/bookmatch/pkg/types"
)

// --- test helpers ---

func testStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := NewStore(types.CatalogConfig{Dir: filepath.Join(dir, "catalog")})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store, dir
}

func writeBooks(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const sampleBooks = `
- title: Dune
  author: Frank Herbert
  genre: Bilim Kurgu
  summary: Çöl gezegeni Arrakis'te geçen destansı bir hikaye.
  image_url: https://example.com/dune.jpg
- title: Kürk Mantolu Madonna
  author: Sabahattin Ali
  genre: Roman
- title: "  "
  author: Anonim
  genre: Şiir
- title: İsimsiz Taslak
  genre: Deneme
`

func TestNewStoreCreatesDBFile(t *testing.T) {
	_, dir := testStore(t)
	_, err := os.Stat(filepath.Join(dir, "catalog", dbFile))
	assert.NoError(t, err)
}

func TestNewStoreIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 2; i++ {
		s, err := NewStore(types.CatalogConfig{Dir: dir})
		require.NoError(t, err)
		require.NoError(t, s.Close())
	}
}

func TestImport(t *testing.T) {
	store, dir := testStore(t)
	path := writeBooks(t, dir, "books.yaml", sampleBooks)

	var out bytes.Buffer
	summary, err := store.Import(context.Background(), path, &out)
	require.NoError(t, err)

	assert.Equal(t, ImportSummary{Added: 3, Skipped: 1}, summary)
	assert.Equal(t, 4, summary.Total())
	assert.Contains(t, out.String(), "added   Dune")
	assert.Contains(t, out.String(), "skipped #3")

	n, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestImportUpsertsByID(t *testing.T) {
	store, dir := testStore(t)
	path := writeBooks(t, dir, "books.yaml", sampleBooks)

	_, err := store.Import(context.Background(), path, io.Discard)
	require.NoError(t, err)

	// Same title and author with different casing resolves to the same ID.
	path = writeBooks(t, dir, "update.yaml", `
- title: DUNE
  author: frank herbert
  genre: Bilim Kurgu
  summary: Yeni özet.
`)
	summary, err := store.Import(context.Background(), path, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, ImportSummary{Updated: 1}, summary)

	entries, err := store.All(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "DUNE", entries[0].Title, "update keeps the original row position")
	assert.Equal(t, "Yeni özet.", entries[0].Summary)
	assert.Empty(t, entries[0].ImageURL)
}

func TestImportKeepsExplicitID(t *testing.T) {
	store, dir := testStore(t)
	path := writeBooks(t, dir, "books.yaml", `
- id: book-42
  title: Kar
  author: Orhan Pamuk
  genre: Roman
`)
	_, err := store.Import(context.Background(), path, io.Discard)
	require.NoError(t, err)

	entries, err := store.All(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "book-42", entries[0].ID)
}

func TestImportErrors(t *testing.T) {
	store, dir := testStore(t)

	_, err := store.Import(context.Background(), filepath.Join(dir, "missing.yaml"), io.Discard)
	assert.ErrorContains(t, err, "reading")

	path := writeBooks(t, dir, "bad.yaml", "title: [unterminated")
	_, err = store.Import(context.Background(), path, io.Discard)
	assert.ErrorContains(t, err, "parsing")
}

func TestAllPreservesOrderAndNulls(t *testing.T) {
	store, dir := testStore(t)
	path := writeBooks(t, dir, "books.yaml", sampleBooks)
	_, err := store.Import(context.Background(), path, io.Discard)
	require.NoError(t, err)

	entries, err := store.All(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "Dune", entries[0].Title)
	assert.Equal(t, "https://example.com/dune.jpg", entries[0].ImageURL)
	assert.Equal(t, "Kürk Mantolu Madonna", entries[1].Title)
	assert.Equal(t, "İsimsiz Taslak", entries[2].Title)

	// The author column is NULL and surfaces as blank, so the entry is incomplete.
	assert.Empty(t, entries[2].Author)
	assert.False(t, entries[2].Complete())
	assert.True(t, entries[0].Complete())
}

func TestAllEmpty(t *testing.T) {
	store, _ := testStore(t)
	entries, err := store.All(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestBookIDIsDeterministic(t *testing.T) {
	assert.Equal(t, BookID("Dune", "Frank Herbert"), BookID(" dune ", "FRANK HERBERT"))
	assert.NotEqual(t, BookID("Dune", "Frank Herbert"), BookID("Dune Mesihi", "Frank Herbert"))
}

func TestExportYAMLRoundTrips(t *testing.T) {
	store, dir := testStore(t)
	path := writeBooks(t, dir, "books.yaml", sampleBooks)
	_, err := store.Import(context.Background(), path, io.Discard)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, store.ExportYAML(context.Background(), &buf))

	var exported []types.CatalogEntry
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &exported))
	require.Len(t, exported, 3)

	// Re-importing the export into a fresh store yields the same rows.
	other, err := NewStore(types.CatalogConfig{Dir: filepath.Join(dir, "other")})
	require.NoError(t, err)
	defer other.Close()

	exportPath := writeBooks(t, dir, "export.yaml", buf.String())
	summary, err := other.Import(context.Background(), exportPath, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Added)

	want, _ := store.All(context.Background())
	got, _ := other.All(context.Background())
	assert.Equal(t, want, got)
}

func TestExportJSON(t *testing.T) {
	store, dir := testStore(t)

	var buf bytes.Buffer
	require.NoError(t, store.ExportJSON(context.Background(), &buf))
	assert.JSONEq(t, `[]`, buf.String())

	path := writeBooks(t, dir, "books.yaml", sampleBooks)
	_, err := store.Import(context.Background(), path, io.Discard)
	require.NoError(t, err)

	buf.Reset()
	require.NoError(t, store.ExportJSON(context.Background(), &buf))

	var exported []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &exported))
	require.Len(t, exported, 3)
	assert.Equal(t, "Dune", exported[0]["title"])
	assert.Equal(t, "https://example.com/dune.jpg", exported[0]["imageUrl"])
}
