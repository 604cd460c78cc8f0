package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	chromago "github.com/amikos-tech/chroma-go/pkg/api/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// ==========================
// Fakes
// ==========================

// fakeCollection embeds the Collection interface and overrides only the
// methods the indexer touches; anything else panics loudly.
type fakeCollection struct {
	chromago.Collection

	addCalls    int
	deleteCalls int
	metadatas   []chromago.DocumentMetadata
	queryGroups []chromago.Documents
}

func (f *fakeCollection) Add(_ context.Context, _ ...chromago.CollectionAddOption) error {
	f.addCalls++
	return nil
}

func (f *fakeCollection) Delete(_ context.Context, _ ...chromago.CollectionDeleteOption) error {
	f.deleteCalls++
	return nil
}

func (f *fakeCollection) Get(_ context.Context, _ ...chromago.CollectionGetOption) (chromago.GetResult, error) {
	return &fakeGetResult{metadatas: f.metadatas}, nil
}

func (f *fakeCollection) Query(_ context.Context, _ ...chromago.CollectionQueryOption) (chromago.QueryResult, error) {
	return &fakeQueryResult{groups: f.queryGroups}, nil
}

type fakeGetResult struct {
	chromago.GetResult
	metadatas []chromago.DocumentMetadata
}

func (f *fakeGetResult) GetMetadatas() chromago.DocumentMetadatas { return f.metadatas }

type fakeQueryResult struct {
	chromago.QueryResult
	groups []chromago.Documents
}

func (f *fakeQueryResult) GetDocumentsGroups() []chromago.Documents { return f.groups }

type fakeDocument struct {
	chromago.Document
	text string
}

func (f fakeDocument) ContentString() string { return f.text }

type stubEmbedder struct {
	docCalls   int
	queryCalls int
}

func (s *stubEmbedder) EmbedDocuments(_ context.Context, texts []string) ([][]float32, error) {
	s.docCalls++
	out := make([][]float32, len(texts))
	for i := range out {
		out[i] = []float32{0.1, 0.2, 0.3}
	}
	return out, nil
}

func (s *stubEmbedder) EmbedQuery(_ context.Context, _ string) ([]float32, error) {
	s.queryCalls++
	return []float32{0.1, 0.2, 0.3}, nil
}

// ==========================
// Helpers
// ==========================

// notesMetadata builds metadata the same way the indexer writes it, so the
// JSON round-trip in currentIndexState sees the real shape.
func notesMetadata(path, hash string) chromago.DocumentMetadata {
	return chromago.NewDocumentMetadata(
		chromago.NewStringAttribute("source", "notes"),
		chromago.NewStringAttribute("source_file", path),
		chromago.NewStringAttribute("file_hash", hash),
	)
}

func writeNote(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newTestIndexService(col *fakeCollection, emb *stubEmbedder) *IndexService {
	return NewIndexService(col, emb, zap.NewNop())
}

// ==========================
// Tests
// ==========================

func TestQuerySimilarExtractsFirstGroup(t *testing.T) {
	col := &fakeCollection{queryGroups: []chromago.Documents{{
		fakeDocument{text: "alpha"},
		fakeDocument{text: ""},
		fakeDocument{text: "beta"},
	}}}
	emb := &stubEmbedder{}
	svc := newTestIndexService(col, emb)

	chunks, err := svc.QuerySimilar(context.Background(), "what does she know?", 3)
	require.NoError(t, err)

	// Empty documents are dropped; order is preserved.
	assert.Equal(t, []string{"alpha", "beta"}, chunks)
	assert.Equal(t, 1, emb.queryCalls)
}

func TestQuerySimilarNoResults(t *testing.T) {
	svc := newTestIndexService(&fakeCollection{}, &stubEmbedder{})

	chunks, err := svc.QuerySimilar(context.Background(), "anything", 3)
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestIndexCorpusReplacesPreviousLoad(t *testing.T) {
	col := &fakeCollection{}
	emb := &stubEmbedder{}
	svc := newTestIndexService(col, emb)

	require.NoError(t, svc.IndexCorpus(context.Background()))

	expected, err := ResumeChunks()
	require.NoError(t, err)

	// Old resume chunks are cleared before the new load; one add per chunk,
	// one batched embedding call.
	assert.Equal(t, 1, col.deleteCalls)
	assert.Equal(t, len(expected), col.addCalls)
	assert.Equal(t, 1, emb.docCalls)
}

func TestScanAndIndexDirectory(t *testing.T) {
	t.Run("new file is indexed", func(t *testing.T) {
		dir := t.TempDir()
		writeNote(t, dir, "note.md", "Benitha mentors juniors.")

		col := &fakeCollection{}
		svc := newTestIndexService(col, &stubEmbedder{})
		svc.ScanAndIndexDirectory(context.Background(), dir)

		assert.Equal(t, 1, col.addCalls)
		assert.Zero(t, col.deleteCalls)
	})

	t.Run("unchanged file is skipped by hash", func(t *testing.T) {
		dir := t.TempDir()
		path := writeNote(t, dir, "note.md", "Benitha mentors juniors.")
		hash, err := fileHash(path)
		require.NoError(t, err)

		col := &fakeCollection{metadatas: []chromago.DocumentMetadata{
			notesMetadata(path, hash),
		}}
		svc := newTestIndexService(col, &stubEmbedder{})
		svc.ScanAndIndexDirectory(context.Background(), dir)

		assert.Zero(t, col.addCalls)
		assert.Zero(t, col.deleteCalls)
	})

	t.Run("changed file is deleted then re-indexed", func(t *testing.T) {
		dir := t.TempDir()
		path := writeNote(t, dir, "note.md", "Benitha mentors juniors.")

		col := &fakeCollection{metadatas: []chromago.DocumentMetadata{
			notesMetadata(path, "stale-hash"),
		}}
		svc := newTestIndexService(col, &stubEmbedder{})
		svc.ScanAndIndexDirectory(context.Background(), dir)

		assert.Equal(t, 1, col.deleteCalls)
		assert.Equal(t, 1, col.addCalls)
	})

	t.Run("removed file is deleted from the collection", func(t *testing.T) {
		dir := t.TempDir()

		col := &fakeCollection{metadatas: []chromago.DocumentMetadata{
			notesMetadata(filepath.Join(dir, "gone.md"), "old-hash"),
		}}
		svc := newTestIndexService(col, &stubEmbedder{})
		svc.ScanAndIndexDirectory(context.Background(), dir)

		assert.Equal(t, 1, col.deleteCalls)
		assert.Zero(t, col.addCalls)
	})

	t.Run("unsupported files are ignored", func(t *testing.T) {
		dir := t.TempDir()
		writeNote(t, dir, "photo.png", "not text")

		col := &fakeCollection{}
		svc := newTestIndexService(col, &stubEmbedder{})
		svc.ScanAndIndexDirectory(context.Background(), dir)

		assert.Zero(t, col.addCalls)
	})
}
