package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	chromago "github.com/amikos-tech/chroma-go/pkg/api/v2"
	chromaembed "github.com/amikos-tech/chroma-go/pkg/embeddings"
	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/textsplitter"
	"go.uber.org/zap"
)

// IndexService owns the similarity index: it embeds the fixed corpus into a
// chroma collection at startup and answers top-k queries at request time. It
// can also sync an optional directory of extra notes and keep it fresh with
// a file watcher.
type IndexService struct {
	collection chromago.Collection
	embedder   embeddings.Embedder
	log        *zap.Logger
}

// NewIndexService creates the index service around an existing collection.
func NewIndexService(collection chromago.Collection, embedder embeddings.Embedder, log *zap.Logger) *IndexService {
	return &IndexService{
		collection: collection,
		embedder:   embedder,
		log:        log,
	}
}

// IndexCorpus embeds the résumé chunks and adds them to the collection. It
// is idempotent across restarts: a previous résumé load is replaced rather
// than duplicated.
func (s *IndexService) IndexCorpus(ctx context.Context) error {
	chunks, err := ResumeChunks()
	if err != nil {
		return fmt.Errorf("could not split resume text: %w", err)
	}

	// Drop any chunks from a previous process lifetime first.
	if err := s.deleteDocumentsBySource(ctx, "resume"); err != nil {
		s.log.Warn("could not clear previous resume chunks", zap.Error(err))
	}

	vectors, err := s.embedder.EmbedDocuments(ctx, chunks)
	if err != nil {
		return fmt.Errorf("could not embed resume chunks: %w", err)
	}

	for i, chunk := range chunks {
		embedding := chromaembed.NewEmbeddingFromFloat32(vectors[i])
		metadata := chromago.NewDocumentMetadata(
			chromago.NewStringAttribute("source", "resume"),
			chromago.NewIntAttribute("chunk_num", int64(i)),
		)
		err = s.collection.Add(ctx,
			chromago.WithIDs(chromago.DocumentID(fmt.Sprintf("resume-%d-%s", i, uuid.New().String()))),
			chromago.WithTexts(chunk),
			chromago.WithEmbeddings(embedding),
			chromago.WithMetadatas(metadata),
		)
		if err != nil {
			return fmt.Errorf("failed to add resume chunk %d: %w", i, err)
		}
	}

	s.log.Info("resume indexed", zap.Int("chunks", len(chunks)))
	return nil
}

// QuerySimilar returns the text of the k most similar chunks to the query.
func (s *IndexService) QuerySimilar(ctx context.Context, query string, k int) ([]string, error) {
	vector, err := s.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	results, err := s.collection.Query(ctx,
		chromago.WithQueryEmbeddings(chromaembed.NewEmbeddingFromFloat32(vector)),
		chromago.WithNResults(k),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query collection: %w", err)
	}

	var chunks []string
	groups := results.GetDocumentsGroups()
	if len(groups) > 0 {
		for _, doc := range groups[0] {
			if doc.ContentString() != "" {
				chunks = append(chunks, doc.ContentString())
			}
		}
	}
	return chunks, nil
}

// Ready reports whether the collection holds any documents. Concurrent reads
// are safe; the collection is only written at startup and by the watcher.
func (s *IndexService) Ready(ctx context.Context) bool {
	count, err := s.collection.Count(ctx)
	if err != nil {
		s.log.Warn("could not count collection", zap.Error(err))
		return false
	}
	return count > 0
}

// indexState holds the content hash a file had when it was last indexed.
type indexState struct {
	Hash string
}

// ScanAndIndexDirectory syncs the notes directory with the collection:
// new and changed files are (re-)indexed, deleted files are removed.
func (s *IndexService) ScanAndIndexDirectory(ctx context.Context, dirPath string) {
	s.log.Info("scanning notes directory", zap.String("dir", dirPath))

	indexedFiles, err := s.currentIndexState(ctx)
	if err != nil {
		s.log.Error("could not read current index state", zap.Error(err))
		return
	}

	localFiles := make(map[string]bool)
	err = filepath.Walk(dirPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !isSupportedFile(path) {
			return nil
		}
		localFiles[path] = true

		hash, err := fileHash(path)
		if err != nil {
			s.log.Warn("could not hash file", zap.String("path", path), zap.Error(err))
			return nil
		}

		if state, ok := indexedFiles[path]; ok {
			if state.Hash == hash {
				return nil
			}
			if err := s.deleteDocumentsByFile(ctx, path); err != nil {
				s.log.Error("failed to delete old version", zap.String("path", path), zap.Error(err))
				return nil
			}
		}

		if err := s.indexFile(ctx, path, hash); err != nil {
			s.log.Error("failed to index file", zap.String("path", path), zap.Error(err))
		}
		return nil
	})
	if err != nil {
		s.log.Error("error walking notes directory", zap.String("dir", dirPath), zap.Error(err))
	}

	for path := range indexedFiles {
		if !localFiles[path] {
			if err := s.deleteDocumentsByFile(ctx, path); err != nil {
				s.log.Error("failed to remove deleted file from index", zap.String("path", path), zap.Error(err))
			}
		}
	}
}

// WatchDirectory blocks, re-indexing notes as they change, until the context
// is cancelled.
func (s *IndexService) WatchDirectory(ctx context.Context, dirPath string) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		s.log.Error("failed to create file watcher", zap.Error(err))
		return
	}
	defer watcher.Close()

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !isSupportedFile(event.Name) {
					continue
				}

				// Editors often write via a temp file and rename, so Create
				// and Write are handled the same way.
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
					hash, err := fileHash(event.Name)
					if err != nil {
						s.log.Warn("could not hash changed file", zap.String("path", event.Name), zap.Error(err))
						continue
					}
					if err := s.deleteDocumentsByFile(ctx, event.Name); err != nil {
						s.log.Warn("could not clear old chunks", zap.String("path", event.Name), zap.Error(err))
					}
					if err := s.indexFile(ctx, event.Name, hash); err != nil {
						s.log.Error("failed to re-index file", zap.String("path", event.Name), zap.Error(err))
					}
				} else if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
					if err := s.deleteDocumentsByFile(ctx, event.Name); err != nil {
						s.log.Error("failed to remove file from index", zap.String("path", event.Name), zap.Error(err))
					}
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.log.Error("watcher error", zap.Error(err))

			case <-ctx.Done():
				return
			}
		}
	}()

	if err := watcher.Add(dirPath); err != nil {
		s.log.Error("failed to watch notes directory", zap.String("dir", dirPath), zap.Error(err))
		return
	}
	s.log.Info("watching notes directory", zap.String("dir", dirPath))

	<-ctx.Done()
}

func (s *IndexService) indexFile(ctx context.Context, path, hash string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(500),
		textsplitter.WithChunkOverlap(50),
	)
	chunks, err := splitter.SplitText(string(content))
	if err != nil {
		return err
	}

	vectors, err := s.embedder.EmbedDocuments(ctx, chunks)
	if err != nil {
		return fmt.Errorf("could not embed chunks of %s: %w", path, err)
	}

	for i, chunk := range chunks {
		metadata := chromago.NewDocumentMetadata(
			chromago.NewStringAttribute("source", "notes"),
			chromago.NewStringAttribute("source_file", path),
			chromago.NewStringAttribute("file_hash", hash),
			chromago.NewIntAttribute("chunk_num", int64(i)),
		)
		err = s.collection.Add(ctx,
			chromago.WithIDs(chromago.DocumentID(fmt.Sprintf("%s-chunk%d", uuid.New().String(), i))),
			chromago.WithTexts(chunk),
			chromago.WithEmbeddings(chromaembed.NewEmbeddingFromFloat32(vectors[i])),
			chromago.WithMetadatas(metadata),
		)
		if err != nil {
			return fmt.Errorf("failed to add chunk %d of %s: %w", i, path, err)
		}
	}

	s.log.Info("indexed notes file", zap.String("path", path), zap.Int("chunks", len(chunks)))
	return nil
}

func (s *IndexService) currentIndexState(ctx context.Context) (map[string]indexState, error) {
	state := make(map[string]indexState)
	results, err := s.collection.Get(ctx)
	if err != nil {
		return nil, err
	}
	for _, meta := range results.GetMetadatas() {
		if meta == nil {
			continue
		}
		// DocumentMetadata has no map accessor; round-trip through JSON.
		jsonBytes, err := json.Marshal(meta)
		if err != nil {
			continue
		}
		var metaMap map[string]interface{}
		if err := json.Unmarshal(jsonBytes, &metaMap); err != nil {
			continue
		}
		path, ok := metaMap["source_file"].(string)
		if !ok {
			continue
		}
		if hash, ok := metaMap["file_hash"].(string); ok {
			if _, exists := state[path]; !exists {
				state[path] = indexState{Hash: hash}
			}
		}
	}
	return state, nil
}

func (s *IndexService) deleteDocumentsByFile(ctx context.Context, path string) error {
	where := chromago.EqString("source_file", path)
	return s.collection.Delete(ctx, chromago.WithWhereDelete(where))
}

func (s *IndexService) deleteDocumentsBySource(ctx context.Context, source string) error {
	where := chromago.EqString("source", source)
	return s.collection.Delete(ctx, chromago.WithWhereDelete(where))
}

func isSupportedFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md":
		return true
	default:
		return false
	}
}

func fileHash(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", err
	}
	return hex.EncodeToString(hash.Sum(nil)), nil
}
