package embedding

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/agenthands/cortex/internal/config"
	"github.com/agenthands/cortex/internal/llm"
	"github.com/agenthands/cortex/internal/model"
)

// Service resolves document embeddings through the cache, invoking the
// model only for missing or stale entries.
type Service struct {
	cache       Cache
	embedder    llm.EmbedderClient
	prefixLen   int
	batchSize   int
	concurrency int
	limiter     *rate.Limiter

	// OnProgress, when set, is called after each completed batch with
	// the number of documents embedded so far and the total to embed.
	OnProgress func(done, total int)
}

func NewService(cache Cache, embedder llm.EmbedderClient, cfg config.EmbeddingConfig) *Service {
	s := &Service{
		cache:       cache,
		embedder:    embedder,
		prefixLen:   cfg.PrefixLen,
		batchSize:   cfg.BatchSize,
		concurrency: cfg.Concurrency,
	}
	if s.prefixLen <= 0 {
		s.prefixLen = 500
	}
	if s.batchSize <= 0 {
		s.batchSize = 32
	}
	if s.concurrency <= 0 {
		s.concurrency = 1
	}
	if cfg.RateLimit > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)
	}
	return s
}

// Model identifies the active vector space.
func (s *Service) Model() string { return s.embedder.Model() }

// GetEmbedding returns the vector for one document, recomputing only
// when the stored hash or model no longer matches.
func (s *Service) GetEmbedding(ctx context.Context, doc model.Document) ([]float32, error) {
	hash := ContentHash(doc.Title, doc.Content, s.prefixLen)

	cached, err := s.cache.Get(ctx, doc.ID)
	if err == nil && cached.ContentHash == hash && cached.Model == s.embedder.Model() {
		return cached.Vector, nil
	}

	vec, err := s.embedText(ctx, PrepareText(doc.Title, doc.Content, s.prefixLen))
	if err != nil {
		return nil, fmt.Errorf("embedding %s: %w", doc.ID, err)
	}

	if err := s.cache.Put(ctx, Embedding{
		FileID:      doc.ID,
		Vector:      vec,
		Model:       s.embedder.Model(),
		ContentHash: hash,
		CreatedAt:   time.Now().UTC(),
	}); err != nil {
		return nil, err
	}
	return vec, nil
}

// GetEmbeddings returns vectors for all given documents, embedding only
// the stale or missing subset in batched model calls. With force set,
// every document is recomputed and its row overwritten even when the
// content is unchanged. Documents with nothing to embed (no title, no
// content) are omitted from the result.
//
// The call blocks until the full mapping is ready. Completed cache rows
// survive a cancelled run, but the call itself returns the context
// error rather than a partial result.
func (s *Service) GetEmbeddings(ctx context.Context, docs []model.Document, force bool) (map[string][]float32, error) {
	result := make(map[string][]float32, len(docs))

	hashes := make(map[string]string, len(docs))
	ids := make([]string, 0, len(docs))
	byID := make(map[string]model.Document, len(docs))
	for _, doc := range docs {
		if doc.Title == "" && doc.Content == "" {
			slog.Debug("skipping empty document", "id", doc.ID)
			continue
		}
		if _, ok := byID[doc.ID]; ok {
			continue
		}
		byID[doc.ID] = doc
		ids = append(ids, doc.ID)
		hashes[doc.ID] = ContentHash(doc.Title, doc.Content, s.prefixLen)
	}

	var stale []model.Document
	if force {
		for _, id := range ids {
			stale = append(stale, byID[id])
		}
	} else {
		cached, err := s.cache.GetBatch(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			row, ok := cached[id]
			if ok && row.ContentHash == hashes[id] && row.Model == s.embedder.Model() {
				result[id] = row.Vector
				continue
			}
			stale = append(stale, byID[id])
		}
	}

	if len(stale) == 0 {
		return result, nil
	}
	slog.Info("computing embeddings", "stale", len(stale), "cached", len(result), "model", s.embedder.Model())

	var (
		mu   sync.Mutex
		done int
	)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for start := 0; start < len(stale); start += s.batchSize {
		end := start + s.batchSize
		if end > len(stale) {
			end = len(stale)
		}
		batch := stale[start:end]

		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			if s.limiter != nil {
				if err := s.limiter.Wait(ctx); err != nil {
					return err
				}
			}

			texts := make([]string, len(batch))
			for i, doc := range batch {
				texts[i] = PrepareText(doc.Title, doc.Content, s.prefixLen)
			}
			vecs, err := s.embedder.EmbedBatch(ctx, texts)
			if err != nil {
				return fmt.Errorf("embedding batch of %d: %w", len(batch), err)
			}

			for i, doc := range batch {
				if err := s.cache.Put(ctx, Embedding{
					FileID:      doc.ID,
					Vector:      vecs[i],
					Model:       s.embedder.Model(),
					ContentHash: hashes[doc.ID],
					CreatedAt:   time.Now().UTC(),
				}); err != nil {
					return err
				}
			}

			mu.Lock()
			for i, doc := range batch {
				result[doc.ID] = vecs[i]
			}
			done += len(batch)
			progress := done
			mu.Unlock()

			if s.OnProgress != nil {
				s.OnProgress(progress, len(stale))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

// Cached loads every stored embedding without touching the model. A row
// computed under a different model identifier than the active one is a
// configuration error: the vector spaces must not be mixed.
func (s *Service) Cached(ctx context.Context) (map[string][]float32, error) {
	rows, err := s.cache.All(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]float32, len(rows))
	for id, row := range rows {
		if row.Model != s.embedder.Model() {
			return nil, fmt.Errorf("cache holds %q, active model is %q: %w",
				row.Model, s.embedder.Model(), model.ErrModelMismatch)
		}
		out[id] = row.Vector
	}
	return out, nil
}

// Close releases the underlying cache.
func (s *Service) Close() error { return s.cache.Close() }

// EmbedQuery embeds ad-hoc text with the active model, bypassing the
// cache. Used for search queries that are not documents.
func (s *Service) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return s.embedText(ctx, text)
}

func (s *Service) embedText(ctx context.Context, text string) ([]float32, error) {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}
	return s.embedder.Embed(ctx, text)
}
