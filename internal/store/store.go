// Package store provides SurrealDB-backed persistence for analysis
// documents with vector similarity search, plus file persistence for
// pipeline artifacts.
package store

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/surrealdb/surrealdb.go"
	"github.com/surrealdb/surrealdb.go/contrib/rews"
	"github.com/surrealdb/surrealdb.go/pkg/connection"
	"github.com/surrealdb/surrealdb.go/pkg/connection/gorillaws"
	"github.com/surrealdb/surrealdb.go/pkg/logger"
	"github.com/surrealdb/surrealdb.go/surrealcbor"

	"tripnotes/internal/models"
)

func init() {
	// Force HTTP/1.1 for WSS connections to prevent HTTP/2 ALPN negotiation.
	// WebSocket upgrade requires HTTP/1.1 semantics which fail under HTTP/2.
	gorillaws.DefaultDialer.TLSClientConfig = &tls.Config{
		NextProtos: []string{"http/1.1"},
	}
}

// Embedder turns text into vectors for storage and querying.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	Dimension() int
}

// Config holds SurrealDB connection configuration.
type Config struct {
	URL       string
	Namespace string
	Database  string
	Username  string
	Password  string
	AuthLevel string // "root" or "database"
}

// Store wraps a SurrealDB connection with auto-reconnect and an embedder.
type Store struct {
	conn     *rews.Connection[*gorillaws.Connection]
	db       *surrealdb.DB
	embedder Embedder
	logger   logger.Logger
}

// New creates a store with an auto-reconnecting WebSocket connection.
func New(ctx context.Context, cfg Config, embedder Embedder, log *slog.Logger) (*Store, error) {
	var sdkLogger logger.Logger
	if log != nil {
		sdkLogger = logger.New(log.Handler())
	} else {
		sdkLogger = logger.New(slog.Default().Handler())
	}

	// surrealcbor handles SurrealDB custom CBOR tags
	codec := surrealcbor.New()

	// gorillaws requires ws:// or wss:// URL without /rpc suffix (it adds /rpc internally)
	baseURL := strings.TrimSuffix(cfg.URL, "/rpc")

	conn := rews.New(
		func(ctx context.Context) (*gorillaws.Connection, error) {
			ws := gorillaws.New(&connection.Config{
				BaseURL:     baseURL,
				Marshaler:   codec,
				Unmarshaler: codec,
				Logger:      sdkLogger,
			})
			return ws, nil
		},
		5*time.Second,
		codec,
		sdkLogger,
	)

	retryer := rews.NewExponentialBackoffRetryer()
	retryer.InitialDelay = 1 * time.Second
	retryer.MaxDelay = 30 * time.Second
	retryer.Multiplier = 2.0
	retryer.MaxRetries = 10
	conn.Retryer = retryer

	sdkLogger.Info("connecting to SurrealDB", "url", cfg.URL)
	if err := conn.Connect(ctx); err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	db, err := surrealdb.FromConnection(ctx, conn)
	if err != nil {
		_ = conn.Close(ctx)
		return nil, fmt.Errorf("from connection: %w", err)
	}

	sdkLogger.Info("authenticating", "user", cfg.Username, "auth_level", cfg.AuthLevel)
	if cfg.AuthLevel == "database" {
		_, err = db.SignIn(ctx, surrealdb.Auth{
			Namespace: cfg.Namespace,
			Database:  cfg.Database,
			Username:  cfg.Username,
			Password:  cfg.Password,
		})
	} else {
		_, err = db.SignIn(ctx, surrealdb.Auth{
			Username: cfg.Username,
			Password: cfg.Password,
		})
	}
	if err != nil {
		_ = conn.Close(ctx)
		return nil, fmt.Errorf("signin: %w", err)
	}

	if err := db.Use(ctx, cfg.Namespace, cfg.Database); err != nil {
		_ = conn.Close(ctx)
		return nil, fmt.Errorf("use: %w", err)
	}

	sdkLogger.Info("SurrealDB connection established")
	return &Store{conn: conn, db: db, embedder: embedder, logger: sdkLogger}, nil
}

// Close closes the SurrealDB connection.
func (s *Store) Close(ctx context.Context) error {
	s.logger.Info("closing SurrealDB connection")
	return s.conn.Close(ctx)
}

// Init creates the schema, sizing the vector index to the embedder.
func (s *Store) Init(ctx context.Context) error {
	s.logger.Info("initializing database schema", "dimension", s.embedder.Dimension())
	sql := fmt.Sprintf(schemaTemplate, s.embedder.Dimension())
	if _, err := surrealdb.Query[any](ctx, s.db, sql, nil); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

type documentRow struct {
	DocID     string         `json:"doc_id"`
	Content   string         `json:"content"`
	Metadata  map[string]any `json:"metadata"`
	Embedding []float32      `json:"embedding"`
}

// SaveAnalysis persists one analysis outcome: a document per video, per
// place, and one for the final summary, each embedded for similarity
// search. The store_meta record marks the store as existing.
func (s *Store) SaveAnalysis(ctx context.Context, summary string, videos []models.VideoInfo, places []models.PlaceInfo) error {
	docs := buildDocuments(summary, videos, places)

	contents := make([]string, len(docs))
	for i, d := range docs {
		contents[i] = d.Content
	}

	embeddings, err := s.embedder.EmbedBatch(ctx, contents)
	if err != nil {
		return fmt.Errorf("embed documents: %w", err)
	}

	rows := make([]documentRow, len(docs))
	for i, d := range docs {
		rows[i] = documentRow{
			DocID:     d.ID,
			Content:   d.Content,
			Metadata:  d.Metadata,
			Embedding: embeddings[i],
		}
	}

	if _, err := surrealdb.Query[any](ctx, s.db,
		"INSERT INTO document $docs", map[string]any{"docs": rows}); err != nil {
		return fmt.Errorf("insert documents: %w", err)
	}

	if _, err := surrealdb.Query[any](ctx, s.db,
		"UPSERT store_meta:main SET saves += 1, last_saved = time::now()", nil); err != nil {
		return fmt.Errorf("update store meta: %w", err)
	}

	s.logger.Info("analysis saved", "documents", len(rows))
	return nil
}

func buildDocuments(summary string, videos []models.VideoInfo, places []models.PlaceInfo) []models.Document {
	docs := make([]models.Document, 0, len(videos)+len(places)+1)

	for _, v := range videos {
		content := v.Title
		if v.Channel != "" {
			content = fmt.Sprintf("%s by %s", v.Title, v.Channel)
		}
		docs = append(docs, models.Document{
			ID:      uuid.NewString(),
			Content: content,
			Metadata: map[string]any{
				"type":    models.DocTypeVideoInfo,
				"url":     v.URL,
				"title":   v.Title,
				"channel": v.Channel,
			},
		})
	}

	for _, p := range places {
		content := p.Name
		if p.FormattedAddress != nil {
			content = fmt.Sprintf("%s, %s", p.Name, *p.FormattedAddress)
		}
		meta := map[string]any{
			"type": models.DocTypePlaceInfo,
			"name": p.Name,
		}
		if p.FormattedAddress != nil {
			meta["address"] = *p.FormattedAddress
		}
		if p.Rating != nil {
			meta["rating"] = *p.Rating
		}
		docs = append(docs, models.Document{
			ID:       uuid.NewString(),
			Content:  content,
			Metadata: meta,
		})
	}

	docs = append(docs, models.Document{
		ID:      uuid.NewString(),
		Content: summary,
		Metadata: map[string]any{
			"type":       models.DocTypeSummary,
			"created_at": time.Now().UTC().Format(time.RFC3339),
		},
	})

	return docs
}

type scoredRow struct {
	DocID    string         `json:"doc_id"`
	Content  string         `json:"content"`
	Metadata map[string]any `json:"metadata"`
	Score    float64        `json:"score"`
}

type metaRow struct {
	Saves int `json:"saves"`
}

// Query embeds the query text and returns the k most similar documents.
// Returns ErrStoreNotFound when no analysis was ever saved.
func (s *Store) Query(ctx context.Context, text string, limit int) ([]models.ScoredDocument, error) {
	meta, err := surrealdb.Query[[]metaRow](ctx, s.db, "SELECT saves FROM store_meta", nil)
	if err != nil {
		return nil, fmt.Errorf("check store meta: %w", err)
	}
	if meta == nil || len(*meta) == 0 || len((*meta)[0].Result) == 0 {
		return nil, ErrStoreNotFound
	}

	embedding, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	// HNSW k-NN with ef=40; cosine similarity as the ranking score
	sql := fmt.Sprintf(`
		SELECT doc_id, content, metadata,
		       vector::similarity::cosine(embedding, $emb) AS score
		FROM document
		WHERE embedding <|%d,40|> $emb
		ORDER BY score DESC
		LIMIT $limit
	`, limit)

	results, err := surrealdb.Query[[]scoredRow](ctx, s.db, sql, map[string]any{
		"emb":   embedding,
		"limit": limit,
	})
	if err != nil {
		return nil, fmt.Errorf("similarity query: %w", err)
	}

	if results == nil || len(*results) == 0 {
		return []models.ScoredDocument{}, nil
	}

	rows := (*results)[0].Result
	docs := make([]models.ScoredDocument, 0, len(rows))
	for _, r := range rows {
		docs = append(docs, models.ScoredDocument{
			Document: models.Document{
				ID:       r.DocID,
				Content:  r.Content,
				Metadata: r.Metadata,
			},
			Score: r.Score,
		})
	}
	return docs, nil
}
