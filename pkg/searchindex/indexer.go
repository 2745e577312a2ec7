package searchindex

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/opensearch-project/opensearch-go/v2"
	"github.com/opensearch-project/opensearch-go/v2/opensearchapi"

	"github.com/dmitrymomot/bones/pkg/bone"
	"github.com/dmitrymomot/bones/pkg/logger"
)

// Option configures an Indexer.
type Option func(*Indexer)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(ix *Indexer) {
		if l != nil {
			ix.logger = l
		}
	}
}

// WithRefresh makes every write visible to search before it returns.
func WithRefresh() Option {
	return func(ix *Indexer) { ix.refresh = "true" }
}

// Indexer writes entity search documents to one OpenSearch index. It
// satisfies datastore.SearchIndexer.
type Indexer struct {
	client  *opensearch.Client
	index   string
	refresh string
	builder *DocumentBuilder
	logger  *slog.Logger
}

func NewIndexer(client *opensearch.Client, index string, opts ...Option) *Indexer {
	ix := &Indexer{
		client:  client,
		index:   index,
		builder: NewDocumentBuilder(),
		logger:  logger.Discard(),
	}
	for _, opt := range opts {
		opt(ix)
	}
	return ix
}

// EnsureIndex creates the index unless it exists.
func (ix *Indexer) EnsureIndex(ctx context.Context) error {
	res, err := opensearchapi.IndicesExistsRequest{Index: []string{ix.index}}.Do(ctx, ix.client)
	if err != nil {
		return errors.Join(ErrCreateIndex, err)
	}
	res.Body.Close()
	if res.StatusCode == http.StatusOK {
		return nil
	}

	res, err = opensearchapi.IndicesCreateRequest{Index: ix.index}.Do(ctx, ix.client)
	if err != nil {
		return errors.Join(ErrCreateIndex, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return errors.Join(ErrCreateIndex, fmt.Errorf("status %s", res.Status()))
	}
	ix.logger.InfoContext(ctx, "search index created", logger.Collection(ix.index))
	return nil
}

// Index writes the document of entity id, replacing the previous version.
func (ix *Indexer) Index(ctx context.Context, id string, fields []bone.SearchField, tags []string) error {
	body, err := json.Marshal(ix.builder.Build(fields, tags))
	if err != nil {
		return errors.Join(ErrIndexFailed, err)
	}

	res, err := opensearchapi.IndexRequest{
		Index:      ix.index,
		DocumentID: id,
		Body:       bytes.NewReader(body),
		Refresh:    ix.refresh,
	}.Do(ctx, ix.client)
	if err != nil {
		return errors.Join(ErrIndexFailed, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return errors.Join(ErrIndexFailed, fmt.Errorf("status %s", res.Status()))
	}
	ix.logger.DebugContext(ctx, "document indexed", logger.Collection(ix.index), logger.Key(id))
	return nil
}

// Delete removes the document of entity id. A missing document is not an
// error.
func (ix *Indexer) Delete(ctx context.Context, id string) error {
	res, err := opensearchapi.DeleteRequest{
		Index:      ix.index,
		DocumentID: id,
		Refresh:    ix.refresh,
	}.Do(ctx, ix.client)
	if err != nil {
		return errors.Join(ErrDeleteFailed, err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return errors.Join(ErrDeleteFailed, fmt.Errorf("status %s", res.Status()))
	}
	return nil
}

// Search runs a match query over every field and returns the matching
// entity ids, best match first.
func (ix *Indexer) Search(ctx context.Context, text string, size int) ([]string, error) {
	query, err := json.Marshal(map[string]any{
		"size": size,
		"query": map[string]any{
			"simple_query_string": map[string]any{
				"query":            text,
				"default_operator": "and",
			},
		},
		"_source": false,
	})
	if err != nil {
		return nil, errors.Join(ErrSearchFailed, err)
	}

	res, err := opensearchapi.SearchRequest{
		Index: []string{ix.index},
		Body:  bytes.NewReader(query),
	}.Do(ctx, ix.client)
	if err != nil {
		return nil, errors.Join(ErrSearchFailed, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, errors.Join(ErrSearchFailed, fmt.Errorf("status %s", res.Status()))
	}

	var result struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return nil, errors.Join(ErrSearchFailed, err)
	}
	ids := make([]string, 0, len(result.Hits.Hits))
	for _, hit := range result.Hits.Hits {
		ids = append(ids, hit.ID)
	}
	return ids, nil
}
