package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/Skotchmaster/post_shop/internal/models"
)

// Index is a full-text index over posts.
type Index interface {
	IndexPosts(ctx context.Context, posts []models.Post) error
	SearchPostIDs(ctx context.Context, query string) ([]uint, error)
}

type Config struct {
	URL      string
	User     string
	Password string
	Index    string
}

type ESIndex struct {
	ES    *elasticsearch.Client
	Index string
}

// NewClient connects to Elasticsearch and checks the cluster answers.
func NewClient(ctx context.Context, cfg Config) (*ESIndex, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{cfg.URL},
		Username:  cfg.User,
		Password:  cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("create elasticsearch client: %w", err)
	}

	res, err := client.Info(client.Info.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("elasticsearch info: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("elasticsearch info: %s: %s", res.Status(), body)
	}

	return &ESIndex{ES: client, Index: cfg.Index}, nil
}

type postDoc struct {
	PostID  uint   `json:"postId"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (i *ESIndex) IndexPosts(ctx context.Context, posts []models.Post) error {
	for _, p := range posts {
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(postDoc{PostID: p.PostID, Title: p.Title, Content: p.Content}); err != nil {
			return fmt.Errorf("encode post %d: %w", p.PostID, err)
		}

		res, err := i.ES.Index(
			i.Index,
			&buf,
			i.ES.Index.WithContext(ctx),
			i.ES.Index.WithDocumentID(strconv.FormatUint(uint64(p.PostID), 10)),
			i.ES.Index.WithRefresh("true"),
		)
		if err != nil {
			return fmt.Errorf("index post %d: %w", p.PostID, err)
		}
		res.Body.Close()
		if res.IsError() {
			return fmt.Errorf("index post %d: %s", p.PostID, res.Status())
		}
	}
	return nil
}

func (i *ESIndex) SearchPostIDs(ctx context.Context, query string) ([]uint, error) {
	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"title^2", "content"},
				"fuzziness": "AUTO",
			},
		},
		"size": 100,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, fmt.Errorf("encode search: %w", err)
	}

	res, err := i.ES.Search(
		i.ES.Search.WithContext(ctx),
		i.ES.Search.WithIndex(i.Index),
		i.ES.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("search: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Hits []struct {
				Source postDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("decode search: %w", err)
	}

	ids := make([]uint, 0, len(r.Hits.Hits))
	for _, h := range r.Hits.Hits {
		ids = append(ids, h.Source.PostID)
	}
	return ids, nil
}
