package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Skotchmaster/post_shop/internal/apperr"
	"github.com/Skotchmaster/post_shop/internal/logging"
	"github.com/Skotchmaster/post_shop/internal/models"
	"github.com/Skotchmaster/post_shop/internal/repo"
	"github.com/Skotchmaster/post_shop/internal/search"
)

const (
	MsgPostNotFound = "post not found"
	MsgSearchQuery  = "query parameter q is required"
)

const seedContent = "lorem ipsum dolor sir amet"

// PostService reads posts. Index is optional; without it search falls back to the database.
type PostService struct {
	Repo  *repo.GormRepo
	Index search.Index
}

// Seed appends the four demo posts on every call.
func (s *PostService) Seed(ctx context.Context) ([]models.Post, error) {
	posts := make([]models.Post, 0, 4)
	for _, title := range []string{"title A", "title B", "title C", "title D"} {
		posts = append(posts, models.Post{Title: title, Content: seedContent, Like: 0})
	}

	if err := s.Repo.CreatePosts(ctx, posts); err != nil {
		return nil, fmt.Errorf("seed posts: %w", err)
	}

	if s.Index != nil {
		if err := s.Index.IndexPosts(ctx, posts); err != nil {
			logging.FromContext(ctx).Error("index_posts_error", "count", len(posts), "error", err)
		}
	}
	return posts, nil
}

func (s *PostService) List(ctx context.Context) ([]models.Post, error) {
	posts, err := s.Repo.ListPosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

func (s *PostService) Get(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.Repo.GetPost(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperr.NotFound(MsgPostNotFound)
		}
		return nil, fmt.Errorf("get post: %w", err)
	}
	return post, nil
}

func (s *PostService) Search(ctx context.Context, query string) ([]models.Post, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperr.Validation(MsgSearchQuery, nil)
	}

	if s.Index == nil {
		posts, err := s.Repo.SearchPosts(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("search posts: %w", err)
		}
		return posts, nil
	}

	ids, err := s.Index.SearchPostIDs(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search index: %w", err)
	}
	found, err := s.Repo.GetPostsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load posts: %w", err)
	}

	byID := make(map[uint]models.Post, len(found))
	for _, p := range found {
		byID[p.PostID] = p
	}
	// keep relevance order from the index, dropping hits deleted from the database
	posts := make([]models.Post, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			posts = append(posts, p)
		}
	}
	return posts, nil
}
