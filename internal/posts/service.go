// ABOUTME: Admin flows for the weblog: cached reads and invalidating writes
// ABOUTME: Composes the API client with the query cache per the invalidation policy

package posts

import (
	"context"
	"log/slog"

	"github.com/psyberpath/portfolio-v1/internal/cache"
	"github.com/psyberpath/portfolio-v1/internal/client"
)

// listKey caches the post list; postKey caches one post per slug-or-id ref.
const listKey = "posts"

func postKey(ref string) string {
	return "post:" + ref
}

// API is the slice of the remote client the flows need.
type API interface {
	ListPosts(ctx context.Context) ([]client.PostSummary, error)
	GetPost(ctx context.Context, slugOrID string) (*client.Post, error)
	CreatePost(ctx context.Context, title, content string) (*client.Post, error)
	UpdatePost(ctx context.Context, id string, update client.PostUpdate) (*client.Post, error)
	DeletePost(ctx context.Context, id string) error
}

// Service runs the admin flows. Reads are cache-or-fetch; every successful
// mutation invalidates the list entry, and update/delete also invalidate the
// affected post entry. Failed mutations touch no cache entry.
type Service struct {
	api   API
	cache *cache.Cache
}

func NewService(api API, c *cache.Cache) *Service {
	return &Service{api: api, cache: c}
}

// List returns post summaries, hitting the network only on a cache miss.
func (s *Service) List(ctx context.Context) ([]client.PostSummary, error) {
	val, err := s.cache.GetOrFetch(ctx, listKey, func(ctx context.Context) (interface{}, error) {
		return s.api.ListPosts(ctx)
	})
	if err != nil {
		return nil, err
	}
	return val.([]client.PostSummary), nil
}

// Get returns one post by slug or id, hitting the network only on a cache miss.
func (s *Service) Get(ctx context.Context, slugOrID string) (*client.Post, error) {
	val, err := s.cache.GetOrFetch(ctx, postKey(slugOrID), func(ctx context.Context) (interface{}, error) {
		return s.api.GetPost(ctx, slugOrID)
	})
	if err != nil {
		return nil, err
	}
	return val.(*client.Post), nil
}

// Create publishes a post and invalidates the list so the next read refetches.
func (s *Service) Create(ctx context.Context, title, content string) (*client.Post, error) {
	post, err := s.api.CreatePost(ctx, title, content)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(listKey)
	slog.Debug("Post created", "id", post.ID, "slug", post.Slug)
	return post, nil
}

// Update applies a partial update and invalidates the list plus the post
// entry under both its id and, when known, its slug.
func (s *Service) Update(ctx context.Context, id string, update client.PostUpdate) (*client.Post, error) {
	post, err := s.api.UpdatePost(ctx, id, update)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(listKey)
	s.cache.Invalidate(postKey(id))
	if post.Slug != "" {
		s.cache.Invalidate(postKey(post.Slug))
	}
	slog.Debug("Post updated", "id", id)
	return post, nil
}

// Delete removes a post and invalidates the list plus the post entry.
// Confirmation is the caller's responsibility; this flow assumes consent.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.api.DeletePost(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(listKey)
	s.cache.Invalidate(postKey(id))
	slog.Debug("Post deleted", "id", id)
	return nil
}
