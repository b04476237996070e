package chat

import (
	"context"
	"fmt"
	"time"

	"coloring-book-web/internal/adapters"
	"coloring-book-web/internal/domain"

	"github.com/patrickmn/go-cache"
)

// Registry は開かれたチャットウィジェットごとの Controller を保持します。
type Registry struct {
	client      adapters.ConversationClient
	controllers *cache.Cache
	ttl         time.Duration
}

// NewRegistry は Registry を生成します。ttl を過ぎて使われなかった Controller は破棄されます。
func NewRegistry(client adapters.ConversationClient, ttl time.Duration) *Registry {
	return &Registry{
		client:      client,
		controllers: cache.New(ttl, ttl*2),
		ttl:         ttl,
	}
}

// Open は新しい会話セッションを作成し、その Controller を返します。
// ウィジェットが初めて開かれたときに呼ばれます。
func (r *Registry) Open(ctx context.Context) (*Controller, error) {
	id, err := r.client.CreateSession(ctx)
	if err != nil {
		return nil, err
	}
	c := NewController(id, r.client)
	r.controllers.Set(id, c, r.ttl)
	return c, nil
}

// Get はセッションIDに対応する Controller を返し、有効期限を延長します。
func (r *Registry) Get(id string) (*Controller, error) {
	v, ok := r.controllers.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	c, ok := v.(*Controller)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected cache entry %T", domain.ErrSessionNotFound, v)
	}
	r.controllers.Set(id, c, r.ttl)
	return c, nil
}
