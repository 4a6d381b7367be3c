package memory

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/Gunvolt24/wb_streams/internal/domain"
	"github.com/Gunvolt24/wb_streams/internal/ports"
	"github.com/Gunvolt24/wb_streams/pkg/metrics"
)

// Проверка, что LRUStoreTTL удовлетворяет порту хранилища.
var _ ports.EventStore = (*LRUStoreTTL)(nil)

type entry struct {
	id        string
	event     *domain.Event
	expiresAt time.Time
}

// LRUStoreTTL — потокобезопасное LRU-хранилище последних событий с TTL.
// Наружу отдаются только копии, чтобы внешние изменения не трогали данные внутри.
type LRUStoreTTL struct {
	capacity int
	ttl      time.Duration

	ll    *list.List
	index map[string]*list.Element

	mu sync.Mutex
}

// NewLRUStoreTTL — конструктор; ttl <= 0 отключает истечение.
func NewLRUStoreTTL(capacity int, ttl time.Duration) *LRUStoreTTL {
	if capacity <= 0 {
		capacity = 1
	}
	return &LRUStoreTTL{
		capacity: capacity,
		ttl:      ttl,
		ll:       list.New(),
		index:    make(map[string]*list.Element),
	}
}

// Get — событие по ID; (event, true) при попадании, (nil, false) при промахе/истечении.
func (c *LRUStoreTTL) Get(_ context.Context, id string) (*domain.Event, bool) {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.index[id]
	if !ok {
		metrics.StoreOps.WithLabelValues("miss").Inc()
		return nil, false
	}
	ent := elem.Value.(*entry)
	if c.isExpired(ent, now) {
		metrics.StoreOps.WithLabelValues("expired").Inc()
		c.removeElement(elem)
		metrics.StoreSize.Set(float64(len(c.index)))
		return nil, false
	}
	c.ll.MoveToFront(elem)

	if c.ttl > 0 {
		ent.expiresAt = c.expiryFrom(now)
	}

	metrics.StoreOps.WithLabelValues("hit").Inc()
	return cloneEvent(ent.event), true
}

// Set — сохранить/обновить событие.
func (c *LRUStoreTTL) Set(_ context.Context, event *domain.Event) error {
	if event == nil || event.EventID == "" {
		return nil
	}
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.index[event.EventID]; ok {
		ent := elem.Value.(*entry)
		ent.event = cloneEvent(event)
		ent.expiresAt = c.expiryFrom(now)
		c.ll.MoveToFront(elem)
		return nil
	}

	c.pruneExpiredFromBack(now)

	elem := c.ll.PushFront(&entry{
		id:        event.EventID,
		event:     cloneEvent(event),
		expiresAt: c.expiryFrom(now),
	})
	c.index[event.EventID] = elem
	metrics.StoreSize.Set(float64(len(c.index)))

	if c.ll.Len() > c.capacity {
		c.evictLRU()
	}
	return nil
}

// Recent — до n последних событий, от новых к старым. Истёкшие пропускаются.
func (c *LRUStoreTTL) Recent(_ context.Context, n int) []*domain.Event {
	if n <= 0 {
		return nil
	}
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]*domain.Event, 0, n)
	for elem := c.ll.Front(); elem != nil && len(out) < n; elem = elem.Next() {
		ent := elem.Value.(*entry)
		if c.isExpired(ent, now) {
			continue
		}
		out = append(out, cloneEvent(ent.event))
	}
	return out
}
