package memory

import (
	"container/list"
	"time"

	"github.com/Gunvolt24/wb_streams/internal/domain"
	"github.com/Gunvolt24/wb_streams/pkg/metrics"
)

// evictLRU — удаляет наименее используемый элемент.
func (c *LRUStoreTTL) evictLRU() {
	if back := c.ll.Back(); back != nil {
		c.removeElement(back)
		metrics.StoreOps.WithLabelValues("evicted").Inc()
		metrics.StoreSize.Set(float64(len(c.index)))
	}
}

// removeElement — удаляет элемент из списка и индекса.
func (c *LRUStoreTTL) removeElement(elem *list.Element) {
	if elem == nil {
		return
	}
	if ent, ok := elem.Value.(*entry); ok {
		delete(c.index, ent.id)
	}
	c.ll.Remove(elem)
}

// isExpired — проверяет истечение TTL.
func (c *LRUStoreTTL) isExpired(ent *entry, now time.Time) bool {
	if c.ttl <= 0 {
		return false
	}
	return now.After(ent.expiresAt)
}

// expiryFrom — вычисляет момент истечения для текущего времени.
func (c *LRUStoreTTL) expiryFrom(now time.Time) time.Time {
	if c.ttl <= 0 {
		return time.Time{}
	}
	return now.Add(c.ttl)
}

// pruneExpiredFromBack — удаляет элементы с истекшим TTL из хвоста до первого актуального.
func (c *LRUStoreTTL) pruneExpiredFromBack(now time.Time) {
	if c.ttl <= 0 {
		return
	}
	for {
		back := c.ll.Back()
		if back == nil {
			return
		}
		ent, ok := back.Value.(*entry)
		if !ok {
			c.removeElement(back)
			metrics.StoreSize.Set(float64(len(c.index)))
			continue
		}
		if now.After(ent.expiresAt) {
			c.removeElement(back)
			metrics.StoreOps.WithLabelValues("expired").Inc()
			metrics.StoreSize.Set(float64(len(c.index)))
			continue
		}
		return
	}
}

// cloneEvent — возвращает копию события, чтобы внешние изменения
// не отражались на данных внутри хранилища.
func cloneEvent(event *domain.Event) *domain.Event {
	if event == nil {
		return nil
	}
	clonedEvent := *event
	if event.Data != nil {
		clonedEvent.Data = append([]byte(nil), event.Data...)
	}
	return &clonedEvent
}
