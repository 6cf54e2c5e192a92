package fridge

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/carnegieJiang/pocketfridge/domain"
	"github.com/carnegieJiang/pocketfridge/entities"
	"github.com/carnegieJiang/pocketfridge/pkg/dateutil"
)

// Snapshot is an immutable view of the fridge handed to observers. Mutating
// a snapshot never affects the store.
type Snapshot struct {
	Items    []entities.FridgeItem
	Receipts []entities.Receipt
}

// Store owns the canonical inventory state and the derived receipt ledger.
// All mutations run under one lock so an ingestion (merge + ledger record)
// is a single critical section; readers see either the pre- or post-state,
// never a torn one.
type Store struct {
	mu       sync.RWMutex
	items    map[string]*entities.FridgeItem // identity key → item
	order    []string                        // identity keys, insertion order
	idIndex  map[string]string               // item ID → identity key
	receipts map[string]*entities.Receipt    // date → receipt

	subMu   sync.Mutex
	subs    map[int]chan Snapshot
	nextSub int
}

func NewStore() *Store {
	return &Store{
		items:    make(map[string]*entities.FridgeItem),
		idIndex:  make(map[string]string),
		receipts: make(map[string]*entities.Receipt),
		subs:     make(map[int]chan Snapshot),
	}
}

// Ingest merges an enriched batch into the inventory and records the
// shopping trip in the day's receipt, atomically from the caller's point of
// view. It returns the number of candidates applied.
func (s *Store) Ingest(batch []entities.FridgeItem, imageRef string, date string) int {
	if len(batch) == 0 {
		return 0
	}

	s.mu.Lock()
	applied := 0
	for i := range batch {
		s.upsertLocked(&batch[i])
		applied++
	}
	s.recordReceiptLocked(date, batch, imageRef)
	s.mu.Unlock()

	s.notify()
	return applied
}

// Upsert merges a batch into the inventory without touching the ledger.
// Used by the manual-add path; receipts are fed only by ingestion events.
func (s *Store) Upsert(batch []entities.FridgeItem) int {
	if len(batch) == 0 {
		return 0
	}

	s.mu.Lock()
	applied := 0
	for i := range batch {
		s.upsertLocked(&batch[i])
		applied++
	}
	s.mu.Unlock()

	s.notify()
	return applied
}

// upsertLocked applies one candidate with merge-before-insert semantics:
// the identity key is looked up first, so two items can never share a key.
func (s *Store) upsertLocked(candidate *entities.FridgeItem) {
	existing, ok := s.items[candidate.IdentityKey]
	if !ok {
		item := cloneItem(candidate)
		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		s.items[item.IdentityKey] = item
		s.order = append(s.order, item.IdentityKey)
		s.idIndex[item.ID] = item.IdentityKey
		return
	}

	existing.Quantity += candidate.Quantity

	// Null price means "unknown", and unknown counts as zero when summing.
	merged := priceOrZero(existing.Price) + priceOrZero(candidate.Price)
	existing.Price = &merged

	existing.DateExpiring = earlierExpiry(existing.DateExpiring, candidate.DateExpiring)

	// Category upgrades from other but never downgrades to it.
	if existing.Category == entities.CategoryOther && candidate.Category != entities.CategoryOther {
		existing.Category = candidate.Category
	}

	if existing.FoodType == "" {
		existing.FoodType = candidate.FoodType
	}
	if !existing.HasIcon && candidate.HasIcon {
		existing.HasIcon = true
		existing.IconName = cloneString(candidate.IconName)
	}
}

// earlierExpiry keeps the sooner of two expiration dates. A concrete date
// always beats null: null is "no constraint", not "soonest".
func earlierExpiry(a, b *string) *string {
	switch {
	case a == nil:
		return cloneString(b)
	case b == nil:
		return cloneString(a)
	case dateutil.Compare(*a, *b) <= 0:
		return cloneString(a)
	default:
		return cloneString(b)
	}
}

func (s *Store) recordReceiptLocked(date string, batch []entities.FridgeItem, imageRef string) {
	tripCost := 0.0
	for i := range batch {
		tripCost += priceOrZero(batch[i].Price)
	}

	if existing, ok := s.receipts[date]; ok {
		existing.TotalCost += tripCost
		existing.ImageRefs = append(existing.ImageRefs, imageRef)
		existing.ItemCount += len(batch)
		return
	}

	s.receipts[date] = &entities.Receipt{
		ID:        "receipt_" + date,
		Date:      date,
		TotalCost: tripCost,
		ImageRefs: []string{imageRef},
		ItemCount: len(batch),
	}
}

// UpdateQuantity sets an item's quantity by item ID. A quantity of zero or
// less removes the item entirely; items are never retained at zero.
func (s *Store) UpdateQuantity(id string, quantity float64) error {
	s.mu.Lock()
	key, ok := s.idIndex[id]
	if !ok {
		s.mu.Unlock()
		return domain.ErrItemNotFound
	}
	if quantity <= 0 {
		s.removeKeyLocked(key)
	} else {
		s.items[key].Quantity = quantity
	}
	s.mu.Unlock()

	s.notify()
	return nil
}

// Remove deletes an item by ID. Removing an absent item is a no-op.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	key, ok := s.idIndex[id]
	if ok {
		s.removeKeyLocked(key)
	}
	s.mu.Unlock()

	if ok {
		s.notify()
	}
}

func (s *Store) removeKeyLocked(key string) {
	item, ok := s.items[key]
	if !ok {
		return
	}
	delete(s.idIndex, item.ID)
	delete(s.items, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// GetByIdentity returns a copy of the lot stored under the identity key.
func (s *Store) GetByIdentity(key string) (entities.FridgeItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[key]
	if !ok {
		return entities.FridgeItem{}, false
	}
	return *cloneItem(item), true
}

// Snapshot returns a defensive copy of the inventory in insertion order.
func (s *Store) Snapshot() []entities.FridgeItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotItemsLocked()
}

func (s *Store) snapshotItemsLocked() []entities.FridgeItem {
	out := make([]entities.FridgeItem, 0, len(s.order))
	for _, key := range s.order {
		out = append(out, *cloneItem(s.items[key]))
	}
	return out
}

// Receipts returns the ledger most-recent-first.
func (s *Store) Receipts() []entities.Receipt {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotReceiptsLocked()
}

func (s *Store) snapshotReceiptsLocked() []entities.Receipt {
	out := make([]entities.Receipt, 0, len(s.receipts))
	for _, r := range s.receipts {
		c := *r
		c.ImageRefs = append([]string(nil), r.ImageRefs...)
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		return dateutil.Compare(out[i].Date, out[j].Date) > 0
	})
	return out
}

// TotalSpending sums every receipt's total cost.
func (s *Store) TotalSpending() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0.0
	for _, r := range s.receipts {
		total += r.TotalCost
	}
	return total
}

// Subscribe registers an observer of fridge state. The returned channel
// carries the latest snapshot after each mutation; slow observers only miss
// intermediate states, never block a mutation. The cancel func unregisters.
func (s *Store) Subscribe() (<-chan Snapshot, func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	ch := make(chan Snapshot, 1)
	s.subs[id] = ch
	s.subMu.Unlock()

	cancel := func() {
		s.subMu.Lock()
		if _, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(ch)
		}
		s.subMu.Unlock()
	}
	return ch, cancel
}

func (s *Store) notify() {
	s.mu.RLock()
	snap := Snapshot{
		Items:    s.snapshotItemsLocked(),
		Receipts: s.snapshotReceiptsLocked(),
	}
	s.mu.RUnlock()

	s.subMu.Lock()
	for _, ch := range s.subs {
		// Replace a stale pending snapshot instead of blocking.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
		}
	}
	s.subMu.Unlock()
}

func cloneItem(in *entities.FridgeItem) *entities.FridgeItem {
	out := *in
	out.Price = clonePrice(in.Price)
	out.DateExpiring = cloneString(in.DateExpiring)
	out.IconName = cloneString(in.IconName)
	return &out
}

func clonePrice(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func priceOrZero(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
