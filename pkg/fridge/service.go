package fridge

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"

	"github.com/carnegieJiang/pocketfridge/domain"
	"github.com/carnegieJiang/pocketfridge/entities"
	"github.com/carnegieJiang/pocketfridge/internal/utils/mailing"
	"github.com/carnegieJiang/pocketfridge/pkg/dateutil"
)

const (
	// DefaultExpiringWindowDays marks items red on the fridge screen.
	DefaultExpiringWindowDays = 2
	// RecipeProjectionLimit bounds the inventory payload sent to the
	// recipe generator.
	RecipeProjectionLimit = 10
)

type (
	FridgeService interface {
		Ingest(ctx context.Context, req domain.IngestItemsRequest) (domain.IngestItemsResponse, error)
		AddItem(ctx context.Context, req domain.AddItemRequest) (domain.FridgeItemResponse, error)
		GetFridge(ctx context.Context, category string) (domain.GroupedFridgeResponse, error)
		ExpiringSoon(ctx context.Context, withinDays int) ([]domain.FridgeItemResponse, error)
		UpdateQuantity(ctx context.Context, id string, req domain.UpdateQuantityRequest) error
		DeleteItem(ctx context.Context, id string) error
		Receipts(ctx context.Context) ([]domain.ReceiptResponse, error)
		Spending(ctx context.Context) (domain.SpendingSummaryResponse, error)
		RecipeProjection(ctx context.Context, limit int) ([]domain.FridgeItemProjection, error)
		SendExpiryDigest(ctx context.Context, email string, withinDays int) error
	}

	fridgeService struct {
		store *Store
		clock dateutil.Clock
	}
)

func NewFridgeService(store *Store, clock dateutil.Clock) FridgeService {
	return &fridgeService{
		store: store,
		clock: clock,
	}
}

// Ingest is the single entry point for a scanned batch: every candidate is
// validated and enriched, then the merge and the ledger record are applied
// against the same batch and the same captured date. Invalid rows are
// dropped with a warning; the rest of the batch still lands.
func (s *fridgeService) Ingest(_ context.Context, req domain.IngestItemsRequest) (domain.IngestItemsResponse, error) {
	currentDate := dateutil.Today(s.clock)

	if len(req.Items) == 0 {
		return domain.IngestItemsResponse{ReceiptDate: currentDate}, nil
	}

	enriched := make([]entities.FridgeItem, 0, len(req.Items))
	skipped := 0
	for _, raw := range req.Items {
		item, err := s.enrich(raw, currentDate)
		if err != nil {
			skipped++
			log.Warnf("dropping scanned item %q: %v", raw.FoodType, err)
			continue
		}
		enriched = append(enriched, item)
	}

	applied := s.store.Ingest(enriched, req.ImageRef, currentDate)

	return domain.IngestItemsResponse{
		Applied:     applied,
		Skipped:     skipped,
		ReceiptDate: currentDate,
	}, nil
}

// enrich validates one raw candidate and stamps the derived fields.
func (s *fridgeService) enrich(raw domain.ScannedItem, currentDate string) (entities.FridgeItem, error) {
	if strings.TrimSpace(raw.FoodType) == "" {
		return entities.FridgeItem{}, domain.ErrMissingFoodType
	}
	if raw.Quantity <= 0 {
		return entities.FridgeItem{}, domain.ErrInvalidQuantity
	}

	dateAdded := currentDate
	if raw.DateAdded != "" {
		d, err := dateutil.DateOnly(raw.DateAdded)
		if err != nil {
			return entities.FridgeItem{}, fmt.Errorf("date_added: %w", err)
		}
		dateAdded = d
	}

	// A malformed expiration is weaker than a malformed identity field:
	// treat it as "no constraint" rather than dropping the whole row.
	var dateExpiring *string
	if raw.DateExpiring != nil {
		if d, err := dateutil.DateOnly(*raw.DateExpiring); err == nil {
			dateExpiring = &d
		} else {
			log.Warnf("ignoring malformed date_expiring %q for %q", *raw.DateExpiring, raw.FoodType)
		}
	}

	hasIcon := false
	var iconName *string
	if raw.IconName != nil && *raw.IconName != "" {
		hasIcon = true
		iconName = raw.IconName
	} else {
		hasIcon, iconName = ResolveIcon(raw.FoodType)
	}

	return entities.FridgeItem{
		IdentityKey:  IdentityKey(raw.FoodType, dateAdded),
		FoodType:     strings.TrimSpace(raw.FoodType),
		Quantity:     raw.Quantity,
		Price:        raw.Price,
		Category:     NormalizeCategory(raw.Category),
		DateAdded:    dateAdded,
		DateExpiring: dateExpiring,
		HasIcon:      hasIcon,
		IconName:     iconName,
	}, nil
}

// AddItem covers the manual-entry path. It reuses the same merge semantics
// as ingestion but never touches the receipt ledger.
func (s *fridgeService) AddItem(_ context.Context, req domain.AddItemRequest) (domain.FridgeItemResponse, error) {
	item, err := s.enrich(domain.ScannedItem{
		FoodType:     req.FoodType,
		Quantity:     req.Quantity,
		Price:        req.Price,
		Category:     req.Category,
		DateExpiring: req.DateExpiring,
	}, dateutil.Today(s.clock))
	if err != nil {
		return domain.FridgeItemResponse{}, err
	}

	item.ID = uuid.New().String()
	s.store.Upsert([]entities.FridgeItem{item})

	// The item may have merged into an existing lot; re-read the stored state.
	stored, ok := s.store.GetByIdentity(item.IdentityKey)
	if !ok {
		return domain.FridgeItemResponse{}, domain.ErrItemNotFound
	}
	return toItemResponse(stored), nil
}

// GetFridge groups the live snapshot by category in the fixed display
// order. Category is re-normalized at read time as a safety net; items stay
// in insertion order inside each group.
func (s *fridgeService) GetFridge(_ context.Context, category string) (domain.GroupedFridgeResponse, error) {
	filter := ""
	if category != "" && category != "all" {
		filter = NormalizeCategory(category)
	}

	groups := make(map[string][]domain.FridgeItemResponse)
	total := 0
	for _, item := range s.store.Snapshot() {
		cat := NormalizeCategory(item.Category)
		if filter != "" && cat != filter {
			continue
		}
		groups[cat] = append(groups[cat], toItemResponse(item))
		total++
	}

	res := domain.GroupedFridgeResponse{TotalItems: total}
	for _, cat := range entities.CategoryOrder {
		if items, ok := groups[cat]; ok {
			res.Categories = append(res.Categories, domain.CategoryGroup{
				Category: cat,
				Items:    items,
			})
		}
	}
	return res, nil
}

// ExpiringSoon returns items whose expiration date falls within the window,
// inclusive. Already-expired items qualify; items that never expire do not.
func (s *fridgeService) ExpiringSoon(_ context.Context, withinDays int) ([]domain.FridgeItemResponse, error) {
	if withinDays < 0 {
		withinDays = DefaultExpiringWindowDays
	}
	asOf := dateutil.Today(s.clock)
	cutoff, err := dateutil.AddDays(asOf, withinDays)
	if err != nil {
		return nil, err
	}

	items := SortByExpiration(s.store.Snapshot())
	out := make([]domain.FridgeItemResponse, 0)
	for _, item := range items {
		if item.DateExpiring == nil {
			continue
		}
		if dateutil.Compare(*item.DateExpiring, cutoff) <= 0 {
			out = append(out, toItemResponse(item))
		}
	}
	return out, nil
}

func (s *fridgeService) UpdateQuantity(_ context.Context, id string, req domain.UpdateQuantityRequest) error {
	return s.store.UpdateQuantity(id, req.Quantity)
}

func (s *fridgeService) DeleteItem(_ context.Context, id string) error {
	s.store.Remove(id)
	return nil
}

func (s *fridgeService) Receipts(_ context.Context) ([]domain.ReceiptResponse, error) {
	receipts := s.store.Receipts()
	out := make([]domain.ReceiptResponse, 0, len(receipts))
	for _, r := range receipts {
		out = append(out, toReceiptResponse(r))
	}
	return out, nil
}

func (s *fridgeService) Spending(_ context.Context) (domain.SpendingSummaryResponse, error) {
	receipts, err := s.Receipts(context.Background())
	if err != nil {
		return domain.SpendingSummaryResponse{}, err
	}
	return domain.SpendingSummaryResponse{
		TotalSpending: s.store.TotalSpending(),
		Receipts:      receipts,
	}, nil
}

// RecipeProjection reduces the snapshot to the shape the recipe generator
// consumes: soonest-expiring first, bounded to limit entries.
func (s *fridgeService) RecipeProjection(_ context.Context, limit int) ([]domain.FridgeItemProjection, error) {
	if limit <= 0 {
		limit = RecipeProjectionLimit
	}

	items := SortByExpiration(s.store.Snapshot())
	if len(items) > limit {
		items = items[:limit]
	}

	out := make([]domain.FridgeItemProjection, 0, len(items))
	for _, item := range items {
		out = append(out, domain.FridgeItemProjection{
			FoodType:     item.FoodType,
			Quantity:     item.Quantity,
			Category:     item.Category,
			DateExpiring: item.DateExpiring,
		})
	}
	return out, nil
}

// SendExpiryDigest emails the expiring-soon list to the household.
func (s *fridgeService) SendExpiryDigest(ctx context.Context, email string, withinDays int) error {
	items, err := s.ExpiringSoon(ctx, withinDays)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return domain.ErrNoItemsExpiringSoon
	}

	var b strings.Builder
	b.WriteString("<h3>Use these up soon</h3><ul>")
	for _, item := range items {
		fmt.Fprintf(&b, "<li>%s x%g (expires %s)</li>", item.FoodType, item.Quantity, *item.DateExpiring)
	}
	b.WriteString("</ul>")

	return mailing.SendMail(email, "PocketFridge: items expiring soon", b.String())
}

// SortByExpiration orders items soonest-expiring first. Items without an
// expiration date sort last, not first.
func SortByExpiration(items []entities.FridgeItem) []entities.FridgeItem {
	sorted := append([]entities.FridgeItem(nil), items...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].DateExpiring, sorted[j].DateExpiring
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return dateutil.Compare(*a, *b) < 0
	})
	return sorted
}

func toItemResponse(item entities.FridgeItem) domain.FridgeItemResponse {
	return domain.FridgeItemResponse{
		ID:           item.ID,
		FoodType:     item.FoodType,
		Quantity:     item.Quantity,
		Price:        item.Price,
		Category:     item.Category,
		DateAdded:    item.DateAdded,
		DateExpiring: item.DateExpiring,
		HasIcon:      item.HasIcon,
		IconName:     item.IconName,
	}
}

func toReceiptResponse(r entities.Receipt) domain.ReceiptResponse {
	return domain.ReceiptResponse{
		ID:        r.ID,
		Date:      r.Date,
		TotalCost: r.TotalCost,
		ImageRefs: r.ImageRefs,
		ItemCount: r.ItemCount,
	}
}
