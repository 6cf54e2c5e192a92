package domain

import "errors"

var (
	MessageSuccessAddItem        = "item added to fridge successfully"
	MessageSuccessIngestItems    = "scanned items merged into fridge successfully"
	MessageSuccessGetFridge      = "fridge items retrieved successfully"
	MessageSuccessGetExpiring    = "expiring items retrieved successfully"
	MessageSuccessUpdateQuantity = "item quantity updated successfully"
	MessageSuccessDeleteItem     = "item deleted successfully"
	MessageSuccessUploadReceipt  = "receipt uploaded successfully"
	MessageSuccessGetScan        = "receipt scan retrieved successfully"
	MessageSuccessGetReceipts    = "receipts retrieved successfully"
	MessageSuccessGetSpending    = "spending summary retrieved successfully"
	MessageSuccessExpiryDigest   = "expiry digest sent successfully"

	MessageFailedAddItem        = "failed to add item to fridge"
	MessageFailedIngestItems    = "failed to merge scanned items"
	MessageFailedGetFridge      = "failed to retrieve fridge items"
	MessageFailedUpdateQuantity = "failed to update item quantity"
	MessageFailedDeleteItem     = "failed to delete item"
	MessageFailedUploadReceipt  = "failed to upload receipt"
	MessageFailedProcessReceipt = "failed to process receipt"
	MessageFailedGetScan        = "failed to retrieve receipt scan"
	MessageFailedGetReceipts    = "failed to retrieve receipts"
	MessageFailedGetSpending    = "failed to retrieve spending summary"
	MessageFailedExpiryDigest   = "failed to send expiry digest"

	ErrMissingFoodType     = errors.New("scanned item is missing food_type")
	ErrInvalidQuantity     = errors.New("quantity must be positive")
	ErrInvalidTimestamp    = errors.New("timestamp is not a valid ISO-8601 value")
	ErrInvalidDate         = errors.New("date is not a valid YYYY-MM-DD value")
	ErrItemNotFound        = errors.New("fridge item not found")
	ErrInvalidReceiptScan  = errors.New("invalid receipt scan ID")
	ErrScanNotProcessed    = errors.New("receipt scan has no processed results")
	ErrExtractionFailed    = errors.New("receipt extraction failed")
	ErrNoItemsExpiringSoon = errors.New("no items expiring soon")
)

type (
	// ScannedItem is one candidate row produced by the receipt extraction
	// service or confirmed on the client. Price and date_expiring are
	// nullable on the wire.
	ScannedItem struct {
		FoodType     string   `json:"food_type" validate:"required"`
		Quantity     float64  `json:"quantity" validate:"required,gt=0"`
		Price        *float64 `json:"price" validate:"omitempty,gte=0"`
		Category     string   `json:"category"`
		DateAdded    string   `json:"date_added" validate:"omitempty,datetime=2006-01-02"`
		DateExpiring *string  `json:"date_expiring"`
		IconName     *string  `json:"icon_name"`
	}

	IngestItemsRequest struct {
		ImageRef string        `json:"image_ref"`
		Items    []ScannedItem `json:"items"`
	}

	IngestItemsResponse struct {
		Applied     int    `json:"applied"`
		Skipped     int    `json:"skipped"`
		ReceiptDate string `json:"receipt_date"`
	}

	AddItemRequest struct {
		FoodType     string   `json:"food_type" validate:"required"`
		Quantity     float64  `json:"quantity" validate:"required,gt=0"`
		Price        *float64 `json:"price" validate:"omitempty,gte=0"`
		Category     string   `json:"category"`
		DateExpiring *string  `json:"date_expiring"`
	}

	UpdateQuantityRequest struct {
		Quantity float64 `json:"quantity" validate:"gte=0"`
	}

	FridgeItemResponse struct {
		ID           string   `json:"id"`
		FoodType     string   `json:"food_type"`
		Quantity     float64  `json:"quantity"`
		Price        *float64 `json:"price"`
		Category     string   `json:"category"`
		DateAdded    string   `json:"date_added"`
		DateExpiring *string  `json:"date_expiring"`
		HasIcon      bool     `json:"has_icon"`
		IconName     *string  `json:"icon_name"`
	}

	GroupedFridgeResponse struct {
		Categories []CategoryGroup `json:"categories"`
		TotalItems int             `json:"total_items"`
	}

	CategoryGroup struct {
		Category string               `json:"category"`
		Items    []FridgeItemResponse `json:"items"`
	}

	ReceiptResponse struct {
		ID        string   `json:"id"`
		Date      string   `json:"date"`
		TotalCost float64  `json:"total_cost"`
		ImageRefs []string `json:"image_refs"`
		ItemCount int      `json:"item_count"`
	}

	SpendingSummaryResponse struct {
		TotalSpending float64           `json:"total_spending"`
		Receipts      []ReceiptResponse `json:"receipts"`
	}

	UploadReceiptResponse struct {
		ScanID   string `json:"scan_id"`
		ImageURL string `json:"image_url"`
		Status   string `json:"status"`
	}

	ReceiptScanResponse struct {
		ScanID   string        `json:"scan_id"`
		ImageURL string        `json:"image_url"`
		Status   string        `json:"status"`
		Items    []ScannedItem `json:"items,omitempty"`
	}

	// FridgeItemProjection is the reduced shape handed to the recipe
	// generation service, sorted soonest-expiring first.
	FridgeItemProjection struct {
		FoodType     string  `json:"food_type"`
		Quantity     float64 `json:"quantity"`
		Category     string  `json:"category"`
		DateExpiring *string `json:"date_expiring"`
	}
)
