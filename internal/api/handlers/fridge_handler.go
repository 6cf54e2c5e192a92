package handlers

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/carnegieJiang/pocketfridge/domain"
	"github.com/carnegieJiang/pocketfridge/internal/api/presenters"
	"github.com/carnegieJiang/pocketfridge/pkg/fridge"
	"github.com/carnegieJiang/pocketfridge/pkg/scan"
	"github.com/carnegieJiang/pocketfridge/pkg/user"
)

type (
	FridgeHandler interface {
		AddItem(c *fiber.Ctx) error
		GetFridge(c *fiber.Ctx) error
		GetExpiring(c *fiber.Ctx) error
		UpdateQuantity(c *fiber.Ctx) error
		DeleteItem(c *fiber.Ctx) error
		IngestItems(c *fiber.Ctx) error
		UploadReceipt(c *fiber.Ctx) error
		GetReceiptScan(c *fiber.Ctx) error
		GetReceipts(c *fiber.Ctx) error
		GetSpending(c *fiber.Ctx) error
		SendExpiryDigest(c *fiber.Ctx) error
	}

	fridgeHandler struct {
		fridgeService fridge.FridgeService
		scanService   scan.ScanService
		userService   user.UserService
		validator     *validator.Validate
	}
)

func NewFridgeHandler(fridgeService fridge.FridgeService, scanService scan.ScanService, userService user.UserService, validator *validator.Validate) FridgeHandler {
	return &fridgeHandler{
		fridgeService: fridgeService,
		scanService:   scanService,
		userService:   userService,
		validator:     validator,
	}
}

func (h *fridgeHandler) AddItem(c *fiber.Ctx) error {
	req := new(domain.AddItemRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddItem, err)
	}

	res, err := h.fridgeService.AddItem(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddItem, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddItem)
}

func (h *fridgeHandler) GetFridge(c *fiber.Ctx) error {
	category := c.Query("category", "all")

	res, err := h.fridgeService.GetFridge(c.Context(), category)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetFridge, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetFridge)
}

func (h *fridgeHandler) GetExpiring(c *fiber.Ctx) error {
	withinDays, err := strconv.Atoi(c.Query("within_days", strconv.Itoa(fridge.DefaultExpiringWindowDays)))
	if err != nil || withinDays < 0 {
		withinDays = fridge.DefaultExpiringWindowDays
	}

	items, err := h.fridgeService.ExpiringSoon(c.Context(), withinDays)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetFridge, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"items":       items,
		"within_days": withinDays,
	}, fiber.StatusOK, domain.MessageSuccessGetExpiring)
}

func (h *fridgeHandler) UpdateQuantity(c *fiber.Ctx) error {
	itemID := c.Params("id")
	req := new(domain.UpdateQuantityRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateQuantity, err)
	}

	if err := h.fridgeService.UpdateQuantity(c.Context(), itemID, *req); err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedUpdateQuantity, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateQuantity, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUpdateQuantity)
}

func (h *fridgeHandler) DeleteItem(c *fiber.Ctx) error {
	itemID := c.Params("id")

	if err := h.fridgeService.DeleteItem(c.Context(), itemID); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteItem, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteItem)
}

func (h *fridgeHandler) IngestItems(c *fiber.Ctx) error {
	req := new(domain.IngestItemsRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.fridgeService.Ingest(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedIngestItems, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessIngestItems)
}

func (h *fridgeHandler) UploadReceipt(c *fiber.Ctx) error {
	file, err := c.FormFile("receipt_image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.scanService.UploadReceipt(c.Context(), file)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadReceipt, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUploadReceipt)
}

func (h *fridgeHandler) GetReceiptScan(c *fiber.Ctx) error {
	scanID := c.Params("id")

	res, err := h.scanService.GetScan(c.Context(), scanID)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidReceiptScan) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetScan, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetScan, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetScan)
}

func (h *fridgeHandler) GetReceipts(c *fiber.Ctx) error {
	receipts, err := h.fridgeService.Receipts(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetReceipts, err)
	}

	return presenters.SuccessResponse(c, receipts, fiber.StatusOK, domain.MessageSuccessGetReceipts)
}

func (h *fridgeHandler) GetSpending(c *fiber.Ctx) error {
	res, err := h.fridgeService.Spending(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetSpending, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetSpending)
}

func (h *fridgeHandler) SendExpiryDigest(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	me, err := h.userService.Me(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedExpiryDigest, err)
	}

	withinDays, err := strconv.Atoi(c.Query("within_days", strconv.Itoa(fridge.DefaultExpiringWindowDays)))
	if err != nil || withinDays < 0 {
		withinDays = fridge.DefaultExpiringWindowDays
	}

	if err := h.fridgeService.SendExpiryDigest(c.Context(), me.Email, withinDays); err != nil {
		if errors.Is(err, domain.ErrNoItemsExpiringSoon) {
			return presenters.SuccessResponse(c, nil, fiber.StatusOK, "nothing is expiring soon")
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedExpiryDigest, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessExpiryDigest)
}
