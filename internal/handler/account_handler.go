package handler

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/omkarh25/som/internal/apperror"
	"github.com/omkarh25/som/internal/models"
	"github.com/omkarh25/som/internal/service"
	"github.com/omkarh25/som/internal/utils"
)

const accountNotFound = "Account not found"

type AccountHandler struct {
	records       *service.RecordService
	excelService  *service.ExcelService
	exportMaxRows int
}

func NewAccountHandler(records *service.RecordService, excelService *service.ExcelService, exportMaxRows int) *AccountHandler {
	return &AccountHandler{
		records:       records,
		excelService:  excelService,
		exportMaxRows: exportMaxRows,
	}
}

func (h *AccountHandler) GetAccounts(c *fiber.Ctx) error {
	v := &apperror.ValidationError{}
	filter := models.AccountFilter{
		Page: utils.GetListParams(c, v),
		Type: utils.NonEmptyQuery(c, "type"),
	}
	if v.HasErrors() {
		return ErrorResponse(c, v, accountNotFound)
	}

	accounts, err := h.records.ListAccounts(c.UserContext(), filter)
	if err != nil {
		return ErrorResponse(c, err, accountNotFound)
	}

	resp, err := models.MapAll(accounts, models.Account.ToResponse)
	if err != nil {
		return ErrorResponse(c, err, accountNotFound)
	}
	return c.JSON(resp)
}

func (h *AccountHandler) GetAccount(c *fiber.Ctx) error {
	accid, err := url.PathUnescape(c.Params("accid"))
	if err != nil {
		return ErrorResponse(c, apperror.NewValidationError("accid", "must be a valid path segment"), accountNotFound)
	}

	account, err := h.records.GetAccount(c.UserContext(), accid)
	if err != nil {
		return ErrorResponse(c, err, accountNotFound)
	}

	resp, err := account.ToResponse()
	if err != nil {
		return ErrorResponse(c, err, accountNotFound)
	}
	return c.JSON(resp)
}

// GetFreedom lists planned transactions. A paid parameter that is present
// but empty still filters.
func (h *AccountHandler) GetFreedom(c *fiber.Ctx) error {
	v := &apperror.ValidationError{}
	filter := models.FreedomFilter{
		Page: utils.GetListParams(c, v),
		Paid: utils.OptionalQuery(c, "paid"),
	}
	if v.HasErrors() {
		return ErrorResponse(c, v, accountNotFound)
	}

	entries, err := h.records.ListFreedom(c.UserContext(), filter)
	if err != nil {
		return ErrorResponse(c, err, accountNotFound)
	}

	resp, err := models.MapAll(entries, models.Freedom.ToResponse)
	if err != nil {
		return ErrorResponse(c, err, accountNotFound)
	}
	return c.JSON(resp)
}

func (h *AccountHandler) ExportAccounts(c *fiber.Ctx) error {
	filter := models.AccountFilter{Type: utils.NonEmptyQuery(c, "type")}

	accounts, err := h.records.ExportAccounts(c.UserContext(), filter, h.exportMaxRows)
	if err != nil {
		return ErrorResponse(c, err, accountNotFound)
	}

	buf, err := h.excelService.AccountsWorkbook(accounts)
	if err != nil {
		return ErrorResponse(c, err, accountNotFound)
	}

	return sendWorkbook(c, "accounts", buf.Bytes())
}
