package handler

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/omkarh25/som/internal/apperror"
	"github.com/omkarh25/som/internal/models"
	"github.com/omkarh25/som/internal/service"
	"github.com/omkarh25/som/internal/utils"
)

const (
	transactionNotFound = "Transaction not found"
	xlsxContentType     = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type TransactionHandler struct {
	records       *service.RecordService
	excelService  *service.ExcelService
	exportMaxRows int
}

func NewTransactionHandler(records *service.RecordService, excelService *service.ExcelService, exportMaxRows int) *TransactionHandler {
	return &TransactionHandler{
		records:       records,
		excelService:  excelService,
		exportMaxRows: exportMaxRows,
	}
}

// transactionFilter reads the filter query parameters shared by listing
// and export. An empty department is treated as absent.
func transactionFilter(c *fiber.Ctx, v *apperror.ValidationError) models.TransactionFilter {
	return models.TransactionFilter{
		Page:       utils.GetListParams(c, v),
		Department: utils.NonEmptyQuery(c, "department"),
		StartDate:  utils.TimeQuery(c, v, "start_date"),
		EndDate:    utils.TimeQuery(c, v, "end_date"),
	}
}

func (h *TransactionHandler) GetTransactions(c *fiber.Ctx) error {
	v := &apperror.ValidationError{}
	filter := transactionFilter(c, v)
	if v.HasErrors() {
		return ErrorResponse(c, v, transactionNotFound)
	}

	rows, err := h.records.ListTransactions(c.UserContext(), filter)
	if err != nil {
		return ErrorResponse(c, err, transactionNotFound)
	}

	resp, err := models.MapAll(rows, models.Transaction.ToResponse)
	if err != nil {
		return ErrorResponse(c, err, transactionNotFound)
	}
	return c.JSON(resp)
}

func (h *TransactionHandler) GetTransaction(c *fiber.Ctx) error {
	trno, err := strconv.ParseInt(c.Params("trno"), 10, 64)
	if err != nil {
		return ErrorResponse(c, apperror.NewValidationError("trno", "must be an integer"), transactionNotFound)
	}

	tx, err := h.records.GetTransaction(c.UserContext(), trno)
	if err != nil {
		return ErrorResponse(c, err, transactionNotFound)
	}

	resp, err := tx.ToResponse()
	if err != nil {
		return ErrorResponse(c, err, transactionNotFound)
	}
	return c.JSON(resp)
}

func (h *TransactionHandler) CreateTransaction(c *fiber.Ctx) error {
	in, err := models.DecodeTransactionCreate(c.Body())
	if err != nil {
		return ErrorResponse(c, err, transactionNotFound)
	}

	tx, err := h.records.CreateTransaction(c.UserContext(), in)
	if err != nil {
		return ErrorResponse(c, err, transactionNotFound)
	}

	resp, err := tx.ToResponse()
	if err != nil {
		return ErrorResponse(c, err, transactionNotFound)
	}
	return c.JSON(resp)
}

// ExportTransactions sends the filtered transactions as an xlsx workbook.
// skip and limit are not read.
func (h *TransactionHandler) ExportTransactions(c *fiber.Ctx) error {
	v := &apperror.ValidationError{}
	filter := models.TransactionFilter{
		Department: utils.NonEmptyQuery(c, "department"),
		StartDate:  utils.TimeQuery(c, v, "start_date"),
		EndDate:    utils.TimeQuery(c, v, "end_date"),
	}
	if v.HasErrors() {
		return ErrorResponse(c, v, transactionNotFound)
	}

	rows, err := h.records.ExportTransactions(c.UserContext(), filter, h.exportMaxRows)
	if err != nil {
		return ErrorResponse(c, err, transactionNotFound)
	}

	buf, err := h.excelService.TransactionsWorkbook(rows)
	if err != nil {
		return ErrorResponse(c, err, transactionNotFound)
	}

	return sendWorkbook(c, "transactions", buf.Bytes())
}

func sendWorkbook(c *fiber.Ctx, name string, data []byte) error {
	filename := fmt.Sprintf("%s_%s.xlsx", name, time.Now().Format("20060102_150405"))
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Attachment(filename)
	return c.Send(data)
}
