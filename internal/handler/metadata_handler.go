package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/omkarh25/som/internal/config"
	"github.com/omkarh25/som/internal/schema"
	"github.com/omkarh25/som/internal/service"
	"github.com/omkarh25/som/internal/utils"
)

const tableNotFound = "Table not found"

// healthPingTimeout bounds the store check so health never waits on a dial.
var healthPingTimeout = 2 * time.Second

type MetadataHandler struct {
	registry *schema.Registry
	records  *service.RecordService
	cfg      *config.Config
}

func NewMetadataHandler(registry *schema.Registry, records *service.RecordService, cfg *config.Config) *MetadataHandler {
	return &MetadataHandler{
		registry: registry,
		records:  records,
		cfg:      cfg,
	}
}

func (h *MetadataHandler) DescribeTable(c *fiber.Ctx) error {
	info, err := h.registry.DescribeTable(c.Params("name"))
	if err != nil {
		return ErrorResponse(c, err, tableNotFound)
	}
	return c.JSON(info)
}

func (h *MetadataHandler) DescribeDatabase(c *fiber.Ctx) error {
	info := h.registry.DescribeDatabase(func(name string, err error) {
		utils.GetLogger().WithError(err).WithField("table", name).Warn("Skipping table in database description")
	})
	return c.JSON(info)
}

// Health always reports healthy; store reachability is informational.
func (h *MetadataHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), healthPingTimeout)
	defer cancel()

	store := "ok"
	if err := h.records.Ping(ctx); err != nil {
		utils.GetLogger().WithError(err).Warn("Record store ping failed")
		store = "unavailable"
	}
	return c.JSON(fiber.Map{
		"status": "healthy",
		"store":  store,
	})
}

func (h *MetadataHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"app":          h.cfg.AppName,
		"version":      h.cfg.AppVersion,
		"metadata_url": "/metadata/database",
	})
}
