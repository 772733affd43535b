package utils

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/omkarh25/som/internal/apperror"
	"github.com/omkarh25/som/internal/models"
)

// GetListParams reads skip and limit from the query string. Missing
// bounds take their defaults; present ones must be integers. Range checks
// are left to Page.Validate.
func GetListParams(c *fiber.Ctx, v *apperror.ValidationError) models.Page {
	page := models.DefaultPage()
	page.Skip = queryInt(c, v, "skip", page.Skip)
	page.Limit = queryInt(c, v, "limit", page.Limit)
	return page
}

func queryInt(c *fiber.Ctx, v *apperror.ValidationError, key string, def int) int {
	if !HasQuery(c, key) {
		return def
	}
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		v.Add(key, "must be an integer")
		return def
	}
	return n
}

// HasQuery reports whether key appears in the query string, even with an
// empty value.
func HasQuery(c *fiber.Ctx, key string) bool {
	return c.Context().QueryArgs().Has(key)
}

// OptionalQuery returns the raw value of key, absent when the key is not
// in the query string.
func OptionalQuery(c *fiber.Ctx, key string) models.Optional[string] {
	if !HasQuery(c, key) {
		return models.None[string]()
	}
	return models.Some(c.Query(key))
}

// NonEmptyQuery is OptionalQuery with an empty value treated as absent.
func NonEmptyQuery(c *fiber.Ctx, key string) models.Optional[string] {
	if value := c.Query(key); value != "" {
		return models.Some(value)
	}
	return models.None[string]()
}

// TimeQuery parses key as a timestamp. An empty value is absent.
func TimeQuery(c *fiber.Ctx, v *apperror.ValidationError, key string) models.Optional[time.Time] {
	value := c.Query(key)
	if value == "" {
		return models.None[time.Time]()
	}
	t, err := models.ParseTimestamp(value)
	if err != nil {
		v.Add(key, "must be a valid datetime")
		return models.None[time.Time]()
	}
	return models.Some(t)
}
