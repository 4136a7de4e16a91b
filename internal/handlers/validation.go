package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"tokoshop/internal/listing"
)

// validationFailed answers 400 with one message per failed field.
func validationFailed(c *fiber.Ctx, err error) error {
	errorMessages := make(map[string]string)
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
	} else {
		errorMessages["body"] = err.Error()
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}

// parseListingParams reads availability, price, sort and page from the query string.
// sort defaults to best-selling and page to 1.
func parseListingParams(c *fiber.Ctx) (listing.Params, map[string]string) {
	errs := make(map[string]string)
	params := listing.Params{
		Availability: c.Query("availability"),
		Sort:         listing.SortMode(c.Query("sort", string(listing.DefaultSort))),
		Page:         1,
	}

	if raw := c.Query("price"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			errs["price"] = "Field 'price' must be a number"
		} else {
			params.Price = &price
		}
	}
	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			errs["page"] = "Field 'page' must be a positive integer"
		} else {
			params.Page = page
		}
	}
	return params, errs
}

func invalidQuery(c *fiber.Ctx, errs map[string]string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errs,
	})
}
