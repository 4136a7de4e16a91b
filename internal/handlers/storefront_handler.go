package handlers

import (
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"tokoshop/internal/listing"
	"tokoshop/internal/models"
	"tokoshop/internal/services"
	"tokoshop/internal/storefront"
)

// ViewerCookie identifies a shopper's listing page across requests.
const ViewerCookie = "toko_viewer"

const (
	defaultContactLimit = 50
	maxContactLimit     = 200
)

// StorefrontHandler serves the shopper facing pages: the product listing
// and the contact page.
type StorefrontHandler struct {
	viewers  *storefront.Viewers
	contact  *services.ContactService
	validate *validator.Validate
	log      *zap.Logger
}

// NewStorefrontHandler creates a new StorefrontHandler.
func NewStorefrontHandler(viewers *storefront.Viewers, contact *services.ContactService, log *zap.Logger) *StorefrontHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &StorefrontHandler{
		viewers:  viewers,
		contact:  contact,
		validate: validator.New(),
		log:      log,
	}
}

// RegisterRoutes registers the storefront routes under /shop.
func (h *StorefrontHandler) RegisterRoutes(router fiber.Router) {
	shop := router.Group("/shop")
	shop.Get("/products", h.HandleListing)
	shop.Get("/products/current", h.HandleCurrentListing)
	shop.Get("/contact", h.HandleContactDetails)
	shop.Post("/contact", h.HandleContactSubmit)
}

// RegisterAdminRoutes registers the dashboard view of contact submissions.
func (h *StorefrontHandler) RegisterAdminRoutes(router fiber.Router, auth fiber.Handler) {
	router.Get("/contact-messages", auth, h.HandleListContactMessages)
}

// HandleListing renders one page of the product listing. A failed catalog
// fetch still answers 200 with an empty listing.
func (h *StorefrontHandler) HandleListing(c *fiber.Ctx) error {
	params, errs := parseListingParams(c)
	if len(errs) > 0 {
		return invalidQuery(c, errs)
	}
	page := h.viewers.Page(h.viewerID(c))
	view := page.Load(c.UserContext(), params)
	return c.JSON(view)
}

// currentListing is the last applied state of a shopper's listing page.
type currentListing struct {
	storefront.View
	Params listing.Params `json:"params"`
}

// HandleCurrentListing re-renders the shopper's listing from its last applied
// load without fetching again.
func (h *StorefrontHandler) HandleCurrentListing(c *fiber.Ctx) error {
	page := h.viewers.Page(h.viewerID(c))
	return c.JSON(currentListing{
		View:   page.Current(),
		Params: page.Params(),
	})
}

// HandleContactDetails returns the addresses shown on the contact page.
func (h *StorefrontHandler) HandleContactDetails(c *fiber.Ctx) error {
	return c.JSON(h.contact.Details())
}

// HandleContactSubmit accepts a contact form submission.
func (h *StorefrontHandler) HandleContactSubmit(c *fiber.Ctx) error {
	var msg models.ContactMessage
	if err := c.BodyParser(&msg); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	msg.ID = ""
	msg.CreatedAt = time.Time{}
	msg.Normalize()
	if err := h.validate.Struct(msg); err != nil {
		return validationFailed(c, err)
	}

	if err := h.contact.Submit(&msg); err != nil {
		h.log.Error("Error submitting contact message", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not send message",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Thanks for reaching out, we will get back to you soon",
		"contact": msg,
	})
}

// HandleListContactMessages returns the newest contact submissions.
func (h *StorefrontHandler) HandleListContactMessages(c *fiber.Ctx) error {
	limit := defaultContactLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxContactLimit {
			return invalidQuery(c, map[string]string{
				"limit": "Field 'limit' must be an integer between 1 and " + strconv.Itoa(maxContactLimit),
			})
		}
		limit = n
	}

	msgs, err := h.contact.Recent(limit)
	if err != nil {
		h.log.Error("Error listing contact messages", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve contact messages",
			"error":   err.Error(),
		})
	}
	return c.JSON(msgs)
}

// viewerID returns the shopper id from the viewer cookie, issuing a new one
// when it is missing or malformed.
func (h *StorefrontHandler) viewerID(c *fiber.Ctx) string {
	if id := c.Cookies(ViewerCookie); id != "" {
		if _, err := uuid.Parse(id); err == nil {
			return id
		}
	}
	id := uuid.NewString()
	c.Cookie(&fiber.Cookie{
		Name:     ViewerCookie,
		Value:    id,
		Path:     "/shop",
		MaxAge:   int(h.viewers.TTL() / time.Second),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return id
}
