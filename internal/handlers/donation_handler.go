package handlers

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/ismail-dev-code/meal-giver-server/internal/httperr"
	"github.com/ismail-dev-code/meal-giver-server/internal/logger"
	"github.com/ismail-dev-code/meal-giver-server/internal/middleware"
	"github.com/ismail-dev-code/meal-giver-server/internal/services"
	"github.com/ismail-dev-code/meal-giver-server/internal/storage"
)

// DonationHandler serves the donation endpoints.
type DonationHandler struct {
	donations *services.DonationService
	images    *storage.ImageStore
}

func NewDonationHandler(donations *services.DonationService, images *storage.ImageStore) *DonationHandler {
	return &DonationHandler{donations: donations, images: images}
}

// Create handles POST /donations.
func (h *DonationHandler) Create(c *fiber.Ctx) error {
	var in services.DonationInput
	if err := c.BodyParser(&in); err != nil {
		return httperr.InvalidInput("invalid request body")
	}
	d, err := h.donations.Create(c.Context(), middleware.Identity(c), in)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "donation created", "donation": d})
}

// List handles GET /donations?approved=true.
func (h *DonationHandler) List(c *fiber.Ctx) error {
	donations, err := h.donations.List(c.Context(), c.Query("approved") == "true")
	if err != nil {
		return err
	}
	return c.JSON(donations)
}

// Featured handles GET /donations/featured.
func (h *DonationHandler) Featured(c *fiber.Ctx) error {
	donations, err := h.donations.Featured(c.Context(), int64(c.QueryInt("limit", 8)))
	if err != nil {
		return err
	}
	return c.JSON(donations)
}

// Get handles GET /donations/:id.
func (h *DonationHandler) Get(c *fiber.Ctx) error {
	id, err := objectID(c, "id")
	if err != nil {
		return err
	}
	d, err := h.donations.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(d)
}

// Update handles PATCH /donations/:id.
func (h *DonationHandler) Update(c *fiber.Ctx) error {
	id, err := objectID(c, "id")
	if err != nil {
		return err
	}
	var patch services.DonationPatch
	if err := c.BodyParser(&patch); err != nil {
		return httperr.InvalidInput("invalid request body")
	}
	d, err := h.donations.Update(c.Context(), id, patch, middleware.Identity(c).Email, middleware.Role(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "donation updated", "donation": d})
}

// SetApproval handles PATCH /admin/donations/:id/approval.
func (h *DonationHandler) SetApproval(c *fiber.Ctx) error {
	id, err := objectID(c, "id")
	if err != nil {
		return err
	}
	var body struct {
		Approved bool `json:"approved"`
		Featured bool `json:"featured"`
	}
	if err := c.BodyParser(&body); err != nil {
		return httperr.InvalidInput("invalid request body")
	}
	if err := h.donations.SetApproval(c.Context(), id, body.Approved, body.Featured); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "approval updated"})
}

// SetStatus handles PATCH /donations/:id/status.
func (h *DonationHandler) SetStatus(c *fiber.Ctx) error {
	id, err := objectID(c, "id")
	if err != nil {
		return err
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil {
		return httperr.InvalidInput("invalid request body")
	}
	if err := h.donations.SetStatus(c.Context(), id, body.Status, middleware.Identity(c).Email, middleware.Role(c)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "status updated"})
}

// Delete handles DELETE /donations/:id. The stored image object is removed
// best-effort after the document.
func (h *DonationHandler) Delete(c *fiber.Ctx) error {
	id, err := objectID(c, "id")
	if err != nil {
		return err
	}
	d, err := h.donations.Delete(c.Context(), id, middleware.Identity(c).Email, middleware.Role(c))
	if err != nil {
		return err
	}

	if h.images != nil {
		if object := imageObjectName(d.Image); object != "" {
			if err := h.images.Remove(c.Context(), object); err != nil {
				logger.Warn().Err(err).Str("object", object).Msg("failed to remove donation image")
			}
		}
	}
	return c.JSON(fiber.Map{"message": "donation deleted"})
}

// UploadImage handles POST /donations/:id/image: stores the multipart image
// and patches the donation's image URL.
func (h *DonationHandler) UploadImage(c *fiber.Ctx) error {
	if h.images == nil {
		return httperr.Internal("image storage is not configured")
	}
	id, err := objectID(c, "id")
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return httperr.InvalidInput("missing image file")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return httperr.InvalidInput("failed to open image file")
	}
	defer file.Close()

	objectName := fmt.Sprintf("%s_%s", id.Hex(), fileHeader.Filename)
	url, err := h.images.Put(c.Context(), objectName, fileHeader.Header.Get("Content-Type"), file, fileHeader.Size)
	if err != nil {
		return httperr.Internal("failed to store image")
	}

	d, err := h.donations.Update(c.Context(), id, services.DonationPatch{Image: &url},
		middleware.Identity(c).Email, middleware.Role(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "image uploaded", "donation": d})
}

// imageObjectName extracts the object name from a stored image URL; empty
// when the image lives outside our bucket.
func imageObjectName(imageURL string) string {
	const marker = "/donation-images/"
	idx := strings.Index(imageURL, marker)
	if idx < 0 {
		return ""
	}
	return imageURL[idx+len(marker):]
}
