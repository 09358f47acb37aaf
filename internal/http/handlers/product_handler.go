package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	applog "emporium/internal/log"
	"emporium/internal/services"
	"emporium/internal/validate"
)

type ProductHandler struct {
	Prods *services.ProductService
}

// List serves /products, optionally filtered by ?category= and ?name=
// substrings, or by an explicit ?ids=1,2,3 list.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	if raw := c.Query("ids"); raw != "" {
		var ids []int64
		for _, part := range strings.Split(raw, ",") {
			id, ok := validate.ID(part)
			if !ok {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid ids"})
			}
			ids = append(ids, id)
		}
		products, err := h.Prods.GetMultiple(ids)
		if err != nil {
			return fail(c, "products.list", err)
		}
		return c.JSON(products)
	}

	products, err := h.Prods.Search(c.Query("category"), c.Query("name"))
	if err != nil {
		return fail(c, "products.list", err)
	}
	return c.JSON(products)
}

func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("productId"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
	}
	p, err := h.Prods.Get(id)
	if err != nil {
		return fail(c, "products.get", err)
	}
	return c.JSON(p)
}

type createProductRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Category     string `json:"category"`
	PricePennies int64  `json:"pricePennies"`
	StockCount   int    `json:"stockCount"`
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var req createProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	p, err := h.Prods.Create(req.Name, req.Description, req.Category, req.PricePennies, req.StockCount)
	if err != nil {
		return fail(c, "products.create", err)
	}
	applog.Audit(c, "products.create", map[string]any{"product": p.ID})
	return c.Status(fiber.StatusCreated).JSON(p)
}
