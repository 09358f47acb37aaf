package handlers

import (
	"github.com/gofiber/fiber/v2"

	"emporium/internal/domain"
	"emporium/internal/services"
	"emporium/internal/validate"
)

type AddressHandler struct {
	Addrs *services.AddressService
}

type addressRequest struct {
	HouseNameNumber string `json:"houseNameNumber"`
	StreetName      string `json:"streetName"`
	TownCityName    string `json:"townCityName"`
	PostCode        string `json:"postCode"`
}

func (r addressRequest) toDomain() domain.Address {
	return domain.Address{
		HouseNameNumber: r.HouseNameNumber,
		StreetName:      r.StreetName,
		TownCityName:    r.TownCityName,
		PostCode:        r.PostCode,
	}
}

func (h *AddressHandler) List(c *fiber.Ctx) error {
	addrs, err := h.Addrs.List(accountID(c))
	if err != nil {
		return fail(c, "addresses.list", err)
	}
	return c.JSON(addrs)
}

func (h *AddressHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("addressId"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "address not found"})
	}
	a, err := h.Addrs.Get(accountID(c), id)
	if err != nil {
		return fail(c, "addresses.get", err)
	}
	return c.JSON(a)
}

func (h *AddressHandler) Create(c *fiber.Ctx) error {
	var req addressRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	a, err := h.Addrs.Create(accountID(c), req.toDomain())
	if err != nil {
		return fail(c, "addresses.create", err)
	}
	return c.Status(fiber.StatusCreated).JSON(a)
}

func (h *AddressHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("addressId"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "address not found"})
	}
	var req addressRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	a := req.toDomain()
	a.ID = id
	updated, err := h.Addrs.Update(accountID(c), a)
	if err != nil {
		return fail(c, "addresses.update", err)
	}
	return c.JSON(updated)
}

func (h *AddressHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("addressId"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "address not found"})
	}
	deleted, err := h.Addrs.Delete(accountID(c), id)
	if err != nil {
		return fail(c, "addresses.delete", err)
	}
	if !deleted {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "address not found"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
