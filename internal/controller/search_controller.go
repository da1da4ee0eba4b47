package controller

import (
	"errors"

	"ai-contact-search-be/internal/dto"
	"ai-contact-search-be/internal/pkg/serverutils"
	"ai-contact-search-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISearchController interface {
	RegisterRoutes(r fiber.Router)
	Search(ctx *fiber.Ctx) error
}

type searchController struct {
	searchService service.ISearchService
}

func NewSearchController(searchService service.ISearchService) ISearchController {
	return &searchController{
		searchService: searchService,
	}
}

func (c *searchController) RegisterRoutes(r fiber.Router) {
	r.Post("/search", c.Search)
}

func (c *searchController) Search(ctx *fiber.Ctx) error {
	var req dto.SearchRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.searchService.Search(ctx.UserContext(), &req)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success search contacts", res))
}
