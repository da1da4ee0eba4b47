package controller

import (
	"errors"

	"ai-contact-search-be/internal/dto"
	"ai-contact-search-be/internal/pkg/serverutils"
	"ai-contact-search-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IReferralController interface {
	RegisterRoutes(r fiber.Router)
	Search(ctx *fiber.Ctx) error
}

type referralController struct {
	referralService service.IReferralService
}

func NewReferralController(referralService service.IReferralService) IReferralController {
	return &referralController{
		referralService: referralService,
	}
}

func (c *referralController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/referral")
	h.Post("/search", c.Search)
}

func (c *referralController) Search(ctx *fiber.Ctx) error {
	var req dto.ReferralSearchRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.referralService.Search(ctx.UserContext(), &req)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success search referrals", res))
}
