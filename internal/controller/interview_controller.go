package controller

import (
	"github.com/dhanushgc/HireMind/internal/dto"
	"github.com/dhanushgc/HireMind/internal/pkg/serverutils"
	"github.com/dhanushgc/HireMind/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IInterviewController interface {
	RegisterRoutes(r fiber.Router)
	GenerateQuestions(ctx *fiber.Ctx) error
	NextQuestion(ctx *fiber.Ctx) error
	SubmitAnswer(ctx *fiber.Ctx) error
	Transcript(ctx *fiber.Ctx) error
}

type interviewController struct {
	service   service.IInterviewService
	jwtSecret string
}

func NewInterviewController(service service.IInterviewService, jwtSecret string) IInterviewController {
	return &interviewController{service: service, jwtSecret: jwtSecret}
}

func (c *interviewController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/interview/v1")
	h.Use(serverutils.JwtMiddleware(c.jwtSecret))
	h.Post("/question", c.GenerateQuestions)
	h.Post("/next", c.NextQuestion)
	h.Post("/answer", c.SubmitAnswer)
	h.Post("/transcript", c.Transcript)
}

func (c *interviewController) GenerateQuestions(ctx *fiber.Ctx) error {
	var req dto.GenerateQuestionsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}
	if !serverutils.CandidateAllowed(ctx, req.CandidateId) {
		return fiber.ErrForbidden
	}

	res, err := c.service.Generate(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success generate questions", res))
}

func (c *interviewController) NextQuestion(ctx *fiber.Ctx) error {
	var req dto.SessionQuery
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}
	if !serverutils.CandidateAllowed(ctx, req.CandidateId) {
		return fiber.ErrForbidden
	}

	res, err := c.service.Next(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get next question", res))
}

func (c *interviewController) SubmitAnswer(ctx *fiber.Ctx) error {
	var req dto.SubmitAnswerRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}
	if !serverutils.CandidateAllowed(ctx, req.CandidateId) {
		return fiber.ErrForbidden
	}

	res, err := c.service.Submit(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Answer recorded", res))
}

func (c *interviewController) Transcript(ctx *fiber.Ctx) error {
	var req dto.SessionQuery
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}
	if !serverutils.CandidateAllowed(ctx, req.CandidateId) {
		return fiber.ErrForbidden
	}

	res, err := c.service.Transcript(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get transcript", res))
}
