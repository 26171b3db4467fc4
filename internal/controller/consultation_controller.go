package controller

import (
	"ai-laborlaw-be/internal/dto"
	"ai-laborlaw-be/internal/pkg/serverutils"
	"ai-laborlaw-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IConsultationController interface {
	RegisterRoutes(r fiber.Router)
	StartSession(ctx *fiber.Ctx) error
	GetSession(ctx *fiber.Ctx) error
	SendChat(ctx *fiber.Ctx) error
	SubmitInventory(ctx *fiber.Ctx) error
	ConfirmInventory(ctx *fiber.Ctx) error
	UploadEvidence(ctx *fiber.Ctx) error
	AnalyzeEvidence(ctx *fiber.Ctx) error
	SkipEvidence(ctx *fiber.Ctx) error
	GetProgress(ctx *fiber.Ctx) error
	GetUploads(ctx *fiber.Ctx) error
	GenerateReport(ctx *fiber.Ctx) error
	ExportConversation(ctx *fiber.Ctx) error
	DeleteSession(ctx *fiber.Ctx) error
	CheckAnalyzers(ctx *fiber.Ctx) error
}

type consultationController struct {
	service service.IConsultationService
}

func NewConsultationController(service service.IConsultationService) IConsultationController {
	return &consultationController{service: service}
}

func (c *consultationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/consult/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("/session", c.StartSession)
	h.Get("/session/:id", c.GetSession)
	h.Delete("/session/:id", c.DeleteSession)
	h.Post("/session/:id/chat", c.SendChat)
	h.Post("/session/:id/inventory", c.SubmitInventory)
	h.Post("/session/:id/inventory/confirm", c.ConfirmInventory)
	h.Post("/session/:id/upload", c.UploadEvidence)
	h.Post("/session/:id/analyze", c.AnalyzeEvidence)
	h.Post("/session/:id/skip", c.SkipEvidence)
	h.Post("/session/:id/report", c.GenerateReport)
	h.Get("/session/:id/progress", c.GetProgress)
	h.Get("/session/:id/uploads", c.GetUploads)
	h.Get("/session/:id/export", c.ExportConversation)
	h.Get("/analyzers/health", c.CheckAnalyzers)
}

func (c *consultationController) StartSession(ctx *fiber.Ctx) error {
	var req dto.StartSessionRequest
	// The body is optional, an empty one starts an interactive intake.
	if err := ctx.BodyParser(&req); err != nil && err != fiber.ErrUnprocessableEntity {
		return err
	}

	res, err := c.service.StartSession(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success start consultation", res))
}

func (c *consultationController) GetSession(ctx *fiber.Ctx) error {
	res, err := c.service.GetSession(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get consultation", res))
}

func (c *consultationController) SendChat(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SendChat(ctx.Context(), ctx.Params("id"), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success send message", res))
}

func (c *consultationController) SubmitInventory(ctx *fiber.Ctx) error {
	var req dto.InventoryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SubmitInventory(ctx.Context(), ctx.Params("id"), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success submit inventory", res))
}

func (c *consultationController) ConfirmInventory(ctx *fiber.Ctx) error {
	var req dto.InventoryConfirmRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.ConfirmInventory(ctx.Context(), ctx.Params("id"), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success confirm inventory", res))
}

func (c *consultationController) UploadEvidence(ctx *fiber.Ctx) error {
	file, err := ctx.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Missing evidence file")
	}

	res, err := c.service.UploadEvidence(ctx.Context(), ctx.Params("id"), file)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success upload evidence", res))
}

func (c *consultationController) AnalyzeEvidence(ctx *fiber.Ctx) error {
	file, err := ctx.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Missing evidence file")
	}

	res, err := c.service.AnalyzeEvidence(ctx.Context(), ctx.Params("id"), file)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success analyze evidence", res))
}

func (c *consultationController) SkipEvidence(ctx *fiber.Ctx) error {
	res, err := c.service.SkipEvidence(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success skip evidence", res))
}

func (c *consultationController) GetProgress(ctx *fiber.Ctx) error {
	res, err := c.service.GetProgress(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get progress", res))
}

func (c *consultationController) GetUploads(ctx *fiber.Ctx) error {
	res, err := c.service.GetUploads(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get uploads", res))
}

func (c *consultationController) GenerateReport(ctx *fiber.Ctx) error {
	var req dto.ReportRequest
	// The body is optional, an empty one means default format and recipient.
	if err := ctx.BodyParser(&req); err != nil && err != fiber.ErrUnprocessableEntity {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.GenerateReport(ctx.Context(), ctx.Params("id"), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success generate report", res))
}

func (c *consultationController) ExportConversation(ctx *fiber.Ctx) error {
	res, err := c.service.ExportConversation(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success export conversation", res))
}

func (c *consultationController) DeleteSession(ctx *fiber.Ctx) error {
	err := c.service.DeleteSession(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete consultation", nil))
}

func (c *consultationController) CheckAnalyzers(ctx *fiber.Ctx) error {
	res := c.service.CheckAnalyzers(ctx.Context())
	return ctx.JSON(serverutils.SuccessResponse("Success check analyzers", res))
}
