package controller

import (
	"io"

	"trupilot-gateway/internal/dto"
	"trupilot-gateway/internal/pkg/serverutils"
	"trupilot-gateway/internal/service"
	"trupilot-gateway/pkg/assistant"

	"github.com/gofiber/fiber/v2"
)

type IDocumentController interface {
	RegisterRoutes(r fiber.Router)
	Open(ctx *fiber.Ctx) error
	Reload(ctx *fiber.Ctx) error
	Upload(ctx *fiber.Ctx) error
	RequestDelete(ctx *fiber.Ctx) error
	CancelDelete(ctx *fiber.Ctx) error
	ConfirmDelete(ctx *fiber.Ctx) error
	ResetAll(ctx *fiber.Ctx) error
}

type documentController struct {
	documentService service.IDocumentService
}

func NewDocumentController(documentService service.IDocumentService) IDocumentController {
	return &documentController{
		documentService: documentService,
	}
}

func (c *documentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/document/v1")
	h.Post("upload", c.Upload)
	h.Get(":session_id", c.Open)
	h.Post(":session_id/reload", c.Reload)
	h.Post(":session_id/delete-request", c.RequestDelete)
	h.Post(":session_id/delete-cancel", c.CancelDelete)
	h.Post(":session_id/delete-confirm", c.ConfirmDelete)
	h.Delete(":session_id/reset", c.ResetAll)
}

func (c *documentController) Open(ctx *fiber.Ctx) error {
	sessionID := ctx.Params("session_id")

	res, err := c.documentService.OpenDashboard(ctx.Context(), sessionID)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success open dashboard", res))
}

func (c *documentController) Reload(ctx *fiber.Ctx) error {
	sessionID := ctx.Params("session_id")

	res, err := c.documentService.Reload(ctx.Context(), sessionID)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success reload dashboard", res))
}

// Upload expects multipart form data with one or more parts named
// "files". The whole selection is forwarded in a single request.
func (c *documentController) Upload(ctx *fiber.Ctx) error {
	form, err := ctx.MultipartForm()
	if err != nil {
		return serverutils.BadRequest("invalid multipart form")
	}

	var payloads []assistant.FilePayload
	for _, header := range form.File["files"] {
		src, err := header.Open()
		if err != nil {
			return err
		}
		content, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			return err
		}
		payloads = append(payloads, assistant.FilePayload{
			Name:    header.Filename,
			Content: content,
		})
	}

	res, err := c.documentService.Upload(ctx.Context(), payloads)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success upload documents", res))
}

func (c *documentController) RequestDelete(ctx *fiber.Ctx) error {
	sessionID := ctx.Params("session_id")

	var req dto.DeleteRequestRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	err := serverutils.ValidateRequest(req)
	if err != nil {
		return err
	}

	res, err := c.documentService.RequestDelete(ctx.Context(), sessionID, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success request delete", res))
}

func (c *documentController) CancelDelete(ctx *fiber.Ctx) error {
	sessionID := ctx.Params("session_id")

	res, err := c.documentService.CancelDelete(ctx.Context(), sessionID)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success cancel delete", res))
}

func (c *documentController) ConfirmDelete(ctx *fiber.Ctx) error {
	sessionID := ctx.Params("session_id")

	res, err := c.documentService.ConfirmDelete(ctx.Context(), sessionID)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete document", res))
}

func (c *documentController) ResetAll(ctx *fiber.Ctx) error {
	sessionID := ctx.Params("session_id")

	var req dto.ResetAllRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	res, err := c.documentService.ResetAll(ctx.Context(), sessionID, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success reset system", res))
}
