package handler

import (
	"net/url"

	"questgenius/internal/dto"
	"questgenius/internal/logger"
	"questgenius/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// QuestionHandler handles question-related HTTP requests
type QuestionHandler struct {
	service service.QuestionService
}

// NewQuestionHandler creates a new QuestionHandler instance
func NewQuestionHandler(service service.QuestionService) *QuestionHandler {
	return &QuestionHandler{
		service: service,
	}
}

// GenerateQuestion handles POST /api/questions
func (h *QuestionHandler) GenerateQuestion(c *fiber.Ctx) error {
	var req dto.GenerateQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "INVALID_REQUEST",
		})
	}

	resp, err := h.service.Generate(c.Context(), &req)
	if err != nil {
		logger.Get().Error("Failed to generate question",
			zap.Error(err),
			zap.String("exam", req.Exam),
			zap.String("subject", req.Subject),
		)
		return err
	}

	if resp.Fallback {
		logger.Get().Info("Fallback question served",
			zap.String("exam", req.Exam),
			zap.String("subject", req.Subject),
		)
	}
	return c.JSON(resp)
}

// GetExams handles GET /api/exams
func (h *QuestionHandler) GetExams(c *fiber.Ctx) error {
	return c.JSON(h.service.Exams())
}

// GetSubjects handles GET /api/exams/:exam/subjects
func (h *QuestionHandler) GetSubjects(c *fiber.Ctx) error {
	exam := pathParam(c, "exam")
	if exam == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "INVALID_REQUEST",
		})
	}
	return c.JSON(h.service.Subjects(exam))
}

// GetEditalInfo handles GET /api/exams/:exam/edital
func (h *QuestionHandler) GetEditalInfo(c *fiber.Ctx) error {
	exam := pathParam(c, "exam")
	if exam == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "INVALID_REQUEST",
		})
	}

	info, err := h.service.EditalInfo(exam)
	if err != nil {
		return err
	}
	return c.JSON(info)
}

// pathParam returns a decoded path parameter; ids like "PMSP - São Paulo"
// arrive percent-encoded.
func pathParam(c *fiber.Ctx, name string) string {
	raw := c.Params(name)
	if decoded, err := url.PathUnescape(raw); err == nil {
		return decoded
	}
	return raw
}
