package controller

import (
	"ai-interview-be/internal/dto"
	"ai-interview-be/internal/pkg/serverutils"
	"ai-interview-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

// IToolsController exposes the tool endpoints called by the voice agent
// during an interview turn.
type IToolsController interface {
	RegisterRoutes(r fiber.Router)
	GetNextQuestion(ctx *fiber.Ctx) error
	GradeAnswer(ctx *fiber.Ctx) error
	RecordOutcome(ctx *fiber.Ctx) error
	UpdateDifficulty(ctx *fiber.Ctx) error
	FinalizeSession(ctx *fiber.Ctx) error
	LogInteraction(ctx *fiber.Ctx) error
}

type toolsController struct {
	questionService    service.IQuestionService
	gradingService     service.IGradingService
	ratingService      service.IRatingService
	finalizerService   service.IFinalizerService
	interactionService service.IInteractionService
}

func NewToolsController(
	questionService service.IQuestionService,
	gradingService service.IGradingService,
	ratingService service.IRatingService,
	finalizerService service.IFinalizerService,
	interactionService service.IInteractionService,
) IToolsController {
	return &toolsController{
		questionService:    questionService,
		gradingService:     gradingService,
		ratingService:      ratingService,
		finalizerService:   finalizerService,
		interactionService: interactionService,
	}
}

func (c *toolsController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/tools")
	h.Post("/get_next_question", c.GetNextQuestion)
	h.Post("/grade_answer", c.GradeAnswer)
	h.Post("/record_outcome", c.RecordOutcome)
	h.Post("/update_difficulty", c.UpdateDifficulty)
	h.Post("/finalize_session", c.FinalizeSession)
	h.Post("/log_interaction", c.LogInteraction)
}

func (c *toolsController) GetNextQuestion(ctx *fiber.Ctx) error {
	var req dto.SessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.questionService.NextQuestion(ctx.Context(), req.SessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get next question", res))
}

func (c *toolsController) GradeAnswer(ctx *fiber.Ctx) error {
	var req dto.GradeAnswerRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.gradingService.GradeAnswer(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success grade answer", res))
}

func (c *toolsController) RecordOutcome(ctx *fiber.Ctx) error {
	var req dto.RecordOutcomeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.ratingService.RecordOutcome(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success record outcome", res))
}

func (c *toolsController) UpdateDifficulty(ctx *fiber.Ctx) error {
	var req dto.SessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.ratingService.UpdateDifficulty(ctx.Context(), req.SessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update difficulty", res))
}

func (c *toolsController) FinalizeSession(ctx *fiber.Ctx) error {
	var req dto.SessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.finalizerService.FinalizeSession(ctx.Context(), req.SessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success finalize session", res))
}

func (c *toolsController) LogInteraction(ctx *fiber.Ctx) error {
	var req dto.LogInteractionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.interactionService.LogInteraction(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success log interaction", res))
}
