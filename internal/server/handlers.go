package server

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spigell/skillmatch/internal/analysis"
)

type analyzeRequest struct {
	JobDescription string `json:"job_description" validate:"required"`
	ResumeText     string `json:"resume_text" validate:"required"`
	UseAI          bool   `json:"use_ai"`
}

type suggestionsResponse struct {
	Suggestions string `json:"suggestions"`
}

func (s *Server) analyze(c *fiber.Ctx) error {
	req, err := s.bind(c)
	if err != nil {
		return err
	}

	result, err := s.engine.Analyze(c.UserContext(), req.JobDescription, req.ResumeText, req.UseAI)
	if err != nil {
		return s.engineError(err)
	}

	s.logger.Debug("analysis served",
		zap.String("request_id", requestID(c)),
		zap.Int("match_score", result.MatchScore),
		zap.Bool("use_ai", req.UseAI),
	)

	return c.JSON(result)
}

func (s *Server) suggestions(c *fiber.Ctx) error {
	req, err := s.bind(c)
	if err != nil {
		return err
	}

	tips, err := s.engine.Suggest(c.UserContext(), req.JobDescription, req.ResumeText)
	if err != nil {
		return s.engineError(err)
	}

	return c.JSON(suggestionsResponse{Suggestions: tips})
}

func (s *Server) bind(c *fiber.Ctx) (*analyzeRequest, error) {
	req := new(analyzeRequest)
	if err := c.BodyParser(req); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, analysis.ErrEmptyInput.Error())
	}
	return req, nil
}

func (s *Server) engineError(err error) error {
	if errors.Is(err, analysis.ErrEmptyInput) {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return err
}
