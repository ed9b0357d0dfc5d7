package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/applytrack/applytrack-server/internal/ai"
)

// aiTimeout bounds a single model call. Generation is slow compared to
// database work, so this is deliberately generous.
const aiTimeout = 60 * time.Second

// AIHandler serves the text generation endpoints. Client is nil when no
// API key is configured; every route then answers 503.
type AIHandler struct {
	Client ai.Client
}

func NewAIHandler(client ai.Client) *AIHandler {
	return &AIHandler{Client: client}
}

func (h *AIHandler) unavailable(c echo.Context) error {
	return c.JSON(http.StatusServiceUnavailable,
		echo.Map{"error": "AI features are not configured"})
}

func aiCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), aiTimeout)
}

// CoverLetter generates a cover letter for a position.
func (h *AIHandler) CoverLetter(c echo.Context) error {
	if h.Client == nil {
		return h.unavailable(c)
	}
	if _, ok := currentUser(c); !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Authentication required"})
	}
	var req struct {
		JobTitle       string `json:"job_title"`
		CompanyName    string `json:"company_name"`
		JobDescription string `json:"job_description"`
		ResumeText     string `json:"resume_text"`
		Tone           string `json:"tone"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.JobTitle) == "" || strings.TrimSpace(req.CompanyName) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Job title and company name are required"})
	}

	ctx, cancel := aiCtx(c)
	defer cancel()

	prompt := ai.CoverLetterPrompt(req.JobTitle, req.CompanyName, req.JobDescription, req.ResumeText, req.Tone)
	text, err := h.Client.Generate(ctx, prompt)
	if err != nil {
		c.Logger().Errorf("ai cover letter: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to generate cover letter"})
	}
	return c.JSON(http.StatusOK, echo.Map{"coverLetter": text})
}

// MatchResume scores a resume against a job description.
func (h *AIHandler) MatchResume(c echo.Context) error {
	if h.Client == nil {
		return h.unavailable(c)
	}
	if _, ok := currentUser(c); !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Authentication required"})
	}
	var req struct {
		JobDescription string `json:"job_description"`
		ResumeText     string `json:"resume_text"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.JobDescription) == "" || strings.TrimSpace(req.ResumeText) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Job description and resume text are required"})
	}

	ctx, cancel := aiCtx(c)
	defer cancel()

	raw, err := h.Client.Generate(ctx, ai.MatchPrompt(req.JobDescription, req.ResumeText))
	if err != nil {
		c.Logger().Errorf("ai match resume: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to analyze match"})
	}
	result := ai.ParseMatchResult(raw)
	if result.Fallback {
		c.Logger().Warn("ai match resume: model returned non-JSON output, using fallback")
	}
	return c.JSON(http.StatusOK, echo.Map{"analysis": result.MatchAnalysis})
}

// InterviewQuestions generates categorized prep questions for a position.
func (h *AIHandler) InterviewQuestions(c echo.Context) error {
	if h.Client == nil {
		return h.unavailable(c)
	}
	if _, ok := currentUser(c); !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Authentication required"})
	}
	var req struct {
		JobTitle        string `json:"job_title"`
		CompanyName     string `json:"company_name"`
		JobDescription  string `json:"job_description"`
		ExperienceLevel string `json:"experience_level"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.JobTitle) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Job title is required"})
	}

	ctx, cancel := aiCtx(c)
	defer cancel()

	prompt := ai.InterviewQuestionsPrompt(req.JobTitle, req.CompanyName, req.JobDescription, req.ExperienceLevel)
	raw, err := h.Client.Generate(ctx, prompt)
	if err != nil {
		c.Logger().Errorf("ai interview questions: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to generate questions"})
	}
	result := ai.ParseQuestionsResult(raw, req.JobTitle)
	if result.Fallback {
		c.Logger().Warn("ai interview questions: model returned non-JSON output, using fallback")
	}
	return c.JSON(http.StatusOK, echo.Map{"questions": result.InterviewQuestions})
}
