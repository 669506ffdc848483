package app

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smartcampus/campusai-go/internal/advisor"
	"github.com/smartcampus/campusai-go/internal/campus"
	"github.com/smartcampus/campusai-go/internal/config"
	"github.com/smartcampus/campusai-go/internal/engine"
	"github.com/smartcampus/campusai-go/internal/errors"
	"github.com/smartcampus/campusai-go/internal/sentry"
	"github.com/smartcampus/campusai-go/internal/suggest"
)

type chatRequest struct {
	Message string         `json:"message"`
	UserID  string         `json:"userId"`
	Role    string         `json:"role"`
	Context campus.Context `json:"context"`
}

type analyzeRequest struct {
	Type   string `json:"type"`
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

type suggestionsRequest struct {
	Page string `json:"page"`
	Role string `json:"role"`
}

type leaveAdviceRequest struct {
	UserID     string   `json:"userId"`
	Branch     string   `json:"branch"`
	Semester   string   `json:"semester"`
	MinPercent *float64 `json:"minAttendancePercent"`
}

type libraryRenewalRequest struct {
	UserID string `json:"userId"`
}

// handleChat processes a chat turn.
func (a *Application) handleChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		a.metrics.RecordHTTPError("bad_request", "/chat")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	userID := req.UserID
	if userID == "" {
		userID = "anonymous"
	}

	if a.userLimiter != nil && !a.userLimiter.Allow(userID) {
		a.metrics.RecordHTTPError("rate_limited", "/chat")
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests. Please try again later."})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), config.ChatProcessing)
	defer cancel()

	reply, err := a.engine.Chat(ctx, engine.Request{
		Message: req.Message,
		UserID:  userID,
		Role:    req.Role,
		Context: req.Context,
	})
	if err != nil {
		if errors.IsValidation(err) {
			a.metrics.RecordHTTPError("validation", "/chat")
			c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
			return
		}
		a.logger.WithError(err).Error("Chat processing failed")
		a.metrics.RecordHTTPError("internal", "/chat")
		sentry.CaptureException(c.Request.Context(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, reply)
}

// handleAnalyze serves data insight queries.
func (a *Application) handleAnalyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		a.metrics.RecordHTTPError("bad_request", "/chat/analyze")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.Type == "" {
		req.Type = "general"
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), config.ChatProcessing)
	defer cancel()

	c.JSON(http.StatusOK, a.engine.Analyze(ctx, req.Type, req.UserID))
}

// handleSuggestions returns page-scoped quick actions.
func (a *Application) handleSuggestions(c *gin.Context) {
	var req suggestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		a.metrics.RecordHTTPError("bad_request", "/chat/suggestions")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.Page == "" {
		req.Page = "dashboard"
	}
	if req.Role == "" {
		req.Role = "student"
	}

	c.JSON(http.StatusOK, gin.H{
		"suggestions": suggest.ForPage(campus.NormalizeRole(req.Role), req.Page),
		"page":        req.Page,
		"role":        req.Role,
	})
}

// handleLeaveAdvice computes safe-leave advice from the attendance summary.
// Backend failures report success=false with a 200 status; the advice text
// itself carries the outcome.
func (a *Application) handleLeaveAdvice(c *gin.Context) {
	var req leaveAdviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		a.metrics.RecordHTTPError("bad_request", "/chat/leave-advice")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	minPercent := advisor.DefaultMinAttendance
	if req.MinPercent != nil {
		minPercent = *req.MinPercent
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), config.BackendRequest)
	defer cancel()

	summary, err := a.client.AttendanceSummary(ctx, req.UserID, req.Branch, req.Semester)
	if err != nil || summary == nil || len(summary.SubjectWise) == 0 {
		if err != nil {
			a.logger.WithError(err).Debug("Attendance summary unavailable")
		}
		c.JSON(http.StatusOK, gin.H{
			"success": false,
			"advice":  "I couldn't fetch your attendance data right now. Please try again later.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"advice":   advisor.BuildLeaveAdvice(summary, minPercent),
		"subjects": summary.SubjectWise,
		"overall":  summary.Overall,
	})
}

// handleLibraryRenewal advises on book renewals. A backend failure degrades
// to the empty-loans reply.
func (a *Application) handleLibraryRenewal(c *gin.Context) {
	var req libraryRenewalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		a.metrics.RecordHTTPError("bad_request", "/chat/library-renewal")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), config.BackendRequest)
	defer cancel()

	books, err := a.client.BorrowedBooks(ctx, req.UserID)
	if err != nil {
		a.logger.WithError(err).Debug("Borrowed books unavailable")
		books = nil
	}

	result := advisor.BuildRenewalAdvice(books)
	if len(books) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"advice":  result.Advice,
			"books":   []campus.BorrowedBook{},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"advice":      result.Advice,
		"books":       books,
		"urgentCount": result.UrgentCount,
	})
}
