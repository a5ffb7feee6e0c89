package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/torebek/gigledger/internal/http/middleware"
	"github.com/torebek/gigledger/internal/service"
)

type Handler struct {
	queries   *service.QueryService
	payments  *service.PaymentService
	deposits  *service.DepositService
	analytics *service.AnalyticsService
	log       zerolog.Logger
}

func NewHandler(
	queries *service.QueryService,
	payments *service.PaymentService,
	deposits *service.DepositService,
	analytics *service.AnalyticsService,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		queries:   queries,
		payments:  payments,
		deposits:  deposits,
		analytics: analytics,
		log:       log,
	}
}

func (h *Handler) Register(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	protected := router.Group("/")
	protected.Use(authMiddleware)
	protected.GET("/contracts/:id", h.getContract)
	protected.GET("/contracts", h.listContracts)
	protected.GET("/jobs/unpaid", h.listUnpaidJobs)
	protected.POST("/jobs/:job_id/pay", h.payJob)
	protected.POST("/balances/deposit/:user_id", h.deposit)
	protected.GET("/admin/best-profession", h.bestProfession)
	protected.GET("/admin/best-clients", h.bestClients)
	protected.GET("/admin/best-clients/export", h.exportBestClients)
}

func (h *Handler) getContract(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contract id"})
		return
	}

	contract, err := h.queries.ContractByID(c.Request.Context(), id, principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, contract)
}

func (h *Handler) listContracts(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	contracts, err := h.queries.ContractsForUser(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"contracts": contracts})
}

func (h *Handler) listUnpaidJobs(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	jobs, err := h.queries.UnpaidJobsForUser(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

func (h *Handler) payJob(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	jobID, err := uuid.Parse(strings.TrimSpace(c.Param("job_id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job id"})
		return
	}

	receipt, err := h.payments.PayJob(c.Request.Context(), jobID, principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"job_id":  receipt.JobID,
		"amount":  receipt.Amount,
		"paid_at": receipt.PaidAt,
	})
}

type depositRequest struct {
	Amount float64 `json:"amount" binding:"required"`
}

func (h *Handler) deposit(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	userID, err := uuid.Parse(strings.TrimSpace(c.Param("user_id")))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	var req depositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.deposits.Deposit(c.Request.Context(), userID, principal, req.Amount); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) bestProfession(c *gin.Context) {
	start, end, ok := h.parsePeriod(c)
	if !ok {
		return
	}

	profession, err := h.analytics.BestProfession(c.Request.Context(), start, end)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"best_profession": profession})
}

func (h *Handler) bestClients(c *gin.Context) {
	start, end, ok := h.parsePeriod(c)
	if !ok {
		return
	}
	limit, ok := h.parseLimit(c)
	if !ok {
		return
	}

	clients, err := h.analytics.BestClients(c.Request.Context(), start, end, limit)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"clients": clients})
}

func (h *Handler) exportBestClients(c *gin.Context) {
	start, end, ok := h.parsePeriod(c)
	if !ok {
		return
	}
	limit, ok := h.parseLimit(c)
	if !ok {
		return
	}

	var result *service.ReportResult
	var contentType string
	var err error
	switch c.Query("format") {
	case "", "xlsx":
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		result, err = h.analytics.BestClientsReport(c.Request.Context(), start, end, limit)
	case "pdf":
		contentType = "application/pdf"
		result, err = h.analytics.BestClientsReportPDF(c.Request.Context(), start, end, limit)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid format"})
		return
	}
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, contentType, result.Content)
}

func (h *Handler) parsePeriod(c *gin.Context) (time.Time, time.Time, bool) {
	start, err := parseDate(c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start"})
		return time.Time{}, time.Time{}, false
	}
	end, err := parseDate(c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end"})
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

func (h *Handler) parseLimit(c *gin.Context) (int, bool) {
	raw := strings.TrimSpace(c.Query("limit"))
	if raw == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
		return 0, false
	}
	return limit, true
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "nothing is found"})
	case errors.Is(err, service.ErrInsufficientFunds):
		c.JSON(http.StatusPaymentRequired, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrAlreadyPaid):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrPolicyViolation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, service.ErrInvalidInput
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, service.ErrInvalidInput
}
