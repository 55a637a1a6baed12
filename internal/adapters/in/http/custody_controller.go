package http

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/famcal/custody-schedule-engine/internal/config"
	"github.com/famcal/custody-schedule-engine/internal/core/domain"
	"github.com/famcal/custody-schedule-engine/internal/core/json_types"
	"github.com/famcal/custody-schedule-engine/internal/core/ports/in"
	"github.com/famcal/custody-schedule-engine/internal/core/ports/out"
	"github.com/famcal/custody-schedule-engine/internal/core/services/custody_service"
)

type CustodyController struct {
	useCase in.CustodyUseCase
	cfg     *config.Config
	logger  out.LoggerPort
}

func NewCustodyController(useCase in.CustodyUseCase, cfg *config.Config, logger out.LoggerPort) *CustodyController {
	return &CustodyController{
		useCase: useCase,
		cfg:     cfg,
		logger:  logger,
	}
}

func (c *CustodyController) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1")
	api.Use(c.basicAuth())
	{
		api.POST("/custody/preview", c.generatePreview)
		api.GET("/custody/resolved", c.getResolvedCalendar)

		api.POST("/rules", c.createRule)
		api.GET("/rules/:childId", c.getRulesByChild)
		api.DELETE("/rules/:ruleId", c.deleteRule)
		api.POST("/rules/:ruleId/reorder", c.reorderRule)
		api.POST("/rules/check-conflicts", c.checkConflicts)

		api.POST("/propagation/simulate", c.simulatePropagation)
		api.POST("/propagation/execute", c.executePropagation)
	}
}

type ReorderRuleRequest struct {
	Direction domain.ReorderDirection `json:"direction" binding:"required,oneof=UP DOWN"`
}

type CheckConflictsRequest struct {
	Config        domain.PatternConfig `json:"config" binding:"required"`
	ExcludeRuleID uuid.UUID            `json:"excludeRuleId"`
}

type SimulatePropagationRequest struct {
	ChildID        uuid.UUID       `json:"childId" binding:"required"`
	ReferenceMonth json_types.Date `json:"referenceMonth" binding:"required"`
}

type ExecutePropagationRequest struct {
	Configs []domain.PatternConfig `json:"configs" binding:"required"`
}

func (c *CustodyController) generatePreview(ctx *gin.Context) {
	var patternConfig domain.PatternConfig
	if err := ctx.ShouldBindJSON(&patternConfig); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	intervals, err := c.useCase.GeneratePreview(ctx.Request.Context(), patternConfig)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"intervals": intervals})
}

func (c *CustodyController) getResolvedCalendar(ctx *gin.Context) {
	startDate, err := json_types.ParseDate(ctx.Query("start"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start date format"})
		return
	}

	endDate, err := json_types.ParseDate(ctx.Query("end"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end date format"})
		return
	}

	// childId опционален, без него календарь собирается по всем детям
	childID := uuid.Nil
	if childIDParam := ctx.Query("childId"); childIDParam != "" {
		childID, err = uuid.Parse(childIDParam)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid child ID format"})
			return
		}
	}

	intervals, err := c.useCase.GetResolvedCalendar(ctx.Request.Context(), childID, startDate, endDate)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"intervals": intervals})
}

func (c *CustodyController) createRule(ctx *gin.Context) {
	var patternConfig domain.PatternConfig
	if err := ctx.ShouldBindJSON(&patternConfig); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rule, err := c.useCase.CreateRule(ctx.Request.Context(), patternConfig)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, rule)
}

func (c *CustodyController) getRulesByChild(ctx *gin.Context) {
	childID, err := uuid.Parse(ctx.Param("childId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid child ID format"})
		return
	}

	rules, err := c.useCase.GetRulesByChild(ctx.Request.Context(), childID)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"rules": rules})
}

func (c *CustodyController) deleteRule(ctx *gin.Context) {
	ruleID, err := uuid.Parse(ctx.Param("ruleId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid rule ID format"})
		return
	}

	if err := c.useCase.DeleteRule(ctx.Request.Context(), ruleID); err != nil {
		c.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

func (c *CustodyController) reorderRule(ctx *gin.Context) {
	ruleID, err := uuid.Parse(ctx.Param("ruleId"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid rule ID format"})
		return
	}

	var req ReorderRuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := c.useCase.ReorderRule(ctx.Request.Context(), ruleID, req.Direction); err != nil {
		c.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

func (c *CustodyController) checkConflicts(ctx *gin.Context) {
	var req CheckConflictsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	conflicts, err := c.useCase.CheckConflicts(ctx.Request.Context(), req.Config, req.ExcludeRuleID)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"conflicts": conflicts})
}

func (c *CustodyController) simulatePropagation(ctx *gin.Context) {
	var req SimulatePropagationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := c.useCase.SimulatePropagation(ctx.Request.Context(), req.ChildID, req.ReferenceMonth)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, result)
}

func (c *CustodyController) executePropagation(ctx *gin.Context) {
	var req ExecutePropagationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	createdCount, err := c.useCase.ExecutePropagation(ctx.Request.Context(), req.Configs)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"createdCount": createdCount})
}

func (c *CustodyController) respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, custody_service.ErrRuleNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, custody_service.ErrInvalidDateRange),
		errors.Is(err, custody_service.ErrInvalidParent),
		errors.Is(err, custody_service.ErrMissingChild):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func (c *CustodyController) basicAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		username, password, hasAuth := ctx.Request.BasicAuth()
		if !hasAuth {
			ctx.Header("WWW-Authenticate", "Basic realm=Authorization Required")
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		for _, client := range c.cfg.Auth.BasicClients {
			if subtle.ConstantTimeCompare([]byte(username), []byte(client.Username)) == 1 &&
				subtle.ConstantTimeCompare([]byte(password), []byte(client.Password)) == 1 {
				ctx.Next()
				return
			}
		}

		ctx.Header("WWW-Authenticate", "Basic realm=Authorization Required")
		ctx.AbortWithStatus(http.StatusUnauthorized)
	}
}
