package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Adoxcol/uniplanfinal/internal/app/models/dto"
	"github.com/Adoxcol/uniplanfinal/internal/app/services"
	"github.com/Adoxcol/uniplanfinal/internal/middleware"
)

// PlanController handles plan management endpoints
type PlanController struct {
	planService services.PlanService
}

// NewPlanController creates a new PlanController
func NewPlanController(planService services.PlanService) *PlanController {
	return &PlanController{planService: planService}
}

// planWithCourses is the detail view of a plan
type planWithCourses struct {
	Plan    interface{} `json:"plan"`
	Courses interface{} `json:"courses"`
}

// CreatePlan handles plan creation
// @Summary Create a new degree plan
// @Description Creates an empty plan with the default semester sequence. Each user may hold a limited number of plans.
// @Tags plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreatePlanRequest true "Plan information"
// @Success 201 {object} dto.APIResponse{data=models.Plan} "Plan created"
// @Failure 400 {object} dto.ErrorResponse "Invalid plan data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 409 {object} dto.ErrorResponse "Plan limit reached"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /plans [post]
func (c *PlanController) CreatePlan(ctx *gin.Context) {
	var req dto.CreatePlanRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid plan data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	plan, err := c.planService.CreatePlan(ctx, middleware.CurrentUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      plan,
		Timestamp: time.Now(),
	})
}

// ListPlans lists the caller's plans
// @Summary List my plans
// @Description Returns summaries of every plan owned by the caller
// @Tags plans
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.PlanSummary} "Plans retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /plans [get]
func (c *PlanController) ListPlans(ctx *gin.Context) {
	summaries, err := c.planService.ListPlans(ctx, middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      summaries,
		Timestamp: time.Now(),
	})
}

// GetPlan returns one of the caller's plans with its courses
// @Summary Get plan details
// @Description Returns a plan and its full course collection, owner only
// @Tags plans
// @Produce json
// @Security BearerAuth
// @Param id path string true "Plan ID"
// @Success 200 {object} dto.APIResponse "Plan retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the plan owner"
// @Failure 404 {object} dto.ErrorResponse "Plan not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /plans/{id} [get]
func (c *PlanController) GetPlan(ctx *gin.Context) {
	plan, courses, err := c.planService.GetPlan(ctx, middleware.CurrentUserID(ctx), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      planWithCourses{Plan: plan, Courses: courses},
		Timestamp: time.Now(),
	})
}

// RenamePlan updates a plan's title
// @Summary Rename a plan
// @Description Updates the plan title without touching the rest of the plan
// @Tags plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Plan ID"
// @Param request body dto.RenamePlanRequest true "New title"
// @Success 204 "Plan renamed"
// @Failure 400 {object} dto.ErrorResponse "Invalid title"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the plan owner"
// @Failure 404 {object} dto.ErrorResponse "Plan not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /plans/{id} [patch]
func (c *PlanController) RenamePlan(ctx *gin.Context) {
	var req dto.RenamePlanRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid rename data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.planService.RenamePlan(ctx, middleware.CurrentUserID(ctx), ctx.Param("id"), &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// SetVisibility toggles a plan's public flag
// @Summary Set plan visibility
// @Description Makes a plan publicly visible or private again
// @Tags plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Plan ID"
// @Param request body dto.VisibilityRequest true "Visibility flag"
// @Success 204 "Visibility updated"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the plan owner"
// @Failure 404 {object} dto.ErrorResponse "Plan not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /plans/{id}/visibility [put]
func (c *PlanController) SetVisibility(ctx *gin.Context) {
	var req dto.VisibilityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid visibility data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.planService.SetVisibility(ctx, middleware.CurrentUserID(ctx), ctx.Param("id"), req.IsPublic); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// DeletePlan removes a plan permanently
// @Summary Delete a plan
// @Description Removes a plan and all of its courses. There is no soft delete.
// @Tags plans
// @Produce json
// @Security BearerAuth
// @Param id path string true "Plan ID"
// @Success 204 "Plan deleted"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the plan owner"
// @Failure 404 {object} dto.ErrorResponse "Plan not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /plans/{id} [delete]
func (c *PlanController) DeletePlan(ctx *gin.Context) {
	if err := c.planService.DeletePlan(ctx, middleware.CurrentUserID(ctx), ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// ListPublicPlans lists every publicly shared plan
// @Summary Browse public plans
// @Description Returns summaries of all plans their owners have shared
// @Tags public
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.PlanSummary} "Public plans retrieved"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /public-plans [get]
func (c *PlanController) ListPublicPlans(ctx *gin.Context) {
	summaries, err := c.planService.ListPublicPlans(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      summaries,
		Timestamp: time.Now(),
	})
}

// GetPublicPlan returns a shared plan without authentication
// @Summary View a public plan
// @Description Returns a publicly shared plan and its courses
// @Tags public
// @Produce json
// @Param id path string true "Plan ID"
// @Success 200 {object} dto.APIResponse "Plan retrieved"
// @Failure 403 {object} dto.ErrorResponse "Plan is not public"
// @Failure 404 {object} dto.ErrorResponse "Plan not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /public-plans/{id} [get]
func (c *PlanController) GetPublicPlan(ctx *gin.Context) {
	plan, courses, err := c.planService.GetPublicPlan(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      planWithCourses{Plan: plan, Courses: courses},
		Timestamp: time.Now(),
	})
}

// DuplicatePlan copies a plan into the caller's account
// @Summary Duplicate a plan
// @Description Copies a public plan, or one of the caller's own, under fresh identifiers. The copy starts private.
// @Tags plans
// @Produce json
// @Security BearerAuth
// @Param id path string true "Source plan ID"
// @Success 201 {object} dto.APIResponse{data=models.Plan} "Plan duplicated"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Source plan is not public"
// @Failure 404 {object} dto.ErrorResponse "Plan not found"
// @Failure 409 {object} dto.ErrorResponse "Plan limit reached"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /plans/{id}/duplicate [post]
func (c *PlanController) DuplicatePlan(ctx *gin.Context) {
	plan, err := c.planService.DuplicatePlan(ctx, middleware.CurrentUserID(ctx), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      plan,
		Timestamp: time.Now(),
	})
}
