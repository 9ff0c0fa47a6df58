package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Adoxcol/uniplanfinal/internal/app/models/dto"
	"github.com/Adoxcol/uniplanfinal/internal/app/services"
	"github.com/Adoxcol/uniplanfinal/internal/middleware"
)

// PlannerController exposes the plan editing session over HTTP. Edits apply
// to the in-memory working copy; nothing reaches the store until save.
type PlannerController struct {
	plannerService services.PlannerService
}

// NewPlannerController creates a new PlannerController
func NewPlannerController(plannerService services.PlannerService) *PlannerController {
	return &PlannerController{plannerService: plannerService}
}

// OpenSession opens an editing session on a plan
// @Summary Open an editing session
// @Description Loads the plan into an in-memory working copy and returns the first snapshot. Reopening an already open plan returns the live session.
// @Tags planner
// @Produce json
// @Security BearerAuth
// @Param id path string true "Plan ID"
// @Success 200 {object} dto.APIResponse{data=planner.Snapshot} "Session opened"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the plan owner"
// @Failure 404 {object} dto.ErrorResponse "Plan not found"
// @Failure 502 {object} dto.ErrorResponse "Store unavailable"
// @Router /plans/{id}/session [post]
func (c *PlannerController) OpenSession(ctx *gin.Context) {
	snapshot, err := c.plannerService.OpenSession(ctx, middleware.CurrentUserID(ctx), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      snapshot,
		Timestamp: time.Now(),
	})
}

// GetSnapshot renders the current working copy
// @Summary Get the session snapshot
// @Description Returns the working copy with freshly derived totals, GPA and completion
// @Tags planner
// @Produce json
// @Security BearerAuth
// @Param id path string true "Plan ID"
// @Success 200 {object} dto.APIResponse{data=planner.Snapshot} "Snapshot rendered"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "No open session for this plan"
// @Router /plans/{id}/session [get]
func (c *PlannerController) GetSnapshot(ctx *gin.Context) {
	snapshot, err := c.plannerService.GetSnapshot(ctx, middleware.CurrentUserID(ctx), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      snapshot,
		Timestamp: time.Now(),
	})
}

// AddSemester appends the next semester to the working copy
// @Summary Add a semester
// @Description Appends the next semester number. The semester sequence is capped.
// @Tags planner
// @Produce json
// @Security BearerAuth
// @Param id path string true "Plan ID"
// @Success 200 {object} dto.APIResponse "Semester added"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "No open session for this plan"
// @Failure 409 {object} dto.ErrorResponse "Semester cap reached"
// @Router /plans/{id}/session/semesters [post]
func (c *PlannerController) AddSemester(ctx *gin.Context) {
	semester, err := c.plannerService.AddSemester(ctx, middleware.CurrentUserID(ctx), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      gin.H{"semester": semester},
		Timestamp: time.Now(),
	})
}

// CommitCourse adds or edits a course in the working copy
// @Summary Commit a course
// @Description Validates and applies a course draft. An empty id adds a course; a non-empty id edits the matching one.
// @Tags planner
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Plan ID"
// @Param request body dto.CourseRequest true "Course draft"
// @Success 200 {object} dto.APIResponse{data=models.Course} "Course committed"
// @Failure 400 {object} dto.ErrorResponse "Course validation failed"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "No open session, or course not found"
// @Router /plans/{id}/session/courses [put]
func (c *PlannerController) CommitCourse(ctx *gin.Context) {
	var req dto.CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid course data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	course, err := c.plannerService.CommitCourse(ctx, middleware.CurrentUserID(ctx), ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      course,
		Timestamp: time.Now(),
	})
}

// DeleteCourse removes a course immediately
// @Summary Delete a course
// @Description Removes the course from the store and the working copy
// @Tags planner
// @Produce json
// @Security BearerAuth
// @Param id path string true "Plan ID"
// @Param courseId path string true "Course ID"
// @Success 204 "Course deleted"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "No open session, or course not found"
// @Failure 502 {object} dto.ErrorResponse "Store unavailable"
// @Router /plans/{id}/session/courses/{courseId} [delete]
func (c *PlannerController) DeleteCourse(ctx *gin.Context) {
	err := c.plannerService.DeleteCourse(ctx, middleware.CurrentUserID(ctx), ctx.Param("id"), ctx.Param("courseId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// AddNote appends a note to the working copy
// @Summary Add a note
// @Description Appends a trimmed, non-empty note to the plan's note list
// @Tags planner
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Plan ID"
// @Param request body dto.NoteRequest true "Note text"
// @Success 204 "Note added"
// @Failure 400 {object} dto.ErrorResponse "Note is empty"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "No open session for this plan"
// @Router /plans/{id}/session/notes [post]
func (c *PlannerController) AddNote(ctx *gin.Context) {
	var req dto.NoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid note data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.plannerService.AddNote(ctx, middleware.CurrentUserID(ctx), ctx.Param("id"), req.Note); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// RemoveNote deletes a note by index
// @Summary Remove a note
// @Description Deletes the note at the given index. Out-of-range indexes are a no-op.
// @Tags planner
// @Produce json
// @Security BearerAuth
// @Param id path string true "Plan ID"
// @Param index path int true "Note index"
// @Success 204 "Note removed"
// @Failure 400 {object} dto.ErrorResponse "Invalid index"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "No open session for this plan"
// @Router /plans/{id}/session/notes/{index} [delete]
func (c *PlannerController) RemoveNote(ctx *gin.Context) {
	index, err := strconv.Atoi(ctx.Param("index"))
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid note index")
		errorDetail = errorDetail.WithDetails("Note index must be a number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.plannerService.RemoveNote(ctx, middleware.CurrentUserID(ctx), ctx.Param("id"), index); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// SetVisibility toggles the public flag on the working copy
// @Summary Set visibility in the session
// @Description Toggles the plan's public flag in the working copy; persisted on save
// @Tags planner
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Plan ID"
// @Param request body dto.VisibilityRequest true "Visibility flag"
// @Success 204 "Visibility updated"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "No open session for this plan"
// @Router /plans/{id}/session/visibility [put]
func (c *PlannerController) SetVisibility(ctx *gin.Context) {
	var req dto.VisibilityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid visibility data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.plannerService.SetVisibility(ctx, middleware.CurrentUserID(ctx), ctx.Param("id"), req.IsPublic); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Save persists the working copy
// @Summary Save the session
// @Description Writes the plan and its course collection to the store. On failure local edits are kept and the error is reported.
// @Tags planner
// @Produce json
// @Security BearerAuth
// @Param id path string true "Plan ID"
// @Success 200 {object} dto.APIResponse{data=planner.Snapshot} "Plan saved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "No open session for this plan"
// @Failure 409 {object} dto.ErrorResponse "A save is already in progress"
// @Failure 502 {object} dto.ErrorResponse "Store rejected the write, local edits kept"
// @Router /plans/{id}/session/save [post]
func (c *PlannerController) Save(ctx *gin.Context) {
	snapshot, err := c.plannerService.Save(ctx, middleware.CurrentUserID(ctx), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      snapshot,
		Timestamp: time.Now(),
	})
}

// CloseSession ends the editing session
// @Summary Close the session
// @Description Ends the editing session. Unsaved edits are discarded; in-flight saves are not cancelled.
// @Tags planner
// @Produce json
// @Security BearerAuth
// @Param id path string true "Plan ID"
// @Success 204 "Session closed"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "No open session for this plan"
// @Router /plans/{id}/session [delete]
func (c *PlannerController) CloseSession(ctx *gin.Context) {
	if err := c.plannerService.CloseSession(ctx, middleware.CurrentUserID(ctx), ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
