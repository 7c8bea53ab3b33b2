package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskboard/internal/adapter/http/dto"
	"taskboard/internal/adapter/http/mapper"
	"taskboard/internal/adapter/http/middleware"
	"taskboard/internal/adapter/http/validation"
	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
	"taskboard/pkg/apierrors"
	"taskboard/pkg/translator"
)

type TaskHandler struct {
	taskService ports.TaskService
	now         func() time.Time
}

func NewTaskHandler(taskService ports.TaskService, now func() time.Time) *TaskHandler {
	if now == nil {
		now = time.Now
	}
	return &TaskHandler{taskService: taskService, now: now}
}

func (h *TaskHandler) today() time.Time {
	return domain.DateOf(h.now().UTC())
}

func (h *TaskHandler) ListTasks(c *gin.Context) {
	lang := middleware.GetLang(c)
	user, _ := middleware.CurrentUser(c)

	filters := domain.TaskFilters{
		Status:    c.Query("status"),
		DueDate:   c.Query("due_date"),
		Overdue:   c.Query("overdue"),
		Priority:  c.Query("priority"),
		Search:    c.Query("search"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
		Page:      c.Query("page"),
		PerPage:   c.Query("per_page"),
	}

	page, err := h.taskService.ListTasks(c.Request.Context(), user.ID, filters)
	if err != nil {
		zap.L().Error("failed to list tasks", zap.Uint64("user_id", user.ID), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailListTask, lang),
		)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskListResponse(page, h.now().UTC()))
}

func (h *TaskHandler) GetTask(c *gin.Context) {
	lang := middleware.GetLang(c)
	user, _ := middleware.CurrentUser(c)

	taskID, ok := parseTaskID(c, lang)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(c.Request.Context(), user.ID, taskID)
	if err != nil {
		respondTaskError(c, err, lang, taskID, apierrors.MsgFailShowTask, "failed to show task")
		return
	}

	c.JSON(http.StatusOK, dto.TaskResponse{Data: mapper.ToTaskItem(task, h.now().UTC())})
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	lang := middleware.GetLang(c)
	user, _ := middleware.CurrentUser(c)

	var req dto.CreateTaskRequest
	if _, ok := decodeBody(c, &req, lang); !ok {
		return
	}

	input, err := validation.BuildCreateTaskInput(req, h.today())
	if err != nil {
		respondValidationError(c, err, lang)
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), user.ID, input)
	if err != nil {
		zap.L().Error("failed to create task", zap.Uint64("user_id", user.ID), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailCreateTask, lang),
		)
		return
	}

	c.JSON(http.StatusCreated, dto.TaskMessageResponse{
		Message: translator.Localize(lang, apierrors.MsgTaskCreated, nil),
		Data:    mapper.ToTaskItem(task, h.now().UTC()),
	})
}

// UpdateTask serves both PUT and PATCH; either way only supplied fields change.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	lang := middleware.GetLang(c)
	user, _ := middleware.CurrentUser(c)

	taskID, ok := parseTaskID(c, lang)
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	raw, ok := decodeBody(c, &req, lang)
	if !ok {
		return
	}

	input, err := validation.BuildUpdateTaskInput(req, raw, h.today())
	if err != nil {
		respondValidationError(c, err, lang)
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), user.ID, taskID, input)
	if err != nil {
		respondTaskError(c, err, lang, taskID, apierrors.MsgFailUpdateTask, "failed to update task")
		return
	}

	c.JSON(http.StatusOK, dto.TaskMessageResponse{
		Message: translator.Localize(lang, apierrors.MsgTaskUpdated, nil),
		Data:    mapper.ToTaskItem(task, h.now().UTC()),
	})
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	lang := middleware.GetLang(c)
	user, _ := middleware.CurrentUser(c)

	taskID, ok := parseTaskID(c, lang)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), user.ID, taskID); err != nil {
		respondTaskError(c, err, lang, taskID, apierrors.MsgFailDeleteTask, "failed to delete task")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *TaskHandler) Statistics(c *gin.Context) {
	lang := middleware.GetLang(c)
	user, _ := middleware.CurrentUser(c)

	stats, err := h.taskService.Statistics(c.Request.Context(), user.ID)
	if err != nil {
		zap.L().Error("failed to compute task statistics", zap.Uint64("user_id", user.ID), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, apierrors.MsgFailStatistics, lang),
		)
		return
	}

	c.JSON(http.StatusOK, dto.TaskStatisticsResponse{Data: mapper.ToTaskStatistics(stats)})
}

func parseTaskID(c *gin.Context, lang string) (uint64, bool) {
	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || taskID == 0 {
		c.JSON(
			http.StatusBadRequest,
			apierrors.CreateError(http.StatusBadRequest, apierrors.MsgInvalidTaskID, lang),
		)
		return 0, false
	}
	return taskID, true
}

func respondTaskError(c *gin.Context, err error, lang string, taskID uint64, failMsg, logMsg string) {
	switch {
	case errors.Is(err, domain.ErrTaskNotFound):
		c.JSON(
			http.StatusNotFound,
			apierrors.CreateError(http.StatusNotFound, apierrors.MsgTaskNotFound, lang),
		)
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(
			http.StatusForbidden,
			apierrors.CreateError(http.StatusForbidden, apierrors.MsgForbidden, lang),
		)
	default:
		zap.L().Error(logMsg, zap.Uint64("task_id", taskID), zap.Error(err))
		c.JSON(
			http.StatusInternalServerError,
			apierrors.CreateError(http.StatusInternalServerError, failMsg, lang),
		)
	}
}
