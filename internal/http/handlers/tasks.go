package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"taskboard/internal/domain"
	"taskboard/internal/http/middleware"
	"taskboard/internal/logger"
	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
)

const searchParam = "search-area"

// TaskList renders the current user's tasks, optionally filtered by title prefix.
func (h *Handler) TaskList(c *gin.Context) {
	user := middleware.CurrentUser(c)
	search := c.Query(searchParam)

	view, err := h.Tasks.List(c.Request.Context(), user, search)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.HTML(http.StatusOK, "task_list.tmpl", gin.H{
		"PageTitle": "Tasks",
		"View":      view,
	})
}

func (h *Handler) TaskDetail(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	task, err := h.Tasks.Detail(c.Request.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.HTML(http.StatusOK, "task_detail.tmpl", gin.H{
		"PageTitle": task.Title,
		"Task":      task,
	})
}

func (h *Handler) TaskCreateForm(c *gin.Context) {
	renderTaskForm(c, http.StatusOK, "/task-create/", service.TaskInput{}, nil)
}

func (h *Handler) TaskCreate(c *gin.Context) {
	var form taskForm
	if err := c.ShouldBind(&form); err != nil {
		renderTaskForm(c, http.StatusOK, "/task-create/", form.input(), fieldErrors(err))
		return
	}

	in := form.input()
	task, err := h.Tasks.Create(c.Request.Context(), middleware.CurrentUser(c), in)
	if err != nil {
		if h.formError(c, err, "/task-create/", in) {
			return
		}
		h.fail(c, err)
		return
	}

	logger.WithContext(c.Request.Context()).Info("task created", "task_id", task.ID)
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) TaskUpdateForm(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	task, err := h.Tasks.Detail(c.Request.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	in := service.TaskInput{Title: task.Title, Description: task.Description, Complete: task.Complete}
	renderTaskForm(c, http.StatusOK, updatePath(id), in, nil)
}

func (h *Handler) TaskUpdate(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	user := middleware.CurrentUser(c)
	ctx := c.Request.Context()

	var form taskForm
	if err := c.ShouldBind(&form); err != nil {
		// don't reveal through field errors that someone else's task exists
		if _, err := h.Tasks.Detail(ctx, user, id); err != nil {
			h.fail(c, err)
			return
		}
		renderTaskForm(c, http.StatusOK, updatePath(id), form.input(), fieldErrors(err))
		return
	}

	in := form.input()
	if _, err := h.Tasks.Update(ctx, user, id, in); err != nil {
		if h.formError(c, err, updatePath(id), in) {
			return
		}
		h.fail(c, err)
		return
	}

	logger.WithContext(ctx).Info("task updated", "task_id", id)
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) TaskDeleteConfirm(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	task, err := h.Tasks.ConfirmDelete(c.Request.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.HTML(http.StatusOK, "task_confirm_delete.tmpl", gin.H{
		"PageTitle": "Delete task",
		"Task":      task,
	})
}

func (h *Handler) TaskDelete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	ctx := c.Request.Context()
	if err := h.Tasks.Delete(ctx, middleware.CurrentUser(c), id); err != nil {
		h.fail(c, err)
		return
	}

	logger.WithContext(ctx).Info("task deleted", "task_id", id)
	c.Redirect(http.StatusFound, "/")
}

// formError re-renders the task form when err is a validation error.
func (h *Handler) formError(c *gin.Context, err error, action string, in service.TaskInput) bool {
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		return false
	}
	renderTaskForm(c, http.StatusOK, action, in, ve.Fields)
	return true
}

func renderTaskForm(c *gin.Context, status int, action string, in service.TaskInput, errs map[string]string) {
	if errs == nil {
		errs = map[string]string{}
	}
	c.HTML(status, "task_form.tmpl", gin.H{
		"PageTitle": "Task",
		"Action":    action,
		"Form":      in,
		"Errors":    errs,
	})
}

func updatePath(id int64) string {
	return "/task-update/" + strconv.FormatInt(id, 10) + "/"
}
