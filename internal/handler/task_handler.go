package handler

import (
	"errors"
	"net/http"

	"taskboard/internal/board"
	"taskboard/internal/middleware"
	"taskboard/internal/model"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

type TaskHandler struct {
	evaluator board.Evaluator
}

func NewTaskHandler(evaluator board.Evaluator) *TaskHandler {
	return &TaskHandler{evaluator: evaluator}
}

// TaskRequest is the create-task form. Required fields are checked by the
// board so that the response can name every missing one.
type TaskRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"`
	Priority    string `json:"priority"`
	ShareWith   string `json:"share_with"`
}

// PositionRequest is a place on the board in column coordinates.
type PositionRequest struct {
	Category string `json:"category" binding:"required,category"`
	Index    *int   `json:"index" binding:"required"`
}

// MoveRequest reports a finished drag. A null destination means the card
// was dropped outside every column.
type MoveRequest struct {
	Source      PositionRequest  `json:"source"`
	Destination *PositionRequest `json:"destination"`
}

type TaskResponse struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	DueDate         string   `json:"due_date"`
	Priority        string   `json:"priority"`
	SharedWith      []string `json:"shared_with"`
	SharedWithLabel string   `json:"shared_with_label"`
	Category        string   `json:"category"`
	Overdue         bool     `json:"overdue"`
}

type ColumnResponse struct {
	Category string         `json:"category"`
	Title    string         `json:"title"`
	Tasks    []TaskResponse `json:"tasks"`
}

type BoardResponse struct {
	Today   string           `json:"today"`
	Columns []ColumnResponse `json:"columns"`
}

// Create adds a task to the NotStarted column of the caller's board.
func (h *TaskHandler) Create(c *gin.Context) {
	s, ok := middleware.CurrentSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	task, err := s.Board.CreateTask(board.TaskInput{
		Name:        req.Name,
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    req.Priority,
		ShareWith:   req.ShareWith,
	})
	if err != nil {
		var verr *board.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task", "fields": verr.Fields})
			return
		}
		log.WithError(err).WithField("username", s.Username).Error("❌ failed to create task")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}

	c.JSON(http.StatusCreated, h.taskResponse(task, h.evaluator.Today()))
}

// GetByID returns one task from the caller's board.
func (h *TaskHandler) GetByID(c *gin.Context) {
	s, ok := middleware.CurrentSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	task, found := s.Board.Snapshot().Find(c.Param("id"))
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}

	c.JSON(http.StatusOK, h.taskResponse(task, h.evaluator.Today()))
}

// Board returns the three columns in display order. The optional "today"
// query parameter overrides the date overdue flags are computed against.
func (h *TaskHandler) Board(c *gin.Context) {
	s, ok := middleware.CurrentSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	c.JSON(http.StatusOK, h.boardResponse(s.Board.Snapshot(), h.today(c)))
}

// Column returns a single category view.
func (h *TaskHandler) Column(c *gin.Context) {
	s, ok := middleware.CurrentSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	category, valid := model.ParseCategory(c.Param("category"))
	if !valid {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	c.JSON(http.StatusOK, h.columnResponse(s.Board.Snapshot(), category, h.today(c)))
}

// Move applies a drag-and-drop and returns the updated board.
func (h *TaskHandler) Move(c *gin.Context) {
	s, ok := middleware.CurrentSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var req MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	source := toLocation(req.Source)
	var dest *board.Location
	if req.Destination != nil {
		loc := toLocation(*req.Destination)
		dest = &loc
	}

	snapshot, err := s.Board.Move(source, dest)
	if err != nil {
		switch {
		case errors.Is(err, board.ErrIndexOutOfRange):
			log.WithError(err).WithField("username", s.Username).Warn("⚠️  move rejected")
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Source position is out of range"})
		case errors.Is(err, board.ErrInvalidCategory):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
		default:
			log.WithError(err).WithField("username", s.Username).Error("❌ failed to move task")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to move task"})
		}
		return
	}

	c.JSON(http.StatusOK, h.boardResponse(snapshot, h.today(c)))
}

func (h *TaskHandler) today(c *gin.Context) string {
	if today := c.Query("today"); today != "" {
		return today
	}
	return h.evaluator.Today()
}

func (h *TaskHandler) boardResponse(tasks board.Collection, today string) BoardResponse {
	resp := BoardResponse{Today: today}
	for _, category := range model.Categories() {
		resp.Columns = append(resp.Columns, h.columnResponse(tasks, category, today))
	}
	return resp
}

func (h *TaskHandler) columnResponse(tasks board.Collection, category model.Category, today string) ColumnResponse {
	column := ColumnResponse{
		Category: string(category),
		Title:    category.Title(),
		Tasks:    []TaskResponse{},
	}
	for task := range tasks.ByCategory(category) {
		column.Tasks = append(column.Tasks, h.taskResponse(task, today))
	}
	return column
}

func (h *TaskHandler) taskResponse(task model.Task, today string) TaskResponse {
	return TaskResponse{
		ID:              task.ID,
		Name:            task.Name,
		Description:     task.Description,
		DueDate:         task.DueDate,
		Priority:        string(task.Priority),
		SharedWith:      task.SharedWith,
		SharedWithLabel: task.SharedWithLabel(),
		Category:        string(task.Category),
		Overdue:         board.IsOverdue(task, today),
	}
}

// toLocation expects a request that already passed the category binding tag.
func toLocation(p PositionRequest) board.Location {
	category, _ := model.ParseCategory(p.Category)
	index := 0
	if p.Index != nil {
		index = *p.Index
	}
	return board.Location{Category: category, Index: index}
}
