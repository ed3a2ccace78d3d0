package handlers

import (
	"context"
	"strconv"
	"strings"
	"time"

	"gradi/server/internal/database"
	"gradi/server/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

// CreateTaskRequest represents create task request body
type CreateTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Subject     string     `json:"subject"`
	Type        string     `json:"type"`
	Price       float64    `json:"price"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	FileURL     *string    `json:"fileUrl,omitempty"`
	FileName    *string    `json:"fileName,omitempty"`
}

// UpdateTaskStatusRequest represents task status change request body
type UpdateTaskStatusRequest struct {
	Status string `json:"status"`
}

// GetTasks returns marketplace tasks, newest first, with optional
// subject/type/status filters
func GetTasks(c *fiber.Ctx) error {
	page, limit := pagination(c)

	query := `
		SELECT t.id, t.user_id, t.title, t.description, t.subject, t.type, t.price,
		       t.due_date, t.status, t.file_url, t.file_name, t.created_at,
		       pr.id, pr.username, pr.full_name, pr.avatar_url
		FROM tasks t
		INNER JOIN profiles pr ON t.user_id = pr.id
		WHERE 1=1
	`
	args := []interface{}{}
	argCount := 1

	if subject := c.Query("subject"); subject != "" {
		query += " AND t.subject = $" + strconv.Itoa(argCount)
		args = append(args, subject)
		argCount++
	}

	if taskType := c.Query("type"); taskType != "" {
		if !models.TaskType(taskType).Valid() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"error":   "Invalid task type filter",
			})
		}
		query += " AND t.type = $" + strconv.Itoa(argCount)
		args = append(args, taskType)
		argCount++
	}

	if status := c.Query("status"); status != "" {
		if !models.TaskStatus(status).Valid() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"error":   "Invalid task status filter",
			})
		}
		query += " AND t.status = $" + strconv.Itoa(argCount)
		args = append(args, status)
		argCount++
	}

	query += " ORDER BY t.created_at DESC LIMIT $" + strconv.Itoa(argCount) + " OFFSET $" + strconv.Itoa(argCount+1)
	args = append(args, limit, (page-1)*limit)

	rows, err := database.Pool.Query(context.Background(), query, args...)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Database error",
		})
	}
	defer rows.Close()

	var tasks []models.TaskView

	for rows.Next() {
		var tv models.TaskView
		err := rows.Scan(&tv.ID, &tv.UserID, &tv.Title, &tv.Description, &tv.Subject, &tv.Type,
			&tv.Price, &tv.DueDate, &tv.Status, &tv.FileURL, &tv.FileName, &tv.CreatedAt,
			&tv.Author.ID, &tv.Author.Username, &tv.Author.FullName, &tv.Author.AvatarURL)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"error":   "Database error",
			})
		}
		tasks = append(tasks, tv)
	}

	if tasks == nil {
		tasks = []models.TaskView{}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    tasks,
		"pagination": fiber.Map{
			"page":  page,
			"limit": limit,
		},
	})
}

// GetTaskDetails returns one task with its author profile
func GetTaskDetails(c *fiber.Ctx) error {
	taskID := c.Params("taskId")

	var tv models.TaskView
	err := database.Pool.QueryRow(context.Background(), `
		SELECT t.id, t.user_id, t.title, t.description, t.subject, t.type, t.price,
		       t.due_date, t.status, t.file_url, t.file_name, t.created_at,
		       pr.id, pr.username, pr.full_name, pr.avatar_url
		FROM tasks t
		INNER JOIN profiles pr ON t.user_id = pr.id
		WHERE t.id = $1
	`, taskID).Scan(&tv.ID, &tv.UserID, &tv.Title, &tv.Description, &tv.Subject, &tv.Type,
		&tv.Price, &tv.DueDate, &tv.Status, &tv.FileURL, &tv.FileName, &tv.CreatedAt,
		&tv.Author.ID, &tv.Author.Username, &tv.Author.FullName, &tv.Author.AvatarURL)

	if err == pgx.ErrNoRows {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "Task not found",
		})
	}

	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Database error",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    tv,
	})
}

// CreateTask creates a marketplace task
func CreateTask(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)

	var req CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Description) == "" || strings.TrimSpace(req.Subject) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Title, description, and subject are required",
		})
	}

	if !models.TaskType(req.Type).Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Task type must be 'request' or 'offer'",
		})
	}

	if req.Price < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Price cannot be negative",
		})
	}

	var task models.Task
	err := database.Pool.QueryRow(context.Background(), `
		INSERT INTO tasks (id, user_id, title, description, subject, type, price, due_date, status, file_url, file_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 'open', $9, $10, $11)
		RETURNING id, user_id, title, description, subject, type, price, due_date, status, file_url, file_name, created_at
	`, newID(), userID, req.Title, req.Description, req.Subject, req.Type, req.Price,
		req.DueDate, req.FileURL, req.FileName, time.Now()).
		Scan(&task.ID, &task.UserID, &task.Title, &task.Description, &task.Subject, &task.Type,
			&task.Price, &task.DueDate, &task.Status, &task.FileURL, &task.FileName, &task.CreatedAt)

	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to create task",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    task,
	})
}

// UpdateTaskStatus changes a task's lifecycle state; author only
func UpdateTaskStatus(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)
	taskID := c.Params("taskId")

	var req UpdateTaskStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	if !models.TaskStatus(req.Status).Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid task status",
		})
	}

	var task models.Task
	err := database.Pool.QueryRow(context.Background(), `
		UPDATE tasks SET status = $1
		WHERE id = $2 AND user_id = $3
		RETURNING id, user_id, title, description, subject, type, price, due_date, status, file_url, file_name, created_at
	`, req.Status, taskID, userID).
		Scan(&task.ID, &task.UserID, &task.Title, &task.Description, &task.Subject, &task.Type,
			&task.Price, &task.DueDate, &task.Status, &task.FileURL, &task.FileName, &task.CreatedAt)

	if err == pgx.ErrNoRows {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "Task not found or not yours",
		})
	}

	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to update task",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    task,
	})
}

// DeleteTask removes a task; author only
func DeleteTask(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)
	taskID := c.Params("taskId")

	tag, err := database.Pool.Exec(context.Background(),
		"DELETE FROM tasks WHERE id = $1 AND user_id = $2", taskID, userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to delete task",
		})
	}

	if tag.RowsAffected() == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "Task not found or not yours",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Task deleted",
	})
}
