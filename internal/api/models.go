package api

import "github.com/phrazzld/tasks-api/internal/domain"

// TaskResponse is the single-task representation returned by GET /api/tasks/{id}.
type TaskResponse struct {
	ID          int64   `json:"id"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// LegacyTaskResponse is the list-item representation returned by GET /tasks.
// The capitalized keys are part of the public contract.
type LegacyTaskResponse struct {
	ID          int64   `json:"ID"`
	Title       *string `json:"Title"`
	Description *string `json:"Description"`
}

// MessageResponse carries a human-readable outcome message.
type MessageResponse struct {
	Message string `json:"message"`
}

// StatusResponse acknowledges a preflight request.
type StatusResponse struct {
	Status string `json:"status"`
}

// Response messages.
const (
	SchemaReadyMessage  = "Table Created... Tasks API Ready"
	TaskNotFoundMessage = "Task not found"
	TaskUpdatedMessage  = "Task updated"
	TaskDeletedMessage  = "Task deleted"
)

func taskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
	}
}

func tasksToLegacyResponse(tasks []domain.Task) []LegacyTaskResponse {
	out := make([]LegacyTaskResponse, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, LegacyTaskResponse{
			ID:          task.ID,
			Title:       task.Title,
			Description: task.Description,
		})
	}
	return out
}
