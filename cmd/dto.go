package cmd

import "github.com/josephgoksu/tasktracker/models"

// statusResponse is the --json shape of the status report.
type statusResponse struct {
	models.Progress
	Pending []models.Task `json:"pending"`
}

// addResponse is the --json shape of the add command.
type addResponse struct {
	Added bool        `json:"added"`
	Task  models.Task `json:"task"`
}

// doneResponse is the --json shape of the done command.
type doneResponse struct {
	ID        string `json:"id"`
	Completed bool   `json:"completed"`
}
