package handler

const (
	errInternalServer     = "Internal server error"
	errDuplicateEmail     = "Email already in use"
	errInvalidCredentials = "Incorrect email or password"
	errTaskNotFound       = "No task found with that ID"
	errDuplicateTitle     = "Task with this title already exists"
	errTitleRequired      = "Title is required"
)
