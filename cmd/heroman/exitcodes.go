package main

// Exit codes for the CLI
const (
	ExitSuccess            = 0
	ExitGeneralError       = 1
	ExitConfigError        = 2
	ExitTaskNotFound       = 3
	ExitValidationFailed   = 4
	ExitStorageUnavailable = 5
)
