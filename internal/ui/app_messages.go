package ui

import (
	"codyplay/internal/api"
	"codyplay/internal/playground"
)

// RunMsg activates the trigger for Op. Keys 1-3 and SPC r n are bound to it.
type RunMsg struct {
	Op api.Operation
}

// CycleCategoryMsg moves the category selection by Delta (+1 next, -1 previous).
type CycleCategoryMsg struct {
	Delta int
}

// ShowFailureMsg opens the modal with the full text of the last failure.
type ShowFailureMsg struct{}

// DismissModalMsg closes the open modal.
type DismissModalMsg struct{}

// fetchDoneMsg carries one completed (or failed) activation back to Update.
type fetchDoneMsg struct {
	Activation playground.Activation
	Result     *api.Result
	Err        error
}
