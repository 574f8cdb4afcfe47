// Package ui is the terminal view of the playground, built with Bubble Tea.
//
// Layout, top to bottom:
//   - one SectionView per trigger (the category section carries the selector)
//   - the status line (spinner, last failure, last response metadata)
//   - the OutputView, which renders the last response as indented JSON
//
// Trigger activations never block Update: each one takes a sequence number
// from the playground session and returns a tea.Cmd that performs the request
// on its own goroutine. The completion comes back as a fetchDoneMsg and is
// settled on the UI goroutine.
package ui
