package cmd

import (
	"fmt"
	"strings"
)

// PublishGateError signals that an action requiring every known-scope domain
// to pass was refused.
type PublishGateError struct {
	Action string
	Failed []string
}

func (e *PublishGateError) Error() string {
	action := e.Action
	if action == "" {
		action = "publish"
	}
	if len(e.Failed) == 0 {
		return fmt.Sprintf("%s refused: no known-scope domains passed", action)
	}
	return fmt.Sprintf("%s refused: %d known-scope domain(s) failed: %s",
		action, len(e.Failed), strings.Join(e.Failed, ", "))
}

// IncompleteReportError indicates the run was interrupted before every domain finished.
type IncompleteReportError struct {
	Submitted int
	Collected int
}

func (e *IncompleteReportError) Error() string {
	return fmt.Sprintf("probe interrupted: %d of %d domains finished, report is partial", e.Collected, e.Submitted)
}
