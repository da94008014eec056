package style

import (
	"github.com/pterm/pterm"

	"github.com/arthur-debert/mydot/pkg/types"
)

// StatusStyle returns the pterm style for a reconciliation status
func StatusStyle(status types.ReconciliationStatus) *pterm.Style {
	switch status {
	case types.StatusInSync:
		return pterm.NewStyle(pterm.FgGreen)
	case types.StatusLinkMissing:
		return pterm.NewStyle(pterm.FgYellow)
	case types.StatusTargetNotLink, types.StatusLinkWrongTarget:
		return pterm.NewStyle(pterm.FgRed, pterm.Bold)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}

// OutcomeMark returns the indicator and its style for a sync outcome
func OutcomeMark(outcome types.SyncOutcome) (string, *pterm.Style) {
	switch outcome {
	case types.OutcomeLinked:
		return SuccessMark, pterm.NewStyle(pterm.FgGreen)
	case types.OutcomeUnchanged:
		return InfoMark, pterm.NewStyle(pterm.FgGray)
	case types.OutcomeWouldLink:
		return PendingMark, pterm.NewStyle(pterm.FgYellow)
	case types.OutcomeNeedsResolution:
		return WarningMark, pterm.NewStyle(pterm.FgYellow, pterm.Bold)
	default:
		return ErrorMark, pterm.NewStyle(pterm.FgRed, pterm.Bold)
	}
}
