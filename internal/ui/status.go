package ui

import "github.com/nodebot-tools/setupcheck/internal/preflight"

// StatusStyler colours the status label of a report line. It implements
// preflight.LabelStyler.
type StatusStyler struct {
	styles Styles
}

// NewStatusStyler creates a styler; with noColor labels pass through as is.
func NewStatusStyler(noColor bool) *StatusStyler {
	return &StatusStyler{styles: GetStyles(noColor)}
}

// StyleLabel renders the padded label in the colour of its status.
// Padding happens before styling so columns stay aligned.
func (s *StatusStyler) StyleLabel(status preflight.CheckStatus, label string) string {
	switch status {
	case preflight.StatusOK:
		return s.styles.OK.Render(label)
	case preflight.StatusWarn:
		return s.styles.Warning.Render(label)
	case preflight.StatusError:
		return s.styles.Error.Render(label)
	default:
		return label
	}
}
