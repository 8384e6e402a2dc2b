package changelog

import "fmt"

const (
	// StatusNotApplied means the change has no visible effect in the database.
	StatusNotApplied Status = iota + 1

	// StatusApplied means the database matches the change.
	StatusApplied

	// StatusAppliedDiffers means the change was applied but the database no
	// longer matches its configuration.
	StatusAppliedDiffers
)

type (
	// Status is the outcome of a change verification.
	Status int

	// ChangeStatus is the result of Change.CheckStatus.
	ChangeStatus struct {
		Status  Status
		Message string
	}
)

func (s Status) String() string {
	switch s {
	case StatusNotApplied:
		return "not applied"
	case StatusApplied:
		return "applied"
	case StatusAppliedDiffers:
		return "applied but differs"
	default:
		return "unknown"
	}
}

func (s ChangeStatus) String() string {
	if s.Message == "" {
		return s.Status.String()
	}

	return s.Status.String() + ": " + s.Message
}

func applied() ChangeStatus {
	return ChangeStatus{Status: StatusApplied}
}

func notApplied(format string, args ...any) ChangeStatus {
	return ChangeStatus{Status: StatusNotApplied, Message: fmt.Sprintf(format, args...)}
}

func appliedDiffers(format string, args ...any) ChangeStatus {
	return ChangeStatus{Status: StatusAppliedDiffers, Message: fmt.Sprintf(format, args...)}
}
