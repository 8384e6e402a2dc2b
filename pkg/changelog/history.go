package changelog

import (
	"time"

	"github.com/pseudomuto/changekit/pkg/checksum"
)

// RunStatus constants describe how a change set relates to the history.
const (
	// RunStatusNotRan means the change set has no history record. A change
	// set that was applied and then rolled back has its record removed and
	// is reported as not ran.
	RunStatusNotRan RunStatus = iota + 1

	// RunStatusAlreadyRan means the recorded checksum matches, or the record
	// predates checksums and should be refreshed with the current one.
	RunStatusAlreadyRan

	// RunStatusRunAgain means the checksum changed and the change set is
	// marked RunOnChange.
	RunStatusRunAgain

	// RunStatusChecksumMismatch means the change set was modified after it
	// was applied.
	RunStatusChecksumMismatch
)

type (
	// RanChangeSet is a row of the tracking table as read by an external
	// history reader.
	//
	// Example usage:
	//
	//	ran := &changelog.RanChangeSet{
	//		ID:         "create-users",
	//		Author:     "jane",
	//		FilePath:   "db/changelog.yaml",
	//		Checksum:   sum,
	//		ExecutedAt: time.Now(),
	//	}
	RanChangeSet struct {
		// ID, Author and FilePath identify the change set.
		ID       string
		Author   string
		FilePath string

		// Checksum is the stored checksum. The zero value means it was
		// cleared and must be recomputed.
		Checksum checksum.Checksum

		// ExecutedAt records when the change set was applied.
		ExecutedAt time.Time
	}

	// RunStatus is the result of History.RunStatus.
	RunStatus int

	// History answers whether change sets were applied, using the records of
	// the tracking table.
	//
	// This abstraction keeps the comparison of stored and current checksums
	// in one place so callers only deal with the resulting RunStatus.
	History struct {
		// ran indexes records by change set identity
		ran map[string]*RanChangeSet

		// ordered keeps the records in the order they were read
		ordered []*RanChangeSet
	}
)

func (s RunStatus) String() string {
	switch s {
	case RunStatusNotRan:
		return "not ran"
	case RunStatusAlreadyRan:
		return "already ran"
	case RunStatusRunAgain:
		return "run again"
	case RunStatusChecksumMismatch:
		return "checksum mismatch"
	default:
		return "unknown"
	}
}

// NewHistory creates a History from tracking table records. When the same
// identity appears twice the later record wins.
//
// Example usage:
//
//	history := changelog.NewHistory(records)
//
//	pending, err := history.Pending(changeSets)
//	if err != nil {
//		return err
//	}
//
//	for _, cs := range pending {
//		fmt.Printf("%s pending\n", cs.Identity())
//	}
func NewHistory(records []*RanChangeSet) *History {
	h := &History{
		ran:     make(map[string]*RanChangeSet, len(records)),
		ordered: make([]*RanChangeSet, 0, len(records)),
	}

	for _, r := range records {
		if r == nil {
			continue
		}

		h.ran[r.Identity()] = r
		h.ordered = append(h.ordered, r)
	}

	return h
}

// Identity returns "filePath::id::author", matching ChangeSet.Identity.
func (r *RanChangeSet) Identity() string {
	return r.FilePath + "::" + r.ID + "::" + r.Author
}

// Get returns the record for cs, or nil when it never ran.
func (h *History) Get(cs *ChangeSet) *RanChangeSet {
	return h.ran[cs.Identity()]
}

// Records returns every record in the order they were read.
func (h *History) Records() []*RanChangeSet {
	out := make([]*RanChangeSet, len(h.ordered))
	copy(out, h.ordered)
	return out
}

// RunStatus compares cs against its record. It fails only when the current
// checksum cannot be computed.
func (h *History) RunStatus(cs *ChangeSet) (RunStatus, error) {
	ran := h.Get(cs)
	if ran == nil {
		return RunStatusNotRan, nil
	}

	if needsChecksumUpdate(ran) {
		return RunStatusAlreadyRan, nil
	}

	current, err := cs.GenerateCheckSum()
	if err != nil {
		return 0, err
	}

	switch {
	case current.Equal(ran.Checksum):
		return RunStatusAlreadyRan, nil
	case cs.RunOnChange:
		return RunStatusRunAgain, nil
	default:
		return RunStatusChecksumMismatch, nil
	}
}

// Pending returns the change sets that still have to run, either because
// they never ran or because they run again on change. Order is preserved.
func (h *History) Pending(changeSets []*ChangeSet) ([]*ChangeSet, error) {
	return h.filter(changeSets, RunStatusNotRan, RunStatusRunAgain)
}

// Modified returns the applied change sets whose checksum no longer matches.
func (h *History) Modified(changeSets []*ChangeSet) ([]*ChangeSet, error) {
	return h.filter(changeSets, RunStatusChecksumMismatch)
}

// Stale returns the applied change sets whose stored checksum is missing or
// was computed with another checksum version. Their UpdateChecksumStatement
// refreshes the record.
func (h *History) Stale(changeSets []*ChangeSet) []*ChangeSet {
	var out []*ChangeSet
	for _, cs := range changeSets {
		if ran := h.Get(cs); ran != nil && needsChecksumUpdate(ran) {
			out = append(out, cs)
		}
	}

	return out
}

// Unknown returns the records that match none of changeSets, such as change
// sets removed from the changelog after they were applied.
func (h *History) Unknown(changeSets []*ChangeSet) []*RanChangeSet {
	known := make(map[string]struct{}, len(changeSets))
	for _, cs := range changeSets {
		known[cs.Identity()] = struct{}{}
	}

	var out []*RanChangeSet
	for _, r := range h.ordered {
		if _, ok := known[r.Identity()]; !ok {
			out = append(out, r)
		}
	}

	return out
}

func (h *History) filter(changeSets []*ChangeSet, statuses ...RunStatus) ([]*ChangeSet, error) {
	var out []*ChangeSet
	for _, cs := range changeSets {
		status, err := h.RunStatus(cs)
		if err != nil {
			return nil, err
		}

		for _, s := range statuses {
			if status == s {
				out = append(out, cs)
				break
			}
		}
	}

	return out, nil
}

func needsChecksumUpdate(r *RanChangeSet) bool {
	return r.Checksum.IsZero() || r.Checksum.Version != checksum.Version
}
