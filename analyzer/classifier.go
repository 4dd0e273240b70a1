package analyzer

import "github.com/penwyp/quickmit/collector"

// ChangeSet buckets changed file paths by their git status code.
// Buckets are mutually exclusive: one path lands in exactly one of them,
// and within a bucket the collector's reporting order is preserved.
type ChangeSet struct {
	Added    []string `json:"added"`
	Modified []string `json:"modified"`
	Deleted  []string `json:"deleted"`
	Renamed  []string `json:"renamed"`
}

// Classify routes each change into its bucket by status code:
// A added, M modified, D deleted, R renamed. Unknown codes (copies,
// unmerged entries and anything else git may report) are dropped
// silently rather than treated as an error.
func Classify(changes []collector.FileChange) ChangeSet {
	cs := ChangeSet{
		Added:    []string{},
		Modified: []string{},
		Deleted:  []string{},
		Renamed:  []string{},
	}
	for _, fc := range changes {
		switch fc.Status {
		case 'A':
			cs.Added = append(cs.Added, fc.Path)
		case 'M':
			cs.Modified = append(cs.Modified, fc.Path)
		case 'D':
			cs.Deleted = append(cs.Deleted, fc.Path)
		case 'R':
			cs.Renamed = append(cs.Renamed, fc.Path)
		}
	}
	return cs
}

// Total returns the number of files across all buckets.
func (cs ChangeSet) Total() int {
	return len(cs.Added) + len(cs.Modified) + len(cs.Deleted) + len(cs.Renamed)
}

// SingleFile returns the path and true when exactly one file changed
// across all buckets.
func (cs ChangeSet) SingleFile() (string, bool) {
	if cs.Total() != 1 {
		return "", false
	}
	for _, bucket := range [][]string{cs.Added, cs.Modified, cs.Deleted, cs.Renamed} {
		if len(bucket) == 1 {
			return bucket[0], true
		}
	}
	return "", false
}
