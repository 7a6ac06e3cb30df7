package standings

import "sort"

// Move is a team whose table position text changed between two snapshots.
type Move struct {
	Team string
	From string
	To   string
}

// CompareResult summarizes the difference between two snapshots of one competition.
type CompareResult struct {
	Added   []string // teams only in current
	Removed []string // teams only in previous
	Moves   []Move
	Delta   int // row count change
}

// Changed reports whether anything differs in team membership or positions.
func (r *CompareResult) Changed() bool {
	return len(r.Added) > 0 || len(r.Removed) > 0 || len(r.Moves) > 0
}

// Compare matches rows by TeamKey and reports additions, removals and position changes.
func Compare(previous, current *Snapshot) *CompareResult {
	result := &CompareResult{
		Added:   make([]string, 0),
		Removed: make([]string, 0),
		Moves:   make([]Move, 0),
		Delta:   current.Len() - previous.Len(),
	}

	prevByKey := make(map[string]Row)
	if previous != nil {
		for _, r := range previous.Rows {
			prevByKey[TeamKey(r.Team)] = r
		}
	}

	seen := make(map[string]bool)
	if current != nil {
		for _, r := range current.Rows {
			key := TeamKey(r.Team)
			seen[key] = true

			old, exists := prevByKey[key]
			if !exists {
				result.Added = append(result.Added, r.Team)
				continue
			}
			if old.Pos != r.Pos {
				result.Moves = append(result.Moves, Move{Team: r.Team, From: old.Pos, To: r.Pos})
			}
		}
	}

	if previous != nil {
		for _, r := range previous.Rows {
			if !seen[TeamKey(r.Team)] {
				result.Removed = append(result.Removed, r.Team)
			}
		}
	}

	// Sort for consistent output
	sort.Strings(result.Added)
	sort.Strings(result.Removed)
	sort.Slice(result.Moves, func(i, j int) bool {
		return result.Moves[i].Team < result.Moves[j].Team
	})

	return result
}
