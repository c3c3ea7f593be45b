package engine

import "github.com/ripplr-app/backend/internal/models"

// workItem is one pending emission in the thread walk
type workItem struct {
	id    string
	depth int
}

// ReconstructThread orders a flat set of replies (all sharing one
// thread root) for nested display and annotates each with its depth.
// Direct replies to the root (empty ReplyingTo) are depth 0; a reply
// appears immediately after the reply it addresses, one level deeper.
// Sibling order follows position in the input, so callers control
// grouping by pre-sorting (typically reverse-chronological).
//
// The walk is an explicit work-list rather than recursion, so a deep
// or malicious thread cannot exhaust the stack. A reply whose
// ReplyingTo is its own id is treated as a root: it appears exactly
// once and the cyclic edge is never descended. Larger reference
// cycles make every member unreachable from a root and they are
// omitted, as is any reply whose ReplyingTo does not resolve within
// the input set.
func ReconstructThread(replies []models.Post) []models.ThreadEntry {
	byID := make(map[string]*models.Post, len(replies))
	children := make(map[string][]string)
	var roots []string

	for i := range replies {
		id := replies[i].ID.Hex()
		byID[id] = &replies[i]
	}
	for i := range replies {
		id := replies[i].ID.Hex()
		parent := replies[i].ReplyingTo
		if parent == "" || parent == id {
			roots = append(roots, id)
			continue
		}
		children[parent] = append(children[parent], id)
	}

	visited := make(map[string]bool, len(replies))
	entries := make([]models.ThreadEntry, 0, len(replies))

	// Roots pushed in reverse so the stack pops them in input order,
	// each full subtree before the next sibling.
	stack := make([]workItem, 0, len(replies))
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, workItem{id: roots[i], depth: 0})
	}

	for len(stack) > 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[item.id] {
			continue
		}
		visited[item.id] = true

		entries = append(entries, models.ThreadEntry{Post: *byID[item.id], Depth: item.depth})

		kids := children[item.id]
		for i := len(kids) - 1; i >= 0; i-- {
			if kids[i] == item.id {
				continue
			}
			stack = append(stack, workItem{id: kids[i], depth: item.depth + 1})
		}
	}
	return entries
}
