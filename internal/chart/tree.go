package chart

import (
	"strings"

	"github.com/ledgerline-dev/ledgerline/internal/model"
)

// Node is an account plus its resolved children. A node exclusively owns
// its Children slice.
type Node struct {
	model.Account
	Children []*Node
}

// FlatAccount is an account annotated with its distance from a root, used
// by callers for display indentation.
type FlatAccount struct {
	model.Account
	Depth int
}

// Build resolves parent links into a forest, preserving input order among
// siblings. Accounts whose ParentID does not resolve are treated as roots;
// their IDs are returned so callers can warn without failing the build.
func Build(accounts []model.Account) (roots []*Node, orphans []int) {
	byID := make(map[int]*Node, len(accounts))
	for i := range accounts {
		byID[accounts[i].ID] = &Node{Account: accounts[i]}
	}

	for i := range accounts {
		n := byID[accounts[i].ID]
		if n.ParentID == 0 {
			roots = append(roots, n)
			continue
		}
		parent, ok := byID[n.ParentID]
		if !ok || n.ParentID == n.ID {
			orphans = append(orphans, n.ID)
			roots = append(roots, n)
			continue
		}
		parent.Children = append(parent.Children, n)
	}
	return roots, orphans
}

// Flatten walks the forest depth-first, emitting a node's children only when
// its ID is present in expanded. Depth counts from 0 at the roots.
func Flatten(roots []*Node, expanded map[int]bool) []FlatAccount {
	var out []FlatAccount
	var walk func(n *Node, depth int)
	walk = func(n *Node, depth int) {
		out = append(out, FlatAccount{Account: n.Account, Depth: depth})
		if !expanded[n.ID] {
			return
		}
		for _, c := range n.Children {
			walk(c, depth+1)
		}
	}
	for _, r := range roots {
		walk(r, 0)
	}
	return out
}

// FlattenAll walks the forest depth-first ignoring expansion state. This is
// the form reconciliation and parent pickers use.
func FlattenAll(roots []*Node) []model.Account {
	var out []model.Account
	var walk func(n *Node)
	walk = func(n *Node) {
		out = append(out, n.Account)
		for _, c := range n.Children {
			walk(c)
		}
	}
	for _, r := range roots {
		walk(r)
	}
	return out
}

// Search matches name, code, and description case-insensitively, returning
// every hit plus every transitive ancestor of a hit so the hierarchy path to
// a match is never broken. Results are in tree order, each account once.
func Search(roots []*Node, term string) []model.Account {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil
	}

	keep := make(map[int]bool)
	var mark func(n *Node) bool
	mark = func(n *Node) bool {
		hit := strings.Contains(strings.ToLower(n.Name), term) ||
			strings.Contains(strings.ToLower(n.Code), term) ||
			strings.Contains(strings.ToLower(n.Description), term)
		for _, c := range n.Children {
			if mark(c) {
				hit = true
			}
		}
		if hit {
			keep[n.ID] = true
		}
		return hit
	}
	for _, r := range roots {
		mark(r)
	}

	var out []model.Account
	var collect func(n *Node)
	collect = func(n *Node) {
		if keep[n.ID] {
			out = append(out, n.Account)
		}
		for _, c := range n.Children {
			collect(c)
		}
	}
	for _, r := range roots {
		collect(r)
	}
	return out
}

// WouldCycle reports whether assigning newParentID as accountID's parent
// would make the account its own ancestor.
func WouldCycle(accounts []model.Account, accountID, newParentID int) bool {
	if newParentID == 0 {
		return false
	}
	parents := make(map[int]int, len(accounts))
	for _, a := range accounts {
		parents[a.ID] = a.ParentID
	}

	for id := newParentID; id != 0; {
		if id == accountID {
			return true
		}
		next, ok := parents[id]
		if !ok || next == id {
			return false
		}
		id = next
	}
	return false
}

// CodeIndex builds a lowercased code -> id map over the flat account set.
func CodeIndex(accounts []model.Account) map[string]int {
	idx := make(map[string]int, len(accounts))
	for _, a := range accounts {
		idx[strings.ToLower(a.Code)] = a.ID
	}
	return idx
}
