package domain

import "sort"

// Graph is the dependency view of one task batch: edges run from a task to
// its prerequisites. Rebuilt per request and discarded after scoring.
type Graph struct {
	deps     map[int][]int
	blocking map[int]int
	order    []int
	selfDep  map[int]bool
}

// NewGraph builds the adjacency view from the batch. Dependency IDs that do
// not name a task in the batch are ignored, and duplicate entries within one
// task's dependency list count once.
func NewGraph(tasks []Task) *Graph {
	g := &Graph{
		deps:     make(map[int][]int, len(tasks)),
		blocking: make(map[int]int),
		order:    make([]int, 0, len(tasks)),
		selfDep:  make(map[int]bool),
	}

	present := make(map[int]bool, len(tasks))
	for _, t := range tasks {
		present[t.ID] = true
		g.order = append(g.order, t.ID)
	}

	for _, t := range tasks {
		seen := make(map[int]bool, len(t.Dependencies))
		for _, dep := range t.Dependencies {
			if !present[dep] || seen[dep] {
				continue
			}
			seen[dep] = true
			g.deps[t.ID] = append(g.deps[t.ID], dep)
			if dep == t.ID {
				g.selfDep[t.ID] = true
			} else {
				// A task never counts toward its own blocking count.
				g.blocking[dep]++
			}
		}
	}

	return g
}

// BlockingCount returns how many other tasks list id as a prerequisite.
func (g *Graph) BlockingCount(id int) int {
	return g.blocking[id]
}

// CycleParticipants returns the sorted IDs of every task that sits on at
// least one dependency cycle. A self-dependency is a cycle of length one.
//
// The traversal is an iterative depth-first search with on-stack tracking
// (Tarjan's strongly connected components): a component with more than one
// member, or a single member that depends on itself, is a cycle. O(V+E).
func (g *Graph) CycleParticipants() []int {
	index := make(map[int]int, len(g.order))
	lowlink := make(map[int]int, len(g.order))
	onStack := make(map[int]bool, len(g.order))
	var componentStack []int
	next := 0

	inCycle := make(map[int]bool)

	type frame struct {
		id    int
		child int
	}

	for _, start := range g.order {
		if _, visited := index[start]; visited {
			continue
		}

		index[start], lowlink[start] = next, next
		next++
		componentStack = append(componentStack, start)
		onStack[start] = true
		callStack := []frame{{id: start}}

		for len(callStack) > 0 {
			f := &callStack[len(callStack)-1]
			deps := g.deps[f.id]

			if f.child < len(deps) {
				w := deps[f.child]
				f.child++
				if _, visited := index[w]; !visited {
					index[w], lowlink[w] = next, next
					next++
					componentStack = append(componentStack, w)
					onStack[w] = true
					callStack = append(callStack, frame{id: w})
				} else if onStack[w] && index[w] < lowlink[f.id] {
					lowlink[f.id] = index[w]
				}
				continue
			}

			v := f.id
			callStack = callStack[:len(callStack)-1]
			if len(callStack) > 0 {
				parent := &callStack[len(callStack)-1]
				if lowlink[v] < lowlink[parent.id] {
					lowlink[parent.id] = lowlink[v]
				}
			}

			if lowlink[v] != index[v] {
				continue
			}
			// v roots a strongly connected component.
			var component []int
			for {
				w := componentStack[len(componentStack)-1]
				componentStack = componentStack[:len(componentStack)-1]
				onStack[w] = false
				component = append(component, w)
				if w == v {
					break
				}
			}
			if len(component) > 1 || g.selfDep[component[0]] {
				for _, id := range component {
					inCycle[id] = true
				}
			}
		}
	}

	if len(inCycle) == 0 {
		return nil
	}
	ids := make([]int, 0, len(inCycle))
	for id := range inCycle {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
