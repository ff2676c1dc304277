package header

// typeGraph is the reference graph between record types.
type typeGraph struct {
	nodes []string // deterministic visit order
	edges map[string][]string
}

// findCycle returns one cycle of the graph as a closed path
// (["A", "B", "A"]), or nil for a DAG.
//
// It runs Tarjan's algorithm; any strongly connected component with more
// than one node, or a node referencing itself, is a cycle.
func findCycle(g typeGraph) []string {
	for _, scc := range tarjanSCC(g) {
		if len(scc) > 1 {
			return reconstructCyclePath(scc, g)
		}
		if hasSelfLoop(scc[0], g) {
			return []string{scc[0], scc[0]}
		}
	}
	return nil
}

func hasSelfLoop(node string, g typeGraph) bool {
	for _, next := range g.edges[node] {
		if next == node {
			return true
		}
	}
	return false
}

// tarjanSCC finds strongly connected components.
func tarjanSCC(g typeGraph) [][]string {
	var (
		index   = 0
		stack   []string
		indices = make(map[string]int)
		lowlink = make(map[string]int)
		onStack = make(map[string]bool)
		sccs    [][]string
	)

	var strongConnect func(string)
	strongConnect = func(v string) {
		indices[v] = index
		lowlink[v] = index
		index++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range g.edges[v] {
			if _, visited := indices[w]; !visited {
				strongConnect(w)
				lowlink[v] = min(lowlink[v], lowlink[w])
			} else if onStack[w] {
				lowlink[v] = min(lowlink[v], indices[w])
			}
		}

		if lowlink[v] == indices[v] {
			var scc []string
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				scc = append(scc, w)
				if w == v {
					break
				}
			}
			sccs = append(sccs, scc)
		}
	}

	for _, node := range g.nodes {
		if _, visited := indices[node]; !visited {
			strongConnect(node)
		}
	}

	return sccs
}

// reconstructCyclePath walks edges inside the SCC, starting from the member
// registered first, until it returns to the start.
func reconstructCyclePath(scc []string, g typeGraph) []string {
	members := make(map[string]bool, len(scc))
	for _, node := range scc {
		members[node] = true
	}

	start := scc[0]
	for _, node := range g.nodes {
		if members[node] {
			start = node
			break
		}
	}
	current := start
	path := []string{current}
	visited := map[string]bool{}

	for {
		visited[current] = true
		next := ""
		for _, neighbor := range g.edges[current] {
			if members[neighbor] && (!visited[neighbor] || neighbor == start) {
				next = neighbor
				break
			}
		}
		if next == "" {
			break
		}
		path = append(path, next)
		if next == start {
			break
		}
		current = next
	}

	return path
}
