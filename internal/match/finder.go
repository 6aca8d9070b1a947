// Package match locates runs of identical tiles and groups them for
// resolution. Scanning walks the flat cell array directly, following the
// row-major indexing convention a spatial grid index uses for its own cell
// storage.
package match

import (
	"match3core/internal/grid"
	"match3core/internal/poolutil"
)

// Group is a set of cells of one common tile type that form a connected
// match. Cells is owned by the caller of FindGroups; it is not pool-backed
// because groups outlive the scan that produced them (the match processor
// consumes them afterward).
type Group struct {
	Type  grid.TileType
	Cells []grid.Cell
}

// Finder locates match groups on a board. It owns pooled union-find scratch
// slices that are reused across calls; the scanned line lists, the group
// index map and the returned groups are still allocated on every call.
type Finder struct {
	parentPool *poolutil.Pool[int]
	rankPool   *poolutil.Pool[int]
	inRunPool  *poolutil.Pool[bool]
}

// NewFinder creates a Finder sized for boards up to roughly boardCells cells.
func NewFinder(boardCells int) *Finder {
	return &Finder{
		parentPool: poolutil.New[int](boardCells),
		rankPool:   poolutil.New[int](boardCells),
		inRunPool:  poolutil.New[bool](boardCells),
	}
}

// unionFind is scratch state for one FindGroups call, rented from the pools
// and released before the call returns.
type unionFind struct {
	parent []int
	rank   []int
}

func (u *unionFind) find(x int) int {
	for u.parent[x] != x {
		u.parent[x] = u.parent[u.parent[x]]
		x = u.parent[x]
	}
	return x
}

func (u *unionFind) union(a, b int) {
	ra, rb := u.find(a), u.find(b)
	if ra == rb {
		return
	}
	if u.rank[ra] < u.rank[rb] {
		ra, rb = rb, ra
	}
	u.parent[rb] = ra
	if u.rank[ra] == u.rank[rb] {
		u.rank[ra]++
	}
}

// FindGroups scans for horizontal and vertical runs of length >= 3 of
// identical, non-empty, non-suspended tiles, merging overlapping/
// intersecting runs into single groups via union-find over cell indices. If
// foci is non-empty, only the rows/columns passing through those cells are
// scanned.
func (f *Finder) FindGroups(state *grid.GameState, foci []grid.Cell) []Group {
	n := state.Width * state.Height
	uf := &unionFind{parent: f.parentPool.Get(), rank: f.rankPool.Get()}
	defer f.parentPool.Put(uf.parent)
	defer f.rankPool.Put(uf.rank)

	for i := 0; i < n; i++ {
		uf.parent = append(uf.parent, i)
		uf.rank = append(uf.rank, 0)
	}

	inRun := f.inRunPool.Get()
	defer f.inRunPool.Put(inRun)
	for i := 0; i < n; i++ {
		inRun = append(inRun, false)
	}

	rows, cols := focusedLines(state, foci)

	for _, y := range rows {
		markRuns(state, uf, inRun, 0, y, 1, 0, state.Width)
	}
	for _, x := range cols {
		markRuns(state, uf, inRun, x, 0, 0, 1, state.Height)
	}

	return collectGroups(state, uf, inRun, n)
}

// focusedLines returns the set of (row, col) indices to scan: every row and
// column when foci is empty, otherwise only those restricted to the lines
// passing through a focus cell.
func focusedLines(state *grid.GameState, foci []grid.Cell) (rows, cols []int) {
	if len(foci) == 0 {
		rows = make([]int, state.Height)
		for y := range rows {
			rows[y] = y
		}
		cols = make([]int, state.Width)
		for x := range cols {
			cols[x] = x
		}
		return rows, cols
	}

	seenRow := make(map[int]bool, len(foci))
	seenCol := make(map[int]bool, len(foci))
	for _, c := range foci {
		if !seenRow[c.Y] {
			seenRow[c.Y] = true
			rows = append(rows, c.Y)
		}
		if !seenCol[c.X] {
			seenCol[c.X] = true
			cols = append(cols, c.X)
		}
	}
	return rows, cols
}

// markRuns walks one line (row or column, determined by (dx, dy)) unioning
// together every run of length >= 3 of identical, eligible tiles.
func markRuns(state *grid.GameState, uf *unionFind, inRun []bool, startX, startY, dx, dy, length int) {
	runStart := 0
	runLen := 0
	var runType grid.TileType

	flush := func(endExclusive int) {
		if runLen < 3 {
			return
		}
		first := -1
		for i := runStart; i < endExclusive; i++ {
			x, y := startX+dx*i, startY+dy*i
			idx := state.Index(x, y)
			inRun[idx] = true
			if first == -1 {
				first = idx
			} else {
				uf.union(first, idx)
			}
		}
	}

	for i := 0; i < length; i++ {
		x, y := startX+dx*i, startY+dy*i
		t := state.Get(x, y)
		eligible := !t.IsEmpty() && !t.Suspended

		if eligible && runLen > 0 && t.Type == runType {
			runLen++
			continue
		}

		flush(i)

		if eligible {
			runStart, runLen, runType = i, 1, t.Type
		} else {
			runLen = 0
		}
	}
	flush(length)
}

func collectGroups(state *grid.GameState, uf *unionFind, inRun []bool, n int) []Group {
	groupIdx := make(map[int]int)
	var groups []Group

	for i := 0; i < n; i++ {
		if !inRun[i] {
			continue
		}
		root := uf.find(i)
		gi, ok := groupIdx[root]
		if !ok {
			gi = len(groups)
			groupIdx[root] = gi
			groups = append(groups, Group{Type: state.Get(state.CellOf(i).X, state.CellOf(i).Y).Type})
		}
		groups[gi].Cells = append(groups[gi].Cells, state.CellOf(i))
	}
	return groups
}

// HasMatches is a boolean fast path over the same detection semantics as
// FindGroups, without building group records.
func (f *Finder) HasMatches(state *grid.GameState) bool {
	return len(f.FindGroups(state, nil)) > 0
}

// HasMatchAt reports whether a match passes through cell c.
func (f *Finder) HasMatchAt(state *grid.GameState, c grid.Cell) bool {
	groups := f.FindGroups(state, []grid.Cell{c})
	for _, g := range groups {
		for _, gc := range g.Cells {
			if gc == c {
				return true
			}
		}
	}
	return false
}
