package router

// searchItem is one entry in the router's open-set priority queue. Entries
// are pushed without removing superseded ones (lazy deletion, §4.D): a
// popped entry is checked against the authoritative gScore for its cell
// and discarded if stale.
type searchItem struct {
	idx    int
	gScore float64
}

// searchHeap is a container/heap min-heap keyed on gScore, mirroring the
// teacher's pcst.dijkstraHeap/eventHeap shape in pkg/reality/pcst/pcst.go.
type searchHeap []searchItem

func (h searchHeap) Len() int            { return len(h) }
func (h searchHeap) Less(i, j int) bool  { return h[i].gScore < h[j].gScore }
func (h searchHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }

func (h *searchHeap) Push(x any) {
	*h = append(*h, x.(searchItem))
}

func (h *searchHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
