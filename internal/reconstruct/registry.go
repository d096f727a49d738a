package reconstruct

import "fmt"

// Registry maps participants to the indices of the tracks they own. The last
// index of a participant is its open track. Indices are handed out in order
// and never reused.
type Registry struct {
	indices map[string][]int
	next    int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{indices: make(map[string][]int)}
}

// CurrentIndex returns the index of the participant's open track, allocating
// one if the participant has not been seen before.
func (r *Registry) CurrentIndex(participant string) int {
	list, ok := r.indices[participant]
	if !ok {
		list = []int{r.allocate()}
		r.indices[participant] = list
	}
	return list[len(list)-1]
}

// OpenNewTrack allocates a new index for a participant that already owns a
// track and makes it the open one. Calling it for an unknown participant is a
// bookkeeping bug and panics.
func (r *Registry) OpenNewTrack(participant string) int {
	list, ok := r.indices[participant]
	if !ok {
		panic(fmt.Sprintf("reconstruct: OpenNewTrack for unknown participant %q", participant))
	}
	idx := r.allocate()
	r.indices[participant] = append(list, idx)
	return idx
}

// Indices returns a copy of the participant's track indices in allocation order.
func (r *Registry) Indices(participant string) []int {
	list := r.indices[participant]
	out := make([]int, len(list))
	copy(out, list)
	return out
}

// Len returns the number of indices allocated so far.
func (r *Registry) Len() int {
	return r.next
}

func (r *Registry) allocate() int {
	idx := r.next
	r.next++
	return idx
}
