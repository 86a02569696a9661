package lottery

const maxPreallocatedEntrants = 1024

// Registry is the append-only list of entrants of the current round. The
// position of an identity in the list is its ticket index.
type Registry struct {
	entrants []string
	capacity uint64
}

// NewRegistry - creates an empty registry holding at most capacity entrants
func NewRegistry(capacity uint64) *Registry {
	r := &Registry{capacity: capacity}
	r.Clear()

	return r
}

// Append stores identity at the next free index and returns that index
func (r *Registry) Append(identity string) (uint64, error) {
	index := uint64(len(r.entrants))
	if index >= r.capacity {
		return 0, errRegistryFull
	}

	r.entrants = append(r.entrants, identity)

	return index, nil
}

func (r *Registry) At(index uint64) (string, error) {
	if index >= uint64(len(r.entrants)) {
		return "", errIndexOutOfRange
	}

	return r.entrants[index], nil
}

func (r *Registry) Len() uint64 {
	return uint64(len(r.entrants))
}

// Entrants returns a copy of the entrants in ticket order
func (r *Registry) Entrants() []string {
	res := make([]string, len(r.entrants))
	copy(res, r.entrants)

	return res
}

// IndicesOf returns the ticket indices owned by identity
func (r *Registry) IndicesOf(identity string) []uint64 {
	indices := make([]uint64, 0)
	for i, entrant := range r.entrants {
		if entrant == identity {
			indices = append(indices, uint64(i))
		}
	}

	return indices
}

// Clear drops every entrant. The backing array is released, not reused.
func (r *Registry) Clear() {
	prealloc := r.capacity
	if prealloc > maxPreallocatedEntrants {
		prealloc = maxPreallocatedEntrants
	}
	r.entrants = make([]string, 0, prealloc)
}
