package partitions

import (
	"fmt"
	"sort"
)

// ElementOwnership records which of a partition's local elements are
// owned ("real") as opposed to halo copies of a neighboring
// partition's elements. The solver carries halo elements so that face
// exchanges have somewhere to land; export must never emit them, or
// every interior partition boundary would be double-drawn.
type ElementOwnership struct {
	// Total local elements, owned plus halo
	NumElements int

	// Owned element indices into the local element range, ascending
	RealElements []int
}

// NewElementOwnership builds and validates an ownership record
func NewElementOwnership(numElements int, realElements []int) (eo *ElementOwnership, err error) {
	eo = &ElementOwnership{
		NumElements:  numElements,
		RealElements: realElements,
	}
	if err = eo.Validate(); err != nil {
		eo = nil
	}
	return
}

// AllReal is the ownership of an unpartitioned run: every local
// element is owned
func AllReal(numElements int) *ElementOwnership {
	real := make([]int, numElements)
	for i := range real {
		real[i] = i
	}
	return &ElementOwnership{NumElements: numElements, RealElements: real}
}

// Validate checks index bounds and ordering
func (eo *ElementOwnership) Validate() error {
	if eo.NumElements < 0 {
		return fmt.Errorf("negative element count %d", eo.NumElements)
	}
	if len(eo.RealElements) > eo.NumElements {
		return fmt.Errorf("%d real elements exceeds %d local elements",
			len(eo.RealElements), eo.NumElements)
	}
	prev := -1
	for _, e := range eo.RealElements {
		if e < 0 || e >= eo.NumElements {
			return fmt.Errorf("real element %d out of local range [0,%d)", e, eo.NumElements)
		}
		if e <= prev {
			return fmt.Errorf("real elements must be ascending and unique, got %d after %d", e, prev)
		}
		prev = e
	}
	return nil
}

// NumReal returns the number of owned elements
func (eo *ElementOwnership) NumReal() int {
	return len(eo.RealElements)
}

// IsReal reports whether a local element index is owned
func (eo *ElementOwnership) IsReal(elem int) bool {
	// RealElements is ascending
	i := sort.SearchInts(eo.RealElements, elem)
	return i < len(eo.RealElements) && eo.RealElements[i] == elem
}

// Complete reports whether every local element is owned, in which case
// filtering is a no-op
func (eo *ElementOwnership) Complete() bool {
	return len(eo.RealElements) == eo.NumElements
}
