package hmm

import (
	"fmt"
	"math"
	"sort"
)

// ErrDimension is returned when a sparse vector references a weight index
// outside the dense vector it is multiplied with.
var ErrDimension = fmt.Errorf("%w: feature index out of range", ErrInvalidArgument)

// SparseVector represents a sparse float64 vector.
// Dim is the dimensionality ceiling; zero means unbounded.
type SparseVector struct {
	Indices []int
	Values  []float64
	Dim     int
}

// NewSparseVector creates a sparse vector with given dimension.
func NewSparseVector(dim int) SparseVector {
	return SparseVector{Dim: dim}
}

// find returns the position of idx in Indices, or -1.
func (sv SparseVector) find(idx int) int {
	for pos, have := range sv.Indices {
		if have == idx {
			return pos
		}
	}
	return -1
}

// Set stores val at idx, replacing any previous value.
func (sv *SparseVector) Set(idx int, val float64) {
	if pos := sv.find(idx); pos >= 0 {
		sv.Values[pos] = val
		return
	}
	sv.Indices = append(sv.Indices, idx)
	sv.Values = append(sv.Values, val)
}

// Add accumulates val into the entry at idx.
func (sv *SparseVector) Add(idx int, val float64) {
	if pos := sv.find(idx); pos >= 0 {
		sv.Values[pos] += val
		return
	}
	sv.Indices = append(sv.Indices, idx)
	sv.Values = append(sv.Values, val)
}

// Get returns the value at idx, zero if absent.
func (sv SparseVector) Get(idx int) float64 {
	if pos := sv.find(idx); pos >= 0 {
		return sv.Values[pos]
	}
	return 0
}

// Dot computes the dot product with a dense vector.
// Every index must be < len(dense); a larger one panics.
func (sv SparseVector) Dot(dense []float64) float64 {
	var sum float64
	for i, idx := range sv.Indices {
		sum += sv.Values[i] * dense[idx]
	}
	return sum
}

// DotChecked is Dot with bounds checking.
func (sv SparseVector) DotChecked(dense []float64) (float64, error) {
	if hi := sv.MaxIndex(); hi >= len(dense) {
		return 0, fmt.Errorf("%w: index %d, weights %d", ErrDimension, hi, len(dense))
	}
	for _, idx := range sv.Indices {
		if idx < 0 {
			return 0, fmt.Errorf("%w: negative index %d", ErrDimension, idx)
		}
	}
	return sv.Dot(dense), nil
}

// MaxIndex returns the largest index in the vector, or -1 if it is empty.
func (sv SparseVector) MaxIndex() int {
	hi := -1
	for _, idx := range sv.Indices {
		if idx > hi {
			hi = idx
		}
	}
	return hi
}

// Sort orders the entries by ascending index.
func (sv *SparseVector) Sort() {
	sort.Sort(byIndex{sv})
}

type byIndex struct{ sv *SparseVector }

func (b byIndex) Len() int           { return len(b.sv.Indices) }
func (b byIndex) Less(i, j int) bool { return b.sv.Indices[i] < b.sv.Indices[j] }
func (b byIndex) Swap(i, j int) {
	b.sv.Indices[i], b.sv.Indices[j] = b.sv.Indices[j], b.sv.Indices[i]
	b.sv.Values[i], b.sv.Values[j] = b.sv.Values[j], b.sv.Values[i]
}

// Clone returns a copy that shares no memory with sv.
func (sv SparseVector) Clone() SparseVector {
	out := SparseVector{Dim: sv.Dim}
	if len(sv.Indices) > 0 {
		out.Indices = append([]int(nil), sv.Indices...)
		out.Values = append([]float64(nil), sv.Values...)
	}
	return out
}

// Reset removes all entries, keeping Dim.
func (sv *SparseVector) Reset() {
	sv.Indices = sv.Indices[:0]
	sv.Values = sv.Values[:0]
}

// ToDense converts to a dense float64 slice.
func (sv SparseVector) ToDense() []float64 {
	dense := make([]float64, sv.Dim)
	for i, idx := range sv.Indices {
		if idx < sv.Dim {
			dense[idx] = sv.Values[i]
		}
	}
	return dense
}

// Nnz returns the number of non-zero entries.
func (sv SparseVector) Nnz() int {
	return len(sv.Indices)
}

// ConcatSparse lays vectors end to end: entries of vectors[k] are shifted by
// the summed Dim of the vectors before it.
func ConcatSparse(vectors []SparseVector) SparseVector {
	var dim, nnz int
	for _, v := range vectors {
		dim += v.Dim
		nnz += v.Nnz()
	}
	out := SparseVector{
		Indices: make([]int, 0, nnz),
		Values:  make([]float64, 0, nnz),
		Dim:     dim,
	}
	base := 0
	for _, v := range vectors {
		for _, idx := range v.Indices {
			out.Indices = append(out.Indices, base+idx)
		}
		out.Values = append(out.Values, v.Values...)
		base += v.Dim
	}
	return out
}

// L2Norm returns the L2 norm of the sparse vector.
func (sv SparseVector) L2Norm() float64 {
	var sum float64
	for _, v := range sv.Values {
		sum += v * v
	}
	return math.Sqrt(sum)
}
