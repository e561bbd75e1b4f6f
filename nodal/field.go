package nodal

import (
	"errors"
	"fmt"

	"github.com/notargets/gocfd/utils"
)

// Dimensionality is the number of spatial axes of the element grid
type Dimensionality uint8

const (
	D1 Dimensionality = iota
	D2
	D3
)

// NumAxes returns the number of spatial axes, 1 to 3
func (d Dimensionality) NumAxes() int {
	return int(d) + 1
}

var ErrShapeMismatch = errors.New("shape mismatch")

// axis-keyed coordinate names used for geometry fields
var axisNames = [3]string{"X", "Y", "Z"}

// Field is one scalar quantity sampled at every solution node of every
// local element. Logically it is a (Np, K) array: Np nodes per element,
// K elements, with the node index varying fastest. A Field constructed
// by an accessor is a pure strided view into the caller's buffer and
// never copies; resampled or filtered Fields own contiguous storage.
type Field struct {
	Name string

	np, k  int
	stride int // spacing between consecutive element columns in data
	data   []float64
}

// NewField wraps a contiguous (np, k) array, node index fastest
func NewField(name string, np, k int, data []float64) (f Field, err error) {
	if len(data) != np*k {
		err = fmt.Errorf("%w: field %s has %d values, want np=%d x k=%d",
			ErrShapeMismatch, name, len(data), np, k)
		return
	}
	f = Field{Name: name, np: np, k: k, stride: np, data: data}
	return
}

func (f Field) Np() int { return f.np }
func (f Field) K() int  { return f.k }

// At returns the value at a node of an element. node counts within the
// element in the flattened tensor-product ordering, first axis fastest.
func (f Field) At(node, elem int) float64 {
	return f.data[node+elem*f.stride]
}

// Matrix copies the field into a dense (Np, K) matrix with one column
// per element, the form consumed by the resampling matmul.
func (f Field) Matrix() (M utils.Matrix) {
	M = utils.NewMatrix(f.np, f.k)
	for e := 0; e < f.k; e++ {
		for i := 0; i < f.np; i++ {
			M.Set(i, e, f.At(i, e))
		}
	}
	return
}

// FieldFromMatrix converts a dense (Np, K) matrix back into a Field.
// The matrix data is copied; the result owns its storage.
func FieldFromMatrix(name string, M utils.Matrix) (f Field) {
	np, k := M.Dims()
	data := make([]float64, np*k)
	for e := 0; e < k; e++ {
		for i := 0; i < np; i++ {
			data[i+e*np] = M.At(i, e)
		}
	}
	f = Field{Name: name, np: np, k: k, stride: np, data: data}
	return
}

// SelectElements returns a Field holding only the listed element
// columns, in the order given. The result owns its storage.
func (f Field) SelectElements(elems []int) (r Field, err error) {
	data := make([]float64, f.np*len(elems))
	for jNew, e := range elems {
		if e < 0 || e >= f.k {
			err = fmt.Errorf("%w: element index %d out of range [0,%d)",
				ErrShapeMismatch, e, f.k)
			return
		}
		for i := 0; i < f.np; i++ {
			data[i+jNew*f.np] = f.At(i, e)
		}
	}
	r = Field{Name: f.Name, np: f.np, k: len(elems), stride: f.np, data: data}
	return
}

// Rename returns the same view under a different display name
func (f Field) Rename(name string) Field {
	f.Name = name
	return f
}

// GeometryFields views a coordinate buffer laid out as
// [node, axis, element] (node fastest) as one Field per spatial axis,
// named "X", "Y", "Z" by axis index. No data is copied.
func GeometryFields(buf []float64, np int, dim Dimensionality, k int) (coords []Field, err error) {
	d := dim.NumAxes()
	if err = checkExtent("geometry", buf, np, d, k); err != nil {
		return
	}
	coords = make([]Field, d)
	for c := 0; c < d; c++ {
		coords[c] = componentView(axisNames[c], buf, np, c, d, k)
	}
	return
}

// StateFields views a state buffer laid out as
// [node, component, element] (node fastest) as one Field per component.
// Names are assigned downstream; the views carry empty names.
func StateFields(buf []float64, np, ncomp, k int) (fields []Field, err error) {
	if err = checkExtent("state", buf, np, ncomp, k); err != nil {
		return
	}
	fields = make([]Field, ncomp)
	for c := 0; c < ncomp; c++ {
		fields[c] = componentView("", buf, np, c, ncomp, k)
	}
	return
}

func componentView(name string, buf []float64, np, c, ncomp, k int) Field {
	return Field{
		Name:   name,
		np:     np,
		k:      k,
		stride: np * ncomp,
		data:   buf[np*c:],
	}
}

func checkExtent(what string, buf []float64, np, ncomp, k int) error {
	if np < 1 || ncomp < 1 || k < 1 {
		return fmt.Errorf("%w: %s buffer declared np=%d, components=%d, k=%d",
			ErrShapeMismatch, what, np, ncomp, k)
	}
	if len(buf) != np*ncomp*k {
		return fmt.Errorf("%w: %s buffer has %d values, want np=%d x components=%d x k=%d = %d",
			ErrShapeMismatch, what, len(buf), np, ncomp, k, np*ncomp*k)
	}
	return nil
}
