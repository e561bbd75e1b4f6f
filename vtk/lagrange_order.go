package vtk

// VTK numbers the points of its arbitrary-order Lagrange cells by
// boundary dimension: corner vertices first, then edge interiors, then
// face interiors, then the cell interior. lagrangePermutation maps the
// pipeline's lexicographic tensor node index (first axis fastest) to
// that numbering: perm[lex] = vtk position.
func lagrangePermutation(nq, d int) (perm []int) {
	p := nq - 1
	switch d {
	case 1:
		perm = make([]int, nq)
		for i := 0; i <= p; i++ {
			perm[i] = curveIndex(i, p)
		}
	case 2:
		perm = make([]int, nq*nq)
		for j := 0; j <= p; j++ {
			for i := 0; i <= p; i++ {
				perm[i+nq*j] = quadIndex(i, j, p)
			}
		}
	case 3:
		perm = make([]int, nq*nq*nq)
		for k := 0; k <= p; k++ {
			for j := 0; j <= p; j++ {
				for i := 0; i <= p; i++ {
					perm[i+nq*(j+nq*k)] = hexIndex(i, j, k, p)
				}
			}
		}
	}
	return
}

// curveIndex: endpoints first, then interior points in axis order
func curveIndex(i, p int) int {
	if i == 0 {
		return 0
	}
	if i == p {
		return 1
	}
	return i + 1
}

// quadIndex follows vtkHigherOrderQuadrilateral point numbering:
// 4 vertices, 4 edge runs (bottom, right, top, left), then the
// interior lexicographically
func quadIndex(i, j, p int) int {
	ibdy := i == 0 || i == p
	jbdy := j == 0 || j == p

	if ibdy && jbdy { // vertex
		if i != 0 {
			if j != 0 {
				return 2
			}
			return 1
		}
		if j != 0 {
			return 3
		}
		return 0
	}
	offset := 4
	if jbdy { // edge along the i axis
		if j != 0 {
			return (i - 1) + (p - 1) + (p - 1) + offset
		}
		return (i - 1) + offset
	}
	if ibdy { // edge along the j axis
		if i != 0 {
			return (j - 1) + (p - 1) + offset
		}
		return (j - 1) + 2*(p-1) + (p - 1) + offset
	}
	offset += 4 * (p - 1)
	return offset + (i - 1) + (p-1)*(j-1)
}

// hexIndex follows vtkHigherOrderHexahedron point numbering:
// 8 vertices, 12 edge runs, 6 face interiors, then the volume interior
func hexIndex(i, j, k, p int) int {
	ibdy := i == 0 || i == p
	jbdy := j == 0 || j == p
	kbdy := k == 0 || k == p
	nbdy := 0
	for _, b := range [3]bool{ibdy, jbdy, kbdy} {
		if b {
			nbdy++
		}
	}

	if nbdy == 3 { // vertex
		v := 0
		if i != 0 {
			if j != 0 {
				v = 2
			} else {
				v = 1
			}
		} else if j != 0 {
			v = 3
		}
		if k != 0 {
			v += 4
		}
		return v
	}

	offset := 8
	if nbdy == 2 { // edge
		if !ibdy { // edge along the i axis
			n := i - 1
			if j != 0 {
				n += (p - 1) + (p - 1)
			}
			if k != 0 {
				n += 2 * ((p - 1) + (p - 1))
			}
			return n + offset
		}
		if !jbdy { // edge along the j axis
			n := j - 1
			if i != 0 {
				n += p - 1
			} else {
				n += 2*(p-1) + (p - 1)
			}
			if k != 0 {
				n += 2 * ((p - 1) + (p - 1))
			}
			return n + offset
		}
		// edge along the k axis
		offset += 8 * (p - 1)
		which := 0
		if i != 0 {
			if j != 0 {
				which = 3
			} else {
				which = 1
			}
		} else if j != 0 {
			which = 2
		}
		return (k - 1) + (p-1)*which + offset
	}

	offset += 12 * (p - 1)
	if nbdy == 1 { // face interior
		if ibdy { // i-normal faces
			n := (j - 1) + (p-1)*(k-1)
			if i != 0 {
				n += (p - 1) * (p - 1)
			}
			return n + offset
		}
		offset += 2 * (p - 1) * (p - 1)
		if jbdy { // j-normal faces
			n := (i - 1) + (p-1)*(k-1)
			if j != 0 {
				n += (p - 1) * (p - 1)
			}
			return n + offset
		}
		offset += 2 * (p - 1) * (p - 1)
		// k-normal faces
		n := (i - 1) + (p-1)*(j-1)
		if k != 0 {
			n += (p - 1) * (p - 1)
		}
		return n + offset
	}

	// volume interior
	offset += 2 * 3 * (p - 1) * (p - 1)
	return offset + (i - 1) + (p-1)*((j-1)+(p-1)*(k-1))
}
