package mathlib

import (
	"math"

	vecmath "github.com/cwbudde/algo-vecmath"

	"github.com/roach88/vecwrap/internal/native"
)

func vdot(v1, v2 []float64) float64 {
	var prod [3]float64
	vecmath.MulBlock(prod[:], v1[:3], v2[:3])
	return prod[0] + prod[1] + prod[2]
}

func vnorm(v1 []float64) float64 {
	return math.Sqrt(vdot(v1, v1))
}

func vadd(v1, v2, vout []float64) {
	copy(vout, v1[:3])
	vecmath.AddBlockInPlace(vout[:3], v2[:3])
}

// vsub computes v1 - v2. vout never aliases an input.
func vsub(v1, v2, vout []float64) {
	vecmath.ScaleBlock(vout[:3], v2[:3], -1)
	vecmath.AddBlockInPlace(vout[:3], v1[:3])
}

func vcrss(v1, v2, vout []float64) {
	x := v1[1]*v2[2] - v1[2]*v2[1]
	y := v1[2]*v2[0] - v1[0]*v2[2]
	z := v1[0]*v2[1] - v1[1]*v2[0]
	vout[0], vout[1], vout[2] = x, y, z
}

func vscl(s float64, v1, vout []float64) {
	vecmath.ScaleBlock(vout[:3], v1[:3], s)
}

// unorm leaves vout zero for the zero vector.
func unorm(v1, vout []float64, vmag *float64) {
	*vmag = vnorm(v1)
	if *vmag > 0 {
		vscl(1 / *vmag, v1, vout)
		return
	}
	clear(vout[:3])
}

// vsep is the angle between v1 and v2 in [0, pi], or 0 when either is the
// zero vector. Near 0 and pi the half-chord form keeps full precision.
func vsep(v1, v2 []float64) float64 {
	var u1, u2, w [3]float64
	var m1, m2 float64
	unorm(v1, u1[:], &m1)
	unorm(v2, u2[:], &m2)
	if m1 == 0 || m2 == 0 {
		return 0
	}
	d := vdot(u1[:], u2[:])
	switch {
	case d > 0:
		vsub(u1[:], u2[:], w[:])
		return 2 * math.Asin(0.5*vnorm(w[:]))
	case d < 0:
		vadd(u1[:], u2[:], w[:])
		return math.Pi - 2*math.Asin(0.5*vnorm(w[:]))
	}
	return math.Pi / 2
}

func mxv(m, vin, vout []float64) {
	var out [3]float64
	for i := range 3 {
		out[i] = vdot(m[3*i:3*i+3], vin)
	}
	copy(vout, out[:])
}

func det3(m []float64) float64 {
	return m[0]*(m[4]*m[8]-m[5]*m[7]) -
		m[1]*(m[3]*m[8]-m[5]*m[6]) +
		m[2]*(m[3]*m[7]-m[4]*m[6])
}

// invert writes the inverse of m, or leaves mout all zero when m is
// singular.
func invert(m, mout []float64) {
	d := det3(m)
	if d == 0 {
		clear(mout[:9])
		return
	}
	inv := 1 / d
	mout[0] = (m[4]*m[8] - m[5]*m[7]) * inv
	mout[1] = (m[2]*m[7] - m[1]*m[8]) * inv
	mout[2] = (m[1]*m[5] - m[2]*m[4]) * inv
	mout[3] = (m[5]*m[6] - m[3]*m[8]) * inv
	mout[4] = (m[0]*m[8] - m[2]*m[6]) * inv
	mout[5] = (m[2]*m[3] - m[0]*m[5]) * inv
	mout[6] = (m[3]*m[7] - m[4]*m[6]) * inv
	mout[7] = (m[1]*m[6] - m[0]*m[7]) * inv
	mout[8] = (m[0]*m[4] - m[1]*m[3]) * inv
}

// axisar builds the matrix rotating vectors by angle about axis. A zero
// axis yields the identity.
func axisar(axis []float64, angle float64, r []float64) {
	var k [3]float64
	var mag float64
	unorm(axis, k[:], &mag)
	clear(r[:9])
	if mag == 0 {
		r[0], r[4], r[8] = 1, 1, 1
		return
	}
	c, s := math.Cos(angle), math.Sin(angle)
	t := 1 - c
	r[0] = c + t*k[0]*k[0]
	r[1] = t*k[0]*k[1] - s*k[2]
	r[2] = t*k[0]*k[2] + s*k[1]
	r[3] = t*k[1]*k[0] + s*k[2]
	r[4] = c + t*k[1]*k[1]
	r[5] = t*k[1]*k[2] - s*k[0]
	r[6] = t*k[2]*k[0] - s*k[1]
	r[7] = t*k[2]*k[1] + s*k[0]
	r[8] = c + t*k[2]*k[2]
}

// isrot reports whether every column of m is a unit vector within ntol and
// the determinant is 1 within dtol.
func isrot(m []float64, ntol, dtol float64) bool {
	if ntol < 0 || dtol < 0 {
		native.Signal("ISROT", "SPICE(VALUEOUTOFRANGE)",
			"Tolerances must be non-negative; ntol was %g and dtol was %g", ntol, dtol)
		return false
	}
	for j := range 3 {
		col := []float64{m[j], m[3+j], m[6+j]}
		if math.Abs(vnorm(col)-1) > ntol {
			return false
		}
	}
	return math.Abs(det3(m)-1) <= dtol
}

// recsph converts rectangular coordinates to radius, colatitude and
// longitude. Longitude is 0 on the z axis.
func recsph(rectan []float64, r, colat, slon *float64) {
	x, y, z := rectan[0], rectan[1], rectan[2]
	var rho [1]float64
	vecmath.Magnitude(rho[:], []float64{x}, []float64{y})
	*r = vnorm(rectan)
	*colat = math.Atan2(rho[0], z)
	*slon = 0
	if x != 0 || y != 0 {
		*slon = math.Atan2(y, x)
	}
}

func sphrec(r, colat, slon float64, rectan []float64) {
	rectan[0] = r * math.Sin(colat) * math.Cos(slon)
	rectan[1] = r * math.Sin(colat) * math.Sin(slon)
	rectan[2] = r * math.Cos(colat)
}

func vnormg(v1 []float64, n int) float64 {
	sq := make([]float64, n)
	vecmath.MulBlock(sq, v1[:n], v1[:n])
	var sum float64
	for _, x := range sq {
		sum += x
	}
	return math.Sqrt(sum)
}

// vaddg adds two vectors of the same length. The output takes the length
// of v2.
func vaddg(v1 []float64, n1 int, v2 []float64, n2 int, vout []float64, nout int) {
	if n1 != n2 {
		native.Signal("VADDG", "SPICE(ARRAYSHAPEMISMATCH)",
			"Vector lengths %d and %d differ", n1, n2)
		return
	}
	copy(vout[:nout], v1[:n1])
	vecmath.AddBlockInPlace(vout[:nout], v2[:n2])
}
