package geometry

// Barycentric returns the barycentric coordinates of p in the triangle.
// The three components always sum to one.
func Barycentric(p V2, triangle [3]V2) V3 {
	e0 := triangle[1].Sub(triangle[0])
	e1 := triangle[2].Sub(triangle[0])
	e2 := p.Sub(triangle[0])
	d00 := e0.Dot(e0)
	d01 := e0.Dot(e1)
	d11 := e1.Dot(e1)
	d20 := e2.Dot(e0)
	d21 := e2.Dot(e1)
	denominator := d00*d11 - d01*d01
	v := (d11*d20 - d01*d21) / denominator
	w := (d00*d21 - d01*d20) / denominator
	u := 1.0 - v - w
	return V3{X: u, Y: v, Z: w}
}

// TriangleInterpolate interpolates z at p across the triangle, or returns
// false when p lies outside it.
func TriangleInterpolate(p V2, triangle [3]V3) (float64, bool) {
	flat := [3]V2{triangle[0].XY(), triangle[1].XY(), triangle[2].XY()}
	b := Barycentric(p, flat)
	if b.X < 0 || b.Y < 0 || b.Z < 0 {
		return 0, false
	}
	return b.X*triangle[0].Z + b.Y*triangle[1].Z + b.Z*triangle[2].Z, true
}

// TriangleInterpolateAny returns the first triangle containing p.
func TriangleInterpolateAny(p V2, triangles [][3]V3) (float64, bool) {
	for _, triangle := range triangles {
		if z, ok := TriangleInterpolate(p, triangle); ok {
			return z, true
		}
	}
	return 0, false
}
