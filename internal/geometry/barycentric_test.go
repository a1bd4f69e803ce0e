package geometry

import (
	"math"
	"testing"
)

func triangle2() [3]V2 {
	return [3]V2{V2XY(0, 1), V2XY(2, 5), V2XY(4, 3)}
}

func triangle3() [3]V3 {
	return [3]V3{V3XYZ(0, 1, 2), V3XYZ(2, 5, 0), V3XYZ(4, 3, 1)}
}

func almostV3(a, b V3) bool {
	const eps = 1e-9
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps && math.Abs(a.Z-b.Z) < eps
}

func TestBarycentric_Vertices(t *testing.T) {
	tri := triangle2()
	cases := []struct {
		p    V2
		want V3
	}{
		{tri[0], V3XYZ(1, 0, 0)},
		{tri[1], V3XYZ(0, 1, 0)},
		{tri[2], V3XYZ(0, 0, 1)},
		{V2XY(1, 3), V3XYZ(0.5, 0.5, 0)},
		{V2XY(3, 4), V3XYZ(0, 0.5, 0.5)},
		{V2XY(2, 2), V3XYZ(0.5, 0, 0.5)},
	}
	for _, c := range cases {
		got := Barycentric(c.p, tri)
		if !almostV3(got, c.want) {
			t.Errorf("Barycentric(%v) = %v, want %v", c.p, got, c.want)
		}
	}
}

func TestBarycentric_PartitionOfUnity(t *testing.T) {
	tri := triangle2()
	for _, p := range []V2{V2XY(1.3, 2.7), V2XY(-4, 9), V2XY(2, 3), V2XY(100, -50)} {
		b := Barycentric(p, tri)
		if sum := b.X + b.Y + b.Z; math.Abs(sum-1) > 1e-6 {
			t.Errorf("Barycentric(%v) sums to %f", p, sum)
		}
	}
}

func TestTriangleInterpolate(t *testing.T) {
	tri := triangle3()
	for i, want := range []float64{2, 0, 1} {
		z, ok := TriangleInterpolate(tri[i].XY(), tri)
		if !ok {
			t.Fatalf("vertex %d not inside triangle", i)
		}
		if math.Abs(z-want) > 1e-9 {
			t.Errorf("vertex %d z = %f, want %f", i, z, want)
		}
	}
}

func TestTriangleInterpolate_Outside(t *testing.T) {
	if _, ok := TriangleInterpolate(V2XY(-1, -1), triangle3()); ok {
		t.Error("expected no interpolation outside triangle")
	}
}

func TestTriangleInterpolateAny(t *testing.T) {
	triangles := [][3]V3{triangle3(), {V3XYZ(10, 10, 5), V3XYZ(12, 10, 5), V3XYZ(10, 12, 5)}}
	z, ok := TriangleInterpolateAny(V2XY(11, 10.5), triangles)
	if !ok || math.Abs(z-5) > 1e-9 {
		t.Errorf("TriangleInterpolateAny = %f, %t; want 5, true", z, ok)
	}
}
