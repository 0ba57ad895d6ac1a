package renderer

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Geometry is raw vertex data, not yet owned by a mesh.
type Geometry struct {
	Primitive Primitive
	Positions []float32
	Normals   []float32
	Indices   []uint32
}

func (g *Geometry) vertex(p, n mgl32.Vec3) uint32 {
	g.Positions = append(g.Positions, p[0], p[1], p[2])
	g.Normals = append(g.Normals, n[0], n[1], n[2])
	return uint32(len(g.Positions)/3 - 1)
}

func (g *Geometry) VertexCount() int {
	return len(g.Positions) / 3
}

// BoxGeometry is an axis aligned box centred on the origin.
func BoxGeometry(width, height, depth float32) Geometry {
	half := mgl32.Vec3{width / 2, height / 2, depth / 2}
	faces := [6][3]mgl32.Vec3{
		// normal, u, v with u x v == normal
		{{1, 0, 0}, {0, 0, -1}, {0, 1, 0}},
		{{-1, 0, 0}, {0, 0, 1}, {0, 1, 0}},
		{{0, 1, 0}, {1, 0, 0}, {0, 0, -1}},
		{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}},
		{{0, 0, 1}, {1, 0, 0}, {0, 1, 0}},
		{{0, 0, -1}, {-1, 0, 0}, {0, 1, 0}},
	}
	var g Geometry
	for _, f := range faces {
		n, u, v := f[0], f[1], f[2]
		center := mgl32.Vec3{n[0] * half[0], n[1] * half[1], n[2] * half[2]}
		du := u.Mul(extent(u, half))
		dv := v.Mul(extent(v, half))
		a := g.vertex(center.Sub(du).Sub(dv), n)
		b := g.vertex(center.Add(du).Sub(dv), n)
		c := g.vertex(center.Add(du).Add(dv), n)
		d := g.vertex(center.Sub(du).Add(dv), n)
		g.Indices = append(g.Indices, a, b, c, a, c, d)
	}
	return g
}

func extent(axis, half mgl32.Vec3) float32 {
	return abs32(axis[0])*half[0] + abs32(axis[1])*half[1] + abs32(axis[2])*half[2]
}

// SphereGeometry is a UV sphere.
func SphereGeometry(radius float32, widthSegments, heightSegments int) Geometry {
	widthSegments = max(widthSegments, 3)
	heightSegments = max(heightSegments, 2)

	var g Geometry
	grid := make([][]uint32, heightSegments+1)
	for iy := 0; iy <= heightSegments; iy++ {
		v := float64(iy) / float64(heightSegments)
		grid[iy] = make([]uint32, widthSegments+1)
		for ix := 0; ix <= widthSegments; ix++ {
			u := float64(ix) / float64(widthSegments)
			phi := u * 2 * math.Pi
			theta := v * math.Pi
			n := mgl32.Vec3{
				float32(-math.Cos(phi) * math.Sin(theta)),
				float32(math.Cos(theta)),
				float32(math.Sin(phi) * math.Sin(theta)),
			}
			grid[iy][ix] = g.vertex(n.Mul(radius), n)
		}
	}
	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := grid[iy][ix+1]
			b := grid[iy][ix]
			c := grid[iy+1][ix]
			d := grid[iy+1][ix+1]
			if iy != 0 {
				g.Indices = append(g.Indices, a, b, d)
			}
			if iy != heightSegments-1 {
				g.Indices = append(g.Indices, b, c, d)
			}
		}
	}
	return g
}

// TorusGeometry lies in the XY plane.
func TorusGeometry(radius, tube float32, radialSegments, tubularSegments int) Geometry {
	radialSegments = max(radialSegments, 3)
	tubularSegments = max(tubularSegments, 3)

	var g Geometry
	for j := 0; j <= radialSegments; j++ {
		v := float64(j) / float64(radialSegments) * 2 * math.Pi
		for i := 0; i <= tubularSegments; i++ {
			u := float64(i) / float64(tubularSegments) * 2 * math.Pi
			ring := float64(radius) + float64(tube)*math.Cos(v)
			p := mgl32.Vec3{
				float32(ring * math.Cos(u)),
				float32(ring * math.Sin(u)),
				float32(float64(tube) * math.Sin(v)),
			}
			center := mgl32.Vec3{radius * float32(math.Cos(u)), radius * float32(math.Sin(u)), 0}
			g.vertex(p, p.Sub(center).Normalize())
		}
	}
	row := uint32(tubularSegments + 1)
	for j := uint32(1); j <= uint32(radialSegments); j++ {
		for i := uint32(1); i <= uint32(tubularSegments); i++ {
			a := row*j + i - 1
			b := row*(j-1) + i - 1
			c := row*(j-1) + i
			d := row*j + i
			g.Indices = append(g.Indices, a, b, d, b, c, d)
		}
	}
	return g
}

// CylinderGeometry is a capped cylinder along Y. A zero top radius makes a
// cone. Flat shading duplicates vertices per side, which is what prisms
// such as the hexagon core want.
func CylinderGeometry(radiusTop, radiusBottom, height float32, segments int, flat bool) Geometry {
	segments = max(segments, 3)
	halfH := height / 2
	var slope float32
	if height != 0 {
		slope = (radiusBottom - radiusTop) / height
	}

	ring := func(k int, r float32) (mgl32.Vec3, float64) {
		theta := float64(k) / float64(segments) * 2 * math.Pi
		return mgl32.Vec3{r * float32(math.Sin(theta)), 0, r * float32(math.Cos(theta))}, theta
	}
	sideNormal := func(theta float64) mgl32.Vec3 {
		return mgl32.Vec3{float32(math.Sin(theta)), slope, float32(math.Cos(theta))}.Normalize()
	}

	var g Geometry
	for k := 0; k < segments; k++ {
		top0, t0 := ring(k, radiusTop)
		top1, t1 := ring(k+1, radiusTop)
		bot0, _ := ring(k, radiusBottom)
		bot1, _ := ring(k+1, radiusBottom)
		top0[1], top1[1] = halfH, halfH
		bot0[1], bot1[1] = -halfH, -halfH

		n0, n1 := sideNormal(t0), sideNormal(t1)
		if flat {
			mid := sideNormal((t0 + t1) / 2)
			n0, n1 = mid, mid
		}
		a := g.vertex(top0, n0)
		b := g.vertex(bot0, n0)
		c := g.vertex(bot1, n1)
		d := g.vertex(top1, n1)
		g.Indices = append(g.Indices, a, b, d, b, c, d)
	}

	up := mgl32.Vec3{0, 1, 0}
	down := mgl32.Vec3{0, -1, 0}
	if radiusTop > 0 {
		center := g.vertex(mgl32.Vec3{0, halfH, 0}, up)
		for k := 0; k < segments; k++ {
			p0, _ := ring(k, radiusTop)
			p1, _ := ring(k+1, radiusTop)
			p0[1], p1[1] = halfH, halfH
			g.Indices = append(g.Indices, center, g.vertex(p0, up), g.vertex(p1, up))
		}
	}
	if radiusBottom > 0 {
		center := g.vertex(mgl32.Vec3{0, -halfH, 0}, down)
		for k := 0; k < segments; k++ {
			p0, _ := ring(k, radiusBottom)
			p1, _ := ring(k+1, radiusBottom)
			p0[1], p1[1] = -halfH, -halfH
			g.Indices = append(g.Indices, center, g.vertex(p1, down), g.vertex(p0, down))
		}
	}
	return g
}

// ConeGeometry is a cylinder with no top.
func ConeGeometry(radius, height float32, segments int) Geometry {
	return CylinderGeometry(0, radius, height, segments, false)
}

// OctahedronGeometry is flat shaded.
func OctahedronGeometry(radius float32) Geometry {
	corners := []mgl32.Vec3{{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1}}
	faces := [][3]int{
		{0, 2, 4}, {0, 4, 3}, {0, 3, 5}, {0, 5, 2},
		{1, 2, 5}, {1, 5, 3}, {1, 3, 4}, {1, 4, 2},
	}
	return convexFlat(corners, faces, radius)
}

// IcosahedronGeometry is flat shaded.
func IcosahedronGeometry(radius float32) Geometry {
	t := float32((1 + math.Sqrt(5)) / 2)
	corners := []mgl32.Vec3{
		{-1, t, 0}, {1, t, 0}, {-1, -t, 0}, {1, -t, 0},
		{0, -1, t}, {0, 1, t}, {0, -1, -t}, {0, 1, -t},
		{t, 0, -1}, {t, 0, 1}, {-t, 0, -1}, {-t, 0, 1},
	}
	faces := [][3]int{
		{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
		{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
		{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
		{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
	}
	return convexFlat(corners, faces, radius)
}

// convexFlat builds a flat shaded polyhedron centred on the origin from unit
// direction corners, orienting every face outwards.
func convexFlat(corners []mgl32.Vec3, faces [][3]int, radius float32) Geometry {
	var g Geometry
	for _, f := range faces {
		a := corners[f[0]].Normalize().Mul(radius)
		b := corners[f[1]].Normalize().Mul(radius)
		c := corners[f[2]].Normalize().Mul(radius)
		n := b.Sub(a).Cross(c.Sub(a)).Normalize()
		if n.Dot(a.Add(b).Add(c)) < 0 {
			b, c = c, b
			n = n.Mul(-1)
		}
		g.Indices = append(g.Indices, g.vertex(a, n), g.vertex(b, n), g.vertex(c, n))
	}
	return g
}

// PointsGeometry is a point cloud.
func PointsGeometry(points []mgl32.Vec3) Geometry {
	g := Geometry{Primitive: Points}
	for _, p := range points {
		g.vertex(p, mgl32.Vec3{0, 1, 0})
	}
	return g
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
