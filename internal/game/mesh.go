package game

import "invaders/internal/sim"

// Corners of the unit cube [-1,1]^3. The cube's normals are its corner
// directions, so shading is smooth across faces.
var cubeCorners = [8][3]float32{
	{1, 1, 1},
	{1, 1, -1},
	{1, -1, 1},
	{1, -1, -1},
	{-1, 1, 1},
	{-1, 1, -1},
	{-1, -1, 1},
	{-1, -1, -1},
}

// cuboidTriangles indexes cubeCorners, two triangles per face.
var cuboidTriangles = [36]uint16{
	0, 1, 5, 5, 4, 0,
	0, 2, 3, 3, 1, 0,
	0, 4, 6, 6, 2, 0,
	1, 3, 7, 7, 5, 1,
	2, 6, 7, 7, 3, 2,
	4, 5, 7, 7, 6, 4,
}

// laserLength stretches the laser cuboid far past the edge of the field.
const laserLength = 1000

// meshVertices returns interleaved position/normal data for mesh m: six
// floats per vertex.
func meshVertices(m sim.Mesh) []float32 {
	out := make([]float32, 0, len(cubeCorners)*6)
	for _, c := range cubeCorners {
		p := c
		switch m {
		case sim.MeshBullet:
			p[1] *= sim.BulletTallness
		case sim.MeshLaser:
			// The laser starts at its origin and runs along +Y.
			p[1] = (p[1] + 1) * laserLength
		}
		out = append(out, p[0], p[1], p[2], p[0], p[1], p[2])
	}
	return out
}
