package kernel

import "github.com/chazu/orbishell/pkg/geom"

// Mesh is a triangle mesh.
// All arrays are flat: vertices has 3 floats per vertex (x,y,z),
// normals has 3 floats per vertex, indices has 3 uint32s per triangle.
type Mesh struct {
	Vertices []float32 `json:"vertices"` // [x0,y0,z0, x1,y1,z1, ...]
	Normals  []float32 `json:"normals"`  // [nx0,ny0,nz0, ...]
	Indices  []uint32  `json:"indices"`  // [i0,i1,i2, ...] triangles
	Name     string    `json:"name"`
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// Vertex returns vertex i.
func (m *Mesh) Vertex(i uint32) geom.Vec3 {
	return geom.V(float64(m.Vertices[3*i]), float64(m.Vertices[3*i+1]), float64(m.Vertices[3*i+2]))
}

// Triangle returns the corners of triangle t.
func (m *Mesh) Triangle(t int) [3]geom.Vec3 {
	return [3]geom.Vec3{
		m.Vertex(m.Indices[3*t]),
		m.Vertex(m.Indices[3*t+1]),
		m.Vertex(m.Indices[3*t+2]),
	}
}

// Bounds returns the bounding box of all vertices; empty for an empty mesh.
func (m *Mesh) Bounds() geom.Box {
	b := geom.Box{Min: geom.V(1, 1, 1)}
	for i := 0; i < m.VertexCount(); i++ {
		p := m.Vertex(uint32(i))
		b = b.Union(geom.Box{Min: p, Max: p})
	}
	return b
}
