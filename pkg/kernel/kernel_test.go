package kernel

import (
	"testing"

	"github.com/chazu/orbishell/pkg/geom"
	"github.com/chazu/orbishell/pkg/voxel"
)

// --- Mesh helper method tests ---

func TestMeshVertexCount(t *testing.T) {
	tests := []struct {
		name     string
		vertices []float32
		want     int
	}{
		{"empty", nil, 0},
		{"one vertex", []float32{1, 2, 3}, 1},
		{"four vertices", []float32{0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Mesh{Vertices: tt.vertices}
			if got := m.VertexCount(); got != tt.want {
				t.Errorf("VertexCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMeshTriangleCount(t *testing.T) {
	tests := []struct {
		name    string
		indices []uint32
		want    int
	}{
		{"empty", nil, 0},
		{"one triangle", []uint32{0, 1, 2}, 1},
		{"two triangles", []uint32{0, 1, 2, 2, 3, 0}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Mesh{Indices: tt.indices}
			if got := m.TriangleCount(); got != tt.want {
				t.Errorf("TriangleCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMeshIsEmpty(t *testing.T) {
	t.Run("empty mesh", func(t *testing.T) {
		m := &Mesh{}
		if !m.IsEmpty() {
			t.Error("IsEmpty() = false for empty mesh, want true")
		}
	})
	t.Run("non-empty mesh", func(t *testing.T) {
		m := &Mesh{Vertices: []float32{1, 2, 3}}
		if m.IsEmpty() {
			t.Error("IsEmpty() = true for non-empty mesh, want false")
		}
	})
}

func TestMeshTriangleAndBounds(t *testing.T) {
	m := &Mesh{
		Vertices: []float32{0, 0, 0, 2, 0, 0, 0, 3, -1},
		Indices:  []uint32{0, 1, 2},
	}
	tri := m.Triangle(0)
	if tri[1] != geom.V(2, 0, 0) {
		t.Errorf("Triangle(0)[1] = %+v", tri[1])
	}
	b := m.Bounds()
	if b.Min != geom.V(0, 0, -1) || b.Max != geom.V(2, 3, 0) {
		t.Errorf("Bounds() = %+v", b)
	}
	if !(&Mesh{}).Bounds().IsEmpty() {
		t.Error("empty mesh has non-empty bounds")
	}
}

// --- Lattice ---

func TestLatticeBounds(t *testing.T) {
	var l Lattice
	l.AddBeam(geom.V(0, 0, 0), geom.V(10, 0, 0), 1, 2, true)
	l.AddSphere(geom.V(0, 0, 20), 3)
	if l.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", l.Len())
	}
	b := l.Bounds()
	want := geom.Box{Min: geom.V(-3, -3, -2), Max: geom.V(12, 3, 23)}
	if b != want {
		t.Errorf("Bounds() = %+v, want %+v", b, want)
	}
}

func TestLatticeRejectsBadRadius(t *testing.T) {
	tests := []struct {
		name string
		add  func(l *Lattice)
	}{
		{"zero beam radius", func(l *Lattice) { l.AddBeam(geom.V(0, 0, 0), geom.V(1, 0, 0), 0, 1, true) }},
		{"negative sphere", func(l *Lattice) { l.AddSphere(geom.V(0, 0, 0), -1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tt.add(&Lattice{})
		})
	}
}

// --- Compile-time interface check with a stub kernel ---

// stubKernel rasterizes every primitive as its bounding box. It proves the
// interface is satisfiable without an SDF backend.
type stubKernel struct{ size float64 }

func (k *stubKernel) VoxelSize() float64 { return k.size }

func (k *stubKernel) Sphere(c geom.Vec3, r float64) *voxel.Volume {
	return k.Rasterize(voxel.BoxField(geom.Around(c, r)))
}

func (k *stubKernel) Cylinder(c geom.Vec3, r, h float64) *voxel.Volume {
	return k.Rasterize(voxel.BoxField{
		Min: geom.V(c.X-r, c.Y-r, c.Z-h/2),
		Max: geom.V(c.X+r, c.Y+r, c.Z+h/2),
	})
}

func (k *stubKernel) Lattice(l *Lattice) *voxel.Volume {
	return k.Rasterize(voxel.BoxField(l.Bounds()))
}

func (k *stubKernel) Rasterize(f voxel.Field) *voxel.Volume {
	return voxel.Rasterize(k.size, f)
}

func (k *stubKernel) ToMesh(_ *voxel.Volume) (*Mesh, error) {
	return &Mesh{}, nil
}

var _ Kernel = (*stubKernel)(nil)

func TestStubKernelCylinder(t *testing.T) {
	var k Kernel = &stubKernel{size: 1}
	v := k.Cylinder(geom.V(0, 0, 5), 2, 10)
	if got := v.Count(); got != 160 {
		t.Errorf("Cylinder count = %d, want 160", got)
	}
	if v.VoxelSize() != k.VoxelSize() {
		t.Errorf("voxel size %v, want %v", v.VoxelSize(), k.VoxelSize())
	}
}

func TestStubKernelToMesh(t *testing.T) {
	var k Kernel = &stubKernel{size: 1}
	m, err := k.ToMesh(k.Sphere(geom.V(0, 0, 0), 1))
	if err != nil {
		t.Fatalf("ToMesh() error = %v", err)
	}
	if m == nil {
		t.Fatal("ToMesh() returned nil mesh")
	}
	if !m.IsEmpty() {
		t.Error("stub ToMesh() should return empty mesh")
	}
}
