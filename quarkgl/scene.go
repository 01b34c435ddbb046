package quarkgl

// Shading selects how a material turns a face into a color.
type Shading uint8

const (
	// ShadingLambert uses the base color modulated by the scene light.
	ShadingLambert Shading = iota
	// ShadingFlat uses the base color as is.
	ShadingFlat
	// ShadingNormal colors each face by its view-space normal.
	ShadingNormal
)

// Material is a minimal surface description. One material may be shared by many meshes.
type Material struct {
	BaseColor Color
	Opacity   uint8 // 0..255. 255 means opaque.
	Shading   Shading
}

// LightMode defines minimal lighting options.
type LightMode uint8

const (
	LightOff LightMode = iota
	LightAmbientDirectional
)

// Light is a minimal light setup.
type Light struct {
	Mode      LightMode
	Ambient   Scalar // 0..1
	Dir       Vec3   // direction *towards* the scene
	DirAmount Scalar // 0..1
}

// Camera describes the viewing transform.
//
// Aspect is owned by whoever sizes the output; call UpdateProjectionMatrix after
// changing it (or FOVYRad/Near/Far). A zero Aspect makes the renderer fall back to
// the target aspect.
type Camera struct {
	Position Vec3
	Target   Vec3
	Up       Vec3

	FOVYRad Scalar
	Aspect  Scalar

	Near Scalar
	Far  Scalar

	proj      Mat4
	projValid bool
}

// View returns the camera view matrix.
func (c Camera) View() Mat4 {
	up := c.Up
	if up == (Vec3{}) {
		up = V3(0, 1, 0)
	}
	return Mat4LookAt(c.Position, c.Target, up)
}

// Projection returns the perspective projection for a target aspect.
func (c Camera) Projection(aspect Scalar) Mat4 {
	fov := c.FOVYRad
	if fov == 0 {
		fov = Scalar(1.0)
	}
	return Mat4Perspective(fov, aspect, c.Near, c.Far)
}

// UpdateProjectionMatrix recomputes the cached projection from Aspect.
func (c *Camera) UpdateProjectionMatrix() {
	aspect := c.Aspect
	if aspect == 0 {
		aspect = 1
	}
	c.proj = c.Projection(aspect)
	c.projValid = true
}

// ProjectionMatrix returns the cached projection, or one computed for fallbackAspect
// if UpdateProjectionMatrix has not been called yet.
func (c *Camera) ProjectionMatrix(fallbackAspect Scalar) Mat4 {
	if c.projValid {
		return c.proj
	}
	return c.Projection(fallbackAspect)
}

// Vertex is a mesh vertex. A zero Normal means the face normal is used.
type Vertex struct {
	Pos    Vec3
	Normal Vec3
}

// Geometry is an indexed triangle list. It may be shared by many meshes and must
// not be modified while a frame is being rendered.
type Geometry struct {
	Vertices []Vertex
	Indices  []uint32 // triangle list
}

// BoundingBox returns the bounds of all vertices.
func (g *Geometry) BoundingBox() Box3 {
	var b Box3
	if g == nil {
		return b
	}
	for i := range g.Vertices {
		b.ExpandByPoint(g.Vertices[i].Pos)
	}
	return b
}

// Translate moves every vertex by d.
func (g *Geometry) Translate(d Vec3) {
	if g == nil {
		return
	}
	for i := range g.Vertices {
		g.Vertices[i].Pos = g.Vertices[i].Pos.Add(d)
	}
}

// Triangles returns the number of triangles.
func (g *Geometry) Triangles() int {
	if g == nil {
		return 0
	}
	return len(g.Indices) / 3
}

// Mesh places a geometry in the scene with a position, XYZ Euler rotation and
// uniform scale.
type Mesh struct {
	Enabled bool

	Geometry *Geometry
	Material *Material

	Position Vec3
	Rotation Vec3
	Scale    Scalar
}

// NewMesh returns an enabled mesh at the origin with unit scale.
func NewMesh(g *Geometry, m *Material) *Mesh {
	return &Mesh{Enabled: true, Geometry: g, Material: m, Scale: 1}
}

// Transform returns the object-to-world matrix.
func (m *Mesh) Transform() Mat4 {
	return Mat4Compose(m.Position, m.Rotation, m.Scale)
}

// Scene is a collection of objects to render.
type Scene struct {
	Camera Camera
	Light  Light

	meshes []*Mesh
	count  int
}

// CreateScene allocates a scene with a fixed mesh capacity.
func CreateScene(maxMeshes int) *Scene {
	if maxMeshes < 0 {
		maxMeshes = 0
	}
	return &Scene{
		Camera: Camera{
			Position: V3(0, 0, 3),
			Target:   V3(0, 0, 0),
			Up:       V3(0, 1, 0),
			FOVYRad:  Scalar(1.0),
			Near:     Scalar(0.05),
			Far:      Scalar(100),
		},
		Light: Light{
			Mode:      LightAmbientDirectional,
			Ambient:   Scalar(0.25),
			Dir:       Normalize(V3(1, 1, 1)),
			DirAmount: Scalar(0.75),
		},
		meshes: make([]*Mesh, maxMeshes),
	}
}

// Len returns the number of meshes in the scene.
func (s *Scene) Len() int { return s.count }

// Free returns the number of empty slots.
func (s *Scene) Free() int { return len(s.meshes) - s.count }

// AddMesh adds a mesh to the scene and returns its id or -1 if full.
func (s *Scene) AddMesh(m *Mesh) int {
	if s == nil || m == nil {
		return -1
	}
	for i := range s.meshes {
		if s.meshes[i] != nil {
			continue
		}
		if m.Material == nil {
			m.Material = &Material{}
		}
		if m.Material.Opacity == 0 {
			m.Material.Opacity = 0xFF
		}
		if m.Material.BaseColor == (Color{}) {
			m.Material.BaseColor = RGB(0xCC, 0xCC, 0xCC)
		}
		s.meshes[i] = m
		s.count++
		return i
	}
	return -1
}

// Mesh returns the mesh with the given id or nil.
func (s *Scene) Mesh(id int) *Mesh {
	if s == nil || id < 0 || id >= len(s.meshes) {
		return nil
	}
	return s.meshes[id]
}

func (s *Scene) eachMesh(fn func(m *Mesh)) {
	for _, m := range s.meshes {
		if m == nil {
			continue
		}
		fn(m)
	}
}
