package assets

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/Faultbox/figurine/internal/engine/model"
	"github.com/Faultbox/figurine/pkg/math"
)

// GLTFSource reads meshes by name from a .gltf or .glb document. Indexed
// primitives are expanded into a flat triangle list; node transforms are
// ignored.
type GLTFSource struct {
	path string
	doc  *gltf.Document
}

// OpenGLTF loads the document at path.
func OpenGLTF(path string) (*GLTFSource, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}
	return &GLTFSource{path: path, doc: doc}, nil
}

// Names lists the mesh names in the document.
func (s *GLTFSource) Names() []string {
	names := make([]string, 0, len(s.doc.Meshes))
	for _, m := range s.doc.Meshes {
		names = append(names, m.Name)
	}
	return names
}

// Mesh implements Source. Normals and TEXCOORD_0 are read when every
// primitive of the mesh has them.
func (s *GLTFSource) Mesh(name string) (*model.Part, error) {
	var mesh *gltf.Mesh
	for _, m := range s.doc.Meshes {
		if m.Name == name {
			mesh = m
			break
		}
	}
	if mesh == nil {
		return nil, fmt.Errorf("%w: %s in %s", ErrMeshNotFound, name, s.path)
	}

	part := &model.Part{Name: name, Primitive: model.Triangles}
	withNormals, withUVs := true, true

	for i, prim := range mesh.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			return nil, fmt.Errorf("mesh %s primitive %d: unsupported mode %v", name, i, prim.Mode)
		}
		v, err := s.readPrimitive(prim)
		if err != nil {
			return nil, fmt.Errorf("mesh %s primitive %d: %w", name, i, err)
		}
		part.Positions = append(part.Positions, v.positions...)
		part.Normals = append(part.Normals, v.normals...)
		part.TexCoords = append(part.TexCoords, v.uvs...)
		withNormals = withNormals && v.normals != nil
		withUVs = withUVs && v.uvs != nil
	}

	if !withNormals {
		part.Normals = nil
	}
	if !withUVs {
		part.TexCoords = make([]math.Vec2, len(part.Positions))
	}
	return part, nil
}

type primitiveData struct {
	positions []math.Vec3
	normals   []math.Vec3
	uvs       []math.Vec2
}

func (s *GLTFSource) readPrimitive(prim *gltf.Primitive) (primitiveData, error) {
	var out primitiveData

	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return out, fmt.Errorf("missing %s attribute", gltf.POSITION)
	}
	positions, err := modeler.ReadPosition(s.doc, s.doc.Accessors[posIdx], nil)
	if err != nil {
		return out, fmt.Errorf("read positions: %w", err)
	}

	var normals [][3]float32
	if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
		normals, err = modeler.ReadNormal(s.doc, s.doc.Accessors[idx], nil)
		if err != nil {
			return out, fmt.Errorf("read normals: %w", err)
		}
	}

	var uvs [][2]float32
	if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		uvs, err = modeler.ReadTextureCoord(s.doc, s.doc.Accessors[idx], nil)
		if err != nil {
			return out, fmt.Errorf("read texcoords: %w", err)
		}
	}

	order := make([]uint32, len(positions))
	for i := range order {
		order[i] = uint32(i)
	}
	if prim.Indices != nil {
		order, err = modeler.ReadIndices(s.doc, s.doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return out, fmt.Errorf("read indices: %w", err)
		}
	}

	for _, i := range order {
		if int(i) >= len(positions) {
			return out, fmt.Errorf("index %d out of range (%d vertices)", i, len(positions))
		}
		p := positions[i]
		out.positions = append(out.positions, math.Vec3{X: p[0], Y: p[1], Z: p[2]})
		if int(i) < len(normals) {
			n := normals[i]
			out.normals = append(out.normals, math.Vec3{X: n[0], Y: n[1], Z: n[2]})
		}
		if int(i) < len(uvs) {
			out.uvs = append(out.uvs, math.Vec2{X: uvs[i][0], Y: uvs[i][1]})
		}
	}
	if len(out.normals) != len(out.positions) {
		out.normals = nil
	}
	if len(out.uvs) != len(out.positions) {
		out.uvs = nil
	}
	return out, nil
}
