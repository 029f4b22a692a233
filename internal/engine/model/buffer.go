package model

import "fmt"

// Float sizes of each vertex attribute in the packed buffer.
const (
	PositionSize = 3
	NormalSize   = 3
	TexCoordSize = 2
)

// Segment locates one part inside a packed Buffer. Offset and Count are in
// vertices, not floats.
type Segment struct {
	Name      string
	Offset    int
	Count     int
	Primitive Primitive
}

// Buffer is a single flat attribute array holding every part: all
// positions first, then all normals, then all texture coordinates.
type Buffer struct {
	Data        []float32
	VertexCount int
	Segments    map[string]Segment
}

// NormalOffset returns the float index where the normal section starts.
func (b *Buffer) NormalOffset() int {
	return b.VertexCount * PositionSize
}

// TexCoordOffset returns the float index where the texcoord section starts.
func (b *Buffer) TexCoordOffset() int {
	return b.VertexCount * (PositionSize + NormalSize)
}

// Segment looks up the segment of a named part.
func (b *Buffer) Segment(name string) (Segment, bool) {
	s, ok := b.Segments[name]
	return s, ok
}

// Pack validates the parts and lays them out one after another in a
// single buffer. Part names must be unique.
func Pack(parts ...*Part) (Buffer, error) {
	buf := Buffer{Segments: make(map[string]Segment, len(parts))}

	for _, p := range parts {
		if err := p.Validate(); err != nil {
			return Buffer{}, err
		}
		if _, dup := buf.Segments[p.Name]; dup {
			return Buffer{}, fmt.Errorf("duplicate part %q", p.Name)
		}
		buf.Segments[p.Name] = Segment{
			Name:      p.Name,
			Offset:    buf.VertexCount,
			Count:     p.VertexCount(),
			Primitive: p.Primitive,
		}
		buf.VertexCount += p.VertexCount()
	}

	buf.Data = make([]float32, 0, buf.VertexCount*(PositionSize+NormalSize+TexCoordSize))
	for _, p := range parts {
		for _, v := range p.Positions {
			a := v.Array()
			buf.Data = append(buf.Data, a[:]...)
		}
	}
	for _, p := range parts {
		for _, n := range p.Normals {
			a := n.Array()
			buf.Data = append(buf.Data, a[:]...)
		}
	}
	for _, p := range parts {
		for _, uv := range p.TexCoords {
			a := uv.Array()
			buf.Data = append(buf.Data, a[:]...)
		}
	}

	return buf, nil
}
