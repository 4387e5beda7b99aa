package array

import (
	"fmt"
	"io"

	"github.com/tilecube/tilecube/format"
)

// DumpTo writes a human-readable description of the metadata. The text is
// diagnostic output, not a compatibility surface.
func (m *Metadata) DumpTo(w io.Writer) error {
	var err error
	p := func(msg string, args ...any) {
		if err == nil {
			_, err = fmt.Fprintf(w, msg, args...)
		}
	}

	p("=== Array metadata ===\n")
	p("- Array URI: %s\n", m.uri)
	p("- Array type: %s\n", m.arrayType)
	p("- Tile order: %s\n", m.tileOrder)
	p("- Cell order: %s\n", m.cellOrder)
	p("- Capacity: %d\n", m.capacity)
	p("- Coordinates type: %s\n", m.coordsType)
	p("- Coordinates size: %d\n", m.coordsSize)
	p("- Coordinates compression: %s (level %d)\n", CoordsCompression, CoordsCompressionLevel)
	if m.arrayType == format.Dense {
		p("- Cell num per tile: %d\n", m.cellNumPerTile)
	}
	if m.tileExtents != nil {
		p("- Tile num: %d\n", m.totalTileNum)
	}

	for _, d := range m.space.dims {
		p("\n=== Dimension ===\n")
		p("- Name: %s\n", d.name)
		p("- Type: %s\n", d.dtype)
		p("- Domain: [%s]\n", formatValues(m.geom, d.domain, 2))
		if d.extent != nil {
			p("- Tile extent: %s\n", formatValues(m.geom, d.extent, 1))
		} else {
			p("- Tile extent: none\n")
		}
	}

	for i, a := range m.attrs {
		p("\n=== Attribute ===\n")
		p("- Name: %s\n", a.name)
		p("- Type: %s\n", a.dtype)
		if a.VarSize() {
			p("- Cell val num: var\n")
		} else {
			p("- Cell val num: %d\n", a.cellValNum)
		}
		p("- Compressor: %s\n", a.compressor)
		p("- Compression level: %d\n", a.level)
		p("- Cell size: %d\n", m.cellSizes[i])
	}

	return err
}
