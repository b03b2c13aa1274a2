package red

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/red/gl"
)

// formatInfo is how one vertex format is described to GL.
type formatInfo struct {
	components int32
	xtype      uint32
	normalized bool
	integer    bool // read through VertexAttribIPointer
	size       int
}

var vertexFormats = map[gputypes.VertexFormat]formatInfo{
	gputypes.VertexFormatFloat32:   {components: 1, xtype: gl.Float, size: 4},
	gputypes.VertexFormatFloat32x2: {components: 2, xtype: gl.Float, size: 8},
	gputypes.VertexFormatFloat32x3: {components: 3, xtype: gl.Float, size: 12},
	gputypes.VertexFormatFloat32x4: {components: 4, xtype: gl.Float, size: 16},

	gputypes.VertexFormatSint32:   {components: 1, xtype: gl.Int, integer: true, size: 4},
	gputypes.VertexFormatSint32x2: {components: 2, xtype: gl.Int, integer: true, size: 8},
	gputypes.VertexFormatSint32x3: {components: 3, xtype: gl.Int, integer: true, size: 12},
	gputypes.VertexFormatSint32x4: {components: 4, xtype: gl.Int, integer: true, size: 16},

	gputypes.VertexFormatUint32:   {components: 1, xtype: gl.UnsignedInt, integer: true, size: 4},
	gputypes.VertexFormatUint32x2: {components: 2, xtype: gl.UnsignedInt, integer: true, size: 8},
	gputypes.VertexFormatUint32x3: {components: 3, xtype: gl.UnsignedInt, integer: true, size: 12},
	gputypes.VertexFormatUint32x4: {components: 4, xtype: gl.UnsignedInt, integer: true, size: 16},

	gputypes.VertexFormatUnorm8x4: {components: 4, xtype: gl.UnsignedByte, normalized: true, size: 4},
}

func lookupFormat(f gputypes.VertexFormat) (formatInfo, error) {
	info, ok := vertexFormats[f]
	if !ok {
		return formatInfo{}, fmt.Errorf("%w: %v", ErrUnsupportedFormat, f)
	}
	return info, nil
}

// FormatSize returns the byte size of one value of format f.
func FormatSize(f gputypes.VertexFormat) (int, error) {
	info, err := lookupFormat(f)
	if err != nil {
		return 0, err
	}
	return info.size, nil
}

// describe issues the enable and pointer calls for one attribute.
func (info formatInfo) describe(raw gl.Context, location uint32, stride, offset int32) {
	raw.EnableVertexAttribArray(location)
	if info.integer {
		raw.VertexAttribIPointer(location, info.components, info.xtype, stride, offset)
		return
	}
	raw.VertexAttribPointer(location, info.components, info.xtype, info.normalized, stride, offset)
}
