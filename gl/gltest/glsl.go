package gltest

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/gogpu/red/gl"
)

// declRe matches top-level GLSL interface declarations such as
//
//	layout(location = 2) in vec2 position;
//	attribute vec3 normal;
//	uniform highp mat4 u_proj;
var declRe = regexp.MustCompile(`(?m)^\s*(?:layout\s*\(\s*location\s*=\s*(\d+)\s*\)\s*)?(in|attribute|uniform)\s+(?:(?:lowp|mediump|highp)\s+)?\w+\s+(\w+)\s*(?:\[\s*\d+\s*\])?\s*;`)

var errorRe = regexp.MustCompile(`(?m)^\s*#error\s*(.*)$`)

func compileGLSL(source string) (bool, string) {
	if m := errorRe.FindStringSubmatch(source); m != nil {
		return false, "0:1: error: " + strings.TrimSpace(m[1])
	}
	if !strings.Contains(source, "main") {
		return false, "0:1: error: missing entry point main"
	}
	return true, ""
}

// orderByKind sorts shaders vertex stage first, then by source so that
// location assignment does not depend on map iteration order.
func orderByKind(shaders []*shader) []*shader {
	out := append([]*shader(nil), shaders...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].kind != out[j].kind {
			return out[i].kind == gl.VertexShader
		}
		return out[i].source < out[j].source
	})
	return out
}

// declare adds the attributes and uniforms declared by s to p. Vertex
// inputs get explicit layout locations when present, otherwise the next
// free location in declaration order.
func declare(p *program, s *shader) {
	for _, m := range declRe.FindAllStringSubmatch(s.source, -1) {
		explicit, qualifier, name := m[1], m[2], m[3]
		switch qualifier {
		case "uniform":
			if _, ok := p.uniforms[name]; !ok {
				p.uniforms[name] = int32(len(p.uniforms))
			}
		case "in", "attribute":
			if s.kind != gl.VertexShader {
				continue
			}
			loc := int32(len(p.attribs))
			if explicit != "" {
				n, _ := strconv.Atoi(explicit)
				loc = int32(n)
			}
			p.attribs[name] = loc
		}
	}
}
