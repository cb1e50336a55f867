// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// MeshVertexShader transforms lit geometry.
//
//go:embed mesh.vert
var MeshVertexShader string

// MeshFragmentShader shades lit geometry with a point light, ambient light,
// emission and exponential fog.
//
//go:embed mesh.frag
var MeshFragmentShader string

//go:embed line.vert
var LineVertexShader string

//go:embed line.frag
var LineFragmentShader string

// PointsVertexShader sizes points by distance.
//
//go:embed points.vert
var PointsVertexShader string

//go:embed points.frag
var PointsFragmentShader string

// FullscreenVertexShader emits a viewport-covering triangle from gl_VertexID.
//
//go:embed fullscreen.vert
var FullscreenVertexShader string

//go:embed bright.frag
var BrightPassFragmentShader string

// BlurFragmentShader needs MAX_RADIUS defined before compiling.
//
//go:embed blur.frag
var BlurFragmentShader string

// CompositeFragmentShader needs MIP_COUNT defined before compiling.
//
//go:embed composite.frag
var CompositeFragmentShader string
