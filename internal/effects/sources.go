package effects

import _ "embed"

// Shader sources are embedded so the binary is self-contained; they are
// compiled at startup (see Library).

//go:embed shaders/quad.hlsl
var srcQuadVS string

//go:embed shaders/extend.hlsl
var srcExtendCS string

//go:embed shaders/passthru.hlsl
var srcPassthru string

//go:embed shaders/wobbly.hlsl
var srcWobbly string

//go:embed shaders/lightning.hlsl
var srcLightning string

//go:embed shaders/sorty.hlsl
var srcSorty string

//go:embed shaders/tiles.hlsl
var srcTiles string

//go:embed assets/glyphs.png
var glyphSheetPNG []byte

// QuadVertexSource returns the full-screen quad vertex shader.
func QuadVertexSource() string { return srcQuadVS }

// ExtendComputeSource returns the boundary-extend compute shader.
func ExtendComputeSource() string { return srcExtendCS }
