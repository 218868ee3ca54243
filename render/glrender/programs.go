package glrender

import (
	_ "embed"
)

//go:embed shaders/skybox.vert
var skyboxVertexShader string

//go:embed shaders/skybox.frag
var skyboxFragmentShader string

//go:embed shaders/color.vert
var colorVertexShader string

//go:embed shaders/color.frag
var colorFragmentShader string

// SkyboxProgram samples one cubemap out of a cubemap array, picked per
// viewport by its skybox selector.
type SkyboxProgram struct {
	*Program

	UProj      int32
	UModelView int32
	UCubemaps  int32
	ULayer     int32
}

func NewSkyboxProgram() *SkyboxProgram {
	sp := &SkyboxProgram{}
	sp.Program = MustLoadProgram(skyboxVertexShader, skyboxFragmentShader)

	sp.UProj = sp.UniformLocation("uProj")
	sp.UModelView = sp.UniformLocation("uModelView")
	sp.UCubemaps = sp.UniformLocation("uCubemaps")
	sp.ULayer = sp.UniformLocation("uLayer")
	return sp
}

// ColorProgram shades vertex-colored meshes with a single point light
// in view space.
type ColorProgram struct {
	*Program

	UProj              int32
	UModelView         int32
	UNormalMatrix      int32
	ULightPositionView int32
	ULightColor        int32
}

func NewColorProgram() *ColorProgram {
	cp := &ColorProgram{}
	cp.Program = MustLoadProgram(colorVertexShader, colorFragmentShader)

	cp.UProj = cp.UniformLocation("uProj")
	cp.UModelView = cp.UniformLocation("uModelView")
	cp.UNormalMatrix = cp.UniformLocation("uNormalMatrix")
	cp.ULightPositionView = cp.UniformLocation("uLightPositionView")
	cp.ULightColor = cp.UniformLocation("uLightColor")
	return cp
}
