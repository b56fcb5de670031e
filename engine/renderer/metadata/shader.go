package metadata

// ShaderStage identifies one module of a shader program.
type ShaderStage uint8

const (
	StageVertex ShaderStage = iota
	StageFragment
	StageGeometry
	StageTesselationControl
	StageTesselationEvaluation
	StageMesh
	StageCompute
	stageCount
)

// ShaderStageCount is the number of distinct stages.
const ShaderStageCount = int(stageCount)

func (s ShaderStage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	case StageGeometry:
		return "geometry"
	case StageTesselationControl:
		return "tesselation_control"
	case StageTesselationEvaluation:
		return "tesselation_evaluation"
	case StageMesh:
		return "mesh"
	case StageCompute:
		return "compute"
	}
	return "unknown"
}

// ParseShaderStage resolves the source-side stage name.
func ParseShaderStage(name string) (ShaderStage, bool) {
	switch name {
	case "vertex":
		return StageVertex, true
	case "fragment":
		return StageFragment, true
	case "geometry":
		return StageGeometry, true
	case "tesselation_control":
		return StageTesselationControl, true
	case "tesselation_evaluation":
		return StageTesselationEvaluation, true
	case "mesh":
		return StageMesh, true
	case "compute":
		return StageCompute, true
	}
	return 0, false
}

// ShaderSource is the asset-side record of a single GLSL module before
// preprocessing.
type ShaderSource struct {
	Path   string
	Source string
}
