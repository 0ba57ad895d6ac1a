package scene

import (
	"math"

	"HexScene/internal/logger"
	"HexScene/internal/renderer"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Rig is the light set and background for one atmosphere.
type Rig struct {
	Atmosphere Atmosphere
	Lights     []renderer.Light
	Background mgl32.Vec3
}

var (
	white     = mgl32.Vec3{1, 1, 1}
	coolWhite = mgl32.Vec3{0.85, 0.9, 1}
	warmWhite = mgl32.Vec3{1, 0.92, 0.8}
	magenta   = mgl32.Vec3{1, 0.2, 0.8}
	cyan      = mgl32.Vec3{0.1, 0.9, 1}
	violet    = mgl32.Vec3{0.55, 0.3, 1}
	orange    = mgl32.Vec3{1, 0.55, 0.15}
	gold      = mgl32.Vec3{1, 0.8, 0.35}
	techGreen = mgl32.Vec3{0.4, 1, 0.7}
)

// BuildLighting returns a fresh rig for the atmosphere. Unknown or empty
// tags get the default ambient + directional rig.
func BuildLighting(atmosphere Atmosphere) Rig {
	switch atmosphere {
	case Professional:
		return Rig{
			Atmosphere: Professional,
			Background: mgl32.Vec3{0.04, 0.05, 0.08},
			Lights: []renderer.Light{
				renderer.CreateAmbientLight(coolWhite, 0.4),
				renderer.CreateDirectionalLight(mgl32.Vec3{5, 10, 7}, white, 0.9),
			},
		}
	case Vibrant:
		return Rig{
			Atmosphere: Vibrant,
			Background: mgl32.Vec3{0.06, 0.02, 0.08},
			Lights: []renderer.Light{
				renderer.CreateAmbientLight(white, 0.15),
				renderer.CreatePointLight(mgl32.Vec3{-6, 4, 6}, violet, 1.4, 30),
				renderer.CreatePointLight(mgl32.Vec3{6, -2, 6}, orange, 1.2, 30),
			},
		}
	case Technical:
		return Rig{
			Atmosphere: Technical,
			Background: mgl32.Vec3{0.01, 0.03, 0.03},
			Lights: []renderer.Light{
				renderer.CreateAmbientLight(techGreen, 0.08),
				renderer.CreateSpotLight(mgl32.Vec3{0, 12, 4}, white, 1.8, math.Pi/12, 0.25),
			},
		}
	case Dynamic:
		return Rig{
			Atmosphere: Dynamic,
			Background: mgl32.Vec3{0.03, 0.02, 0.06},
			Lights: []renderer.Light{
				renderer.CreateAmbientLight(white, 0.25),
				renderer.CreateDirectionalLight(mgl32.Vec3{-4, 8, 6}, white, 0.7),
				renderer.CreatePointLight(mgl32.Vec3{-8, 2, -4}, magenta, 1.5, 25),
				renderer.CreatePointLight(mgl32.Vec3{8, 2, -4}, cyan, 1.5, 25),
			},
		}
	case Elegant:
		return Rig{
			Atmosphere: Elegant,
			Background: mgl32.Vec3{0.07, 0.05, 0.04},
			Lights: []renderer.Light{
				renderer.CreateAmbientLight(warmWhite, 0.35),
				renderer.CreateDirectionalLight(mgl32.Vec3{3, 9, 9}, warmWhite, 0.5),
				renderer.CreatePointLight(mgl32.Vec3{0, 5, 5}, gold, 1.1, 20),
			},
		}
	}

	if atmosphere != DefaultAtmosphere {
		logger.Log.Debug("Unknown atmosphere, using default rig", zap.String("atmosphere", string(atmosphere)))
	}
	return Rig{
		Atmosphere: DefaultAtmosphere,
		Background: mgl32.Vec3{0.05, 0.05, 0.06},
		Lights: []renderer.Light{
			renderer.CreateAmbientLight(white, 0.4),
			renderer.CreateDirectionalLight(mgl32.Vec3{5, 10, 7}, white, 0.8),
		},
	}
}
