package renderer

import "github.com/go-gl/mathgl/mgl32"

type LightKind int

const (
	AmbientLight LightKind = iota
	DirectionalLight
	PointLight
	SpotLight
)

// MaxLights is the size of the light array in the default shader.
const MaxLights = 8

func (k LightKind) String() string {
	switch k {
	case AmbientLight:
		return "ambient"
	case DirectionalLight:
		return "directional"
	case PointLight:
		return "point"
	case SpotLight:
		return "spot"
	}
	return "unknown"
}

type Light struct {
	Kind      LightKind
	Position  mgl32.Vec3 // point, spot
	Direction mgl32.Vec3 // directional, spot (normalized, pointing away from the light)
	Color     mgl32.Vec3
	Intensity float32
	Range     float32 // point, spot; 0 means no falloff
	Angle     float32 // spot: cone half-angle in radians
	Penumbra  float32 // spot: fraction of the cone that fades, 0..1
}

// CreateAmbientLight lights every fragment uniformly.
func CreateAmbientLight(color mgl32.Vec3, intensity float32) Light {
	return Light{Kind: AmbientLight, Color: color, Intensity: intensity}
}

// CreateDirectionalLight creates a directional light shining from position
// towards the origin, the way a key light is usually placed.
func CreateDirectionalLight(position mgl32.Vec3, color mgl32.Vec3, intensity float32) Light {
	return Light{
		Kind:      DirectionalLight,
		Position:  position,
		Direction: towardsOrigin(position),
		Color:     color,
		Intensity: intensity,
	}
}

// CreatePointLight creates a point light fading out at range_.
func CreatePointLight(position mgl32.Vec3, color mgl32.Vec3, intensity float32, range_ float32) Light {
	return Light{
		Kind:      PointLight,
		Position:  position,
		Color:     color,
		Intensity: intensity,
		Range:     range_,
	}
}

// CreateSpotLight creates a spot light aimed at the origin.
func CreateSpotLight(position mgl32.Vec3, color mgl32.Vec3, intensity, angle, penumbra float32) Light {
	return Light{
		Kind:      SpotLight,
		Position:  position,
		Direction: towardsOrigin(position),
		Color:     color,
		Intensity: intensity,
		Angle:     angle,
		Penumbra:  mgl32.Clamp(penumbra, 0, 1),
	}
}

func towardsOrigin(position mgl32.Vec3) mgl32.Vec3 {
	if position.Len() == 0 {
		return mgl32.Vec3{0, -1, 0}
	}
	return position.Mul(-1).Normalize()
}
