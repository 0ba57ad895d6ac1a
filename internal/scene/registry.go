package scene

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"

	"HexScene/internal/logger"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed scenes.yaml
var defaultTable []byte

// DefaultCameraTarget is where the camera goes for an unknown context.
var DefaultCameraTarget = mgl32.Vec3{0, 3, 12}

// Fallback is the descriptor used for contexts missing from the registry.
var Fallback = Descriptor{
	CameraTarget: DefaultCameraTarget,
	Atmosphere:   DefaultAtmosphere,
}

var ErrInvalidDescriptor = errors.New("scene: invalid descriptor")

// Descriptor is the static recipe for one context's scene.
type Descriptor struct {
	CameraTarget mgl32.Vec3
	Atmosphere   Atmosphere
	Models       []ModelTag
}

type descriptorEntry struct {
	Camera     []float32 `yaml:"camera"`
	Atmosphere string    `yaml:"atmosphere"`
	Models     []string  `yaml:"models"`
}

type table struct {
	Scenes map[string]descriptorEntry `yaml:"scenes"`
}

// Registry is the read-only context -> descriptor table.
type Registry struct {
	descriptors map[Context]Descriptor
}

// DefaultRegistry loads the embedded scene table.
func DefaultRegistry() (*Registry, error) {
	return LoadRegistry(bytes.NewReader(defaultTable))
}

// LoadRegistry decodes a YAML scene table.
func LoadRegistry(r io.Reader) (*Registry, error) {
	var t table
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil {
		return nil, fmt.Errorf("scene: decode table: %w", err)
	}

	reg := &Registry{descriptors: make(map[Context]Descriptor, len(t.Scenes))}
	for key, entry := range t.Scenes {
		if len(entry.Camera) != 3 {
			return nil, fmt.Errorf("%w: %q camera needs 3 components, got %d", ErrInvalidDescriptor, key, len(entry.Camera))
		}
		d := Descriptor{
			CameraTarget: mgl32.Vec3{entry.Camera[0], entry.Camera[1], entry.Camera[2]},
			Atmosphere:   Atmosphere(entry.Atmosphere),
		}
		for _, m := range entry.Models {
			d.Models = append(d.Models, ModelTag(m))
		}
		reg.descriptors[Context(key)] = d
	}
	return reg, nil
}

// Lookup returns the descriptor for an exact context match.
func (r *Registry) Lookup(ctx Context) (Descriptor, bool) {
	d, ok := r.descriptors[ctx]
	if !ok {
		return Descriptor{}, false
	}
	d.Models = slices.Clone(d.Models)
	return d, true
}

// Resolve never fails: unknown contexts get Fallback and ok is false.
func (r *Registry) Resolve(ctx Context) (Descriptor, bool) {
	if d, ok := r.Lookup(ctx); ok {
		return d, true
	}
	logger.Log.Debug("Unknown scene context, using fallback", zap.String("context", string(ctx)))
	return Fallback, false
}

// Contexts lists the registered contexts in sorted order.
func (r *Registry) Contexts() []Context {
	out := make([]Context, 0, len(r.descriptors))
	for ctx := range r.descriptors {
		out = append(out, ctx)
	}
	slices.Sort(out)
	return out
}

func (r *Registry) Len() int {
	return len(r.descriptors)
}

// Validate checks that every context in contexts is registered and that
// every registered camera target is usable. All problems are reported.
func (r *Registry) Validate(contexts []Context) error {
	var errs []error
	for _, ctx := range contexts {
		if _, ok := r.descriptors[ctx]; !ok {
			errs = append(errs, fmt.Errorf("%w: no descriptor for %q", ErrInvalidDescriptor, ctx))
		}
	}
	for _, ctx := range r.Contexts() {
		target := r.descriptors[ctx].CameraTarget
		switch {
		case !finiteVec(target):
			errs = append(errs, fmt.Errorf("%w: %q camera target %v is not finite", ErrInvalidDescriptor, ctx, target))
		case target.Len() < 1e-3:
			// The camera looks at the origin, so it cannot sit there.
			errs = append(errs, fmt.Errorf("%w: %q camera target is at the origin", ErrInvalidDescriptor, ctx))
		}
	}
	return errors.Join(errs...)
}

func finiteVec(v mgl32.Vec3) bool {
	for _, c := range v {
		if math.IsNaN(float64(c)) || math.IsInf(float64(c), 0) {
			return false
		}
	}
	return true
}
