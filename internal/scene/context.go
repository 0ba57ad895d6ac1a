// Package scene builds the renderable contents of one navigation context:
// the lighting rig, the hexagon, the decorative models and the ambient
// particle field.
package scene

import (
	"strings"

	"HexScene/internal/physics"
)

// Context identifies where the UI currently is, either "<section>" or
// "<section>-<subpage>".
type Context string

const (
	Hero      Context = "hero"
	Features  Context = "features"
	Solutions Context = "solutions"
	Pricing   Context = "pricing"
	About     Context = "about"
	Contact   Context = "contact"
)

// Sections maps a hexagon face to its top-level context.
var Sections = [physics.FaceCount]Context{Hero, Features, Solutions, Pricing, About, Contact}

// subpages lists the sub-page contexts the site router emits.
var subpages = []Context{
	"features-analytics",
	"features-automation",
	"features-integrations",
	"solutions-enterprise",
	"solutions-startups",
	"pricing-plans",
	"pricing-enterprise",
	"about-team",
	"about-careers",
	"contact-form",
}

// NavigationContexts is every context the navigation layer can produce.
// The registry must describe all of them.
func NavigationContexts() []Context {
	out := make([]Context, 0, len(Sections)+len(subpages))
	out = append(out, Sections[:]...)
	return append(out, subpages...)
}

// SectionContext returns the context for face i, clamped to the hexagon.
func SectionContext(i int) Context {
	return Sections[ClampSection(i)]
}

// ClampSection keeps a section index on the hexagon.
func ClampSection(i int) int {
	return min(max(i, 0), physics.FaceCount-1)
}

// Section is the top-level part of a composite context.
func (c Context) Section() Context {
	section, _, _ := strings.Cut(string(c), "-")
	return Context(section)
}

// SectionIndex is the face index of the context's section, or -1.
func (c Context) SectionIndex() int {
	section := c.Section()
	for i, s := range Sections {
		if s == section {
			return i
		}
	}
	return -1
}

// Atmosphere names a lighting mood.
type Atmosphere string

const (
	Professional      Atmosphere = "professional"
	Vibrant           Atmosphere = "vibrant"
	Technical         Atmosphere = "technical"
	Dynamic           Atmosphere = "dynamic"
	Elegant           Atmosphere = "elegant"
	DefaultAtmosphere Atmosphere = "default"
)

// ModelTag selects a decorative model from the catalog.
type ModelTag string

const (
	Cube       ModelTag = "cube"
	Sphere     ModelTag = "sphere"
	Torus      ModelTag = "torus"
	Octahedron ModelTag = "octahedron"
	Cone       ModelTag = "cone"
	Cylinder   ModelTag = "cylinder"
)
