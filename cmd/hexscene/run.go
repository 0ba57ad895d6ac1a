package main

import (
	"HexScene/internal/engine"
	"HexScene/internal/logger"
	"HexScene/internal/physics"
	"HexScene/internal/renderer/opengl"
	"HexScene/internal/scene"
	"HexScene/internal/window"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// dragTurn is the yaw applied for a drag across the full window width.
const dragTurn = physics.FaceAngle * 3

func newRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the scene in a window",
		Long: `Open the scene in a window.

Controls:
  Left/Right  - Previous/next section
  1-9         - Jump to a navigation context
  M           - Toggle reduced motion
  Mouse drag  - Turn the hexagon by hand
  Esc         - Quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, registry, err := loadSetup(cmd)
			if err != nil {
				return err
			}

			win, err := window.Open(window.Options{
				Width:   cfg.WindowWidth,
				Height:  cfg.WindowHeight,
				Title:   cfg.Title,
				VSync:   cfg.VSync,
				Samples: cfg.Samples,
			})
			if err != nil {
				return err
			}
			defer win.Close()

			m, err := engine.NewSceneManager(engine.Options{Config: cfg, Registry: registry, Renderer: opengl.NewRenderer()})
			if err != nil {
				return err
			}
			if err := m.Mount(win, 0); err != nil {
				return err
			}
			defer m.Unmount()
			win.SetBorderColor(m.Graph().Rig.Background)

			nav := &navigator{
				m:        m,
				section:  scene.ClampSection(cfg.StartSection),
				reduced:  cfg.ReducedMotion,
				contexts: scene.NavigationContexts(),
			}
			win.OnKey(func(key glfw.Key) {
				if key == glfw.KeyEscape {
					win.SetShouldClose()
					return
				}
				nav.key(key)
			})
			win.OnResize(m.Resize)
			win.OnDrag(m.SetInteracting, func(dx float64) { m.Nudge(dx * dragTurn) })
			m.OnTransitionComplete(func(ctx scene.Context) {
				if g := m.Graph(); g != nil {
					win.SetBorderColor(g.Rig.Background)
				}
			})

			return m.Run(cmd.Context(), win)
		},
	}
	cmd.Flags().BoolVar(&wireframe, "wireframe", false, "Draw the hexagon and models as edges")
	return cmd
}

// navigator maps keys to host navigation the way the site's page
// navigation does.
type navigator struct {
	m        *engine.SceneManager
	section  int
	reduced  bool
	contexts []scene.Context
}

func (n *navigator) key(key glfw.Key) {
	switch {
	case key == glfw.KeyM:
		n.reduced = !n.reduced
		n.m.SetReducedMotion(n.reduced)
		logger.Log.Info("Reduced motion", zap.Bool("enabled", n.reduced))
	case key == glfw.KeyLeft || key == glfw.KeyRight:
		// Hold navigation while the camera is moving.
		if n.m.IsTransitioning() {
			return
		}
		step := 1
		if key == glfw.KeyLeft {
			step = physics.FaceCount - 1
		}
		n.section = (n.section + step) % physics.FaceCount
		n.m.SetSectionIndex(n.section)
		n.m.SetContext(string(scene.SectionContext(n.section)))
	case key >= glfw.Key1 && key <= glfw.Key9:
		if n.m.IsTransitioning() {
			return
		}
		i := int(key - glfw.Key1)
		if i >= len(n.contexts) {
			return
		}
		ctx := n.contexts[i]
		if s := ctx.SectionIndex(); s >= 0 {
			n.section = s
			n.m.SetSectionIndex(s)
		}
		n.m.SetContext(string(ctx))
	}
}
