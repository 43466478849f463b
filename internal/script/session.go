package script

import (
	"go.uber.org/zap"

	"github.com/Faultbox/solar-roi/internal/config"
	"github.com/Faultbox/solar-roi/internal/design"
	"github.com/Faultbox/solar-roi/internal/designer"
	"github.com/Faultbox/solar-roi/internal/engine/camera"
	"github.com/Faultbox/solar-roi/internal/engine/input"
	"github.com/Faultbox/solar-roi/internal/engine/picking"
	"github.com/Faultbox/solar-roi/internal/engine/scene"
	"github.com/Faultbox/solar-roi/internal/export"
)

// Session is a headless viewer: an in-memory scene and a site camera that
// picks against the ellipsoid, wired to a Designer.
type Session struct {
	Scene    *scene.Memory
	Bus      *input.Bus
	Camera   *camera.SiteCamera
	Designer *designer.Designer
	player   *Player
}

// NewSession builds a headless session from cfg with the script's site and
// viewport overrides applied.
func NewSession(cfg *config.Config, s *Script, sink export.Sink, notifier designer.Notifier, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}

	site := cfg.Site
	width, height := cfg.Viewer.Width, cfg.Viewer.Height
	if s.Site != nil {
		site.Longitude, site.Latitude, site.Height = s.Site.Longitude, s.Site.Latitude, s.Site.Height
		if s.Site.CameraAltitude > 0 {
			site.CameraAltitude = s.Site.CameraAltitude
		}
	}
	if s.Viewport != nil {
		width, height = s.Viewport.Width, s.Viewport.Height
	}

	cam := camera.NewSiteCamera(site.Cartographic(), site.CameraAltitude, site.Heading, site.Pitch, cfg.Viewer.FovDegrees)
	cam.SetViewport(float64(width), float64(height))

	sess := &Session{
		Scene:  scene.NewMemory(),
		Bus:    input.NewBus(),
		Camera: cam,
	}
	sess.Designer = designer.New(designer.Context{
		Scene:   sess.Scene,
		Bus:     sess.Bus,
		Picker:  picking.NewSurfacePicker(cam, site.Height),
		Terrain: design.ConstantTerrain(site.Height),
		Logger:  log.Named("designer"),
	}, cfg.Design, cfg.Export, sink, notifier)
	sess.player = &Player{
		Bus:          sess.Bus,
		Target:       sess.Designer,
		Projector:    cam,
		GroundHeight: site.Height,
		Logger:       log.Named("script"),
	}
	return sess
}

// Play replays s.
func (sess *Session) Play(s *Script) error {
	return sess.player.Play(s)
}
