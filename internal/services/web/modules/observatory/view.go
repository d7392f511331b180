package observatory

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/orbitwatch/missioncontrol/internal/observatory/camera"
	"github.com/orbitwatch/missioncontrol/internal/observatory/catalog"
	"github.com/orbitwatch/missioncontrol/internal/observatory/orbit"
)

// Stream command types sent by the viewer.
const (
	commandFocus   = "focus"
	commandUnfocus = "unfocus"
	commandSelect  = "select"
)

// startPosition is where every stream's camera begins.
var startPosition = mgl64.Vec3{0, 6, 14}

// command is one client message on the stream.
type command struct {
	Type      string `json:"type"`
	Satellite string `json:"satellite,omitempty"`
}

// frame is one server message on the stream.
type frame struct {
	Time     time.Time   `json:"time"`
	Selected string      `json:"selected,omitempty"`
	Focused  bool        `json:"focused"`
	Camera   cameraFrame `json:"camera"`
	Bodies   []bodyFrame `json:"bodies"`
}

type cameraFrame struct {
	Position [3]float64 `json:"position"`
	Target   [3]float64 `json:"target"`
	// Orientation is the view rotation as a unit quaternion (w, x, y, z).
	Orientation [4]float64 `json:"orientation"`
	Settled     bool       `json:"settled"`
}

type bodyFrame struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Color    string     `json:"color"`
	Position [3]float64 `json:"position"`
}

// viewer is the per-stream camera state. It is owned by the frame loop.
type viewer struct {
	cam        *camera.PerspectiveCamera
	controller *camera.Controller
	selected   string
	focused    bool
}

func newViewer() *viewer {
	cam := camera.NewPerspectiveCamera(startPosition)
	return &viewer{cam: cam, controller: camera.NewController(cam, startPosition)}
}

// apply updates the selection. Commands naming unknown satellites are
// ignored and reported as false.
func (v *viewer) apply(cat *catalog.Catalog, cmd command) bool {
	switch cmd.Type {
	case commandFocus, commandSelect:
		if _, ok := cat.Satellite(cmd.Satellite); !ok {
			return false
		}
		v.selected = cmd.Satellite
		v.focused = cmd.Type == commandFocus
		return true
	case commandUnfocus:
		v.focused = false
		return true
	default:
		return false
	}
}

// step propagates the catalog to now, retargets the controller at the
// selected satellite, and advances the camera by dt.
func (v *viewer) step(cat *catalog.Catalog, now time.Time, dt time.Duration) frame {
	bodies := orbit.Snapshot(cat, now)
	out := frame{Time: now.UTC(), Bodies: make([]bodyFrame, 0, len(bodies))}

	var target *mgl64.Vec3
	for _, body := range bodies {
		if body.ID == v.selected {
			position := body.Position
			target = &position
		}
		out.Bodies = append(out.Bodies, bodyFrame{
			ID:       body.ID,
			Name:     body.Name,
			Color:    body.Color,
			Position: body.Position,
		})
	}
	if target == nil {
		// The selection left the catalog on reload.
		v.selected = ""
		v.focused = false
	}
	v.controller.SetFocus(target, v.focused)
	v.controller.OnFrame(dt)

	out.Selected = v.selected
	out.Focused = v.focused
	q := v.cam.Orientation()
	out.Camera = cameraFrame{
		Position:    v.cam.Position(),
		Target:      v.cam.Target(),
		Orientation: [4]float64{q.W, q.V[0], q.V[1], q.V[2]},
		Settled:     v.controller.Settled(),
	}
	return out
}
