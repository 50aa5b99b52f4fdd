package flappybox

import (
	"math/rand"

	"github.com/vovakirdan/arcade-portal/internal/config"
	"github.com/vovakirdan/arcade-portal/internal/core"
)

// Pipe is a vertical obstacle with a gap the box must pass through.
type Pipe struct {
	X      float64 // Left edge
	GapY   float64 // Top of the gap
	Passed bool    // Whether the box has passed this pipe
}

// TopRect returns the collision rectangle above the gap.
func (p Pipe) TopRect(cfg config.FlappyBoxConfig) core.RectF {
	return core.NewRectF(p.X, 0, cfg.PipeWidth, p.GapY)
}

// BottomRect returns the collision rectangle below the gap.
func (p Pipe) BottomRect(cfg config.FlappyBoxConfig, height float64) core.RectF {
	bottom := p.GapY + cfg.PipeGap
	return core.NewRectF(p.X, bottom, cfg.PipeWidth, height-bottom)
}

// PipeManager spawns, moves and retires pipes.
type PipeManager struct {
	cfg    config.FlappyBoxConfig
	rng    *rand.Rand
	width  float64
	height float64
	pipes  []Pipe
}

// NewPipeManager creates a manager with one pipe at the right edge.
func NewPipeManager(cfg config.FlappyBoxConfig, seed int64, width, height float64) *PipeManager {
	pm := &PipeManager{
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(seed)),
		width:  width,
		height: height,
	}
	pm.spawn()
	return pm
}

func (pm *PipeManager) spawn() {
	pm.pipes = append(pm.pipes, Pipe{
		X:    pm.width,
		GapY: pm.rng.Float64() * (pm.height - pm.cfg.PipeGap),
	})
}

// Update moves every pipe and returns how many pipes were passed by an
// object whose left edge is at x.
func (pm *PipeManager) Update(x float64) int {
	passed := 0
	for i := range pm.pipes {
		pm.pipes[i].X -= pm.cfg.PipeSpeed
		if !pm.pipes[i].Passed && pm.pipes[i].X+pm.cfg.PipeWidth < x {
			pm.pipes[i].Passed = true
			passed++
		}
	}

	// Drop pipes that left the screen.
	kept := pm.pipes[:0]
	for _, p := range pm.pipes {
		if p.X+pm.cfg.PipeWidth >= 0 {
			kept = append(kept, p)
		}
	}
	pm.pipes = kept

	if len(pm.pipes) == 0 || pm.pipes[len(pm.pipes)-1].X < pm.width-pm.cfg.PipeSpacing {
		pm.spawn()
	}
	return passed
}

// Collides reports whether r touches any pipe.
func (pm *PipeManager) Collides(r core.RectF) bool {
	for _, p := range pm.pipes {
		if r.Intersects(p.TopRect(pm.cfg)) || r.Intersects(p.BottomRect(pm.cfg, pm.height)) {
			return true
		}
	}
	return false
}

// Pipes returns the live pipes.
func (pm *PipeManager) Pipes() []Pipe {
	return pm.pipes
}
