package showcase

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

const fpsRefreshMS = 500

// NewFPSWidget creates a sprite that shows the current FPS and TPS, redrawn
// about twice a second with ebitenutil.DebugPrint.
func NewFPSWidget() *Node {
	// 100x32 fits "FPS: 60.0\nTPS: 60.0".
	img := ebiten.NewImage(100, 32)
	node := NewSprite("fps-widget", NewTexture("fps-widget", img))

	elapsed := float64(fpsRefreshMS)
	node.OnUpdate = func(deltaMS float64) {
		elapsed += deltaMS
		if elapsed < fpsRefreshMS {
			return
		}
		elapsed = 0

		img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
	return node
}
