package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// ebitenSource reads pointer state from ebiten. Positions come back in
// screen pixels and are divided by the device scale to get logical pixels.
type ebitenSource struct {
	scale    func() float64
	touchBuf []ebiten.TouchID
}

func (s *ebitenSource) logical(x, y int) (int, int) {
	k := s.scale()
	if k <= 0 {
		return x, y
	}
	return int(float64(x) / k), int(float64(y) / k)
}

func (s *ebitenSource) CursorPosition() (int, int) {
	return s.logical(ebiten.CursorPosition())
}

func (s *ebitenSource) MousePressed() bool {
	return ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
}

func (s *ebitenSource) TouchIDs(dst []int) []int {
	s.touchBuf = ebiten.AppendTouchIDs(s.touchBuf[:0])
	for _, id := range s.touchBuf {
		dst = append(dst, int(id))
	}
	return dst
}

func (s *ebitenSource) TouchPosition(id int) (int, int) {
	return s.logical(ebiten.TouchPosition(ebiten.TouchID(id)))
}

func (s *ebitenSource) Focused() bool {
	return ebiten.IsFocused()
}
