package core

// Color identifies what occupies a board cell. The platform layer maps
// these to terminal colors.
type Color uint8

const (
	ColorEmpty Color = iota
	ColorSnakeHead
	ColorSnakeBody
	ColorCommonItem
	ColorBonusItem
	ColorObstacle
)
