package grid

// Direction is a direction of travel. The numeric values are the encoding
// of the flow register in compiled programs.
type Direction uint8

const (
	Left Direction = iota
	Right
	Up
	Down
)

// Directions lists all directions in register encoding order.
var Directions = [...]Direction{Left, Right, Up, Down}

var directionNames = [...]string{"left", "right", "up", "down"}

func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return "invalid"
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	switch d {
	case Left:
		return Right
	case Right:
		return Left
	case Up:
		return Down
	default:
		return Up
	}
}
