package wager

const (
	BaseLandlord = 2
	BaseFarmer   = 1
)

// Multiplier starts at 1 and only doubles within a round.
type Multiplier struct {
	value int
}

func NewMultiplier() *Multiplier {
	return &Multiplier{value: 1}
}

func (m *Multiplier) Double() {
	m.value *= 2
}

func (m *Multiplier) Reset() {
	m.value = 1
}

func (m *Multiplier) Value() int {
	if m.value == 0 {
		return 1
	}
	return m.value
}

// Stakes is what is on the line for each side at the current multiplier.
type Stakes struct {
	Multiplier int `json:"multiplier"`
	Landlord   int `json:"landlord"`
	Farmer     int `json:"farmer"`
}

func (m *Multiplier) Stakes() Stakes {
	v := m.Value()
	return Stakes{Multiplier: v, Landlord: BaseLandlord * v, Farmer: BaseFarmer * v}
}

// Settle returns the point change per seat. landlordWon picks the winning side.
func Settle(seats, landlord int, landlordWon bool, multiplier int) []int {
	deltas := make([]int, seats)
	sign := 1
	if !landlordWon {
		sign = -1
	}
	for i := range deltas {
		if i == landlord {
			deltas[i] = sign * BaseLandlord * multiplier
		} else {
			deltas[i] = -sign * BaseFarmer * multiplier
		}
	}
	return deltas
}
