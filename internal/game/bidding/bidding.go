// Package bidding decides who takes the three bottom cards and becomes landlord.
//
// The seat holding the face-up card is offered the bottom cards first and the
// offer moves round the table. If all three seats decline, every hand is
// revealed and the offer restarts from the same seat; after two more
// refusals the remaining seat is made landlord without doubling the wager.
package bidding

const seats = 3

type Result int

const (
	// Ignored means the decision came from the wrong seat or after the landlord was settled.
	Ignored Result = iota
	Continue
	Revealed
	Assigned
)

// Outcome describes what a single decision changed.
type Outcome struct {
	Result   Result
	Next     int // seat now being offered the cards
	Landlord int
	Doubled  bool
	Forced   bool
}

type Bidding struct {
	origin   int
	pick     int
	attempts int
	revealed bool
	landlord int
}

func New(origin int) *Bidding {
	return &Bidding{origin: origin, pick: origin, landlord: -1}
}

func (b *Bidding) Pick() int { return b.pick }

func (b *Bidding) Origin() int { return b.origin }

func (b *Bidding) Attempts() int { return b.attempts }

func (b *Bidding) IsRevealed() bool { return b.revealed }

// Landlord returns the assigned seat, or -1 while undecided.
func (b *Bidding) Landlord() int { return b.landlord }

func (b *Bidding) Done() bool { return b.landlord >= 0 }

// Decide applies seat's answer to the offer.
func (b *Bidding) Decide(seat int, take bool) Outcome {
	if b.Done() || seat != b.pick {
		return Outcome{Result: Ignored, Next: b.pick, Landlord: b.landlord}
	}

	if take {
		b.landlord = seat
		return Outcome{Result: Assigned, Next: seat, Landlord: seat, Doubled: !b.revealed}
	}

	b.attempts++
	if !b.revealed {
		if b.attempts == seats {
			b.revealed = true
			b.pick = b.origin
			b.attempts = 0
			return Outcome{Result: Revealed, Next: b.pick, Landlord: -1}
		}
		b.pick = next(b.pick)
		return Outcome{Result: Continue, Next: b.pick, Landlord: -1}
	}

	if b.attempts == seats-1 {
		b.landlord = next(b.pick)
		b.pick = b.landlord
		return Outcome{Result: Assigned, Next: b.landlord, Landlord: b.landlord, Forced: true}
	}
	b.pick = next(b.pick)
	return Outcome{Result: Continue, Next: b.pick, Landlord: -1}
}

func next(seat int) int {
	return (seat + 1) % seats
}
