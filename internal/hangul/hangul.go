// Package hangul decodes Hangul syllable blocks into their initial, medial and final jamo.
package hangul

import "fmt"

const (
	// First is the first code point of the Hangul syllables block.
	First rune = 0xAC00
	// Last is the last code point of the Hangul syllables block.
	Last rune = 0xD7A3

	medialCount = 21
	finalCount  = 28
)

// Syllable is a decoded source character.
type Syllable struct {
	Initial Initial
	Medial  Medial
	Final   Final
	Char    rune // source character, kept for diagnostics
}

// IsSyllable returns whether the rune lies in the Hangul syllables block.
func IsSyllable(r rune) bool {
	return r >= First && r <= Last
}

// Decode splits a rune into its jamo. Runes outside of the syllables block
// decode to the sentinel with all three components set to None.
func Decode(r rune) Syllable {
	if !IsSyllable(r) {
		return Syllable{
			Initial: InitialNone,
			Medial:  MedialNone,
			Final:   FinalNone,
			Char:    r,
		}
	}

	u := int(r - First)
	return Syllable{
		Initial: Initial(u / (medialCount * finalCount)),
		Medial:  Medial((u / finalCount) % medialCount),
		Final:   Final(u % finalCount),
		Char:    r,
	}
}

// Compose is the inverse of Decode. It returns false if any component is
// out of range or the initial or medial is the None sentinel.
func Compose(initial Initial, medial Medial, final Final) (rune, bool) {
	if initial >= InitialNone || medial >= MedialNone || final >= finalCount {
		return 0, false
	}
	u := (int(initial)*medialCount+int(medial))*finalCount + int(final)
	return First + rune(u), true
}

// MustCompose works like Compose but panics on invalid components.
func MustCompose(initial Initial, medial Medial, final Final) rune {
	r, ok := Compose(initial, medial, final)
	if !ok {
		panic(fmt.Sprintf("invalid jamo combination %s %s %s", initial, medial, final))
	}
	return r
}

// IsNone returns whether the syllable is the sentinel for a non Hangul character.
func (s Syllable) IsNone() bool {
	return s.Initial == InitialNone && s.Medial == MedialNone && s.Final == FinalNone
}

func (s Syllable) String() string {
	if s.IsNone() {
		return fmt.Sprintf("%q", s.Char)
	}
	return fmt.Sprintf("%c(%s%s%s)", s.Char, s.Initial, s.Medial, s.Final)
}
