package hangul

// Initial is the leading consonant of a syllable, it selects the operation.
type Initial uint8

// Initial consonants in Unicode order.
const (
	InitialG    Initial = iota // ㄱ
	InitialKK                  // ㄲ
	InitialN                   // ㄴ
	InitialD                   // ㄷ
	InitialTT                  // ㄸ
	InitialR                   // ㄹ
	InitialM                   // ㅁ
	InitialB                   // ㅂ
	InitialPP                  // ㅃ
	InitialS                   // ㅅ
	InitialSS                  // ㅆ
	InitialIeung               // ㅇ
	InitialJ                   // ㅈ
	InitialJJ                  // ㅉ
	InitialCh                  // ㅊ
	InitialK                   // ㅋ
	InitialT                   // ㅌ
	InitialP                   // ㅍ
	InitialH                   // ㅎ
	InitialNone
)

var initialJamo = [...]string{
	"ㄱ", "ㄲ", "ㄴ", "ㄷ", "ㄸ", "ㄹ", "ㅁ", "ㅂ", "ㅃ", "ㅅ",
	"ㅆ", "ㅇ", "ㅈ", "ㅉ", "ㅊ", "ㅋ", "ㅌ", "ㅍ", "ㅎ",
}

func (i Initial) String() string {
	if int(i) < len(initialJamo) {
		return initialJamo[i]
	}
	return "-"
}

// Medial is the vowel of a syllable, it selects the direction of travel.
type Medial uint8

// Medial vowels in Unicode order.
const (
	MedialA   Medial = iota // ㅏ
	MedialAE                // ㅐ
	MedialYA                // ㅑ
	MedialYAE               // ㅒ
	MedialEO                // ㅓ
	MedialE                 // ㅔ
	MedialYEO               // ㅕ
	MedialYE                // ㅖ
	MedialO                 // ㅗ
	MedialWA                // ㅘ
	MedialWAE               // ㅙ
	MedialOE                // ㅚ
	MedialYO                // ㅛ
	MedialU                 // ㅜ
	MedialWO                // ㅝ
	MedialWE                // ㅞ
	MedialWI                // ㅟ
	MedialYU                // ㅠ
	MedialEU                // ㅡ
	MedialUI                // ㅢ
	MedialI                 // ㅣ
	MedialNone
)

var medialJamo = [...]string{
	"ㅏ", "ㅐ", "ㅑ", "ㅒ", "ㅓ", "ㅔ", "ㅕ", "ㅖ", "ㅗ", "ㅘ", "ㅙ",
	"ㅚ", "ㅛ", "ㅜ", "ㅝ", "ㅞ", "ㅟ", "ㅠ", "ㅡ", "ㅢ", "ㅣ",
}

func (m Medial) String() string {
	if int(m) < len(medialJamo) {
		return medialJamo[m]
	}
	return "-"
}

// MedialKind classifies how a vowel affects the direction of travel.
type MedialKind uint8

const (
	PassThrough MedialKind = iota // keeps the current direction
	Directional                   // sets a fixed direction
	Reflecting                    // mirrors the current direction
)

// Kind returns the direction class of the vowel.
func (m Medial) Kind() MedialKind {
	switch m {
	case MedialA, MedialYA, MedialEO, MedialYEO, MedialO, MedialYO, MedialU, MedialYU:
		return Directional
	case MedialEU, MedialUI, MedialI:
		return Reflecting
	default:
		return PassThrough
	}
}

// Steps returns the number of cells a directional vowel moves, 0 for all
// other vowels.
func (m Medial) Steps() int {
	switch m {
	case MedialA, MedialEO, MedialO, MedialU:
		return 1
	case MedialYA, MedialYEO, MedialYO, MedialYU:
		return 2
	default:
		return 0
	}
}

// Final is the trailing consonant of a syllable, it is the operand.
type Final uint8

// Final consonants in Unicode order.
const (
	FinalNone Final = iota
	FinalG          // ㄱ
	FinalKK         // ㄲ
	FinalGS         // ㄳ
	FinalN          // ㄴ
	FinalNJ         // ㄵ
	FinalNH         // ㄶ
	FinalD          // ㄷ
	FinalL          // ㄹ
	FinalLG         // ㄺ
	FinalLM         // ㄻ
	FinalLB         // ㄼ
	FinalLS         // ㄽ
	FinalLT         // ㄾ
	FinalLP         // ㄿ
	FinalLH         // ㅀ
	FinalM          // ㅁ
	FinalB          // ㅂ
	FinalBS         // ㅄ
	FinalS          // ㅅ
	FinalSS         // ㅆ
	FinalNG         // ㅇ, integer I/O
	FinalJ          // ㅈ
	FinalCh         // ㅊ
	FinalK          // ㅋ
	FinalT          // ㅌ
	FinalP          // ㅍ
	FinalH          // ㅎ, character I/O
)

var finalJamo = [...]string{
	"", "ㄱ", "ㄲ", "ㄳ", "ㄴ", "ㄵ", "ㄶ", "ㄷ", "ㄹ", "ㄺ",
	"ㄻ", "ㄼ", "ㄽ", "ㄾ", "ㄿ", "ㅀ", "ㅁ", "ㅂ", "ㅄ", "ㅅ",
	"ㅆ", "ㅇ", "ㅈ", "ㅊ", "ㅋ", "ㅌ", "ㅍ", "ㅎ",
}

// strokes maps a final to the number of strokes needed to write it.
// The entries for ㅇ and ㅎ are never read.
var strokes = [...]int32{
	0,
	2, 4, 4, 2, 5, 5, 3, 5,
	7, 9, 9, 7, 9, 9, 8, 4,
	4, 6, 2, 4, 0, 3, 4, 3,
	4, 4, 0,
}

func (f Final) String() string {
	if int(f) < len(finalJamo) {
		return finalJamo[f]
	}
	return "-"
}

// Index returns the storage address named by the final.
func (f Final) Index() uint8 {
	return uint8(f)
}

// IsReserved returns whether the final selects integer or character I/O
// and therefore has no numeral.
func (f Final) IsReserved() bool {
	return f == FinalNG || f == FinalH
}

// Strokes returns the literal numeral carried by the final.
// Calling it for a reserved final is a programming error.
func (f Final) Strokes() int32 {
	if f.IsReserved() {
		panic("hangul: final " + f.String() + " has no stroke count")
	}
	return strokes[f]
}
