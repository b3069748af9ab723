// package camelot converts catalog pitch-class/mode pairs to Camelot wheel notation.
//
// The Camelot wheel is a 24-symbol encoding ("1A".."12B") of musical key used
// by DJs for harmonic mixing. Catalogs report key as a pitch class 0-11
// (0=C, 1=C#, ... 11=B) and mode as 0 (minor) or 1 (major).
package camelot

// Unknown is returned for pitch classes outside 0-11.
const Unknown = "Unknown"

// Major mode positions indexed by pitch class.
var major = [12]string{"8B", "3B", "10B", "5B", "12B", "7B", "2B", "9B", "4B", "11B", "6B", "1B"}

// Minor mode positions indexed by pitch class.
var minor = [12]string{"5A", "12A", "7A", "2A", "9A", "4A", "11A", "6A", "1A", "8A", "3A", "10A"}

// Convert maps a (pitch class, mode) pair onto the Camelot wheel.
//
// Total over key in [0,11] and any mode; keys outside the range yield
// [Unknown] rather than an error. Any mode other than 1 is treated as minor.
func Convert(key, mode int) string {
	if key < 0 || key > 11 {
		return Unknown
	}

	if mode == 1 {
		return major[key]
	}
	return minor[key]
}
