// Package esr decodes the aarch64 Exception Syndrome Register.
//
// Only the exception class is interpreted; the instruction specific syndrome
// is exposed raw.
package esr

// Syndrome is the raw value of an ESR_ELx register.
type Syndrome uint64

// Class is the 6-bit exception class field of a Syndrome.
type Class uint8

const (
	classShift = 26
	classMask  = 0x3f
	ilBit      = 1 << 25
	issMask    = ilBit - 1
)

// Class returns the exception class, bits [31:26].
func (s Syndrome) Class() Class {
	return Class((s >> classShift) & classMask)
}

// IL reports whether the trapped instruction was 32 bits wide.
func (s Syndrome) IL() bool {
	return s&ilBit != 0
}

// ISS returns the instruction specific syndrome, bits [24:0].
func (s Syndrome) ISS() uint32 {
	return uint32(s & issMask)
}

// Description returns the architectural description of the exception class.
// Many classes have no description, in which case ok is false.
func (c Class) Description() (text string, ok bool) {
	text = causes[c&classMask]
	return text, text != ""
}

// Classify describes the exception class of s. See [Class.Description].
func Classify(s Syndrome) (text string, ok bool) {
	return s.Class().Description()
}

// Lookup returns the exception class whose description is text.
func Lookup(text string) (c Class, ok bool) {
	if text == "" {
		return 0, false
	}
	for i, v := range causes {
		if v == text {
			return Class(i), true
		}
	}
	return 0, false
}

// Classes returns all exception classes which have a description, in
// ascending order.
func Classes() []Class {
	cs := make([]Class, 0, len(causes))
	for i, v := range causes {
		if v != "" {
			cs = append(cs, Class(i))
		}
	}
	return cs
}
