package ipa

import "errors"

// ErrInvalidKeyLength is returned when a commitment key's two internal
// vectors don't agree in length, or don't match the length they're checked
// against.
var ErrInvalidKeyLength = errors.New("ipa: invalid commitment key length")

// ErrInvalidIPVectorLength is returned when the vectors fed to an inner
// product, multi-exponentiation or GIPA reduction don't have equal length.
// Their lengths are not checked for being a power of two.
var ErrInvalidIPVectorLength = errors.New("ipa: invalid inner-product vector length")

// ErrInvalidPairing is returned when a pairing computation underlying a
// commitment or inner product fails.
var ErrInvalidPairing = errors.New("ipa: invalid pairing")
