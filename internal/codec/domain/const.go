// Package domain defines the value objects shared by the identifier codec: alphabets,
// exclusions, integer ranges and the structured error kinds they report.
package domain

// MaxStringLength is the longest identifier the codec renders or decodes.
const MaxStringLength = 40

// numericCharacters are the glyphs an all-numeric exclusion refers to, in order.
const numericCharacters = "0123456789"
