package shortener

import "github.com/jaevor/go-nanoid"

// codeAlphabet is lowercase letters and digits only, so generated
// codes stay within the alias character set.
const codeAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// DefaultCodeLength is the default length of generated codes.
const DefaultCodeLength = 7

// CodeGenerator generates short codes.
type CodeGenerator func() string

// NewCodeGenerator returns a nanoid-backed generator over the code alphabet.
func NewCodeGenerator(length int) (CodeGenerator, error) {
	gen, err := nanoid.CustomASCII(codeAlphabet, length)
	if err != nil {
		return nil, err
	}

	return CodeGenerator(gen), nil
}
