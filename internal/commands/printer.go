package commands

import (
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

// ErrInvalidUTF8 is returned for secret values that are not UTF-8 text
var ErrInvalidUTF8 = errors.New("secret value is not valid UTF-8 text")

// DecodeValue converts a secret value to text
func DecodeValue(value []byte) (string, error) {
	if !utf8.Valid(value) {
		return "", ErrInvalidUTF8
	}
	return string(value), nil
}

// PrintValue writes the value as text followed by a newline
func PrintValue(w io.Writer, value []byte) error {
	text, err := DecodeValue(value)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, text)
	return err
}
