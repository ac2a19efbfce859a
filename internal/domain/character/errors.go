package character

import "errors"

// ErrCharacterNotFound is returned when a character is not found
var ErrCharacterNotFound = errors.New("character not found")
