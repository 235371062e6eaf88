package types

import "github.com/m-mizutani/goerr/v2"

// Mode selects between single and multi repository analysis
type Mode string

const (
	ModeSingle Mode = "single"
	ModeMulti  Mode = "multi"
)

// ParseMode converts user input into Mode. Empty input means single.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeSingle:
		return ModeSingle, nil
	case ModeMulti:
		return ModeMulti, nil
	default:
		return "", goerr.New("unknown analysis mode", goerr.V("mode", s))
	}
}
