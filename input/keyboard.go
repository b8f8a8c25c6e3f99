package input

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/alive/config"
)

// Keyboard polls ebiten key state once per tick. Between polls it answers
// with the last polled state so every reader in a tick sees the same values.
type Keyboard struct {
	left  []ebiten.Key
	right []ebiten.Key
	chant []ebiten.Key

	state State
}

// NewKeyboard resolves the configured key names. Names are ebiten key names
// such as "ArrowLeft" or "Digit0".
func NewKeyboard(cfg config.InputConfig) (*Keyboard, error) {
	var (
		k   Keyboard
		err error
	)
	if k.left, err = parseKeys(cfg.Left); err != nil {
		return nil, err
	}
	if k.right, err = parseKeys(cfg.Right); err != nil {
		return nil, err
	}
	if k.chant, err = parseKeys(cfg.Chant); err != nil {
		return nil, err
	}
	return &k, nil
}

func parseKeys(names []string) ([]ebiten.Key, error) {
	keys := make([]ebiten.Key, 0, len(names))
	for _, name := range names {
		var key ebiten.Key
		if err := key.UnmarshalText([]byte(name)); err != nil {
			return nil, fmt.Errorf("input: key %q: %w", name, err)
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// Poll refreshes the snapshot from ebiten. Call it once at the start of
// each game update.
func (k *Keyboard) Poll() State {
	k.state = State{
		LeftHeld:  anyPressed(k.left),
		RightHeld: anyPressed(k.right),
		ChantHeld: anyPressed(k.chant),
	}
	return k.state
}

func anyPressed(keys []ebiten.Key) bool {
	for _, key := range keys {
		if ebiten.IsKeyPressed(key) {
			return true
		}
	}
	return false
}

func (k *Keyboard) Left() bool  { return k.state.LeftHeld }
func (k *Keyboard) Right() bool { return k.state.RightHeld }
func (k *Keyboard) Chant() bool { return k.state.ChantHeld }
