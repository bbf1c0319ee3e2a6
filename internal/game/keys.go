package game

import "github.com/hajimehoshi/ebiten/v2"

// keyNames maps ebiten keys to DOM-style key names, the vocabulary the
// sequence detector matches against. Letters are reported lower case.
var keyNames = map[ebiten.Key]string{
	ebiten.KeyArrowUp:    "ArrowUp",
	ebiten.KeyArrowDown:  "ArrowDown",
	ebiten.KeyArrowLeft:  "ArrowLeft",
	ebiten.KeyArrowRight: "ArrowRight",
	ebiten.KeyEnter:      "Enter",
	ebiten.KeyEscape:     "Escape",
	ebiten.KeySpace:      " ",
	ebiten.KeyTab:        "Tab",
	ebiten.KeyBackspace:  "Backspace",
	ebiten.KeyBackquote:  "`",
}

var letterKeys = [26]ebiten.Key{
	ebiten.KeyA,
	ebiten.KeyB,
	ebiten.KeyC,
	ebiten.KeyD,
	ebiten.KeyE,
	ebiten.KeyF,
	ebiten.KeyG,
	ebiten.KeyH,
	ebiten.KeyI,
	ebiten.KeyJ,
	ebiten.KeyK,
	ebiten.KeyL,
	ebiten.KeyM,
	ebiten.KeyN,
	ebiten.KeyO,
	ebiten.KeyP,
	ebiten.KeyQ,
	ebiten.KeyR,
	ebiten.KeyS,
	ebiten.KeyT,
	ebiten.KeyU,
	ebiten.KeyV,
	ebiten.KeyW,
	ebiten.KeyX,
	ebiten.KeyY,
	ebiten.KeyZ,
}

var digitKeys = [10]ebiten.Key{
	ebiten.KeyDigit0,
	ebiten.KeyDigit1,
	ebiten.KeyDigit2,
	ebiten.KeyDigit3,
	ebiten.KeyDigit4,
	ebiten.KeyDigit5,
	ebiten.KeyDigit6,
	ebiten.KeyDigit7,
	ebiten.KeyDigit8,
	ebiten.KeyDigit9,
}

func init() {
	for i, k := range letterKeys {
		keyNames[k] = string(rune('a' + i))
	}
	for i, k := range digitKeys {
		keyNames[k] = string(rune('0' + i))
	}
}

// KeyName returns the DOM-style name of k.
func KeyName(k ebiten.Key) (string, bool) {
	name, ok := keyNames[k]
	return name, ok
}

// KeyNames converts a batch of pressed keys, dropping unmapped ones.
func KeyNames(keys []ebiten.Key) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if name, ok := KeyName(k); ok {
			out = append(out, name)
		}
	}
	return out
}
