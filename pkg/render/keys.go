package render

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/leterax/go-universe/pkg/input"
)

var namedKeys = map[glfw.Key]string{
	glfw.KeyLeft:      input.KeyArrowLeft,
	glfw.KeyRight:     input.KeyArrowRight,
	glfw.KeyUp:        input.KeyArrowUp,
	glfw.KeyDown:      input.KeyArrowDown,
	glfw.KeyEnter:     input.KeyEnter,
	glfw.KeyKPEnter:   input.KeyEnter,
	glfw.KeyEscape:    input.KeyEscape,
	glfw.KeyBackspace: input.KeyBackspace,
}

// keyName maps a GLFW key to the DOM-style key name the reconciler expects.
// Printable keys honour shift, so shift+backslash is "|".
func keyName(key glfw.Key, mods glfw.ModifierKey) (string, bool) {
	if name, ok := namedKeys[key]; ok {
		return name, true
	}

	shift := mods&glfw.ModShift != 0
	switch {
	case key >= glfw.KeyA && key <= glfw.KeyZ:
		r := rune('a' + (key - glfw.KeyA))
		if shift {
			r -= 'a' - 'A'
		}
		return string(r), true
	case key >= glfw.Key0 && key <= glfw.Key9:
		return string(rune('0' + (key - glfw.Key0))), true
	case key == glfw.KeyBackslash:
		if shift {
			return input.KeyFullscreenAlt, true
		}
		return `\`, true
	}
	return "", false
}

func pointerButton(button glfw.MouseButton) (input.Button, bool) {
	switch button {
	case glfw.MouseButtonLeft:
		return input.ButtonPrimary, true
	case glfw.MouseButtonMiddle:
		return input.ButtonMiddle, true
	case glfw.MouseButtonRight:
		return input.ButtonSecondary, true
	}
	return 0, false
}
