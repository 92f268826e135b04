// Package hotkeys registers global X11 keyboard shortcuts for window
// commands. Bindings are grabbed on the root window so they fire regardless
// of which surface holds input focus.
package hotkeys

import (
	"sync"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"
)

// Handler manages global keyboard shortcuts.
type Handler struct {
	xu   *xgbutil.XUtil
	root xproto.Window
}

var ignoreModsOnce sync.Once

// NewHandler creates a hotkey handler bound to the given X connection.
func NewHandler(xu *xgbutil.XUtil, root xproto.Window) *Handler {
	ignoreModsOnce.Do(func() {
		configureIgnoreMods(xu)
	})

	return &Handler{
		xu:   xu,
		root: root,
	}
}

// Register grabs a key sequence (e.g. "Mod4-n") and invokes callback on
// every press. Callbacks run on the X event loop goroutine.
func (h *Handler) Register(keySequence string, callback func()) error {
	return keybind.KeyPressFun(func(xu *xgbutil.XUtil, ev xevent.KeyPressEvent) {
		callback()
	}).Connect(h.xu, h.root, keySequence, true)
}

// configureIgnoreMods tells xevent to deliver grabbed keys regardless of the
// lock-key modifier state (CapsLock, NumLock, ScrollLock and combinations).
func configureIgnoreMods(xu *xgbutil.XUtil) {
	caps := uint16(xproto.ModMaskLock)

	numLock := modMaskForKeysym(xu, "Num_Lock")
	scrollLock := modMaskForKeysym(xu, "Scroll_Lock")

	unique := make(map[uint16]struct{})
	add := func(mask uint16) {
		unique[mask] = struct{}{}
	}

	add(0)
	base := []uint16{caps}
	if numLock != 0 && numLock != caps {
		base = append(base, numLock)
	}
	if scrollLock != 0 && scrollLock != caps && scrollLock != numLock {
		base = append(base, scrollLock)
	}

	for subset := 1; subset < (1 << len(base)); subset++ {
		var mask uint16
		for bit := range base {
			if subset&(1<<bit) != 0 {
				mask |= base[bit]
			}
		}
		add(mask)
	}

	ignore := make([]uint16, 0, len(unique))
	for mask := range unique {
		ignore = append(ignore, mask)
	}

	xevent.IgnoreMods = ignore
}

func modMaskForKeysym(xu *xgbutil.XUtil, keysym string) uint16 {
	for _, keycode := range keybind.StrToKeycodes(xu, keysym) {
		if mask := keybind.ModGet(xu, keycode); mask != 0 {
			return mask
		}
	}
	return 0
}
