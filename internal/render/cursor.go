package render

import "github.com/atomicstack/argpopup/internal/popup"

// Select picks the item to highlight after a redraw. The previous selection
// wins when it is still on screen; otherwise the first action, then the first
// item of any kind.
func Select(f Frame, previous ItemID, hadPrevious bool) (ItemID, bool) {
	if hadPrevious {
		if _, ok := f.Find(previous); ok {
			return previous, true
		}
	}
	for _, pos := range f.Items {
		if pos.ID.Category == popup.Actions {
			return pos.ID, true
		}
	}
	if len(f.Items) > 0 {
		return f.Items[0].ID, true
	}
	return ItemID{}, false
}

// Step moves delta items away from current, wrapping at both ends. An
// unknown current starts from the first item.
func Step(f Frame, current ItemID, delta int) (ItemID, bool) {
	n := len(f.Items)
	if n == 0 {
		return ItemID{}, false
	}
	idx := -1
	for i, pos := range f.Items {
		if pos.ID == current {
			idx = i
			break
		}
	}
	if idx < 0 {
		return f.Items[0].ID, true
	}
	idx = ((idx+delta)%n + n) % n
	return f.Items[idx].ID, true
}
