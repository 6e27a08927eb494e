package cart

// Quantity bounds per line
const (
	MinQuantity = 1
	MaxQuantity = 99
)

// Line is one cart position. Name, UnitPrice and ImageRef are
// snapshots taken at add-time and are not re-synced to later catalog
// edits.
type Line struct {
	ItemID    int    `json:"itemId"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unitPrice"`
	ImageRef  string `json:"imageRef,omitempty"`
	Quantity  int    `json:"quantity"`
}

// Subtotal returns unit price times quantity for the line.
func (l Line) Subtotal() int64 {
	return l.UnitPrice * int64(l.Quantity)
}

// Lines is the cart aggregate: at most one line per item id, merged
// additively.
type Lines []Line

// Add merges the given line into the aggregate. An existing line for
// the same item id has its quantity incremented instead of a second
// line being appended. Quantities clamp to MaxQuantity; the return
// value reports whether clamping happened so callers can surface a
// warning.
func (ls *Lines) Add(line Line) (clamped bool) {
	if line.Quantity < MinQuantity {
		line.Quantity = MinQuantity
	}
	for i := range *ls {
		if (*ls)[i].ItemID == line.ItemID {
			q := (*ls)[i].Quantity + line.Quantity
			if q > MaxQuantity {
				q = MaxQuantity
				clamped = true
			}
			(*ls)[i].Quantity = q
			return clamped
		}
	}
	if line.Quantity > MaxQuantity {
		line.Quantity = MaxQuantity
		clamped = true
	}
	*ls = append(*ls, line)
	return clamped
}

// Remove drops the line for the given item id. Returns false when no
// such line exists.
func (ls *Lines) Remove(itemID int) bool {
	for i := range *ls {
		if (*ls)[i].ItemID == itemID {
			*ls = append((*ls)[:i], (*ls)[i+1:]...)
			return true
		}
	}
	return false
}

// SetQuantity replaces a line's quantity. A quantity below MinQuantity
// behaves exactly like Remove. Returns found=false when the item has
// no line, clamped=true when the quantity hit MaxQuantity.
func (ls *Lines) SetQuantity(itemID, quantity int) (found, clamped bool) {
	if quantity < MinQuantity {
		return ls.Remove(itemID), false
	}
	if quantity > MaxQuantity {
		quantity = MaxQuantity
		clamped = true
	}
	for i := range *ls {
		if (*ls)[i].ItemID == itemID {
			(*ls)[i].Quantity = quantity
			return true, clamped
		}
	}
	return false, false
}

// Find returns the line for the given item id.
func (ls Lines) Find(itemID int) (Line, bool) {
	for _, l := range ls {
		if l.ItemID == itemID {
			return l, true
		}
	}
	return Line{}, false
}

// Total is the sum of all line subtotals in minor units.
func (ls Lines) Total() int64 {
	var total int64
	for _, l := range ls {
		total += l.Subtotal()
	}
	return total
}

// Count is the total number of units across all lines.
func (ls Lines) Count() int {
	var n int
	for _, l := range ls {
		n += l.Quantity
	}
	return n
}

// Clone returns an independent copy of the aggregate, used for order
// snapshots.
func (ls Lines) Clone() Lines {
	return append(Lines(nil), ls...)
}
