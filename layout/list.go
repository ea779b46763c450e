package layout

import "strconv"

// Item is a list entry: either Text or *List. The set of variants is closed.
type Item interface {
	isItem()
}

// Text is a plain paragraph or list line.
type Text string

func (Text) isItem() {}

// ListKind tags the list variant.
type ListKind int

const (
	Ordered ListKind = iota
	Unordered
)

func (k ListKind) String() string {
	switch k {
	case Ordered:
		return "ordered"
	case Unordered:
		return "unordered"
	default:
		return "unknown"
	}
}

// IndexStyle is the token style of an ordered list.
type IndexStyle string

const (
	Numeric    IndexStyle = "num"
	Alphabetic IndexStyle = "alphabet"
)

// Bullet is the glyph prefixed to every entry of an unordered list.
type Bullet string

const (
	BulletAsterisk Bullet = "*"
	BulletDash     Bullet = "-"
	BulletArrow    Bullet = ">"
)

// List is an ordered or unordered list. Index applies to ordered lists and
// Bullet to unordered ones. Items may mix Text and nested lists.
type List struct {
	Kind   ListKind
	Index  IndexStyle
	Bullet Bullet
	Items  []Item
}

func (*List) isItem() {}

// NewOrdered builds an ordered list.
func NewOrdered(style IndexStyle, items ...Item) *List {
	return &List{Kind: Ordered, Index: style, Items: items}
}

// NewUnordered builds an unordered list.
func NewUnordered(bullet Bullet, items ...Item) *List {
	return &List{Kind: Unordered, Bullet: bullet, Items: items}
}

// Add appends items and returns the list for chaining.
func (l *List) Add(items ...Item) *List {
	l.Items = append(l.Items, items...)
	return l
}

// Texts converts strings into list items.
func Texts(values ...string) []Item {
	out := make([]Item, 0, len(values))
	for _, v := range values {
		out = append(out, Text(v))
	}
	return out
}

// firstToken seeds the per-list index counter. Alphabetic tokens are
// character codes and advance one code per item, past 'z' included.
func firstToken(style IndexStyle) (int, bool) {
	switch style {
	case Numeric:
		return 1, true
	case Alphabetic:
		return 'a', true
	default:
		return 0, false
	}
}

func formatToken(style IndexStyle, token int) string {
	if style == Alphabetic {
		return string(rune(token))
	}
	return strconv.Itoa(token)
}

func validBullet(b Bullet) bool {
	switch b {
	case BulletAsterisk, BulletDash, BulletArrow:
		return true
	default:
		return false
	}
}
