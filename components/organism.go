package components

// Kind is the category of a sprite. Kinds are drawn in declaration order.
type Kind uint8

const (
	KindFood Kind = iota
	KindEjected
	KindVirus
	KindCell
)

func (k Kind) String() string {
	switch k {
	case KindFood:
		return "food"
	case KindEjected:
		return "ejected"
	case KindVirus:
		return "virus"
	case KindCell:
		return "cell"
	default:
		return "unknown"
	}
}

// Ref ties a scene entity back to the record it mirrors.
type Ref struct {
	Kind  Kind
	ID    uint32
	Owner uint32 // player ID for cells, zero otherwise
	Human bool
	Stamp uint32 // last sync that saw the record
}
