package keyword

import (
	"fmt"
	"strings"
)

// CardSize is the fixed length of a header card in bytes.
const CardSize = 80

// Bytes renders the keyword back into an 80-byte card. Character values are
// quoted with embedded quotes doubled, other values are right-justified in
// the fixed value field. Cards that would run long are truncated at the
// comment.
func (k *Keyword) Bytes() []byte {
	if k.commentary {
		return pad(fmt.Sprintf("%-8s%s", k.name, k.comment))
	}

	var value string
	switch k.value.Kind() {
	case String:
		s, _ := k.value.AsString()
		value = fmt.Sprintf("%-20s", "'"+strings.ReplaceAll(s, "'", "''")+"'")
	case Null:
		value = fmt.Sprintf("%20s", "")
	case Invalid:
		// preserve the original bytes for values we never understood
		value = fmt.Sprintf("%20s", string(k.raw))
	default:
		value = fmt.Sprintf("%20s", k.value.String())
	}

	card := fmt.Sprintf("%-8s= %s", k.name, value)
	if k.comment != "" {
		card += " / " + k.comment
	}

	return pad(card)
}

func pad(card string) []byte {
	b := make([]byte, CardSize)
	n := copy(b, card)
	for i := n; i < CardSize; i++ {
		b[i] = ' '
	}
	return b
}
