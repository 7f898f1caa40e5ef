package renderer

import (
	"bytes"
	"io"

	"github.com/etnz/costbasis"
)

// ConditionalBlock let you fully write a block and decide at the end to print it or not.
// If the block function returns true, the content is printed to w, otherwise it is discarded.
func ConditionalBlock(w io.Writer, block func(io.Writer) bool) {
	bw := &bytes.Buffer{}
	if block(bw) {
		io.Copy(w, bw)
	}
}

// btc formats an amount of bitcoin with satoshi precision.
func btc(q costbasis.Quantity) string {
	return q.Decimal().StringFixed(8) + " BTC"
}

// optional formats a moving average, "-" when there is none.
func optional(m *costbasis.Money) string {
	if m == nil {
		return "-"
	}
	return m.String()
}
