package utils

import (
	"bytes"
	"fmt"

	"github.com/davecgh/go-spew/spew"
)

var spewConfig *spew.ConfigState

func init() {
	spewConfig = spew.NewDefaultConfig()
	spewConfig.DisableCapacities = true
	spewConfig.DisablePointerAddresses = true
	spewConfig.DisableMethods = false
	spewConfig.SortKeys = true
}

// SDump is a spew dump of a, with Stringer enums printed by name.
func SDump(a ...interface{}) string {
	return spewConfig.Sdump(a...)
}

// HexLine renders buf on one line, printable bytes as themselves and the rest as \xNN
func HexLine(buf []byte) string {
	var out bytes.Buffer

	for _, b := range buf {
		if b >= 0x20 && b < 0x7f {
			out.WriteByte(b)
		} else {
			out.WriteString(fmt.Sprintf("\\x%.2x", b))
		}
	}

	return out.String()
}
