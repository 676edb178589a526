//go:build !statsview
// +build !statsview

package statsview

import "io"

// Address is where the stats server would listen.
const Address = ""

// Launch does nothing without the statsview build tag.
func Launch(output io.Writer) {}

// Available returns false; the binary was built without statsview.
func Available() bool {
	return false
}
