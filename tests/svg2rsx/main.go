//go:build gofuzz

package fuzz

import (
	"github.com/Etase/typst-2-rsx/rsx"
	"github.com/Etase/typst-2-rsx/xml"
)

// Fuzz is a fuzz test.
func Fuzz(data []byte) int {
	root, err := xml.ParseBytes(data)
	if err != nil {
		return 0
	}
	_, _ = rsx.RenderString(root)
	return 1
}
