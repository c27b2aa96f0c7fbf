// Package typst2rsx converts Typst documents, by way of their compiled SVG
// output, into Dioxus rsx source text. The typst executable does the
// compilation out of process; the SVG is then parsed into an element tree and
// rendered as nested component calls.
package typst2rsx // import "github.com/Etase/typst-2-rsx"

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/Etase/typst-2-rsx/rsx"
	"github.com/Etase/typst-2-rsx/xml"
)

// TypstBinary is the name or path of the typst executable run by Compile.
var TypstBinary = "typst"

// Stage identifies the pipeline stage that produced a failure.
type Stage int

const (
	StageCompile Stage = iota
	StageParse
	StageRender
)

func (s Stage) String() string {
	switch s {
	case StageCompile:
		return "compile"
	case StageParse:
		return "parse"
	case StageRender:
		return "render"
	}
	return "unknown"
}

// Error is a conversion failure tagged with the stage that produced it.
// Compile failures carry the captured diagnostics of the external tool.
type Error struct {
	Stage Stage
	Err   error
}

func (e *Error) Error() string {
	return e.Stage.String() + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Compile runs the external typst compiler on typPath and writes its SVG
// output to svgPath, creating the output directory when needed. The context
// bounds the external process; a conversion is never retried here, that is
// left to the caller.
func Compile(ctx context.Context, typPath, svgPath string) error {
	if dir := filepath.Dir(svgPath); dir != "." {
		if err := os.MkdirAll(dir, 0777); err != nil {
			return &Error{StageCompile, err}
		}
	}

	stderr := &bytes.Buffer{}
	cmd := exec.CommandContext(ctx, TypstBinary, "compile", typPath, svgPath)
	cmd.Stderr = stderr
	if err := cmd.Run(); err != nil {
		if 0 < stderr.Len() {
			err = fmt.Errorf("%w: %s", err, bytes.TrimSpace(stderr.Bytes()))
		}
		return &Error{StageCompile, err}
	}
	return nil
}

// ConvertSVG reads an SVG document from r and returns it as rsx source text.
func ConvertSVG(r io.Reader) (string, error) {
	root, err := xml.Parse(r)
	if err != nil {
		return "", &Error{StageParse, err}
	}
	s, err := rsx.RenderString(root)
	if err != nil {
		// unreachable for an in-memory writer, kept for the stage tag
		return "", &Error{StageRender, err}
	}
	return s, nil
}

// ConvertFile converts the SVG document at svgPath to rsx source text.
func ConvertFile(svgPath string) (string, error) {
	f, err := os.Open(svgPath)
	if err != nil {
		return "", &Error{StageParse, err}
	}
	defer f.Close()
	return ConvertSVG(f)
}

// ToRSX compiles the Typst document at typPath to SVG in a temporary
// directory and converts the result to rsx source text. Each call owns its
// parser state and output buffer, so independent conversions may run
// concurrently.
func ToRSX(ctx context.Context, typPath string) (string, error) {
	dir, err := os.MkdirTemp("", "typst2rsx")
	if err != nil {
		return "", &Error{StageCompile, err}
	}
	defer os.RemoveAll(dir)

	svgPath := filepath.Join(dir, "out.svg")
	if err := Compile(ctx, typPath, svgPath); err != nil {
		return "", err
	}
	return ConvertFile(svgPath)
}
