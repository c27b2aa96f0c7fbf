package typst2rsx

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/Etase/typst-2-rsx/xml"
	"github.com/tdewolff/test"
)

func TestConvertSVG(t *testing.T) {
	svg := `<svg width="100" height="40"><path d="M0 0H10z" fill="none"/></svg>`
	s, err := ConvertSVG(bytes.NewBufferString(svg))
	test.Error(t, err)
	test.String(t, s, `svg {
    width: "100",
    height: "40",
    path {
        d: "M0 0H10z",
        fill: "none",
    },
}
`)
}

func TestConvertSVGParseError(t *testing.T) {
	_, err := ConvertSVG(bytes.NewBufferString(`<svg><a></b></svg>`))
	var cerr *Error
	test.That(t, errors.As(err, &cerr), "error must be an *Error")
	test.T(t, cerr.Stage, StageParse)

	var perr *xml.ParseError
	test.That(t, errors.As(err, &perr), "error must unwrap to a *ParseError")
	test.T(t, perr.Code, xml.ErrMismatchedTag)
	test.String(t, err.Error(), "parse: "+perr.Error())
}

func TestConvertFileMissing(t *testing.T) {
	_, err := ConvertFile(filepath.Join(t.TempDir(), "nope.svg"))
	var cerr *Error
	test.That(t, errors.As(err, &cerr), "error must be an *Error")
	test.T(t, cerr.Stage, StageParse)
}

func TestCompileMissingBinary(t *testing.T) {
	bin := TypstBinary
	TypstBinary = filepath.Join(t.TempDir(), "no-such-typst")
	defer func() { TypstBinary = bin }()

	dir := t.TempDir()
	err := Compile(context.Background(), filepath.Join(dir, "in.typ"), filepath.Join(dir, "out.svg"))
	var cerr *Error
	test.That(t, errors.As(err, &cerr), "error must be an *Error")
	test.T(t, cerr.Stage, StageCompile)

	_, err = ToRSX(context.Background(), filepath.Join(dir, "in.typ"))
	test.That(t, errors.As(err, &cerr), "error must be an *Error")
	test.T(t, cerr.Stage, StageCompile)
}

func TestStageString(t *testing.T) {
	test.String(t, StageCompile.String(), "compile")
	test.String(t, StageParse.String(), "parse")
	test.String(t, StageRender.String(), "render")
}
