package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newBufferedDiagnostics(level DiagnosticLevel) (*DiagnosticSystem, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	d := NewDiagnosticSystem(level)
	d.SetOutput(&out, &errOut)
	return d, &out, &errOut
}

func TestDiagnosticSystem_Levels(t *testing.T) {
	d, out, errOut := newBufferedDiagnostics(DiagnosticInfo)

	d.Error("broken %s", "file")
	d.Warn("careful")
	d.Info("hello")
	d.Verbose("hidden")
	d.Debug("hidden too")

	assert.Equal(t, "[ERROR] broken file\n", errOut.String())
	assert.Equal(t, "[WARN] careful\n[INFO] hello\n", out.String())
}

func TestDiagnosticSystem_Quiet(t *testing.T) {
	var out, errOut bytes.Buffer
	d := NewQuietDiagnostics()
	d.SetOutput(&out, &errOut)

	d.Info("hidden")
	d.Success("hidden")
	d.Summary("Done", map[string]interface{}{"a": 1})
	d.Error("shown")

	assert.Empty(t, out.String())
	assert.Equal(t, "[ERROR] shown\n", errOut.String())
}

func TestDiagnosticSystem_Formatting(t *testing.T) {
	d, out, _ := newBufferedDiagnostics(DiagnosticInfo)

	d.Header("scanning")
	d.Indent()
	d.List("one")
	d.Unindent()
	d.Unindent()
	d.List("two")
	d.Summary("Done", map[string]interface{}{"b": 2, "a": 1})

	assert.Equal(t, "AutoImplement: scanning\n  - one\n- two\n\nDone\n   a: 1\n   b: 2\n\n", out.String())
}

func TestDiagnosticSystem_Progress(t *testing.T) {
	d, out, _ := newBufferedDiagnostics(DiagnosticInfo)

	d.StartProgress("Parsing sources")
	d.EndProgress(true, "")
	d.StartProgress("Writing")
	d.EndProgress(false, "")
	d.StartProgress("Cleaning")
	d.EndProgress(true, "Removed 3 files")

	assert.Equal(t, "✓ Parsing sources\n✓ Removed 3 files\n", out.String())

	verbose, vout, _ := newBufferedDiagnostics(DiagnosticVerbose)
	verbose.StartProgress("Parsing sources")
	verbose.EndProgress(true, "")
	assert.Contains(t, vout.String(), "Parsing sources...\n")
	assert.Contains(t, vout.String(), "✓ Parsing sources (")
}
