package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zenc/internal/diag"
	"zenc/internal/source"
)

func TestSarif(t *testing.T) {
	fs := source.NewFileSetWithBase("/p")
	fileID := fs.AddVirtual("/p/a.zc", []byte("fn f() {\n  x y\n}\n"))
	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.SynExpectSemicolon, source.Span{File: fileID, Start: 13, End: 14}, "expected ';'").
		WithNote(source.Span{File: fileID, Start: 11, End: 12}, "after this expression"))
	bag.Add(diag.New(diag.SevWarning, diag.LexUnknownChar, source.Span{File: fileID, Start: 0, End: 1}, "odd"))

	var buf bytes.Buffer
	require.NoError(t, Sarif(&buf, bag, fs, SarifRunMeta{ToolName: "zenc", ToolVersion: "0.1.0", InvocationArgs: []string{"diag", "a.zc"}}))

	var log sarifLog
	require.NoError(t, json.Unmarshal(buf.Bytes(), &log))
	assert.Equal(t, "2.1.0", log.Version)
	require.Len(t, log.Runs, 1)
	run := log.Runs[0]
	assert.Equal(t, "zenc", run.Tool.Driver.Name)
	require.Len(t, run.Tool.Driver.Rules, 2)
	assert.Equal(t, "LEX1001", run.Tool.Driver.Rules[0].ID)
	assert.Equal(t, "SYN2003", run.Tool.Driver.Rules[1].ID)

	require.Len(t, run.Results, 2)
	res := run.Results[0]
	assert.Equal(t, "error", res.Level)
	assert.Equal(t, "a.zc", res.Locations[0].PhysicalLocation.ArtifactLocation.URI)
	assert.Equal(t, uint32(2), res.Locations[0].PhysicalLocation.Region.StartLine)
	assert.Equal(t, uint32(5), res.Locations[0].PhysicalLocation.Region.StartColumn)
	require.Len(t, res.RelatedLocations, 1)
	assert.Equal(t, "after this expression", res.RelatedLocations[0].Message.Text)
	assert.Equal(t, "warning", run.Results[1].Level)

	require.Len(t, run.Invocations, 1)
	assert.False(t, run.Invocations[0].ExecutionSuccessful)
}
