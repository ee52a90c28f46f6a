package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zenc/internal/source"
)

func TestCodeID(t *testing.T) {
	cases := map[Code]string{
		LexUnterminatedString: "LEX1002",
		SynUnexpectedToken:    "SYN2001",
		IOLoadFileError:       "IO4001",
		ProjInvalidConfig:     "PRJ5001",
		UnknownCode:           "E0000",
	}
	for code, want := range cases {
		assert.Equal(t, want, code.ID())
	}
	assert.Equal(t, "[SYN2005]: Expected type", SynExpectType.String())
	assert.Equal(t, "Unknown error", Code(3999).Title())
}

func TestBagLimitAndSort(t *testing.T) {
	bag := NewBag(2)
	r := BagReporter{Bag: bag}
	r.Report(SynExpectSemicolon, SevError, source.Span{File: 1, Start: 10, End: 11}, "b", nil)
	r.Report(LexBadNumber, SevError, source.Span{File: 1, Start: 2, End: 4}, "a", nil)
	r.Report(LexBadChar, SevError, source.Span{File: 1, Start: 0, End: 1}, "dropped", nil)

	require.Equal(t, 2, bag.Len())
	assert.Equal(t, 1, bag.Dropped())
	assert.True(t, bag.HasErrors())

	bag.Sort()
	assert.Equal(t, "a", bag.Items()[0].Message)
	assert.Equal(t, "b", bag.Items()[1].Message)
}

func TestBagMergeDedup(t *testing.T) {
	sp := source.Span{File: 1, Start: 3, End: 5}
	a := NewBag(1)
	a.Add(NewError(SynExpectType, sp, "x"))
	b := NewBag(0)
	b.Add(NewError(SynExpectType, sp, "x"))
	b.Add(New(SevWarning, SynAmbiguousQuery, sp, "y"))

	a.Merge(b)
	require.Equal(t, 3, a.Len())
	a.Dedup()
	assert.Equal(t, 2, a.Len())
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(0)
	r := NewDedupReporter(BagReporter{Bag: bag})
	sp := source.Span{File: 1, Start: 1, End: 2}
	r.Report(LexUnknownChar, SevError, sp, "unknown character '$'", nil)
	r.Report(LexUnknownChar, SevError, sp, "unknown character '$'", nil)
	r.Report(LexUnknownChar, SevError, sp, "other", nil)
	assert.Equal(t, 2, bag.Len())
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(0)
	sp := source.Span{File: 1, Start: 0, End: 1}
	b := ReportError(BagReporter{Bag: bag}, SynUnexpectedToken, sp, "unexpected ')'").
		WithNote(sp, "expected type")
	b.Emit()
	b.Emit()
	require.Equal(t, 1, bag.Len())
	require.Len(t, bag.Items()[0].Notes, 1)
	assert.Equal(t, "expected type", bag.Items()[0].Notes[0].Msg)
}

func TestFormatGolden(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.zc", []byte("fn f(x: ) { }\n"))
	sp := source.Span{File: id, Start: 8, End: 9}
	d := NewError(SynExpectType, sp, "expected type, found ')'").WithNote(sp, "expected one of: identifier, '*'")
	got := FormatGoldenDiagnostics([]Diagnostic{d}, fs, true)
	assert.Equal(t, "ERROR SYN2005 a.zc:1:9 expected type, found ')'\n  note a.zc:1:9 expected one of: identifier, '*'", got)
}
