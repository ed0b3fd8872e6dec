package parse

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/structeng/sgres/result"
)

const header = `SPACE GASS ANALYSIS RESULTS
JOB: UNIT TEST

UNITS LENGTH:m, SECTION:mm, STRENGTH:MPa, FORCE:kN, MOMENT:kNm

`

func parseString(t *testing.T, src string) *result.Set {
	t.Helper()
	set, err := File(context.Background(), "test.txt", strings.NewReader(src))
	require.NoError(t, err)
	return set
}

func TestUnitsVerbatim(t *testing.T) {
	set := parseString(t, header+"NODES\n1,0.0,0.0,0.0\nEND\n")
	assert.Equal(t, "m", set.Units["LENGTH"])
	assert.Equal(t, "kN", set.Units["FORCE"])
	assert.Equal(t, "kNm", set.Units["MOMENT"])
	assert.Equal(t, "mm", set.Units["SECTION"])
	assert.Equal(t, "MPa", set.Units["STRENGTH"])
}

func TestUnitsMalformed(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"missing declaration", "NODES\n1,0.0,0.0,0.0\n"},
		{"missing force", "UNITS LENGTH:m, MOMENT:kNm\n\nNODES\n1,0.0,0.0,0.0\n"},
		{"pair without colon", "UNITS LENGTH:m, FORCE\n"},
		{"empty declaration", "UNITS \n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := File(context.Background(), "bad.txt", strings.NewReader(c.src))
			require.Error(t, err)
		})
	}

	// The same file with the declaration fixed loads.
	fixed := "UNITS LENGTH:m, FORCE:kN\n\nNODES\n1,0.0,0.0,0.0\n"
	set, err := File(context.Background(), "good.txt", strings.NewReader(fixed))
	require.NoError(t, err)
	assert.Len(t, set.Nodes, 1)
}

func TestNodesRows(t *testing.T) {
	set := parseString(t, header+"NODES\n1,0.0,0.0,0.0\n2,6.5,0.0,-1.25\n")
	require.Len(t, set.Nodes, 2)
	assert.Equal(t, result.Node{ID: 2, X: 6.5, Y: 0, Z: -1.25}, set.Nodes[1])
}

func TestMalformedNumberFailsWithLocation(t *testing.T) {
	cases := []struct {
		name string
		rows string
	}{
		{"letters", "2,abc,0.0,0.0\n"},
		{"missing column", "2,1.0,0.0\n"},
		{"infinity", "2,Inf,0.0,0.0\n"},
		{"nan", "2,NaN,0.0,0.0\n"},
		{"hex float", "2,0x1p-2,0.0,0.0\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			src := header + "NODES\n1,0.0,0.0,0.0\n" + c.rows
			_, err := File(context.Background(), "bad.txt", strings.NewReader(src))
			require.Error(t, err)
			var perr *Error
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, "NODES", perr.Block)
			assert.Equal(t, 8, perr.Pos.Line, "second data row of the block")
			assert.Contains(t, err.Error(), "NODES")
		})
	}
}

func TestParseFloatRejectsNonFinite(t *testing.T) {
	for _, s := range []string{"Inf", "-Inf", "inf", "Infinity", "infinity", "NaN", "nan", "sNaN", "0x1p-2"} {
		_, err := parseFloat(s)
		assert.Error(t, err, "token %q", s)
	}
	for _, s := range []string{"0", "-12.5", "1e6", "3.2E-4", "+0.001"} {
		v, err := parseFloat(s)
		require.NoError(t, err, "token %q", s)
		assert.False(t, math.IsInf(v, 0) || math.IsNaN(v), "token %q", s)
	}
}

func TestUnknownBlockPreservedRaw(t *testing.T) {
	src := header + "NODES\n1,0.0,0.0,0.0\n\nPLATES\n1,1,2,3,4,1,0.2\n\nNODES TWO\n"
	set := parseString(t, src)
	require.Len(t, set.Raw, 2)
	assert.Equal(t, "PLATES", set.Raw[0].Header)
	assert.Equal(t, []string{"1,1,2,3,4,1,0.2"}, set.Raw[0].Lines)
	assert.Equal(t, "NODES TWO", set.Raw[1].Header)
	assert.Empty(t, set.Raw[1].Lines)
}

func TestEmptyBlock(t *testing.T) {
	set := parseString(t, header+"NODES\n\nMEMBERS\n")
	assert.Empty(t, set.Nodes)
	assert.Empty(t, set.Members)
	assert.Empty(t, set.Raw)
}

func TestQuotedFields(t *testing.T) {
	src := header + "TITLES\n1,\"Dead Load\"\n2,\"Crane, travelling\"\n"
	set := parseString(t, src)
	require.Len(t, set.Titles, 2)
	assert.Equal(t, "Dead Load", set.Titles[0].Title)
	assert.Equal(t, "Crane, travelling", set.Titles[1].Title)
}

func TestMembersRow(t *testing.T) {
	src := header + "MEMBERS\n7,0,0,0,Y,3,4,2,1,FFFFFF,RRFFFF,0,0,0,0,0,0,0,0,0\n"
	set := parseString(t, src)
	require.Len(t, set.Members, 1)
	m := set.Members[0]
	assert.Equal(t, 7, m.ID)
	assert.Equal(t, 3, m.StartNode)
	assert.Equal(t, 4, m.EndNode)
	assert.Equal(t, 2, m.SectionID)
	assert.Equal(t, 1, m.MaterialID)
	assert.Equal(t, "RRFFFF", m.ReleaseJ)
}

func TestSectionsMultiline(t *testing.T) {
	src := header + `SECTIONS
1,"Deck Long 900x600",LIBRARY,"DL96",0.54,0.0364,0.0162,0.0008
810.0,540.0,0.26,0.17
900.0,600.0,0.0,0.0
0.0,0.0,0.0,0.0
2,"Short Record",LIBRARY,"SR",0.1,0.001,0.001,0.0001
`
	set := parseString(t, src)
	require.Len(t, set.Sections, 2)

	sec := set.Sections[0]
	assert.Equal(t, "Deck Long 900x600", sec.Name)
	assert.Equal(t, "DL96", sec.ShortName)
	assert.Equal(t, 0.54, sec.Area)
	assert.Equal(t, 810.0, sec.Zxx)
	assert.Equal(t, 900.0, sec.Depth)
	assert.Equal(t, 600.0, sec.Width)

	// A record cut short at end of block still yields its main line.
	assert.Equal(t, 2, set.Sections[1].ID)
	assert.Zero(t, set.Sections[1].Depth)
}

func TestRestraintsMultiline(t *testing.T) {
	src := header + `RESTRAINTS
1,VVVRRR,0,0,0,0
0.0,0.0,0.0,0.0
0.0,0.0,0.0,0.0
0.0,0.0,0.0,0.0
0.0,0.0,0.0,0.0
9,FFFFFF,0,0,0,0
0.0,0.0,0.0,0.0
`
	set := parseString(t, src)
	require.Len(t, set.Restraints, 2)

	r := set.Restraints[0]
	assert.Equal(t, 1, r.NodeID)
	assert.Equal(t, "VVVRRR", r.Code)
	assert.Equal(t, [6]bool{true, true, true, false, false, false}, r.Fixed)
	assert.Equal(t, [6]bool{true, true, true, true, true, true}, set.Restraints[1].Fixed)
}

func TestRestraintsStrayContinuationSkipped(t *testing.T) {
	// A continuation line with no preceding main record is dropped, not
	// mistaken for a record.
	src := header + "RESTRAINTS\n0.0,0.0,0.0,0.0\n1,VVVRRR,0,0,0,0\n"
	set := parseString(t, src)
	require.Len(t, set.Restraints, 1)
	assert.Equal(t, 1, set.Restraints[0].NodeID)
}

func TestBlockOrderInsensitive(t *testing.T) {
	// Result blocks may appear before the geometry they reference.
	src := header + `MEMBER FORCES AND MOMENTS
1,1,1,10.0,0.0,0.0,0.0,0.0,0.0
NODES
1,0.0,0.0,0.0
2,1.0,0.0,0.0
MEMBERS
1,0,0,0,Y,1,2,1,1,FFFFFF,FFFFFF
`
	set := parseString(t, src)
	assert.Len(t, set.ForcesMoments, 1)
	assert.Len(t, set.Nodes, 2)
	assert.Len(t, set.Members, 1)
}

func TestIsHeader(t *testing.T) {
	cases := []struct {
		text string
		want bool
	}{
		{"NODES", true},
		{"MEMBER FORCES AND MOMENTS", true},
		{"END", true},
		{"1,0.0,0.0,0.0", false},
		{"0.0,0.0,0.0,0.0", false},
		{"JOB: UNIT TEST", false},
		{"", false},
		{"lowercase", false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, isHeader(c.text), c.text)
	}
}

func TestSplitFields(t *testing.T) {
	fields, err := splitFields(`1,"Crane, travelling", 2.5 ,`)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "Crane, travelling", "2.5", ""}, fields)
}
