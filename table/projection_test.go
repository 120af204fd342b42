package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vegasq/tabq/query"
)

func abcTable(t *testing.T, records ...[]string) *Table {
	t.Helper()
	tbl, err := New([]string{"a", "b", "c"}, nil, records)
	require.NoError(t, err)
	return tbl
}

func run(t *testing.T, tbl *Table, stmt string) ([][]string, error) {
	t.Helper()
	q, err := query.Parse(stmt)
	require.NoError(t, err)
	rows, err := tbl.Query(q)
	if err != nil {
		return nil, err
	}
	return tbl.Project(q, rows)
}

func TestProject_Wildcard(t *testing.T) {
	tbl := abcTable(t, []string{"1", "2", "3"}, []string{"4", "5", "6"})

	records, err := run(t, tbl, "SELECT * FROM t")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1", "2", "3"}, {"4", "5", "6"}}, records)

	records, err = run(t, tbl, "SELECT * FROM t FLAG PHD")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "b", "c"}, {"1", "2", "3"}, {"4", "5", "6"}}, records)
}

func TestProject_SupplementWithHeaderMap(t *testing.T) {
	tbl := abcTable(t, []string{"1", "2", "3"})

	records, err := run(t, tbl, "SELECT a,b,d,e FROM t1 HMAP first,second,third,fourth WHERE a = 1 FLAG PHD SUP")
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"first", "second", "third", "fourth"},
		{"1", "2", "", ""},
	}, records)
}

func TestProject_Resolve(t *testing.T) {
	tbl := abcTable(t)

	tests := []struct {
		name    string
		columns []string
		flags   query.Flags
		want    []ColumnTarget
		wantErr error
	}{
		{
			name:    "request order is kept",
			columns: []string{"c", "a"},
			want: []ColumnTarget{
				{Kind: ColumnReal, Name: "c", Index: 2},
				{Kind: ColumnReal, Name: "a", Index: 0},
			},
		},
		{
			name:    "supplement in place",
			columns: []string{"a", "x", "b"},
			flags:   query.FlagSupplement,
			want: []ColumnTarget{
				{Kind: ColumnReal, Name: "a", Index: 0},
				{Kind: ColumnSupplement, Name: "x", Index: -1},
				{Kind: ColumnReal, Name: "b", Index: 1},
			},
		},
		{
			name:    "wildcard subsumes real names and appends supplements",
			columns: []string{"x", "b", "*"},
			flags:   query.FlagSupplement,
			want: []ColumnTarget{
				{Kind: ColumnReal, Name: "a", Index: 0},
				{Kind: ColumnReal, Name: "b", Index: 1},
				{Kind: ColumnReal, Name: "c", Index: 2},
				{Kind: ColumnSupplement, Name: "x", Index: -1},
			},
		},
		{
			name:    "unknown column without SUP",
			columns: []string{"a", "x"},
			wantErr: ErrColumnInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tbl.Resolve(tt.columns, tt.flags)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProject_HeaderMapLength(t *testing.T) {
	tbl := abcTable(t, []string{"1", "2", "3"})

	records, err := run(t, tbl, "SELECT a,b,d,e FROM t HMAP x,y,z FLAG PHD SUP")
	require.ErrorIs(t, err, query.ErrQueryStatementInvalid)
	assert.Nil(t, records)

	records, err = run(t, tbl, "SELECT a,b FROM t HMAP x,y,z")
	require.ErrorIs(t, err, query.ErrQueryStatementInvalid)
	assert.Nil(t, records)
}

func TestProject_HeaderMapWithoutHeader(t *testing.T) {
	tbl := abcTable(t, []string{"1", "2", "3"})

	records, err := run(t, tbl, "SELECT c,a FROM t HMAP x,y")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"3", "1"}}, records)
}

func TestProject_Transpose(t *testing.T) {
	tbl := abcTable(t, []string{"1", "2", "3"})

	records, err := run(t, tbl, "SELECT * FROM t FLAG PHD TP")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "1"}, {"b", "2"}, {"c", "3"}}, records)
}

func TestTranspose(t *testing.T) {
	m := [][]string{
		{"a", "b", "c"},
		{"1", "2", "3"},
	}

	tp := Transpose(m)
	require.Len(t, tp, 3)
	for _, row := range tp {
		assert.Len(t, row, 2)
	}
	assert.Equal(t, [][]string{{"a", "1"}, {"b", "2"}, {"c", "3"}}, tp)
	assert.Equal(t, m, Transpose(tp))

	assert.Empty(t, Transpose(nil))
	assert.Empty(t, Transpose([][]string{{}}))
}

func TestProject_Plan(t *testing.T) {
	tbl := abcTable(t, []string{"1", "2", "3"}, []string{"4", "5", "6"})

	_, err := tbl.Plan(query.MustParse("SELECT a,x FROM t"))
	require.ErrorIs(t, err, ErrColumnInvalid)

	_, err = tbl.Plan(query.MustParse("SELECT a,b FROM t HMAP x"))
	require.ErrorIs(t, err, query.ErrQueryStatementInvalid)

	plan, err := tbl.Plan(query.MustParse("SELECT c,x FROM t HMAP third,extra FLAG PHD SUP"))
	require.NoError(t, err)
	assert.Equal(t, []ColumnTarget{
		{Kind: ColumnReal, Name: "c", Index: 2},
		{Kind: ColumnSupplement, Name: "x", Index: -1},
	}, plan.Targets())

	records := plan.Records(tbl.Rows()[1:])
	assert.Equal(t, [][]string{{"third", "extra"}, {"6", ""}}, records)

	records[0][0] = "changed"
	assert.Equal(t, []string{"third", "extra"}, plan.Records(nil)[0])
}

func TestQuery_UnknownOrderColumnBeforeScan(t *testing.T) {
	tbl := abcTable(t, []string{"1", "2", "3"})
	scanned := false
	scanner := scannerFunc(func(rows []*Row, keep KeepFunc) []*Row {
		scanned = true
		return Sequential().Scan(rows, keep)
	})

	_, err := tbl.Query(query.MustParse("SELECT * FROM t WHERE a = 1 ORDER BY nope"), WithScanner(scanner))
	require.ErrorIs(t, err, ErrColumnInvalid)
	assert.False(t, scanned, "rows must not be scanned")
}
