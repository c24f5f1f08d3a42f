package diff

import (
	"reflect"
	"testing"
)

func TestSelectKeys(t *testing.T) {
	tests := []struct {
		name string
		a    Table
		b    Table
		want []string
	}{
		{
			name: "unique shared column qualifies",
			a: Table{
				Columns: []string{"id", "name"},
				Rows:    [][]string{{"1", "x"}, {"2", "x"}, {"3", "x"}},
			},
			b: Table{
				Columns: []string{"id", "name"},
				Rows:    [][]string{{"1", "x"}, {"2", "x"}},
			},
			want: []string{"id"},
		},
		{
			name: "qualifying columns keep a's column order",
			a: Table{
				Columns: []string{"name", "id"},
				Rows:    [][]string{{"a", "1"}, {"b", "2"}},
			},
			b: Table{
				Columns: []string{"id", "name"},
				Rows:    [][]string{{"1", "a"}, {"2", "b"}},
			},
			want: []string{"name", "id"},
		},
		{
			name: "no intersection returns nil",
			a: Table{
				Columns: []string{"x"},
				Rows:    [][]string{{"1"}},
			},
			b: Table{
				Columns: []string{"y"},
				Rows:    [][]string{{"1"}},
			},
			want: nil,
		},
		{
			name: "low uniqueness falls back to first columns",
			a: Table{
				Columns: []string{"type", "flag"},
				Rows:    [][]string{{"a", "0"}, {"a", "0"}, {"b", "1"}, {"b", "1"}, {"a", "0"}},
			},
			b: Table{
				Columns: []string{"type", "flag"},
				Rows:    [][]string{{"a", "0"}, {"a", "1"}, {"b", "0"}, {"b", "1"}, {"b", "0"}},
			},
			want: []string{"type", "flag"},
		},
		{
			name: "result capped at three columns",
			a: Table{
				Columns: []string{"c1", "c2", "c3", "c4"},
				Rows:    [][]string{{"1", "1", "1", "1"}, {"2", "2", "2", "2"}},
			},
			b: Table{
				Columns: []string{"c1", "c2", "c3", "c4"},
				Rows:    [][]string{{"1", "1", "1", "1"}, {"2", "2", "2", "2"}},
			},
			want: []string{"c1", "c2", "c3"},
		},
		{
			name: "empty table passes the uniqueness check vacuously",
			a: Table{
				Columns: []string{"id"},
			},
			b: Table{
				Columns: []string{"id"},
				Rows:    [][]string{{"1"}, {"2"}},
			},
			want: []string{"id"},
		},
		{
			name: "column must qualify in both tables",
			a: Table{
				Columns: []string{"id"},
				Rows:    [][]string{{"1"}, {"2"}, {"3"}, {"4"}, {"5"}},
			},
			b: Table{
				Columns: []string{"id"},
				Rows:    [][]string{{"1"}, {"1"}, {"1"}, {"1"}, {"2"}},
			},
			// id fails in b, so the fallback picks it anyway as the
			// only shared column.
			want: []string{"id"},
		},
	}

	d := newTestDiffer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := d.selectKeys(tt.a, tt.b)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("selectKeys() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSelectKeys_ThresholdBoundary(t *testing.T) {
	// Exactly 0.8 must not qualify: the ratio has to exceed the
	// threshold. 4 distinct out of 5 rows is exactly 0.8.
	a := Table{
		Columns: []string{"id", "grp"},
		Rows:    [][]string{{"1", "a"}, {"2", "a"}, {"3", "a"}, {"4", "a"}, {"4", "b"}},
	}
	b := Table{
		Columns: []string{"id", "grp"},
		Rows:    [][]string{{"1", "a"}, {"2", "a"}, {"3", "a"}, {"4", "a"}, {"4", "b"}},
	}

	got := newTestDiffer().selectKeys(a, b)

	// Neither column exceeds 0.8, so the fallback returns both.
	want := []string{"id", "grp"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("selectKeys() = %v, want fallback %v", got, want)
	}
}
