package docstore

import (
	"encoding/json"
	"testing"
)

func doc(id string, fields map[string]string) *Document {
	data := make(map[string]json.RawMessage, len(fields))
	for k, v := range fields {
		data[k] = json.RawMessage(v)
	}
	return &Document{ID: id, Data: data}
}

func ids(docs []*Document) []string {
	out := make([]string, len(docs))
	for i, d := range docs {
		out[i] = d.ID
	}
	return out
}

func TestSortDocuments(t *testing.T) {
	tests := []struct {
		name string
		docs []*Document
		q    Query
		want []string
	}{
		{
			name: "no order field sorts by id",
			docs: []*Document{doc("c", nil), doc("a", nil), doc("b", nil)},
			want: []string{"a", "b", "c"},
		},
		{
			name: "numbers ascending",
			docs: []*Document{
				doc("x", map[string]string{"order": "10"}),
				doc("y", map[string]string{"order": "2"}),
				doc("z", map[string]string{"order": "0"}),
			},
			q:    Query{OrderBy: "order"},
			want: []string{"z", "y", "x"},
		},
		{
			name: "timestamps descending",
			docs: []*Document{
				doc("old", map[string]string{"created_at": `"2024-01-01T00:00:00.000Z"`}),
				doc("new", map[string]string{"created_at": `"2024-06-01T00:00:00.000Z"`}),
			},
			q:    Query{OrderBy: "created_at", Descending: true},
			want: []string{"new", "old"},
		},
		{
			name: "ties broken by id",
			docs: []*Document{
				doc("b", map[string]string{"order": "1"}),
				doc("a", map[string]string{"order": "1"}),
			},
			q:    Query{OrderBy: "order"},
			want: []string{"a", "b"},
		},
		{
			name: "null counts as missing",
			docs: []*Document{
				doc("nil", map[string]string{"order": "null"}),
				doc("one", map[string]string{"order": "1"}),
			},
			q:    Query{OrderBy: "order"},
			want: []string{"one", "nil"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sortDocuments(tt.docs, tt.q)
			got := ids(tt.docs)
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}
