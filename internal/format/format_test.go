package format

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"logpick.dev/internal/catalog"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name  string
		items []string
		want  string
	}{
		{
			name:  "empty selection",
			items: nil,
			want:  "[]",
		},
		{
			name:  "empty slice",
			items: []string{},
			want:  "[]",
		},
		{
			name:  "single item",
			items: []string{"tsch.synced"},
			want:  `["tsch.synced"]`,
		},
		{
			name:  "two items",
			items: []string{"app.tx", "app.rx"},
			want:  `["app.tx", "app.rx"]`,
		},
		{
			name:  "input order preserved",
			items: []string{"rpl.churn", "app.tx"},
			want:  `["rpl.churn", "app.tx"]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Render(tt.items))
		})
	}
}

func TestRenderFullCatalog(t *testing.T) {
	all := catalog.All()
	got := Render(all)

	assert.True(t, strings.HasPrefix(got, `["simulator.state", `))
	assert.True(t, strings.HasSuffix(got, `, "conn.matrix.update"]`))
	assert.Equal(t, catalog.Len(), strings.Count(got, ", ")+1)
	for _, name := range all {
		assert.Contains(t, got, `"`+name+`"`)
	}
}

func TestRenderIdempotent(t *testing.T) {
	items := []string{"secjoin.tx", "secjoin.rx", "secjoin.joined"}

	first := Render(items)
	second := Render(items)

	assert.Equal(t, first, second, "rendering must be a pure function of its input")
}

func TestRenderDoesNotEscape(t *testing.T) {
	// The contract is literal quoting only; anything between the
	// quotes passes through untouched.
	assert.Equal(t, `["a\b"]`, Render([]string{`a\b`}))
}

func TestSortCatalogOrder(t *testing.T) {
	tests := []struct {
		name  string
		items []string
		want  []string
	}{
		{
			name:  "reversed pair",
			items: []string{"app.rx", "app.tx"},
			want:  []string{"app.tx", "app.rx"},
		},
		{
			name:  "scrambled subset",
			items: []string{"conn.matrix.update", "simulator.state", "tsch.synced"},
			want:  []string{"simulator.state", "tsch.synced", "conn.matrix.update"},
		},
		{
			name:  "unknown identifiers sort last in given order",
			items: []string{"zz.unknown", "app.tx", "aa.unknown"},
			want:  []string{"app.tx", "zz.unknown", "aa.unknown"},
		},
		{
			name:  "empty",
			items: nil,
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SortCatalogOrder(tt.items))
		})
	}
}

func TestSortCatalogOrderFullPermutation(t *testing.T) {
	// Reverse the whole catalog and check it comes back in order.
	all := catalog.All()
	reversed := make([]string, len(all))
	for i, name := range all {
		reversed[len(all)-1-i] = name
	}

	assert.Equal(t, all, SortCatalogOrder(reversed))
}
