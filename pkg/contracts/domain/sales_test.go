package domain

import (
	"encoding/json"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStoreID(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		numeric bool
		str     string
	}{
		{"integer", "42", true, "42"},
		{"zero", "0", true, "0"},
		{"negative", "-3", true, "-3"},
		{"word", "outlet-9", false, "outlet-9"},
		{"float is not numeric", "1.5", false, "1.5"},
		{"empty", "", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := ParseStoreID(tt.raw)
			assert.Equal(t, tt.numeric, id.Numeric)
			assert.Equal(t, tt.str, id.String())
		})
	}
}

func TestStoreIDMatches(t *testing.T) {
	numeric := ParseStoreID("7")
	str := ParseStoreID("Store-7")

	// Numeric filter matches only numeric ids with the same value
	assert.True(t, numeric.Matches("7"))
	assert.False(t, numeric.Matches("8"))
	assert.False(t, str.Matches("7"))

	// String filter compares exactly, case sensitive
	assert.True(t, str.Matches("Store-7"))
	assert.False(t, str.Matches("store-7"))
	assert.False(t, numeric.Matches("Store-7"))
}

func TestStoreIDEqual(t *testing.T) {
	assert.True(t, ParseStoreID("5").Equal(ParseStoreID("5")))
	assert.False(t, ParseStoreID("5").Equal(ParseStoreID("6")))
	assert.True(t, ParseStoreID("east").Equal(ParseStoreID("east")))
	assert.True(t, ParseStoreID("5").Equal(StoreID{Str: "5"}))
}

func TestStoreIDOrdering(t *testing.T) {
	ids := []StoreID{
		ParseStoreID("west"),
		ParseStoreID("10"),
		ParseStoreID("2"),
		ParseStoreID("east"),
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i].Less(ids[j]) })

	got := make([]string, len(ids))
	for i, id := range ids {
		got[i] = id.String()
	}
	// Numeric ids first in numeric order, then strings lexically
	assert.Equal(t, []string{"2", "10", "east", "west"}, got)
}

func TestStoreIDMarshalJSON(t *testing.T) {
	numeric, err := json.Marshal(ParseStoreID("12"))
	require.NoError(t, err)
	assert.Equal(t, "12", string(numeric))

	str, err := json.Marshal(ParseStoreID("outlet-9"))
	require.NoError(t, err)
	assert.Equal(t, `"outlet-9"`, string(str))
}
