package persona

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/mbrewrite/shared"
)

func TestBuiltins(t *testing.T) {
	expected := []string{"INTJ", "INTP", "ENTJ", "ENTP", "INFJ", "INFP", "ENFJ", "ENFP",
		"ISTJ", "ISFJ", "ESTJ", "ESFJ", "ISTP", "ISFP", "ESTP", "ESFP"}
	items := Builtins()
	require.Len(t, items, len(expected))
	ids := map[string]bool{}
	for i, item := range items {
		assert.EqualValues(t, expected[i], item.Label)
		assert.True(t, item.IsBuiltin)
		assert.True(t, strings.HasPrefix(item.Description, item.Label+" (The "), item.Description)
		assert.EqualValues(t, BuiltinID(item.Label), item.ID)
		ids[item.ID] = true
	}
	assert.Len(t, ids, len(expected))
	assert.EqualValues(t, items[0].ID, Builtins()[0].ID)
	assert.EqualValues(t,
		"INTJ (The Architect): Strategic, independent, analytical, and decisive. Values competence and efficiency. Communicates directly and logically.",
		items[0].Description)
}

func TestCatalog_AddCustom(t *testing.T) {
	testCases := []struct {
		name        string
		label       string
		description string
		field       string
	}{
		{name: "valid", label: "  Grumpy Boss ", description: " Terse and impatient. "},
		{name: "empty label", label: "  ", description: "x", field: "label"},
		{name: "empty description", label: "x", description: "\t", field: "description"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			catalog := NewCatalog()
			p, err := catalog.AddCustom(tc.label, tc.description)
			if tc.field != "" {
				var validationErr *shared.ValidationError
				require.True(t, errors.As(err, &validationErr))
				assert.EqualValues(t, tc.field, validationErr.Field)
				assert.Empty(t, catalog.Customs())
				return
			}
			require.NoError(t, err)
			assert.EqualValues(t, "Grumpy Boss", p.Label)
			assert.EqualValues(t, "Terse and impatient.", p.Description)
			assert.False(t, p.IsBuiltin)
			assert.NotEmpty(t, p.ID)
			list := catalog.List()
			require.Len(t, list, 17)
			assert.EqualValues(t, p, list[16])
		})
	}
}

func TestCatalog_RemoveCustom(t *testing.T) {
	catalog := NewCatalog()
	a, err := catalog.AddCustom("A", "first")
	require.NoError(t, err)
	b, err := catalog.AddCustom("B", "second")
	require.NoError(t, err)

	assert.True(t, catalog.RemoveCustom(a.ID))
	assert.False(t, catalog.RemoveCustom(a.ID))
	assert.False(t, catalog.RemoveCustom(BuiltinID("INTJ")))
	assert.False(t, catalog.RemoveCustom("unknown"))

	assert.EqualValues(t, []*Persona{b}, catalog.Customs())
	assert.Len(t, catalog.List(), 17)
}

func TestCatalog_FindAndLookup(t *testing.T) {
	catalog := NewCatalog()
	custom, err := catalog.AddCustom("Pirate", "Speaks like a pirate.")
	require.NoError(t, err)

	p, ok := catalog.Find(BuiltinID("ENFP"))
	require.True(t, ok)
	assert.EqualValues(t, "ENFP", p.Label)

	p, ok = catalog.Find(custom.ID)
	require.True(t, ok)
	assert.EqualValues(t, custom, p)

	_, ok = catalog.Find("missing")
	assert.False(t, ok)

	testCases := []struct {
		label    string
		expected string
		found    bool
	}{
		{label: "intj", expected: "INTJ", found: true},
		{label: " EnFp ", expected: "ENFP", found: true},
		{label: "pirate", expected: "Pirate", found: true},
		{label: "XXXX"},
		{label: ""},
	}
	for _, tc := range testCases {
		t.Run(tc.label, func(t *testing.T) {
			p, ok := catalog.Lookup(tc.label)
			assert.EqualValues(t, tc.found, ok)
			if tc.found {
				assert.EqualValues(t, tc.expected, p.Label)
			}
		})
	}
}

func TestCatalog_SetCustoms(t *testing.T) {
	catalog := NewCatalog()
	catalog.SetCustoms([]*Persona{
		{ID: "1", Label: "One", Description: "first", IsBuiltin: true},
		{ID: "1", Label: "Dup", Description: "dup"},
		{ID: "", Label: "NoID", Description: "x"},
		{ID: "2", Label: " ", Description: "x"},
		nil,
		{ID: "3", Label: "Three", Description: "third"},
	})
	assert.EqualValues(t, []*Persona{
		{ID: "1", Label: "One", Description: "first"},
		{ID: "3", Label: "Three", Description: "third"},
	}, catalog.Customs())
}

func TestCatalog_ReturnsCopies(t *testing.T) {
	catalog := NewCatalog()
	catalog.List()[0].Label = "changed"
	catalog.Builtins()[0].Description = "changed"
	p, ok := catalog.Find(BuiltinID("INTJ"))
	require.True(t, ok)
	assert.EqualValues(t, "INTJ", p.Label)
	assert.NotEqual(t, "changed", p.Description)
}
