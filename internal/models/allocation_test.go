package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestAllocation_SetKeepsInsertionOrder(t *testing.T) {
	a := &Allocation{}
	a.Set("Rent", dec("1000"))
	a.Set("Food", dec("100"))
	a.Set("Rent", dec("1100"))

	assert.Equal(t, []string{"Rent", "Food"}, a.Categories())
	amount, ok := a.Get("Rent")
	require.True(t, ok)
	assert.True(t, amount.Equal(dec("1100")))
	assert.Equal(t, 2, a.Len())
}

func TestAllocation_CaseSensitiveCategories(t *testing.T) {
	a := NewAllocation(CategoryAmount{"food", dec("1")}, CategoryAmount{"Food", dec("2")})
	assert.Equal(t, 2, a.Len())
	assert.False(t, a.Has("FOOD"))
}

func TestAllocation_Delete(t *testing.T) {
	a := NewAllocation(
		CategoryAmount{"A", dec("1")},
		CategoryAmount{"B", dec("2")},
		CategoryAmount{"C", dec("3")},
	)

	assert.True(t, a.Delete("B"))
	assert.False(t, a.Delete("B"))
	assert.Equal(t, []string{"A", "C"}, a.Categories())
	assert.True(t, a.Total().Equal(dec("4")))
}

func TestAllocation_TotalToleratesNegatives(t *testing.T) {
	a := NewAllocation(CategoryAmount{"Refund", dec("-20.5")}, CategoryAmount{"Food", dec("100")})
	assert.True(t, a.Total().Equal(dec("79.5")))
}

func TestAllocation_NilReadsAsEmpty(t *testing.T) {
	var a *Allocation
	assert.Equal(t, 0, a.Len())
	assert.Empty(t, a.Categories())
	assert.Empty(t, a.Entries())
	assert.True(t, a.Total().IsZero())
	assert.True(t, a.Equal(&Allocation{}))
	assert.Equal(t, 0, a.Clone().Len())
}

func TestAllocation_CloneIsIndependent(t *testing.T) {
	orig := NewAllocation(CategoryAmount{"Food", dec("100")})
	clone := orig.Clone()
	clone.Set("Food", dec("5"))
	clone.Set("Extra", dec("1"))

	amount, _ := orig.Get("Food")
	assert.True(t, amount.Equal(dec("100")))
	assert.Equal(t, 1, orig.Len())
	assert.False(t, orig.Equal(clone))
}

func TestAllocation_Equal(t *testing.T) {
	a := NewAllocation(CategoryAmount{"A", dec("1.0")}, CategoryAmount{"B", dec("2")})
	b := NewAllocation(CategoryAmount{"A", dec("1")}, CategoryAmount{"B", dec("2.00")})
	reordered := NewAllocation(CategoryAmount{"B", dec("2")}, CategoryAmount{"A", dec("1")})

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(reordered))
}

func TestAllocation_String(t *testing.T) {
	a := NewAllocation(CategoryAmount{"Food", dec("100")}, CategoryAmount{"Rent", dec("999.5")})
	assert.Equal(t, "Food: 100.00; Rent: 999.50", a.String())
}

func TestAllocation_JSON(t *testing.T) {
	a := NewAllocation(CategoryAmount{"Zeta", dec("1.5")}, CategoryAmount{"Alpha", dec("20")})

	data, err := json.Marshal(a)
	require.NoError(t, err)
	assert.Equal(t, `{"Zeta":1.5,"Alpha":20}`, string(data))

	var decoded Allocation
	require.NoError(t, json.Unmarshal([]byte(`{"Zeta": 1.5, "Alpha": "20"}`), &decoded))
	assert.True(t, a.Equal(&decoded))
}

func TestAllocation_UnmarshalJSONErrors(t *testing.T) {
	var a Allocation
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &a))
	assert.Error(t, json.Unmarshal([]byte(`{"Food": true}`), &a))
	assert.Error(t, json.Unmarshal([]byte(`{"Food": "lots"}`), &a))
}

func TestAllocation_YAMLRoundTripPreservesOrder(t *testing.T) {
	type doc struct {
		Budgets *Allocation `yaml:"budgets"`
	}
	in := doc{Budgets: NewAllocation(
		CategoryAmount{"Transport", dec("80")},
		CategoryAmount{"2024", dec("1")},
		CategoryAmount{"Food", dec("250.75")},
	)}

	data, err := yaml.Marshal(in)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"2024": 1`)

	var out doc
	require.NoError(t, yaml.Unmarshal(data, &out))
	assert.Equal(t, []string{"Transport", "2024", "Food"}, out.Budgets.Categories())
	assert.True(t, in.Budgets.Equal(out.Budgets))
}

func TestAllocation_UnmarshalYAMLRejectsInvalid(t *testing.T) {
	var a Allocation
	assert.Error(t, yaml.Unmarshal([]byte("- 1\n- 2\n"), &a))
	assert.Error(t, yaml.Unmarshal([]byte("Food: plenty\n"), &a))
}
