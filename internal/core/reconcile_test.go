package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReconcile(t *testing.T) {
	codes := CodeNameMap{
		"af": "Afghanistan",
		"td": "Chad",
		"xx": "Atlantis",
		"kr": "Korea, Republic of",
	}
	known := NewNameSet("Afghanistan", "Chad", "Korea, Rep.")

	res := Reconcile(codes, known)

	assert.Equal(t, CodeNameMap{"af": "Afghanistan", "td": "Chad"}, res.Matched)
	assert.Equal(t, []string{"kr", "xx"}, res.Unmatched.Sorted())
}

func TestReconcile_CaseSensitive(t *testing.T) {
	res := Reconcile(CodeNameMap{"td": "chad"}, NewNameSet("Chad"))

	assert.Empty(t, res.Matched)
	assert.True(t, res.Unmatched.Has("td"))
}

func TestReconcile_Empty(t *testing.T) {
	res := Reconcile(CodeNameMap{}, NewNameSet("Chad"))

	assert.NotNil(t, res.Matched)
	assert.NotNil(t, res.Unmatched)
	assert.Empty(t, res.Matched)
	assert.Zero(t, res.Unmatched.Len())
}

func TestReconcile_Partition(t *testing.T) {
	codes := CodeNameMap{}
	names := make([]string, 0)
	for i, n := range []string{"A", "B", "C", "D", "E", "F", "G"} {
		codes[string(rune('a'+i))] = n
		if i%2 == 0 {
			names = append(names, n)
		}
	}

	res := Reconcile(codes, NewNameSet(names...))

	assert.Equal(t, len(codes), len(res.Matched)+res.Unmatched.Len())
	for code := range res.Matched {
		assert.False(t, res.Unmatched.Has(code), "code %s in both outputs", code)
	}
	for code, name := range res.Matched {
		assert.Equal(t, codes[code], name)
	}
}

func TestReconcile_DoesNotMutateInput(t *testing.T) {
	codes := CodeNameMap{"af": "Afghanistan", "xx": "Atlantis"}
	Reconcile(codes, NewNameSet("Afghanistan"))

	assert.Equal(t, CodeNameMap{"af": "Afghanistan", "xx": "Atlantis"}, codes)
}
