package query_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locvowork/empdept/pkg/query"
)

type dept struct {
	No   int
	Name string
}

var depts = []dept{{10, "acct"}, {20, "research"}, {40, "ops"}, {20, "research-annex"}}

type pair struct {
	Person string
	Dept   string
}

func TestJoin(t *testing.T) {
	out := query.Join(people, depts,
		func(p person) int { return p.Dept },
		func(d dept) int { return d.No },
		func(p person, d dept) pair { return pair{p.Name, d.Name} })

	// dee (30) and ops (40) have no partner; 20 matches two inner rows.
	assert.Equal(t, []pair{
		{"ann", "acct"},
		{"bob", "research"},
		{"bob", "research-annex"},
		{"cid", "acct"},
		{"eve", "research"},
		{"eve", "research-annex"},
	}, out)
}

func TestJoin_SwappedSidesHaveSameContent(t *testing.T) {
	forward := query.Join(people, depts,
		func(p person) int { return p.Dept },
		func(d dept) int { return d.No },
		func(p person, d dept) pair { return pair{p.Name, d.Name} })
	backward := query.Join(depts, people,
		func(d dept) int { return d.No },
		func(p person) int { return p.Dept },
		func(d dept, p person) pair { return pair{p.Name, d.Name} })

	key := func(ps []pair) func(i, j int) bool {
		return func(i, j int) bool {
			if ps[i].Person != ps[j].Person {
				return ps[i].Person < ps[j].Person
			}
			return ps[i].Dept < ps[j].Dept
		}
	}
	sort.Slice(forward, key(forward))
	sort.Slice(backward, key(backward))
	assert.Equal(t, forward, backward)
}

func TestJoin_EmptySide(t *testing.T) {
	out := query.Join([]person{}, depts,
		func(p person) int { return p.Dept },
		func(d dept) int { return d.No },
		func(p person, d dept) pair { return pair{} })
	assert.Empty(t, out)
}

func TestGroupBy(t *testing.T) {
	groups := query.GroupBy(people, func(p person) int { return p.Dept })
	require.Len(t, groups, 3)

	assert.Equal(t, []int{10, 20, 30}, query.Map(groups, func(g query.Group[int, person]) int { return g.Key }))
	assert.Equal(t, []string{"ann", "cid"}, names(groups[0].Items))
	assert.Equal(t, []string{"bob", "eve"}, names(groups[1].Items))
	assert.Equal(t, 1, groups[2].Len())

	total := query.Sum(groups, func(g query.Group[int, person]) int { return g.Len() })
	assert.Equal(t, len(people), total)
}

func TestToLookup(t *testing.T) {
	lookup := query.ToLookup(people, func(p person) int { return p.Age })
	assert.Equal(t, []string{"bob", "cid"}, names(lookup[25]))
	assert.Nil(t, lookup[99])
}
