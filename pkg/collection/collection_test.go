package collection_test

import (
	"reflect"
	"testing"

	"github.com/buildmaster/storefront/pkg/collection"
)

func TestMapAndFilter(t *testing.T) {
	prices := []int{100, 450, 900, 1500}

	affordable := collection.Filter(prices, func(p int) bool { return p <= 900 })
	if !reflect.DeepEqual(affordable, []int{100, 450, 900}) {
		t.Errorf("Filter = %v", affordable)
	}

	doubled := collection.Map(affordable, func(p int) int { return p * 2 })
	if !reflect.DeepEqual(doubled, []int{200, 900, 1800}) {
		t.Errorf("Map = %v", doubled)
	}
}

func TestFilterNoMatchesReturnsNil(t *testing.T) {
	out := collection.Filter([]int{1, 2, 3}, func(int) bool { return false })
	if out != nil {
		t.Errorf("expected nil, got %v", out)
	}
}

func TestFirstAndContains(t *testing.T) {
	names := []string{"cpu", "gpu", "psu"}

	got, ok := collection.First(names, func(s string) bool { return s == "gpu" })
	if !ok || got != "gpu" {
		t.Errorf("First = %q, %v", got, ok)
	}

	_, ok = collection.First(names, func(s string) bool { return s == "case" })
	if ok {
		t.Error("First matched a missing element")
	}

	if !collection.Contains(names, func(s string) bool { return s == "psu" }) {
		t.Error("Contains missed psu")
	}
}

func TestSortByOrdersInPlace(t *testing.T) {
	wattages := []int{550, 1000, 850}
	collection.SortBy(wattages, func(a, b int) bool { return a > b })
	if !reflect.DeepEqual(wattages, []int{1000, 850, 550}) {
		t.Errorf("SortBy = %v", wattages)
	}
}

func TestTake(t *testing.T) {
	s := []int{1, 2, 3}
	if got := collection.Take(s, 2); !reflect.DeepEqual(got, []int{1, 2}) {
		t.Errorf("Take(2) = %v", got)
	}
	if got := collection.Take(s, 10); !reflect.DeepEqual(got, s) {
		t.Errorf("Take beyond length = %v", got)
	}
}

func TestUnique(t *testing.T) {
	ids := []uint{3, 1, 3, 2, 1}
	if got := collection.Unique(ids); !reflect.DeepEqual(got, []uint{3, 1, 2}) {
		t.Errorf("Unique = %v", got)
	}
}

func TestReduce(t *testing.T) {
	total := collection.Reduce([]int{100, 450, 900}, 0, func(sum, p int) int { return sum + p })
	if total != 1450 {
		t.Errorf("Reduce = %d", total)
	}
}

func TestKeyByLastWins(t *testing.T) {
	type part struct {
		ID   uint
		Name string
	}
	parts := []part{{1, "old"}, {2, "gpu"}, {1, "new"}}
	byID := collection.KeyBy(parts, func(p part) uint { return p.ID })
	if byID[1].Name != "new" || byID[2].Name != "gpu" {
		t.Errorf("KeyBy = %v", byID)
	}
}

func TestGroupBy(t *testing.T) {
	words := []string{"atx", "matx", "itx", "am5"}
	groups := collection.GroupBy(words, func(s string) string { return s[:1] })
	if len(groups["a"]) != 2 || len(groups["m"]) != 1 || len(groups["i"]) != 1 {
		t.Errorf("GroupBy = %v", groups)
	}
}
