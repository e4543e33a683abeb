package reconcile

import (
	"slices"
)

// Reconcile computes which distinct lines exist on only one side.
// Duplicates and input order do not matter; the result is sorted.
func Reconcile(relational, warehouse []string, opts Options) *Result {
	relSet := toSet(relational)
	whSet := toSet(warehouse)

	result := &Result{
		Summary: Summary{
			RelationalLines:    len(relational),
			WarehouseLines:     len(warehouse),
			RelationalDistinct: len(relSet),
			WarehouseDistinct:  len(whSet),
		},
		SentinelsInjected: opts.InjectSentinels,
	}

	onlyRel := difference(relSet, whSet)
	onlyWh := difference(whSet, relSet)

	// Sentinels never enter the sets the reported difference is computed from.
	// Each one only surfaces on its own side if neither dataset already holds it.
	if opts.InjectSentinels {
		result.SentinelsVerified = surfaces(RelationalSentinel, relSet, whSet) &&
			surfaces(WarehouseSentinel, relSet, whSet)
	}

	result.OnlyInRelational = onlyRel
	result.OnlyInWarehouse = onlyWh
	result.Summary.OnlyInRelational = len(onlyRel)
	result.Summary.OnlyInWarehouse = len(onlyWh)

	return result
}

func toSet(lines []string) map[string]struct{} {
	set := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		set[line] = struct{}{}
	}
	return set
}

// difference returns the sorted keys of a that are not in b.
func difference(a, b map[string]struct{}) []string {
	out := []string{}
	for key := range a {
		if _, ok := b[key]; !ok {
			out = append(out, key)
		}
	}
	slices.Sort(out)
	return out
}

// surfaces reports whether sentinel, added to one side, would show up as a difference.
func surfaces(sentinel string, relational, warehouse map[string]struct{}) bool {
	_, inRel := relational[sentinel]
	_, inWh := warehouse[sentinel]
	return !inRel && !inWh
}
