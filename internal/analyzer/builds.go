package analyzer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Sveder/riftwind/internal/model"
)

// BuildEntry compares the player's modal item set on one champion against
// an externally supplied reference build.
type BuildEntry struct {
	Champion       string `json:"champion"`
	Games          int    `json:"games"`
	ModalItems     []int  `json:"modal_items"`
	ReferenceItems []int  `json:"reference_items"`
	Overlap        int    `json:"overlap"` // items shared with the reference
}

// BuildInsight reports build overlap per champion. Overlap is reported, not
// judged.
type BuildInsight struct {
	Champions []BuildEntry `json:"champions"`
}

// itemSetKey canonicalizes a final item array: zero slots drop out, the
// rest sort so purchase order does not split otherwise identical builds.
func itemSetKey(items [7]int) (string, []int) {
	kept := make([]int, 0, 7)
	for _, it := range items {
		if it != 0 {
			kept = append(kept, it)
		}
	}
	sort.Ints(kept)
	parts := make([]string, len(kept))
	for i, it := range kept {
		parts[i] = fmt.Sprint(it)
	}
	return strings.Join(parts, ","), kept
}

// buildComparison finds the most frequent final item set per champion and
// reports its overlap with cfg.OptimalBuilds. Champions absent from the
// reference are skipped; with no reference at all the key is omitted.
func buildComparison(repo *model.MatchRepository, reference map[string][]int) (BuildInsight, bool) {
	if len(reference) == 0 || len(repo.Matches) == 0 {
		return BuildInsight{}, false
	}

	type modal struct {
		counts map[string]int
		items  map[string][]int
		games  int
	}
	byChampion := make(map[string]*modal)
	for _, m := range repo.Matches {
		if ref, ok := reference[m.ChampionName]; !ok || len(ref) == 0 {
			continue
		}
		key, items := itemSetKey(m.Items)
		if key == "" {
			continue
		}
		s := byChampion[m.ChampionName]
		if s == nil {
			s = &modal{counts: make(map[string]int), items: make(map[string][]int)}
			byChampion[m.ChampionName] = s
		}
		s.counts[key]++
		s.items[key] = items
		s.games++
	}
	if len(byChampion) == 0 {
		return BuildInsight{}, false
	}

	names := make([]string, 0, len(byChampion))
	for name := range byChampion {
		names = append(names, name)
	}
	sort.Strings(names)

	var out BuildInsight
	for _, name := range names {
		s := byChampion[name]
		bestKey := ""
		for key := range s.counts {
			if bestKey == "" || s.counts[key] > s.counts[bestKey] ||
				(s.counts[key] == s.counts[bestKey] && key < bestKey) {
				bestKey = key
			}
		}
		modalItems := s.items[bestKey]
		ref := reference[name]
		refSet := make(map[int]bool, len(ref))
		for _, it := range ref {
			refSet[it] = true
		}
		overlap := 0
		for _, it := range modalItems {
			if refSet[it] {
				overlap++
			}
		}
		out.Champions = append(out.Champions, BuildEntry{
			Champion:       name,
			Games:          s.games,
			ModalItems:     modalItems,
			ReferenceItems: append([]int(nil), ref...),
			Overlap:        overlap,
		})
	}
	return out, true
}
