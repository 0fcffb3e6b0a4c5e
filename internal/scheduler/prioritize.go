package scheduler

// Per-module minimum coverage floors for review sessions.
const (
	FlashcardModuleFloor = 10
	ActivityModuleFloor  = 5
)

// PrioritizeInput is the progress-derived state the prioritizer ranks from.
// Orderings are significant: LearnedModuleIDs and ModuleOrder follow the
// course's module order, ItemsByModule and AllItemIDs the items' original
// encounter order.
type PrioritizeInput struct {
	LearnedModuleIDs []string
	ModuleOrder      []string
	ItemsByModule    map[string][]string
	AllItemIDs       []string
	HardItemIDs      map[string]bool
	FailedModuleIDs  map[string]bool
}

// PrioritizeFlashcards ranks the full flashcard catalog for review. The
// ordering is advisory: the consuming session decides how many items from
// the front it actually presents.
//
// Tier 1 takes up to FlashcardModuleFloor cards per learned module so no
// module is invisible. Tier 2 appends cards the student rated HARD. The
// rest of the catalog follows in original order.
func PrioritizeFlashcards(in PrioritizeInput) []string {
	return rankItems(in, FlashcardModuleFloor, false)
}

// PrioritizeActivities ranks learning activities like PrioritizeFlashcards
// but with a lower per-module floor and one extra signal: activities from a
// module whose most recent quiz attempt failed are boosted ahead of the
// filler tier, on the reasoning that a failed checkpoint flags the whole
// module's practice material for re-exposure.
func PrioritizeActivities(in PrioritizeInput) []string {
	return rankItems(in, ActivityModuleFloor, true)
}

func rankItems(in PrioritizeInput, floor int, boostFailedModules bool) []string {
	ordered := make([]string, 0, len(in.AllItemIDs))
	seen := make(map[string]bool, len(in.AllItemIDs))
	add := func(id string) {
		if id == "" || seen[id] {
			return
		}
		seen[id] = true
		ordered = append(ordered, id)
	}

	// Tier 1: minimum per-module coverage, learned modules only.
	for _, moduleID := range in.LearnedModuleIDs {
		items := in.ItemsByModule[moduleID]
		for i := 0; i < len(items) && i < floor; i++ {
			add(items[i])
		}
	}

	// Tier 2: difficulty signal from prior review history.
	for _, id := range in.AllItemIDs {
		if in.HardItemIDs[id] {
			add(id)
		}
	}

	// Tier 3: failed-checkpoint boost (activities only).
	if boostFailedModules {
		for _, moduleID := range in.ModuleOrder {
			if !in.FailedModuleIDs[moduleID] {
				continue
			}
			for _, id := range in.ItemsByModule[moduleID] {
				add(id)
			}
		}
	}

	// Tier 4: everything else, original order, so the full catalog stays
	// reachable.
	for _, id := range in.AllItemIDs {
		add(id)
	}
	return ordered
}
