package svmhmm

import "sort"

// GroupFolds assigns indices to at most k folds so that every index sharing
// a group lands in the same fold. Groups are dealt round-robin in ascending
// order.
func GroupFolds(groups []int, k int) [][]int {
	uniqueGroups := make(map[int]bool)
	for _, g := range groups {
		uniqueGroups[g] = true
	}
	sortedGroups := make([]int, 0, len(uniqueGroups))
	for g := range uniqueGroups {
		sortedGroups = append(sortedGroups, g)
	}
	sort.Ints(sortedGroups)

	if k > len(sortedGroups) {
		k = len(sortedGroups)
	}
	if k <= 0 {
		return nil
	}

	groupToFold := make(map[int]int, len(sortedGroups))
	for i, g := range sortedGroups {
		groupToFold[g] = i % k
	}

	folds := make([][]int, k)
	for i, g := range groups {
		fold := groupToFold[g]
		folds[fold] = append(folds[fold], i)
	}
	return folds
}

// Folds deals n indices round-robin into at most k folds.
func Folds(n, k int) [][]int {
	groups := make([]int, n)
	for i := range groups {
		groups[i] = i
	}
	return GroupFolds(groups, k)
}

// QIDGroups returns one group per distinct qid, in order of appearance.
func QIDGroups(examples []Example) []int {
	groups := make([]int, len(examples))
	seen := make(map[uint64]int)
	for i, ex := range examples {
		if _, ok := seen[ex.QID]; !ok {
			seen[ex.QID] = len(seen)
		}
		groups[i] = seen[ex.QID]
	}
	return groups
}

// SplitFold returns the examples outside and inside fold.
func SplitFold(examples []Example, fold []int) (train, test []Example) {
	testSet := make([]bool, len(examples))
	for _, i := range fold {
		testSet[i] = true
	}
	for i, ex := range examples {
		if testSet[i] {
			test = append(test, ex)
		} else {
			train = append(train, ex)
		}
	}
	return train, test
}
