package engine

import "github.com/memtree/memtree/model"

// treeMaxima computes the three largest distinct RSS values in the tree.
// max2/max3 are 0 when no such value exists; 0 is never a valid second or
// third value (an all-zero tree gets no highlights beyond first).
func treeMaxima(t *model.Tree) (max1, max2, max3 uint64) {
	for _, n := range t.Nodes {
		if n.RSSBytes > max1 {
			max1 = n.RSSBytes
		}
	}
	for _, n := range t.Nodes {
		if n.RSSBytes != max1 && n.RSSBytes > max2 {
			max2 = n.RSSBytes
		}
	}
	for _, n := range t.Nodes {
		if n.RSSBytes != max1 && n.RSSBytes != max2 && n.RSSBytes > max3 {
			max3 = n.RSSBytes
		}
	}
	return max1, max2, max3
}

// rankTree marks every node holding one of the tree's three largest distinct
// RSS values. Ranking is by value, not by node: all ties on a value share its
// rank. Each node gets at most one rank.
func rankTree(t *model.Tree) {
	max1, max2, max3 := treeMaxima(t)
	for _, n := range t.Nodes {
		switch {
		case n.RSSBytes == max1:
			n.Rank = model.RankFirst
		case n.RSSBytes == max2 && max2 > 0:
			n.Rank = model.RankSecond
		case n.RSSBytes == max3 && max3 > 0:
			n.Rank = model.RankThird
		default:
			n.Rank = model.RankNone
		}
	}
}
