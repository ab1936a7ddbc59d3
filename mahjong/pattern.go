package mahjong

// 番型判定，凡依赖拆法的判定都取"存在某种拆法满足"

func handAndMeldTiles(hand []Tile, melds []Meld) []Tile {
	res := make([]Tile, 0, len(hand)+4*len(melds))
	res = append(res, hand...)
	return append(res, MeldsTiles(melds)...)
}

func hasExposedMeld(melds []Meld) bool {
	for _, m := range melds {
		if m.Kind.IsExposed() {
			return true
		}
	}
	return false
}

// IsFourConcealedTriplets 四暗刻
func IsFourConcealedTriplets(hand []Tile, melds []Meld) bool {
	if hasExposedMeld(melds) {
		return false
	}
	for _, d := range DecomposeAll(hand, melds) {
		if d.ConcealedTriplets() == 4 {
			return true
		}
	}
	return false
}

// IsFourKongs 四杠
func IsFourKongs(melds []Meld) bool {
	return len(melds) == MeldCountToWin && CountKongs(melds) == MeldCountToWin
}

// IsAllTerminals 清幺九
func IsAllTerminals(hand []Tile, melds []Meld) bool {
	tiles := handAndMeldTiles(hand, melds)
	if len(tiles) == 0 {
		return false
	}
	for _, t := range tiles {
		if !t.IsTerminal() {
			return false
		}
	}
	return true
}

// IsTanyao 断幺九
func IsTanyao(hand []Tile, melds []Meld) bool {
	tiles := handAndMeldTiles(hand, melds)
	if len(tiles) == 0 {
		return false
	}
	for _, t := range tiles {
		if t.IsTerminal() {
			return false
		}
	}
	return true
}

// IsMenzen 门前清，暗杠不破门清
func IsMenzen(melds []Meld) bool {
	return !hasExposedMeld(melds)
}

// IsAllTriplets 对对胡
func IsAllTriplets(hand []Tile, melds []Meld) bool {
	for _, d := range DecomposeAll(hand, melds) {
		if d.allOf(GroupTriplet) {
			return true
		}
	}
	return false
}

// IsAllSequences 四组全是顺子
func IsAllSequences(hand []Tile, melds []Meld) bool {
	for _, d := range DecomposeAll(hand, melds) {
		if d.allOf(GroupSequence) {
			return true
		}
	}
	return false
}

// CountConcealedTriplets 所有拆法中暗刻数的最大值，未胡为 0
func CountConcealedTriplets(hand []Tile, melds []Meld) int {
	best := 0
	for _, d := range DecomposeAll(hand, melds) {
		best = max(best, d.ConcealedTriplets())
	}
	return best
}

// IsFullFlush 清一色
func IsFullFlush(hand []Tile, melds []Meld) bool {
	tiles := handAndMeldTiles(hand, melds)
	if len(tiles) == 0 {
		return false
	}
	suit := tiles[0].Suit()
	for _, t := range tiles[1:] {
		if t.Suit() != suit {
			return false
		}
	}
	return true
}

func CountKongs(melds []Meld) int {
	n := 0
	for _, m := range melds {
		if m.Kind.IsKong() {
			n++
		}
	}
	return n
}
