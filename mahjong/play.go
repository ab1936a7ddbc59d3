package mahjong

import (
	"fmt"
	"slices"
)

// Draw 从牌墙头部摸一张。牌墙为空时原样返回且牌为 TileNull，由调用方按流局处理。
func Draw(s *GameState, seat int32) (*GameState, Tile, error) {
	if err := s.checkTurn(seat); err != nil {
		return s, TileNull, err
	}
	if len(s.Players[seat].Hand)%3 != 1 {
		return s, TileNull, fmt.Errorf("%w: seat %d holds %d tiles", ErrIllegalDraw, seat, len(s.Players[seat].Hand))
	}
	if len(s.Wall) == 0 {
		return s, TileNull, nil
	}

	n := s.clone()
	tile := n.Wall[0]
	n.Wall = n.Wall[1:]
	n.Players[seat].Hand = SortedWith(n.Players[seat].Hand, tile)
	n.LastDiscard = nil
	n.Step++
	drawType := DrawNormal
	if n.PendingKongDraw == seat {
		drawType = DrawKong
		n.PendingKongDraw = SeatNull
	}
	n.LastDraw = &DrawInfo{Seat: seat, Type: drawType}
	return n, tile, nil
}

// Discard 出牌，打开对家的响应窗口
func Discard(s *GameState, seat int32, tile Tile) (*GameState, error) {
	if err := s.checkTurn(seat); err != nil {
		return s, err
	}
	hand := s.Players[seat].Hand
	if len(hand)%3 != 2 || !slices.Contains(hand, tile) {
		return s, fmt.Errorf("%w: seat %d tile %s", ErrIllegalDiscard, seat, tile)
	}

	n := s.clone()
	p := &n.Players[seat]
	p.Hand = RemoveElements(p.Hand, tile, 1)
	p.Discards = append(p.Discards, tile)
	n.LastDiscard = &DiscardInfo{Seat: seat, Tile: tile}
	n.Turn = Opponent(seat)
	n.LastDraw = nil
	n.Step++
	return n, nil
}

// checkClaim 对家刚打出的 tile 正等待响应
func (s *GameState) checkClaim(claimer, from int32, tile Tile, base error) error {
	if err := s.checkActive(claimer); err != nil {
		return err
	}
	d := s.LastDiscard
	if s.PendingRobKong != nil || d == nil || d.Seat != from || from != Opponent(claimer) || d.Tile != tile {
		return fmt.Errorf("%w: no discard %s from seat %d", base, tile, from)
	}
	return nil
}

// claimMeld 碰、明杠的公共部分：从手牌移出 count 张，从对家弃牌尾部取回被碰的牌
func claimMeld(s *GameState, claimer, from int32, tile Tile, count int, kind MeldKind) *GameState {
	n := s.clone()
	p := &n.Players[claimer]
	p.Hand = RemoveElements(p.Hand, tile, count)
	p.Melds = appendMeld(p.Melds, Meld{Kind: kind, Tile: tile, From: from})
	if discards := n.Players[from].Discards; len(discards) > 0 && discards[len(discards)-1] == tile {
		n.Players[from].Discards = discards[:len(discards)-1]
	}
	n.Turn = claimer
	n.LastDiscard = nil
	n.LastDraw = nil
	n.Step++
	return n
}

// ClaimPeng 碰，之后由碰的一方出牌
func ClaimPeng(s *GameState, claimer, from int32, tile Tile) (*GameState, error) {
	if err := s.checkClaim(claimer, from, tile, ErrIllegalPeng); err != nil {
		return s, err
	}
	if CountElement(s.Players[claimer].Hand, tile) < 2 {
		return s, fmt.Errorf("%w: seat %d lacks %s", ErrIllegalPeng, claimer, tile)
	}
	return claimMeld(s, claimer, from, tile, 2, MeldPong), nil
}

// ClaimKongExposed 明杠，之后由杠的一方补牌
func ClaimKongExposed(s *GameState, claimer, from int32, tile Tile) (*GameState, error) {
	if err := s.checkClaim(claimer, from, tile, ErrIllegalKongExposed); err != nil {
		return s, err
	}
	if CountElement(s.Players[claimer].Hand, tile) < 3 {
		return s, fmt.Errorf("%w: seat %d lacks %s", ErrIllegalKongExposed, claimer, tile)
	}
	n := claimMeld(s, claimer, from, tile, 3, MeldKongExposed)
	n.PendingKongDraw = claimer
	return n, nil
}

// KongConcealed 暗杠，摸牌后手里须正好4张
func KongConcealed(s *GameState, seat int32, tile Tile) (*GameState, error) {
	if err := s.checkTurn(seat); err != nil {
		return s, err
	}
	hand := s.Players[seat].Hand
	if s.LastDiscard != nil || len(hand)%3 != 2 || CountElement(hand, tile) != 4 {
		return s, fmt.Errorf("%w: seat %d tile %s", ErrIllegalKongConcealed, seat, tile)
	}

	n := s.clone()
	p := &n.Players[seat]
	p.Hand = RemoveElements(p.Hand, tile, 4)
	p.Melds = appendMeld(p.Melds, Meld{Kind: MeldKongConcealed, Tile: tile, From: seat})
	n.PendingKongDraw = seat
	n.LastDraw = nil
	n.Step++
	return n, nil
}

func (s *GameState) checkKongAdded(seat int32, tile Tile) error {
	if err := s.checkTurn(seat); err != nil {
		return err
	}
	p := s.Players[seat]
	if s.LastDiscard != nil || len(p.Hand)%3 != 2 || !slices.Contains(p.Hand, tile) {
		return fmt.Errorf("%w: seat %d tile %s", ErrIllegalKongAdded, seat, tile)
	}
	if findPong(p.Melds, tile) < 0 {
		return fmt.Errorf("%w: seat %d tile %s", ErrNoPongToUpgrade, seat, tile)
	}
	return nil
}

// KongAdded 直接完成加杠，不检查抢杠
func KongAdded(s *GameState, seat int32, tile Tile) (*GameState, error) {
	if err := s.checkKongAdded(seat, tile); err != nil {
		return s, err
	}
	return kongAdded(s, seat, tile), nil
}

func kongAdded(s *GameState, seat int32, tile Tile) *GameState {
	n := s.clone()
	p := &n.Players[seat]
	p.Melds, _ = upgradePong(p.Melds, tile)
	p.Hand = RemoveElements(p.Hand, tile, 1)
	n.PendingKongDraw = seat
	n.LastDraw = nil
	n.Step++
	return n
}

// PrepareAddedKong 加杠前先看对家能否抢杠。能抢则挂起抢杠窗口并把轮次交给对家，
// 返回 robPending=true；否则直接完成加杠。
func PrepareAddedKong(s *GameState, seat int32, tile Tile) (*GameState, bool, error) {
	if err := s.checkKongAdded(seat, tile); err != nil {
		return s, false, err
	}
	robber := Opponent(seat)
	opp := s.Players[robber]
	if CanHu(SortedWith(opp.Hand, tile), opp.Melds) {
		n := s.clone()
		n.PendingRobKong = &RobKong{Owner: seat, Tile: tile}
		n.Turn = robber
		return n, true, nil
	}
	return kongAdded(s, seat, tile), false, nil
}

// ResolveRobKong 结算抢杠窗口：win 则抢杠胡结束对局，否则完成加杠并把轮次还给杠主
func ResolveRobKong(s *GameState, robber int32, win bool) (*GameState, error) {
	if err := s.checkActive(robber); err != nil {
		return s, err
	}
	rk := s.PendingRobKong
	if rk == nil {
		return s, ErrNoPendingRobKong
	}
	if robber != Opponent(rk.Owner) {
		return s, fmt.Errorf("%w: seat %d", ErrNotRobber, robber)
	}

	if !win {
		n := s.clone()
		n.PendingRobKong = nil
		n.Turn = rk.Owner
		return kongAdded(n, rk.Owner, rk.Tile), nil
	}

	p := s.Players[robber]
	hand := SortedWith(p.Hand, rk.Tile)
	if !CanHu(hand, p.Melds) {
		return s, fmt.Errorf("%w: seat %d rob %s", ErrCannotWin, robber, rk.Tile)
	}
	n := s.clone()
	owner := &n.Players[rk.Owner]
	if slices.Contains(owner.Hand, rk.Tile) {
		owner.Hand = RemoveElements(owner.Hand, rk.Tile, 1)
	}
	n.Players[robber].Hand = hand
	n.PendingRobKong = nil
	n.LastDiscard = nil
	n.PendingKongDraw = SeatNull
	n.LastDraw = nil
	n.Turn = robber
	n.Step++
	return finish(n, robber, ReasonRobKong), nil
}

// DeclareWin 自摸或荣和，对局结束
func DeclareWin(s *GameState, seat int32, style WinStyle) (*GameState, error) {
	switch style {
	case WinSelf:
		if err := s.checkTurn(seat); err != nil {
			return s, err
		}
		p := s.Players[seat]
		if s.LastDiscard != nil || !CanHu(p.Hand, p.Melds) {
			return s, fmt.Errorf("%w: seat %d self draw", ErrCannotWin, seat)
		}
		reason := ReasonSelfDraw
		if d := s.LastDraw; d != nil && d.Seat == seat && d.Type == DrawKong {
			reason = ReasonSelfDrawKong
		}
		n := s.clone()
		n.Step++
		return finish(n, seat, reason), nil
	case WinRon:
		if err := s.checkActive(seat); err != nil {
			return s, err
		}
		d := s.LastDiscard
		if s.PendingRobKong != nil || d == nil || d.Seat != Opponent(seat) {
			return s, fmt.Errorf("%w: seat %d has no discard to ron", ErrCannotWin, seat)
		}
		p := s.Players[seat]
		hand := SortedWith(p.Hand, d.Tile)
		if !CanHu(hand, p.Melds) {
			return s, fmt.Errorf("%w: seat %d ron %s", ErrCannotWin, seat, d.Tile)
		}
		n := s.clone()
		n.Players[seat].Hand = hand
		if discards := n.Players[d.Seat].Discards; len(discards) > 0 && discards[len(discards)-1] == d.Tile {
			n.Players[d.Seat].Discards = discards[:len(discards)-1]
		}
		n.LastDiscard = nil
		n.Turn = seat
		n.Step++
		return finish(n, seat, ReasonRon), nil
	case WinRob:
		return ResolveRobKong(s, seat, true)
	default:
		return s, fmt.Errorf("%w: win style %d", ErrUnknownAction, style)
	}
}

// Pass 放弃响应窗口或抢杠窗口
func Pass(s *GameState, seat int32) (*GameState, error) {
	if err := s.checkActive(seat); err != nil {
		return s, err
	}
	if rk := s.PendingRobKong; rk != nil {
		return ResolveRobKong(s, seat, false)
	}
	if d := s.LastDiscard; d != nil && d.Seat == Opponent(seat) {
		n := s.clone()
		n.LastDiscard = nil
		return n, nil
	}
	return s, fmt.Errorf("%w: seat %d", ErrNothingToPass, seat)
}

// EndInDraw 牌墙摸完流局
func EndInDraw(s *GameState) (*GameState, error) {
	if s.Ended {
		return s, ErrGameEnded
	}
	if len(s.Wall) > 0 {
		return s, fmt.Errorf("%w: %d left", ErrWallNotExhausted, len(s.Wall))
	}
	return finish(s.clone(), SeatNull, ReasonWallExhausted), nil
}

// Abort 中止对局，无赢家
func Abort(s *GameState) (*GameState, error) {
	if s.Ended {
		return s, ErrGameEnded
	}
	return finish(s.clone(), SeatNull, ReasonAbort), nil
}

func finish(n *GameState, winner int32, reason WinReason) *GameState {
	n.Ended = true
	n.Winner = winner
	n.Reason = reason
	return n
}

// Apply 按动作分派到对应的转换
func Apply(s *GameState, seat int32, a Action) (*GameState, error) {
	switch a.Kind {
	case ActionDraw:
		n, _, err := Draw(s, seat)
		return n, err
	case ActionDiscard:
		return Discard(s, seat, a.Tile)
	case ActionPeng:
		return ClaimPeng(s, seat, Opponent(seat), a.Tile)
	case ActionKong:
		switch a.Kong {
		case KongStyleExposed:
			return ClaimKongExposed(s, seat, Opponent(seat), a.Tile)
		case KongStyleConcealed:
			return KongConcealed(s, seat, a.Tile)
		case KongStyleAdded:
			n, _, err := PrepareAddedKong(s, seat, a.Tile)
			return n, err
		default:
			return s, fmt.Errorf("%w: kong style %d", ErrUnknownAction, a.Kong)
		}
	case ActionWin:
		return DeclareWin(s, seat, a.Win)
	case ActionPass:
		return Pass(s, seat)
	default:
		return s, fmt.Errorf("%w: kind %d", ErrUnknownAction, a.Kind)
	}
}
