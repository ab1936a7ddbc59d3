package mahjong

import "fmt"

const (
	SeatNull int32 = -1
)

const (
	NP2 = 2
)

const (
	TileTypeCount  = 27                            // 万条筒各9种
	SameTileCount  = 4                             // 每种牌4张
	TotalTileCount = TileTypeCount * SameTileCount // 108
	HandTileCount  = 13
	MeldCountToWin = 4 // 4面子1将
)

// 副露类型
type MeldKind int

const (
	MeldPong          MeldKind = iota // 碰
	MeldKongExposed                   // 明杠
	MeldKongConcealed                 // 暗杠
	MeldKongAdded                     // 加杠
)

var meldKindNames = map[MeldKind]string{
	MeldPong:          "pong",
	MeldKongExposed:   "kong_exposed",
	MeldKongConcealed: "kong_concealed",
	MeldKongAdded:     "kong_added",
}

func (k MeldKind) String() string {
	if name, ok := meldKindNames[k]; ok {
		return name
	}
	return "unknown"
}

func (k MeldKind) IsKong() bool {
	return k == MeldKongExposed || k == MeldKongConcealed || k == MeldKongAdded
}

// IsExposed 碰、明杠、加杠都会破坏门清
func (k MeldKind) IsExposed() bool {
	return k != MeldKongConcealed
}

// 摸牌来源
type DrawType int

const (
	DrawNormal DrawType = iota // 正常摸牌
	DrawKong                   // 杠后补牌
)

func (d DrawType) String() string {
	if d == DrawKong {
		return "kong"
	}
	return "normal"
}

// 结束原因
type WinReason int

const (
	ReasonWallExhausted WinReason = iota // 流局
	ReasonSelfDraw                       // 自摸
	ReasonSelfDrawKong                   // 杠上开花
	ReasonRon                            // 荣和
	ReasonRobKong                        // 抢杠
	ReasonAbort                          // 中止
)

var winReasonNames = map[WinReason]string{
	ReasonWallExhausted: "wall_exhausted",
	ReasonSelfDraw:      "zimo",
	ReasonSelfDrawKong:  "zimo_kong",
	ReasonRon:           "ron",
	ReasonRobKong:       "rob_kong",
	ReasonAbort:         "abort",
}

var winReasonIDs = map[string]WinReason{
	"wall_exhausted": ReasonWallExhausted,
	"zimo":           ReasonSelfDraw,
	"zimo_kong":      ReasonSelfDrawKong,
	"ron":            ReasonRon,
	"rob_kong":       ReasonRobKong,
	"abort":          ReasonAbort,
}

func (r WinReason) String() string {
	if name, ok := winReasonNames[r]; ok {
		return name
	}
	return "unknown"
}

func (r WinReason) IsSelfDraw() bool {
	return r == ReasonSelfDraw || r == ReasonSelfDrawKong
}

// IsWin 是否为有赢家的结束原因
func (r WinReason) IsWin() bool {
	return r == ReasonSelfDraw || r == ReasonSelfDrawKong || r == ReasonRon || r == ReasonRobKong
}

func (r WinReason) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *WinReason) UnmarshalText(text []byte) error {
	v, ok := winReasonIDs[string(text)]
	if !ok {
		return fmt.Errorf("unknown win reason %q", text)
	}
	*r = v
	return nil
}

func ParseWinReason(name string) (WinReason, bool) {
	r, ok := winReasonIDs[name]
	return r, ok
}

// Opponent 双人麻将的对家
func Opponent(seat int32) int32 {
	return 1 - seat
}

func validSeat(seat int32) bool {
	return seat == 0 || seat == 1
}
