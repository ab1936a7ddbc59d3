package mahjong

import (
	"encoding/json"
	"fmt"
)

type ActionKind int

const (
	ActionDraw    ActionKind = iota // 摸牌
	ActionDiscard                   // 出牌
	ActionPeng                      // 碰
	ActionKong                      // 杠
	ActionWin                       // 胡
	ActionPass                      // 过
)

var ActionNames = map[ActionKind]string{
	ActionDraw:    "draw",
	ActionDiscard: "discard",
	ActionPeng:    "peng",
	ActionKong:    "kong",
	ActionWin:     "hu",
	ActionPass:    "pass",
}

var ActionIDs = map[string]ActionKind{
	"draw":    ActionDraw,
	"discard": ActionDiscard,
	"peng":    ActionPeng,
	"kong":    ActionKong,
	"hu":      ActionWin,
	"pass":    ActionPass,
}

func (k ActionKind) String() string {
	if name, ok := ActionNames[k]; ok {
		return name
	}
	return "unknown"
}

type KongStyle int

const (
	KongStyleExposed   KongStyle = iota // 明杠
	KongStyleConcealed                  // 暗杠
	KongStyleAdded                      // 加杠
)

var kongStyleNames = map[KongStyle]string{
	KongStyleExposed:   "exposed",
	KongStyleConcealed: "concealed",
	KongStyleAdded:     "added",
}

var kongStyleIDs = map[string]KongStyle{
	"exposed":   KongStyleExposed,
	"concealed": KongStyleConcealed,
	"added":     KongStyleAdded,
}

func (k KongStyle) String() string {
	return kongStyleNames[k]
}

type WinStyle int

const (
	WinSelf WinStyle = iota // 自摸
	WinRon                  // 荣和
	WinRob                  // 抢杠
)

var winStyleNames = map[WinStyle]string{
	WinSelf: "self",
	WinRon:  "ron",
	WinRob:  "rob",
}

var winStyleIDs = map[string]WinStyle{
	"self": WinSelf,
	"ron":  WinRon,
	"rob":  WinRob,
}

func (w WinStyle) String() string {
	return winStyleNames[w]
}

// Action 封闭的动作联合体：Kong 只对杠有意义，Win 只对胡有意义
type Action struct {
	Kind ActionKind
	Tile Tile
	Kong KongStyle
	Win  WinStyle
	From int32
}

func DrawAction() Action {
	return Action{Kind: ActionDraw, Tile: TileNull, From: SeatNull}
}

func DiscardAction(tile Tile) Action {
	return Action{Kind: ActionDiscard, Tile: tile, From: SeatNull}
}

func PengAction(tile Tile, from int32) Action {
	return Action{Kind: ActionPeng, Tile: tile, From: from}
}

func KongAction(style KongStyle, tile Tile, from int32) Action {
	return Action{Kind: ActionKong, Kong: style, Tile: tile, From: from}
}

func WinAction(style WinStyle, tile Tile, from int32) Action {
	return Action{Kind: ActionWin, Win: style, Tile: tile, From: from}
}

func PassAction() Action {
	return Action{Kind: ActionPass, Tile: TileNull, From: SeatNull}
}

func (a Action) String() string {
	switch a.Kind {
	case ActionKong:
		return fmt.Sprintf("kong(%s) %s", a.Kong, a.Tile)
	case ActionWin:
		if a.Tile.IsValid() {
			return fmt.Sprintf("hu(%s) %s", a.Win, a.Tile)
		}
		return fmt.Sprintf("hu(%s)", a.Win)
	case ActionDiscard, ActionPeng:
		return fmt.Sprintf("%s %s", a.Kind, a.Tile)
	default:
		return a.Kind.String()
	}
}

type actionJSON struct {
	Type  string `json:"type"`
	Style string `json:"style,omitempty"`
	Tile  *Tile  `json:"tile,omitempty"`
	From  *int32 `json:"from,omitempty"`
}

func (a Action) MarshalJSON() ([]byte, error) {
	name, ok := ActionNames[a.Kind]
	if !ok {
		return nil, fmt.Errorf("%w: kind %d", ErrUnknownAction, a.Kind)
	}
	out := actionJSON{Type: name}
	switch a.Kind {
	case ActionKong:
		out.Style = a.Kong.String()
	case ActionWin:
		out.Style = a.Win.String()
	}
	if a.Tile.IsValid() {
		tile := a.Tile
		out.Tile = &tile
	}
	if validSeat(a.From) {
		from := a.From
		out.From = &from
	}
	return json.Marshal(out)
}

// UnmarshalJSON 未知的 type/style 一律报错，不做静默忽略
func (a *Action) UnmarshalJSON(data []byte) error {
	var in actionJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	kind, ok := ActionIDs[in.Type]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAction, in.Type)
	}
	res := Action{Kind: kind, Tile: TileNull, From: SeatNull}
	switch kind {
	case ActionKong:
		style, ok := kongStyleIDs[in.Style]
		if !ok {
			return fmt.Errorf("%w: kong style %q", ErrUnknownAction, in.Style)
		}
		res.Kong = style
	case ActionWin:
		style, ok := winStyleIDs[in.Style]
		if !ok {
			return fmt.Errorf("%w: win style %q", ErrUnknownAction, in.Style)
		}
		res.Win = style
	}
	if in.Tile != nil {
		res.Tile = *in.Tile
	}
	if in.From != nil {
		res.From = *in.From
	}
	*a = res
	return nil
}
