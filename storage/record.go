package storage

import (
	"time"

	"github.com/kevin-chtw/tw_duomj/mahjong"
)

type Result string

const (
	ResultWin  Result = "win"
	ResultLose Result = "lose"
	ResultDraw Result = "draw"
)

// Settlement 一局结束后交给账本的数据，机器人座位不记账
type Settlement struct {
	GameID    string               `json:"game_id"`
	Users     [mahjong.NP2]string  `json:"users"`
	Bots      [mahjong.NP2]bool    `json:"bots"`
	FirstTurn int32                `json:"first_turn"`
	Summary   mahjong.ScoreSummary `json:"summary"`
	Time      time.Time            `json:"time"`
}

// Record 某个用户的一条对局记录
type Record struct {
	GameID      string            `json:"game_id"`
	Opponent    string            `json:"opponent"`
	First       bool              `json:"first"`
	ScoreChange int64             `json:"score_change"`
	Fan         int               `json:"fan"`
	Result      Result            `json:"result"`
	Reason      mahjong.WinReason `json:"reason"`
	FinalScore  int64             `json:"final_score"`
	Time        time.Time         `json:"time"`
}

// Rank 排行榜的一项
type Rank struct {
	User  string `json:"user"`
	Score int64  `json:"score"`
}

func resultOf(summary mahjong.ScoreSummary, seat int32) Result {
	switch summary.Winner {
	case seat:
		return ResultWin
	case mahjong.SeatNull:
		return ResultDraw
	default:
		return ResultLose
	}
}

// Deltas 每个座位的积分变化
func (s Settlement) Deltas() [mahjong.NP2]int64 {
	var res [mahjong.NP2]int64
	for seat := range mahjong.NP2 {
		res[seat] = s.Summary.Players[seat].NetChange
	}
	return res
}

// BuildRecords 按结算后的积分生成两个座位的记录
func BuildRecords(s Settlement, finalScores [mahjong.NP2]int64) [mahjong.NP2]Record {
	var res [mahjong.NP2]Record
	for seat := range mahjong.NP2 {
		opp := mahjong.Opponent(int32(seat))
		res[seat] = Record{
			GameID:      s.GameID,
			Opponent:    s.Users[opp],
			First:       s.FirstTurn == int32(seat),
			ScoreChange: s.Summary.Players[seat].NetChange,
			Fan:         s.Summary.Players[seat].FanTotal,
			Result:      resultOf(s.Summary, int32(seat)),
			Reason:      s.Summary.Reason,
			FinalScore:  finalScores[seat],
			Time:        s.Time,
		}
	}
	return res
}
