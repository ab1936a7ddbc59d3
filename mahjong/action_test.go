package mahjong_test

import (
	"encoding/json"
	"testing"

	"github.com/kevin-chtw/tw_duomj/mahjong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionJSON(t *testing.T) {
	testCases := []struct {
		action mahjong.Action
		text   string
	}{
		{mahjong.DrawAction(), `{"type":"draw"}`},
		{mahjong.DiscardAction(5), `{"type":"discard","tile":5}`},
		{mahjong.PengAction(9, 0), `{"type":"peng","tile":9,"from":0}`},
		{mahjong.KongAction(mahjong.KongStyleAdded, 10, 1), `{"type":"kong","style":"added","tile":10,"from":1}`},
		{mahjong.WinAction(mahjong.WinSelf, mahjong.TileNull, mahjong.SeatNull), `{"type":"hu","style":"self"}`},
		{mahjong.WinAction(mahjong.WinRon, 3, 1), `{"type":"hu","style":"ron","tile":3,"from":1}`},
		{mahjong.PassAction(), `{"type":"pass"}`},
	}
	for _, tc := range testCases {
		t.Run(tc.action.String(), func(t *testing.T) {
			data, err := json.Marshal(tc.action)
			require.NoError(t, err)
			assert.JSONEq(t, tc.text, string(data))

			var got mahjong.Action
			require.NoError(t, json.Unmarshal([]byte(tc.text), &got))
			assert.Equal(t, tc.action, got)
		})
	}
}

func TestActionJSONUnknown(t *testing.T) {
	for _, text := range []string{
		`{"type":"chi","tile":1}`,
		`{"type":"kong","style":"sideways","tile":1}`,
		`{"type":"hu","style":""}`,
	} {
		var a mahjong.Action
		err := json.Unmarshal([]byte(text), &a)
		assert.ErrorIs(t, err, mahjong.ErrUnknownAction, text)
	}

	_, err := json.Marshal(mahjong.Action{Kind: mahjong.ActionKind(99)})
	assert.Error(t, err)
}

func TestWinReasonText(t *testing.T) {
	data, err := json.Marshal(struct {
		Reason mahjong.WinReason `json:"reason"`
	}{mahjong.ReasonSelfDrawKong})
	require.NoError(t, err)
	assert.JSONEq(t, `{"reason":"zimo_kong"}`, string(data))

	r, ok := mahjong.ParseWinReason("rob_kong")
	assert.True(t, ok)
	assert.Equal(t, mahjong.ReasonRobKong, r)
	_, ok = mahjong.ParseWinReason("tsumo")
	assert.False(t, ok)
}
