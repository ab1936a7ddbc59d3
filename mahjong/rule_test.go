package mahjong_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/kevin-chtw/tw_duomj/mahjong"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func yamlViper(t *testing.T, text string) *viper.Viper {
	vp := viper.New()
	vp.SetConfigType("yaml")
	require.NoError(t, vp.ReadConfig(bytes.NewBufferString(text)))
	return vp
}

func TestLoadRule(t *testing.T) {
	rule, err := mahjong.LoadRule(nil)
	require.NoError(t, err)
	assert.Equal(t, mahjong.DefaultRule(), rule)

	rule, err = mahjong.LoadRule(yamlViper(t, "rule:\n  fan_cap: 6\n"))
	require.NoError(t, err)
	assert.Equal(t, mahjong.Rule{BaseScore: 8, FanCap: 6, YakumanFan: 8}, rule)

	rule, err = mahjong.LoadRule(yamlViper(t, "rule:\n  fan_cap: 30\n  yakuman_fan: 30\n"))
	require.NoError(t, err)
	assert.Positive(t, mahjong.FanToPoints(rule.YakumanFan, mahjong.MaxBaseScore))

	invalid := []string{
		"rule:\n  base_score: -1\n",
		"rule:\n  base_score: 2147483648\n",
		"rule:\n  fan_cap: 0\n",
		"rule:\n  fan_cap: 63\n",
		"rule:\n  yakuman_fan: 64\n",
	}
	for _, text := range invalid {
		t.Run(text, func(t *testing.T) {
			rule, err := mahjong.LoadRule(yamlViper(t, text))
			assert.ErrorIs(t, err, mahjong.ErrInvalidRule)
			assert.Equal(t, mahjong.DefaultRule(), rule)
		})
	}
}

func writeManual(t *testing.T, text string) string {
	file := filepath.Join(t.TempDir(), "manual.yaml")
	require.NoError(t, os.WriteFile(file, []byte(text), 0o644))
	return file
}

func TestManual(t *testing.T) {
	file := writeManual(t, `enable: true
cards:
  - "1万,1万,1万,1万,2万"
  - "5筒,5筒"
  - "9条,9条"
`)
	m, err := mahjong.NewManual(file)
	require.NoError(t, err)
	assert.True(t, m.Enabled())

	wall, err := m.Wall(7)
	require.NoError(t, err)
	require.Len(t, wall, mahjong.TotalTileCount)
	for _, n := range mahjong.CountTiles(wall) {
		assert.EqualValues(t, mahjong.SameTileCount, n)
	}
	assert.Equal(t, mahjong.ParseTiles("1万,1万,1万,1万,2万"), wall[:5])
	assert.Equal(t, mahjong.ParseTiles("5筒,5筒"), wall[13:15])
	assert.Equal(t, mahjong.ParseTiles("9条,9条"), wall[26:28])

	s, err := m.NewGame(7, 1)
	require.NoError(t, err)
	assert.Equal(t, 4, mahjong.CountElement(s.Players[0].Hand, 0))
	assert.Equal(t, mahjong.ParseTile("9条"), s.Wall[0])
	assert.EqualValues(t, 1, s.Turn)

	var none *mahjong.Manual
	assert.False(t, none.Enabled())
}

func TestManualInvalid(t *testing.T) {
	testCases := []string{
		"cards:\n  - \"1万,1万,1万,1万,1万\"\n",
		"cards:\n  - \"1东\"\n",
		"cards:\n  - \"1万\"\n  - \"2万\"\n  - \"3万\"\n  - \"4万\"\n",
	}
	for _, text := range testCases {
		m, err := mahjong.NewManual(writeManual(t, text))
		require.NoError(t, err)
		_, err = m.Wall(1)
		assert.Error(t, err, text)
	}

	_, err := mahjong.NewManual(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
