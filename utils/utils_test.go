package utils_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kevin-chtw/tw_duomj/utils"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	vp, err := utils.LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, "info", vp.GetString("log.level"))
	assert.Equal(t, ":3250", vp.GetString("server.addr"))
	assert.Equal(t, 15*time.Second, vp.GetDuration("table.response_timeout"))
}

func TestLoadConfigFileAndFlags(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.yaml")
	content := "log:\n  level: debug\nserver:\n  addr: \":4000\"\nrule:\n  fan_cap: 6\n"
	require.NoError(t, os.WriteFile(file, []byte(content), 0o644))

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("server.addr", ":3250", "")
	require.NoError(t, flags.Parse([]string{"--server.addr=:5000"}))

	vp, err := utils.LoadConfig(file, flags)
	require.NoError(t, err)
	assert.Equal(t, "debug", vp.GetString("log.level"))
	assert.Equal(t, ":5000", vp.GetString("server.addr"))
	assert.Equal(t, 6, vp.GetInt("rule.fan_cap"))
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := utils.LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"), nil)
	assert.Error(t, err)
}

func TestLogger(t *testing.T) {
	_, err := utils.Logger("loud", "")
	assert.Error(t, err)

	dir := t.TempDir()
	l, err := utils.Logger("debug", dir)
	require.NoError(t, err)
	l.Infof("table %s started", "t1")

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.NotEmpty(t, files)
}

func TestFormatter(t *testing.T) {
	entry := &logrus.Entry{
		Time:    time.Date(2024, 5, 1, 8, 30, 0, 0, time.Local),
		Level:   logrus.WarnLevel,
		Message: "response timeout",
		Data:    logrus.Fields{"seat": 1, "table": "t1"},
	}
	out, err := (&utils.Formatter{}).Format(entry)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-01 08:30:00 [warning] response timeout seat=1 table=t1\n", string(out))
}
