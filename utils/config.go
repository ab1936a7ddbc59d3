package utils

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const EnvPrefix = "DUOMJ"

// LoadConfig 读取 yaml 配置，优先级：命令行 > 环境变量(DUOMJ_LOG_LEVEL) > 文件 > 默认值。
// file 为空时不读文件。各模块自己的段用 UnmarshalKey 叠加到各自的默认配置上。
func LoadConfig(file string, flags *pflag.FlagSet) (*viper.Viper, error) {
	vp := viper.New()
	vp.SetDefault("log.level", "info")
	vp.SetDefault("log.dir", "./logs")
	vp.SetDefault("server.addr", ":3250")
	vp.SetDefault("server.type", "duomj")
	vp.SetDefault("table.response_timeout", "15s")
	vp.SetDefault("table.tick", "1s")

	vp.SetEnvPrefix(EnvPrefix)
	vp.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	vp.AutomaticEnv()

	if flags != nil {
		if err := vp.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}
	if file != "" {
		vp.SetConfigFile(file)
		vp.SetConfigType("yaml")
		if err := vp.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
	}
	return vp, nil
}
