package mahjong

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

const (
	DefaultBaseScore  = 8
	DefaultFanCap     = 7
	DefaultYakumanFan = 8

	// base * 2^fan 不超过 2^60
	MaxFan       = 30
	MaxBaseScore = 1 << 30
)

var ErrInvalidRule = errors.New("invalid rule")

// Rule 计分参数
type Rule struct {
	BaseScore  int64 `mapstructure:"base_score"`
	FanCap     int   `mapstructure:"fan_cap"`
	YakumanFan int   `mapstructure:"yakuman_fan"`
}

func DefaultRule() Rule {
	return Rule{
		BaseScore:  DefaultBaseScore,
		FanCap:     DefaultFanCap,
		YakumanFan: DefaultYakumanFan,
	}
}

// LoadRule 读取 rule 段，缺省项使用默认值
func LoadRule(vp *viper.Viper) (Rule, error) {
	rule := DefaultRule()
	if vp == nil || !vp.IsSet("rule") {
		return rule, nil
	}
	if err := vp.UnmarshalKey("rule", &rule); err != nil {
		return rule, fmt.Errorf("unmarshal rule: %w", err)
	}
	if rule.BaseScore <= 0 || rule.BaseScore > MaxBaseScore ||
		rule.FanCap <= 0 || rule.FanCap > MaxFan ||
		rule.YakumanFan <= 0 || rule.YakumanFan > MaxFan {
		return DefaultRule(), fmt.Errorf("%w: %+v", ErrInvalidRule, rule)
	}
	return rule, nil
}
