package prompts

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// Templates 系统提示词集合
type Templates struct {
	Persona          string `yaml:"persona"`
	Capabilities     string `yaml:"capabilities"`
	DateLine         string `yaml:"date_line"` // 含一个 %s
	SummaryHeader    string `yaml:"summary_header"`
	WebContextHeader string `yaml:"web_context_header"` // 含一个 %s
	SearchDecision   string `yaml:"search_decision"`
	Summarizer       string `yaml:"summarizer"`
}

// Defaults 返回内置模板
func Defaults() *Templates {
	t, err := parse(defaultYAML)
	if err != nil {
		// 内置文件随二进制发布，解析失败属于构建错误
		panic(fmt.Sprintf("invalid embedded prompts: %v", err))
	}
	return t
}

// LoadFile 读取模板文件，缺失字段使用内置值
func LoadFile(path string) (*Templates, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompts file: %w", err)
	}
	override, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse prompts file %s: %w", path, err)
	}
	merged := merge(Defaults(), override)
	if err := merged.validate(); err != nil {
		return nil, fmt.Errorf("invalid prompts file %s: %w", path, err)
	}
	return merged, nil
}

// validate 检查格式化模板恰好含一个 %s
func (t *Templates) validate() error {
	for name, v := range map[string]string{
		"date_line":          t.DateLine,
		"web_context_header": t.WebContextHeader,
	} {
		verbs := strings.Count(strings.ReplaceAll(v, "%%", ""), "%")
		if verbs != 1 || strings.Count(strings.ReplaceAll(v, "%%", ""), "%s") != 1 {
			return fmt.Errorf("%s must contain exactly one %%s", name)
		}
	}
	return nil
}

func parse(data []byte) (*Templates, error) {
	var t Templates
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// merge 用 override 中的非空字段覆盖 base
func merge(base, override *Templates) *Templates {
	out := *base
	pick := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	pick(&out.Persona, override.Persona)
	pick(&out.Capabilities, override.Capabilities)
	pick(&out.DateLine, override.DateLine)
	pick(&out.SummaryHeader, override.SummaryHeader)
	pick(&out.WebContextHeader, override.WebContextHeader)
	pick(&out.SearchDecision, override.SearchDecision)
	pick(&out.Summarizer, override.Summarizer)
	return &out
}
