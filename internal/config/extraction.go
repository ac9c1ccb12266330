package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ExtractionConfig 约束提取的提示词和调参配置
// 可通过 YAML 文件覆盖（JSON 也接受，它是 YAML 1.2 的子集）
type ExtractionConfig struct {
	Temperature    float64  `json:"temperature" yaml:"temperature"`
	TriggerPhrases []string `json:"trigger_phrases" yaml:"trigger_phrases"`
	Prompt         string   `json:"prompt" yaml:"prompt"`
}

const defaultExtractionTemp = 0.0

// 关键词触发短语（小写匹配，含葡萄牙语变体）
var defaultTriggerPhrases = []string{
	"no stairs", "no stair", "ground floor", "first floor",
	"wheelchair", "mobility", "cannot climb", "can't climb",
	"unable to climb", "difficulty with stairs", "stairs difficult",
	"avoid stairs", "no steps", "accessible", "disability",
	"elderly", "senior", "walking difficulty", "mobility aid",
	"sem escadas",
}

// DefaultExtractionConfig 返回内置的提示词和调参默认值
func DefaultExtractionConfig() ExtractionConfig {
	return ExtractionConfig{
		Temperature:    defaultExtractionTemp,
		TriggerPhrases: append([]string{}, defaultTriggerPhrases...),
		Prompt: `You extract room allocation constraints from hotel booking notes.

Notes:
"%s"

Return ONLY a JSON object with this structure:
{
  "no_stairs": boolean
}

If the notes do not mention stairs, accessibility, elderly, mobility issues, or similar, return false.`,
	}
}

// LoadExtractionConfig 读取 YAML/JSON 并与默认值合并
func LoadExtractionConfig(path string) (ExtractionConfig, error) {
	cfg := DefaultExtractionConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if len(data) == 0 {
		return cfg, errors.New("empty extraction config file")
	}
	var parsed struct {
		Extraction ExtractionConfig `json:"extraction" yaml:"extraction"`
	}
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json":
		if err := json.Unmarshal(data, &parsed); err != nil {
			return cfg, err
		}
	default:
		if err := yaml.Unmarshal(data, &parsed); err != nil {
			return cfg, err
		}
	}
	return MergeExtractionConfig(cfg, parsed.Extraction), nil
}

// MergeExtractionConfig 将非空覆盖项叠加到基础配置上
func MergeExtractionConfig(base ExtractionConfig, override ExtractionConfig) ExtractionConfig {
	if override.Temperature > 0 {
		base.Temperature = override.Temperature
	}
	if len(override.TriggerPhrases) > 0 {
		base.TriggerPhrases = append([]string{}, override.TriggerPhrases...)
	}
	if strings.TrimSpace(override.Prompt) != "" {
		base.Prompt = override.Prompt
	}
	return base
}
