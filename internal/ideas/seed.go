package ideas

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultIdeas seeds the autopost rotation when no ideas file is configured.
var DefaultIdeas = []string{
	"Расскажи про интересный кейс использования AI в разработке",
	"Напиши про новый инструмент для работы с нейросетями",
	"Сделай пост про частую ошибку при работе с Telegram ботами",
	"Расскажи про лайфхак при работе с API",
	"Напиши про интересную фичу Python для AI-разработки",
	"Сделай пост про оптимизацию работы с LLM API",
	"Расскажи про интересный промпт-инжиниринг трюк",
	"Напиши про автоматизацию рутины разработчика через AI",
	"Сделай пост про интеграцию нейросетей в реальные проекты",
	"Расскажи про тестирование ботов и AI-сервисов",
}

// LoadSeedFile reads a list of ideas from a JSON array, or from a YAML
// sequence when the file ends in .yaml or .yml. Blank entries are skipped.
func LoadSeedFile(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read ideas file: %w", err)
	}
	var entries []string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, &entries)
	default:
		err = json.Unmarshal(raw, &entries)
	}
	if err != nil {
		return nil, fmt.Errorf("could not parse ideas file: %w", err)
	}
	seed := make([]string, 0, len(entries))
	for _, e := range entries {
		if e = strings.TrimSpace(e); e != "" {
			seed = append(seed, e)
		}
	}
	if len(seed) == 0 {
		return nil, fmt.Errorf("ideas file %s contains no ideas", path)
	}
	return seed, nil
}
