package localization

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"strings"
)

const localesDir = "locales"

// Localizer serves user-facing texts from the locales/<lang>.json catalogs.
type Localizer struct {
	lang     string
	messages map[string]map[string]string
}

func NewLocalizer(dir fs.FS, lang string) (*Localizer, error) {
	files, err := fs.ReadDir(dir, localesDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read locales directory: %w", err)
	}

	messages := make(map[string]map[string]string)
	for _, file := range files {
		if file.IsDir() || path.Ext(file.Name()) != ".json" {
			continue
		}
		content, err := fs.ReadFile(dir, path.Join(localesDir, file.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read locale file %s: %w", file.Name(), err)
		}
		var langMessages map[string]string
		if err := json.Unmarshal(content, &langMessages); err != nil {
			return nil, fmt.Errorf("failed to parse locale file %s: %w", file.Name(), err)
		}
		messages[strings.TrimSuffix(file.Name(), ".json")] = langMessages
	}

	if _, ok := messages[lang]; !ok {
		return nil, fmt.Errorf("no locale file for language %q", lang)
	}
	return &Localizer{lang: lang, messages: messages}, nil
}

func (l *Localizer) Language() string {
	return l.lang
}

// GetMessage returns the text for key, falling back to English and then to
// the key itself.
func (l *Localizer) GetMessage(key string) string {
	if message, ok := l.messages[l.lang][key]; ok {
		return message
	}
	if message, ok := l.messages["en"][key]; ok {
		return message
	}
	return key
}

func (l *Localizer) Format(key string, args ...any) string {
	return fmt.Sprintf(l.GetMessage(key), args...)
}
