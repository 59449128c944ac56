// Package localization provides the user-facing message catalogue.
// Translations are JSON files named by language code ("en.json"); English is the
// fallback for any missing language or key.
package localization

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"
)

const DefaultLanguage = "en"

//go:embed *.json
var builtin embed.FS

// Localizer manages the translations for the application.
type Localizer struct {
	translations map[string]map[string]string
	mu           sync.RWMutex
}

// NewLocalizer loads every translation file from a directory on disk.
func NewLocalizer(path string) (*Localizer, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to read localization directory: %w", err)
	}
	return NewLocalizerFS(os.DirFS(path))
}

// NewDefaultLocalizer loads the catalogue compiled into the binary.
func NewDefaultLocalizer() *Localizer {
	l, err := NewLocalizerFS(builtin)
	if err != nil {
		panic("localization: builtin catalogue is invalid: " + err.Error())
	}
	return l
}

// NewLocalizerFS loads every *.json file at the root of fsys.
func NewLocalizerFS(fsys fs.FS) (*Localizer, error) {
	l := &Localizer{
		translations: make(map[string]map[string]string),
	}

	files, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read localization directory: %w", err)
	}

	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".json") {
			continue
		}

		lang := strings.TrimSuffix(file.Name(), ".json")
		data, err := fs.ReadFile(fsys, file.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read localization file %s: %w", file.Name(), err)
		}

		var translations map[string]string
		if err := json.Unmarshal(data, &translations); err != nil {
			return nil, fmt.Errorf("failed to parse localization file %s: %w", file.Name(), err)
		}

		l.translations[lang] = translations
	}

	return l, nil
}

// GetString returns the localized string for a given key and language.
// If the language or the key is not found, it returns the key itself as a fallback.
func (l *Localizer) GetString(lang, key string) string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if langTranslations, ok := l.translations[lang]; ok {
		if value, ok := langTranslations[key]; ok {
			return value
		}
	}

	if lang != DefaultLanguage {
		if enTranslations, ok := l.translations[DefaultLanguage]; ok {
			if value, ok := enTranslations[key]; ok {
				return value
			}
		}
	}

	return key
}

// Format looks up key and applies fmt-style arguments.
func (l *Localizer) Format(lang, key string, args ...interface{}) string {
	return fmt.Sprintf(l.GetString(lang, key), args...)
}

// Languages lists the loaded language codes.
func (l *Localizer) Languages() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	langs := make([]string, 0, len(l.translations))
	for lang := range l.translations {
		langs = append(langs, lang)
	}
	return langs
}

// LanguageFromHeader picks the first supported language of an Accept-Language header.
func (l *Localizer) LanguageFromHeader(header string) string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, part := range strings.Split(header, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		base := strings.ToLower(strings.SplitN(tag, "-", 2)[0])
		if _, ok := l.translations[base]; ok {
			return base
		}
	}
	return DefaultLanguage
}

// Message is a catalogue key together with its format arguments.
type Message struct {
	Key  string
	Args []interface{}
}

// NewMessage builds a Message.
func NewMessage(key string, args ...interface{}) Message {
	return Message{Key: key, Args: args}
}

// Localize renders m in lang.
func (l *Localizer) Localize(lang string, m Message) string {
	if len(m.Args) == 0 {
		return l.GetString(lang, m.Key)
	}
	return l.Format(lang, m.Key, m.Args...)
}
