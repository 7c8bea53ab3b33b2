package translator

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

//go:embed translation/*.toml
var embedded embed.FS

var Translator *i18n.Bundle

type Config struct {
	// TranslationFolder may override or extend the bundled messages. Empty means
	// bundled messages only.
	TranslationFolder  string
	SupportedLanguages []string
}

const (
	LanguageFr = "fr"
	LanguageEn = "en"
)

var matcher = language.NewMatcher([]language.Tag{language.English, language.French})

func InitTranslator(cfg Config) {
	Translator = i18n.NewBundle(language.English)
	Translator.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	loadEmbedded()

	if cfg.TranslationFolder == "" {
		return
	}

	lstFiles, err := os.ReadDir(cfg.TranslationFolder)
	if err != nil {
		zap.L().Warn("translation folder unavailable, using bundled messages",
			zap.String("folder", cfg.TranslationFolder), zap.Error(err))
		return
	}

	for _, f := range lstFiles {
		if f.IsDir() || filepath.Ext(f.Name()) != ".toml" {
			continue
		}
		path := filepath.Join(cfg.TranslationFolder, f.Name())
		if _, err := Translator.LoadMessageFile(path); err != nil {
			zap.L().Warn("failed to load translation file", zap.String("file", f.Name()), zap.Error(err))
		}
	}
}

func loadEmbedded() {
	files, err := fs.Glob(embedded, "translation/*.toml")
	if err != nil {
		zap.L().Error("failed to list bundled translations", zap.Error(err))
		return
	}
	for _, name := range files {
		buf, err := embedded.ReadFile(name)
		if err != nil {
			zap.L().Error("failed to read bundled translation", zap.String("file", name), zap.Error(err))
			continue
		}
		if _, err := Translator.ParseMessageFileBytes(buf, name); err != nil {
			zap.L().Error("failed to parse bundled translation", zap.String("file", name), zap.Error(err))
		}
	}
}

// MatchLanguage picks the best supported language for an Accept-Language header.
func MatchLanguage(acceptLanguage string) string {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return LanguageEn
	}
	tag, _, _ := matcher.Match(tags...)
	base, _ := tag.Base()
	if base.String() == LanguageFr {
		return LanguageFr
	}
	return LanguageEn
}

// Localize translates messageID, returning messageID itself when no translation
// exists.
func Localize(lang, messageID string, data map[string]interface{}) string {
	if Translator == nil {
		return messageID
	}
	l := i18n.NewLocalizer(Translator, lang, LanguageEn)
	msg, err := l.Localize(&i18n.LocalizeConfig{MessageID: messageID, TemplateData: data})
	if err != nil {
		zap.L().Warn("translation not found", zap.String("lang", lang), zap.String("message_id", messageID), zap.Error(err))
		return messageID
	}
	return msg
}
