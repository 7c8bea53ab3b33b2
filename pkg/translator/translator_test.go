package translator_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/pkg/translator"
)

func TestInitTranslator_LoadsBundledMessages(t *testing.T) {
	translator.InitTranslator(translator.Config{})

	assert.Equal(t, "Task not found.", translator.Localize(translator.LanguageEn, "taskNotFound", nil))
	assert.Equal(t, "Tâche introuvable.", translator.Localize(translator.LanguageFr, "taskNotFound", nil))
	assert.Equal(t, "The title field is required.",
		translator.Localize(translator.LanguageEn, "validationRequired", map[string]interface{}{"Field": "title"}))
}

func TestInitTranslator_FolderOverridesBundledMessages(t *testing.T) {
	dir := t.TempDir()
	content := []byte(`
taskNotFound = "No such task."
hello = "Hello english"
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "en.toml"), content, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	translator.InitTranslator(translator.Config{
		TranslationFolder:  dir,
		SupportedLanguages: []string{translator.LanguageEn, translator.LanguageFr},
	})

	assert.Equal(t, "No such task.", translator.Localize(translator.LanguageEn, "taskNotFound", nil))
	assert.Equal(t, "Hello english", translator.Localize(translator.LanguageEn, "hello", nil))
	assert.Equal(t, "Tâche introuvable.", translator.Localize(translator.LanguageFr, "taskNotFound", nil))
}

func TestInitTranslator_InvalidFolderKeepsBundledMessages(t *testing.T) {
	translator.InitTranslator(translator.Config{TranslationFolder: "/path/does/not/exist"})

	assert.Equal(t, "Unauthenticated.", translator.Localize(translator.LanguageEn, "unauthenticated", nil))
}

func TestLocalize_MissingKeyReturnsKey(t *testing.T) {
	translator.InitTranslator(translator.Config{})

	assert.Equal(t, "noSuchMessage", translator.Localize(translator.LanguageEn, "noSuchMessage", nil))
}

func TestMatchLanguage(t *testing.T) {
	tests := map[string]string{
		"":                        translator.LanguageEn,
		"fr":                      translator.LanguageFr,
		"fr-CA,fr;q=0.9,en;q=0.8": translator.LanguageFr,
		"en-GB":                   translator.LanguageEn,
		"de":                      translator.LanguageEn,
		";;;garbage":              translator.LanguageEn,
	}

	for header, want := range tests {
		assert.Equal(t, want, translator.MatchLanguage(header), header)
	}
}
