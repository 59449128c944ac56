package localization_test

import (
	"smartsociety/backend/internal/localization"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLocalizer_FallsBackToEnglish(t *testing.T) {
	l := localization.NewDefaultLocalizer()

	assert.Equal(t, "Incorrect password", l.GetString("en", "auth.wrong_password"))
	assert.NotEqual(t, "Incorrect password", l.GetString("ur", "auth.wrong_password"))
	// Missing in Urdu, present in English.
	assert.Equal(t, "Password is too weak", l.GetString("ur", "auth.weak_password"))
	assert.Equal(t, "unknown.key", l.GetString("en", "unknown.key"))
}

func TestLocalizer_Format(t *testing.T) {
	l := localization.NewDefaultLocalizer()
	assert.Equal(t, "Title must be at most 100 characters", l.Format("en", "validation.title_too_long", 100))
}

func TestNewLocalizerFS_RejectsBadJSON(t *testing.T) {
	_, err := localization.NewLocalizerFS(fstest.MapFS{
		"en.json": {Data: []byte("{not json")},
	})
	assert.Error(t, err)
}

func TestNewLocalizer_FromDisk(t *testing.T) {
	l, err := localization.NewLocalizer(".")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"en", "ur"}, l.Languages())

	_, err = localization.NewLocalizer("does-not-exist")
	assert.Error(t, err)
}

func TestLanguageFromHeader(t *testing.T) {
	l := localization.NewDefaultLocalizer()
	assert.Equal(t, "ur", l.LanguageFromHeader("ur-PK,ur;q=0.9,en;q=0.8"))
	assert.Equal(t, "en", l.LanguageFromHeader("fr-FR,de;q=0.5"))
	assert.Equal(t, "en", l.LanguageFromHeader(""))
}

func TestLocalizer_LocalizeMessage(t *testing.T) {
	l := localization.NewDefaultLocalizer()
	assert.Equal(t, "Passwords do not match", l.Localize("en", localization.NewMessage("validation.passwords_mismatch")))
	assert.Equal(t, "Description must be at most 500 characters",
		l.Localize("en", localization.NewMessage("validation.description_too_long", 500)))
}
