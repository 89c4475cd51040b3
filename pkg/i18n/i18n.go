package i18n

import (
	"embed"
	"encoding/json"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// Translator resolves a message key for a display language. French is the
// portal default; unknown languages fall back to it.
type Translator struct {
	bundle *goi18n.Bundle
}

func NewTranslator() (*Translator, error) {
	bundle := goi18n.NewBundle(language.French)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	for _, file := range []string{"locales/fr.json", "locales/en.json"} {
		if _, err := bundle.LoadMessageFileFS(localeFS, file); err != nil {
			return nil, err
		}
	}

	return &Translator{bundle: bundle}, nil
}

// T looks up key for lang, returning the key itself when no message exists
// so missing translations degrade visibly instead of erroring.
func (t *Translator) T(lang, key string) string {
	localizer := goi18n.NewLocalizer(t.bundle, lang)
	msg, err := localizer.Localize(&goi18n.LocalizeConfig{MessageID: key})
	if err != nil {
		return key
	}
	return msg
}
