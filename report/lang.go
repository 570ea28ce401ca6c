package report

import (
	"os"
	"path"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v2"
)

var bundle *i18n.Bundle

var defaultMessages = map[language.Tag][]*i18n.Message{
	language.English: {
		{ID: "report.country", Other: "Country"},
		{ID: "report.date", Other: "Date"},
		{ID: "report.cases", Other: "Cases"},
		{ID: "report.deaths", Other: "Deaths"},
		{ID: "report.recovered", Other: "Recovered"},
	},
	language.TraditionalChinese: {
		{ID: "report.country", Other: "國家"},
		{ID: "report.date", Other: "日期"},
		{ID: "report.cases", Other: "確診"},
		{ID: "report.deaths", Other: "死亡"},
		{ID: "report.recovered", Other: "康復"},
	},
}

func init() {
	InitI18NBundle("")
}

// InitI18NBundle resets the bundle to the built-in messages and loads en.yaml and zh_tw.yaml from dir when present
func InitI18NBundle(dir string) {
	b := i18n.NewBundle(language.English)
	b.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	for tag, messages := range defaultMessages {
		_ = b.AddMessages(tag, messages...)
	}

	if dir != "" {
		for _, name := range []string{"en.yaml", "zh_tw.yaml"} {
			p := path.Join(dir, name)
			if _, err := os.Stat(p); nil != err {
				continue
			}
			b.MustLoadMessageFile(p)
		}
	}

	bundle = b
}

func newLocalizer(lang string) *i18n.Localizer {
	return i18n.NewLocalizer(bundle, lang)
}

func localize(loc *i18n.Localizer, id string) string {
	s, err := loc.Localize(&i18n.LocalizeConfig{MessageID: id})
	if nil != err {
		return id
	}
	return s
}
