package i18n

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/JojoFlex1/done/internal/config"
	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
)

//go:embed messages/*.toml
var embeddedMessages embed.FS

// Data is the template data of a message.
type Data map[string]any

// Service translates user facing strings, mail content mostly.
type Service struct {
	bundle   *goi18n.Bundle
	matcher  language.Matcher
	fallback language.Tag
}

// New loads the message bundle. Messages are read from BundleDirAbs when set,
// otherwise the embedded defaults are used.
func New(cfg config.I18n) (*Service, error) {
	fallback := cfg.DefaultLanguage
	if fallback == language.Und {
		fallback = language.English
	}

	bundle := goi18n.NewBundle(fallback)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	var fsys fs.FS
	if len(cfg.BundleDirAbs) > 0 {
		fsys = os.DirFS(cfg.BundleDirAbs)
	} else {
		sub, err := fs.Sub(embeddedMessages, "messages")
		if err != nil {
			return nil, errors.Wrap(err, "failed to open embedded messages")
		}
		fsys = sub
	}

	files, err := fs.Glob(fsys, "*.toml")
	if err != nil {
		return nil, errors.Wrap(err, "failed to list message files")
	}
	if len(files) == 0 {
		return nil, errors.Errorf("no message files found in %q", cfg.BundleDirAbs)
	}

	for _, file := range files {
		if _, err := bundle.LoadMessageFileFS(fsys, file); err != nil {
			return nil, errors.Wrapf(err, "failed to load message file %s", filepath.Base(file))
		}
	}

	return &Service{
		bundle:   bundle,
		matcher:  language.NewMatcher(bundle.LanguageTags()),
		fallback: fallback,
	}, nil
}

// Translate returns the message for key in lang. Unknown keys are returned as is.
func (s *Service) Translate(lang language.Tag, key string, data ...Data) string {
	return s.TranslatePlural(lang, key, nil, data...)
}

// TranslatePlural selects the plural form by count.
func (s *Service) TranslatePlural(lang language.Tag, key string, count any, data ...Data) string {
	localizer := goi18n.NewLocalizer(s.bundle, lang.String(), s.fallback.String())

	cfg := &goi18n.LocalizeConfig{
		MessageID:   key,
		PluralCount: count,
	}
	if len(data) > 0 {
		cfg.TemplateData = data[0]
	}

	msg, err := localizer.Localize(cfg)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Str("lang", lang.String()).Msg("Failed to translate message")
		return key
	}

	return msg
}

// ParseAcceptLanguage matches an Accept-Language header against the bundled languages.
func (s *Service) ParseAcceptLanguage(header string) language.Tag {
	header = strings.TrimSpace(header)
	if len(header) == 0 {
		return s.fallback
	}

	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return s.fallback
	}

	_, idx, confidence := s.matcher.Match(tags...)
	if confidence == language.No {
		return s.fallback
	}

	return s.bundle.LanguageTags()[idx]
}

// Tags returns the available languages.
func (s *Service) Tags() []language.Tag {
	return s.bundle.LanguageTags()
}
