package ua

// LocalizedText is a human-readable text with an optional locale tag.
type LocalizedText struct {
	Locale String
	Text   String
}

// NewLocalizedText builds a LocalizedText without a locale.
func NewLocalizedText(text string) LocalizedText {
	return LocalizedText{Text: NewString(text)}
}

func (l *LocalizedText) Clear() { *l = LocalizedText{} }

func (l LocalizedText) Copy() LocalizedText {
	return LocalizedText{Locale: l.Locale.Copy(), Text: l.Text.Copy()}
}

// Compare orders by locale, then by text.
func (l LocalizedText) Compare(o LocalizedText) int {
	if c := l.Locale.Compare(o.Locale); c != 0 {
		return c
	}
	return l.Text.Compare(o.Text)
}

func (l LocalizedText) Equal(o LocalizedText) bool { return l.Compare(o) == 0 }
