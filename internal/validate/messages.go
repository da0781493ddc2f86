package validate

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys double as the English text.
const (
	msgRequired         = "This field is required"
	msgInvalid          = "Please enter a valid number"
	msgTooLow           = "Value must be at least %s"
	msgTooHigh          = "Value cannot exceed %s"
	msgPercentTooHigh   = "Percentage cannot exceed 100"
	msgExceedsTotal     = "Obtained marks cannot exceed total marks"
	msgEntryTotalNeeded = "Entry test total is required when entry test marks are given"
	msgEntryMarksNeeded = "Entry test marks are required when entry test total is given"
)

var urdu = map[string]string{
	msgRequired:         "یہ خانہ لازمی ہے",
	msgInvalid:          "براہ کرم درست نمبر درج کریں",
	msgTooLow:           "قدر کم از کم %s ہونی چاہیے",
	msgTooHigh:          "قدر %s سے زیادہ نہیں ہو سکتی",
	msgPercentTooHigh:   "فیصد 100 سے زیادہ نہیں ہو سکتا",
	msgExceedsTotal:     "حاصل کردہ نمبر کل نمبروں سے زیادہ نہیں ہو سکتے",
	msgEntryTotalNeeded: "انٹری ٹیسٹ کے نمبر دینے پر کل نمبر بھی لازمی ہیں",
	msgEntryMarksNeeded: "انٹری ٹیسٹ کے کل نمبر دینے پر حاصل کردہ نمبر بھی لازمی ہیں",
}

var messageCatalog = buildCatalog()

func buildCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, text := range urdu {
		_ = b.SetString(language.English, key, key)
		_ = b.SetString(language.Urdu, key, text)
	}
	return b
}

// SupportedLanguages lists the language codes with a message table.
var SupportedLanguages = []string{"en", "ur"}

// ParseLanguage maps a configured language code to a supported tag.
func ParseLanguage(code string) (language.Tag, error) {
	switch strings.ToLower(strings.TrimSpace(code)) {
	case "", "en":
		return language.English, nil
	case "ur":
		return language.Urdu, nil
	default:
		return language.Und, eris.Errorf("validate: unsupported language %q (want one of %s)", code, strings.Join(SupportedLanguages, ", "))
	}
}

// MessageTable renders the default user-facing messages in one language.
// It is immutable once built.
type MessageTable struct {
	printer *message.Printer
}

// NewMessageTable builds the message table for tag.
func NewMessageTable(tag language.Tag) MessageTable {
	return MessageTable{printer: message.NewPrinter(tag, message.Catalog(messageCatalog))}
}

// DefaultMessages returns the English message table.
func DefaultMessages() MessageTable {
	return NewMessageTable(language.English)
}

func (t MessageTable) text(key string, args ...any) string {
	if t.printer == nil {
		return DefaultMessages().text(key, args...)
	}
	return t.printer.Sprintf(key, args...)
}

// Required is the message for an empty field.
func (t MessageTable) Required() string { return t.text(msgRequired) }

// Invalid is the message for text that is not a number.
func (t MessageTable) Invalid() string { return t.text(msgInvalid) }

// TooLow is the message for a value below min.
func (t MessageTable) TooLow(min float64) string { return t.text(msgTooLow, formatBound(min)) }

// TooHigh is the message for a value above max.
func (t MessageTable) TooHigh(max float64) string { return t.text(msgTooHigh, formatBound(max)) }

func (t MessageTable) PercentTooHigh() string { return t.text(msgPercentTooHigh) }

func (t MessageTable) ExceedsTotal() string { return t.text(msgExceedsTotal) }

func (t MessageTable) EntryTotalNeeded() string { return t.text(msgEntryTotalNeeded) }

func (t MessageTable) EntryMarksNeeded() string { return t.text(msgEntryMarksNeeded) }

// formatBound renders bounds verbatim ("1200", "0.5") without locale grouping.
func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
