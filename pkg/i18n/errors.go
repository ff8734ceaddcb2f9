package i18n

import "errors"

var (
	ErrEmptyLanguage = errors.New("i18n: language cannot be empty")
	ErrInvalidTag    = errors.New("i18n: invalid language tag")
	ErrNilPluralRule = errors.New("i18n: plural rule cannot be nil")
	ErrInvalidFile   = errors.New("i18n: invalid translation file")
)
