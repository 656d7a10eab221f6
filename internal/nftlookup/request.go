package nftlookup

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError is a user-facing input error. It is always returned before
// storage is queried.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalidf(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidationError reports whether err is a ValidationError.
func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}

// CommandRequest is the body of an index lookup: {"command": "mm.42"}.
type CommandRequest struct {
	Command string `json:"command" validate:"required"`
}

// RankRequest is the body of a rank lookup.
type RankRequest struct {
	Collection string `json:"collection" validate:"required"`
	Symbol     string `json:"symbol" validate:"required"`
	Rank       int    `json:"rank" validate:"required,min=1"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// validationMessage converts validator errors into one user-facing sentence.
func validationMessage(err error, requiredMsg string) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	for _, e := range verrs {
		switch e.Tag() {
		case "required":
			return requiredMsg
		case "min":
			return fmt.Sprintf("%s must be at least %s", e.Field(), e.Param())
		}
	}
	e := verrs[0]
	return fmt.Sprintf("%s is invalid (%s)", e.Field(), e.Tag())
}

// ParseCommand splits "<collectionKey>.<index>" into its parts.
// availableKeys is only used to build error messages.
func ParseCommand(command string, availableKeys []string) (key string, index int, err error) {
	if err := validate.Struct(CommandRequest{Command: strings.TrimSpace(command)}); err != nil {
		return "", 0, invalidf("Invalid command format. Expected string in format: collection.tokenId")
	}

	key, idStr, _ := strings.Cut(strings.TrimSpace(command), ".")
	key = strings.TrimSpace(key)
	idStr = strings.TrimSpace(idStr)

	if key == "" {
		return "", 0, invalidf("Missing collection. Available collections: %s", strings.Join(availableKeys, ", "))
	}
	if idStr == "" {
		return "", 0, invalidf("Missing token ID. Format: collection.tokenId")
	}

	index, convErr := strconv.Atoi(idStr)
	if convErr != nil || index < 1 {
		return "", 0, invalidf("Invalid token ID %q. Please provide a valid number.", idStr)
	}
	return key, index, nil
}
