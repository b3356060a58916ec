package quotas

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/quartermaster-gg/quartermaster-backend/pkg/errors"
)

// Entry is one parsed quota assignment: an item display name and its target
// amount.
type Entry struct {
	Name   string
	Amount int64
}

// ParseQuotaText parses the "Name: amount, Name: amount" quota grammar.
// Names keep their inner spacing; amounts are whole numbers. When a name
// repeats, the last assignment wins.
func ParseQuotaText(text string) ([]Entry, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.New(errors.CodeInvalidFormat, "quota text is empty")
	}

	var order []string
	amounts := make(map[string]int64)
	for _, token := range strings.Split(text, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			return nil, errors.New(errors.CodeInvalidFormat, "quota text has an empty entry")
		}

		sep := strings.LastIndex(token, ":")
		if sep < 0 {
			return nil, errors.New(errors.CodeInvalidFormat,
				fmt.Sprintf("quota entry %q is missing the ':' separator", token))
		}

		name := strings.TrimSpace(token[:sep])
		rawAmount := strings.TrimSpace(token[sep+1:])
		if name == "" {
			return nil, errors.New(errors.CodeInvalidFormat,
				fmt.Sprintf("quota entry %q has no item name", token))
		}

		amount, err := strconv.ParseInt(rawAmount, 10, 64)
		if err != nil {
			return nil, errors.New(errors.CodeInvalidFormat,
				fmt.Sprintf("quota entry %q has a non-numeric amount", token))
		}

		if _, seen := amounts[name]; !seen {
			order = append(order, name)
		}
		amounts[name] = amount
	}

	entries := make([]Entry, 0, len(order))
	for _, name := range order {
		entries = append(entries, Entry{Name: name, Amount: amounts[name]})
	}
	return entries, nil
}
