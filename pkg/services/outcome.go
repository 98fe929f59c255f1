package services

import (
	"fmt"

	"github.com/kerbaras/bookshelf/pkg/data"
)

type OutcomeKind int

const (
	OutcomeLoaned OutcomeKind = iota
	OutcomeReturned
	OutcomeNotFound
	OutcomeAlreadyLoaned
	OutcomeNotLoaned
	// OutcomeFailed means the transition was allowed but could not be saved.
	OutcomeFailed
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeLoaned:
		return "loaned"
	case OutcomeReturned:
		return "returned"
	case OutcomeNotFound:
		return "not found"
	case OutcomeAlreadyLoaned:
		return "already loaned"
	case OutcomeNotLoaned:
		return "not loaned"
	case OutcomeFailed:
		return "failed"
	}
	return fmt.Sprintf("OutcomeKind(%d)", int(k))
}

// Outcome is the result of a loan or return. Book holds the affected book
// after the change; it is zero when nothing matched.
type Outcome struct {
	Kind   OutcomeKind
	Book   data.Book
	Return bool
}

func (o Outcome) OK() bool {
	return o.Kind == OutcomeLoaned || o.Kind == OutcomeReturned
}

// Message renders the outcome for the user. Not-found and wrong-state
// failures read the same for each operation.
func (o Outcome) Message(title string) string {
	switch o.Kind {
	case OutcomeLoaned:
		return fmt.Sprintf("Book '%s' has been loaned.", title)
	case OutcomeReturned:
		return fmt.Sprintf("Book '%s' has been returned.", title)
	case OutcomeFailed:
		return fmt.Sprintf("Book '%s' could not be saved.", title)
	}
	if o.Return {
		return fmt.Sprintf("Book '%s' is not currently on loan.", title)
	}
	return fmt.Sprintf("Book '%s' is not available for loan.", title)
}

// decide applies the status state machine to book without changing it.
// A nil book did not match.
func decide(book *data.Book, from, to data.Status) Outcome {
	isReturn := to == data.StatusAvailable

	switch {
	case book == nil:
		return Outcome{Kind: OutcomeNotFound, Return: isReturn}
	case book.Status != from && isReturn:
		return Outcome{Kind: OutcomeNotLoaned, Book: *book, Return: true}
	case book.Status != from:
		return Outcome{Kind: OutcomeAlreadyLoaned, Book: *book}
	case isReturn:
		return Outcome{Kind: OutcomeReturned, Return: true}
	}
	return Outcome{Kind: OutcomeLoaned}
}
