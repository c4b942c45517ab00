// Package inserter implements the interactive loop that adds users to the store.
package inserter

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/storekeep/storekeep/internal/database"
	"github.com/storekeep/storekeep/internal/prompt"
)

// Console messages.
const (
	Banner            = "=== User insertion ==="
	PromptName        = "Enter the user name: "
	PromptPassword    = "Enter the password: "
	PromptEmail       = "Enter the email: "
	PromptAdmin       = "Is the user an admin? (s/n): "
	RetryAdmin        = "Please answer 's' or 'n'."
	PromptAnother     = "Insert another user? (s/n): "
	MsgRequired       = "All fields are required."
	MsgInserted       = "User inserted."
	MsgAlreadyExists  = "Error: the user name, password or email already exists."
	MsgInsertFailedFn = "Error inserting user: %v"
)

// Outcome is the final state of one insertion attempt.
type Outcome int

const (
	// OutcomeAborted means validation failed and the store was not touched.
	OutcomeAborted Outcome = iota
	// OutcomeCommitted means the row was inserted.
	OutcomeCommitted
	// OutcomeRolledBack means the insert failed and was rolled back.
	OutcomeRolledBack
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAborted:
		return "aborted"
	case OutcomeCommitted:
		return "committed"
	case OutcomeRolledBack:
		return "rolled_back"
	default:
		return "unknown"
	}
}

// UserCreator is the part of the store the inserter writes to.
type UserCreator interface {
	CreateUser(ctx context.Context, user *database.User) error
}

// Session runs insertion attempts against a store, reading answers from a console.
type Session struct {
	store  UserCreator
	prompt *prompt.Prompter
	out    io.Writer
}

func New(store UserCreator, in io.Reader, out io.Writer) *Session {
	return &Session{
		store:  store,
		prompt: prompt.New(in, out),
		out:    out,
	}
}

// Run repeats insertion attempts until the operator declines to continue or the
// input ends. It returns the outcome of every attempt in order.
func (s *Session) Run(ctx context.Context) ([]Outcome, error) {
	s.println(Banner)
	s.println("")

	var outcomes []Outcome
	for {
		outcome, err := s.Attempt(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				log.Debug("input closed, ending insertion loop")
				return outcomes, nil
			}
			return outcomes, err
		}
		outcomes = append(outcomes, outcome)

		again, err := s.prompt.Confirm(PromptAnother)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return outcomes, nil
			}
			return outcomes, err
		}
		if !again {
			return outcomes, nil
		}
	}
}

// Attempt collects one record and tries to insert it.
// Only console errors are returned; store failures are reported and folded into the outcome.
func (s *Session) Attempt(ctx context.Context) (Outcome, error) {
	user, err := s.collect()
	if err != nil {
		return OutcomeAborted, err
	}

	if user.Name == "" || user.Password == "" || user.Email == "" {
		s.println(MsgRequired)
		s.println("")
		return OutcomeAborted, nil
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, database.ErrAlreadyExists) {
			s.println("")
			s.println(MsgAlreadyExists)
		} else {
			s.println("")
			s.println(fmt.Sprintf(MsgInsertFailedFn, err))
		}
		s.println("")
		log.Debug("insert attempt finished", "outcome", OutcomeRolledBack, "error", err)
		return OutcomeRolledBack, nil
	}

	s.println("")
	s.println(MsgInserted)
	s.println("")
	log.Debug("insert attempt finished", "outcome", OutcomeCommitted, "name", user.Name)
	return OutcomeCommitted, nil
}

func (s *Session) collect() (*database.User, error) {
	name, err := s.prompt.Line(PromptName)
	if err != nil {
		return nil, err
	}
	password, err := s.prompt.Line(PromptPassword)
	if err != nil {
		return nil, err
	}
	email, err := s.prompt.Line(PromptEmail)
	if err != nil {
		return nil, err
	}
	admin, err := s.prompt.YesNo(PromptAdmin, RetryAdmin)
	if err != nil {
		return nil, err
	}

	user := &database.User{
		Name:     name,
		Password: password,
		Email:    email,
		Admin:    database.AdminNo,
	}
	if admin {
		user.Admin = database.AdminYes
	}
	return user, nil
}

func (s *Session) println(line string) {
	fmt.Fprintln(s.out, line) //nolint:errcheck
}
