package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"smartsociety/backend/internal/models"
	"smartsociety/backend/internal/storage"
	"strings"
	"text/tabwriter"
)

const usage = `Usage: admin <command> [args]

  approve <uid>                                  approve and activate a resident
  revoke <uid>                                   withdraw approval
  activate <uid>                                 re-activate an account
  deactivate <uid>                               deactivate an account
  pending-users                                  list residents awaiting approval
  complaint-status <id> <in_progress|resolved> [reply]
  review-suggestion <id> [reply]`

var errUsage = errors.New("usage")

// Store is what the admin commands change.
type Store interface {
	SetUserFlags(ctx context.Context, uid string, flags storage.UserFlags) error
	ListUnapprovedUsers(ctx context.Context) ([]models.User, error)
	SetComplaintStatus(ctx context.Context, id string, status models.ComplaintStatus, reply *string) error
	MarkSuggestionReviewed(ctx context.Context, id string, reply *string) error
}

func flag(v bool) *bool { return &v }

// optionalReply joins the remaining arguments into a reply, nil when empty.
func optionalReply(args []string) *string {
	reply := strings.TrimSpace(strings.Join(args, " "))
	if reply == "" {
		return nil
	}
	return &reply
}

func run(ctx context.Context, s Store, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}

	command, args := args[0], args[1:]
	switch command {
	case "approve", "revoke", "activate", "deactivate":
		if len(args) != 1 {
			return errUsage
		}
		var flags storage.UserFlags
		switch command {
		case "approve":
			flags = storage.UserFlags{IsApproved: flag(true), IsActive: flag(true)}
		case "revoke":
			flags = storage.UserFlags{IsApproved: flag(false)}
		case "activate":
			flags = storage.UserFlags{IsActive: flag(true)}
		case "deactivate":
			flags = storage.UserFlags{IsActive: flag(false)}
		}
		if err := s.SetUserFlags(ctx, args[0], flags); err != nil {
			return fmt.Errorf("%s %s: %w", command, args[0], err)
		}
		fmt.Fprintf(out, "User %s: %s done.\n", args[0], command)

	case "pending-users":
		users, err := s.ListUnapprovedUsers(ctx)
		if err != nil {
			return err
		}
		if len(users) == 0 {
			fmt.Fprintln(out, "No residents awaiting approval.")
			return nil
		}
		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "UID\tNAME\tEMAIL\tHOUSE\tREGISTERED")
		for _, u := range users {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", u.UID, u.FullName, u.Email, u.HouseNumber, u.CreatedAt.Format("2006-01-02 15:04"))
		}
		return w.Flush()

	case "complaint-status":
		if len(args) < 2 {
			return errUsage
		}
		status := models.ComplaintStatus(args[1])
		if status != models.ComplaintInProgress && status != models.ComplaintResolved {
			return errUsage
		}
		if err := s.SetComplaintStatus(ctx, args[0], status, optionalReply(args[2:])); err != nil {
			return fmt.Errorf("complaint %s: %w", args[0], err)
		}
		fmt.Fprintf(out, "Complaint %s is now %s.\n", args[0], status)

	case "review-suggestion":
		if len(args) < 1 {
			return errUsage
		}
		if err := s.MarkSuggestionReviewed(ctx, args[0], optionalReply(args[1:])); err != nil {
			return fmt.Errorf("suggestion %s: %w", args[0], err)
		}
		fmt.Fprintf(out, "Suggestion %s has been reviewed.\n", args[0])

	default:
		return errUsage
	}
	return nil
}
