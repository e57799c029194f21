package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/bistroworks/bistro/pkg/kitchen"
	"github.com/bistroworks/bistro/pkg/stores"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	haltedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// sessionDetail is the JSON rendering of one recorded session.
type sessionDetail struct {
	Session    *stores.Session          `json:"session"`
	Orders     []stores.OrderRecord     `json:"orders"`
	Stock      []stores.StockRecord     `json:"stock"`
	Narrations []stores.NarrationRecord `json:"narrations,omitempty"`
}

func newHistoryCommand(opts *rootOptions) *cobra.Command {
	var (
		limit  int
		offset int
		events bool
		remove bool
	)

	cmd := &cobra.Command{
		Use:   "history [session-id]",
		Short: "Show recorded kitchen sessions",
		Long: `List recorded sessions, most recent first, or show one session with
the final state of its orders and the stock left at each station.`,
		Example: `  # List the last 20 sessions
  bistro history

  # Show one session with its narration
  bistro history 3f0c5d9e-... --events

  # Delete a session
  bistro history 3f0c5d9e-... --delete`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			store, err := openStore(ctx, opts.settings.DBPath)
			if err != nil {
				return err
			}
			defer store.Close()

			if len(args) == 0 {
				if remove {
					return errors.New("--delete requires a session id")
				}
				return listSessions(ctx, store, out, limit, offset, opts.jsonOutput)
			}

			if remove {
				if err := store.DeleteSession(ctx, args[0]); err != nil {
					return err
				}
				fmt.Fprintf(out, "Session %s deleted.\n", args[0])
				return nil
			}
			return showSession(ctx, store, out, args[0], events, opts.jsonOutput)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of sessions to list")
	cmd.Flags().IntVar(&offset, "offset", 0, "number of sessions to skip")
	cmd.Flags().BoolVar(&events, "events", false, "include the narration of the session")
	cmd.Flags().BoolVar(&remove, "delete", false, "delete the session")

	return cmd
}

func listSessions(ctx context.Context, store stores.Store, out io.Writer, limit, offset int, asJSON bool) error {
	sessions, err := store.ListSessions(ctx, limit, offset)
	if err != nil {
		return err
	}

	if asJSON {
		return writeJSON(out, sessions)
	}
	if len(sessions) == 0 {
		fmt.Fprintln(out, "No sessions recorded.")
		return nil
	}

	t := newTable("SESSION", "KITCHEN", "OUTCOME", "FULFILLED", "REMAINING", "STARTED")
	for _, s := range sessions {
		t.Row(
			s.ID,
			s.Kitchen,
			outcomeText(s),
			strconv.Itoa(s.Fulfilled),
			strconv.Itoa(s.Remaining),
			s.StartedAt.Local().Format(time.DateTime),
		)
	}
	fmt.Fprintln(out, t.Render())
	return nil
}

func showSession(ctx context.Context, store stores.Store, out io.Writer, id string, events, asJSON bool) error {
	session, err := store.GetSession(ctx, id)
	if err != nil {
		return err
	}
	orders, err := store.ListOrders(ctx, id)
	if err != nil {
		return err
	}
	stock, err := store.ListStockSnapshot(ctx, id)
	if err != nil {
		return err
	}

	detail := sessionDetail{Session: session, Orders: orders, Stock: stock}
	if events {
		if detail.Narrations, err = store.ListNarrations(ctx, id, -1, 0); err != nil {
			return err
		}
	}

	if asJSON {
		return writeJSON(out, detail)
	}

	fmt.Fprintln(out, titleStyle.Render(session.Kitchen))
	field := func(label, value string) {
		fmt.Fprintf(out, "%s %s\n", labelStyle.Render(fmt.Sprintf("%-10s", label)), value)
	}
	field("Session", session.ID)
	field("Source", session.Source)
	field("Outcome", outcomeText(session))
	field("Started", session.StartedAt.Local().Format(time.DateTime))
	if session.CompletedAt != nil {
		field("Duration", session.CompletedAt.Sub(session.StartedAt).Round(time.Millisecond).String())
	}
	if session.Error != nil {
		field("Error", *session.Error)
	}
	fmt.Fprintln(out)

	ot := newTable("#", "ITEM", "STATUS", "STATION", "ATTEMPTS")
	for _, o := range orders {
		ot.Row(strconv.Itoa(o.Position+1), o.Item, string(o.Status), o.Station, strconv.Itoa(o.Attempts))
	}
	fmt.Fprintln(out, ot.Render())

	if len(stock) > 0 {
		st := newTable("OWNER", "INGREDIENT", "QUANTITY")
		for _, s := range stock {
			owner := s.Owner
			if owner == stores.BackupOwner {
				owner = "backup"
			}
			st.Row(owner, s.Ingredient, strconv.Itoa(s.Quantity))
		}
		fmt.Fprintln(out, st.Render())
	}

	if events {
		fmt.Fprintln(out)
		for _, n := range detail.Narrations {
			fmt.Fprintln(out, n.Message)
		}
	}
	return nil
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style { return cellStyle }).
		Headers(headers...)
}

func outcomeText(s *stores.Session) string {
	switch {
	case !s.IsComplete():
		return "incomplete"
	case s.Outcome == kitchen.DrainOutcomeHalted:
		return haltedStyle.Render(string(s.Outcome))
	default:
		return string(s.Outcome)
	}
}

func writeJSON(out io.Writer, v interface{}) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
