package console

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/kiryu-dev/lcu-relay/internal/domain"
)

const maxFriends = 15

// View is everything one paint shows.
type View struct {
	Session       domain.Session
	Notifications []domain.Notification
	Friends       []domain.FriendEntry
	AutoAccept    bool
}

func Render(w io.Writer, v View) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	s := v.Session
	fmt.Fprintf(tw, "phase:\t%s\n", s.Phase)
	if s.QueueID != nil {
		fmt.Fprintf(tw, "queue:\t%d\n", *s.QueueID)
	}
	fmt.Fprintf(tw, "roles:\t%s / %s\n", position(s.Positions.First), position(s.Positions.Second))
	fmt.Fprintf(tw, "auto accept:\t%t\n", v.AutoAccept)
	if s.Phase == domain.PhaseSearching && s.QueueTimer != nil {
		fmt.Fprintf(tw, "in queue:\t%s", seconds(*s.QueueTimer))
		if s.EstimatedQueueTime != nil {
			fmt.Fprintf(tw, " (estimated %s)", seconds(*s.EstimatedQueueTime))
		}
		fmt.Fprintln(tw)
	}
	if len(s.Members) > 0 {
		fmt.Fprintln(tw, "\nlobby:")
		for _, m := range s.Members {
			leader := ""
			if m.Leader {
				leader = "*"
			}
			fmt.Fprintf(tw, "%s%s\t%s %s\t%d LP\t%dW %dL\t%s / %s\n", leader, m.Name, m.Ranked.Tier, m.Ranked.Division,
				m.Ranked.LeaguePoints, m.Ranked.Wins, m.Ranked.Losses,
				position(m.Positions.First), position(m.Positions.Second))
		}
	}
	if len(v.Friends) > 0 {
		fmt.Fprintln(tw, "\nfriends:")
		for i, f := range v.Friends {
			if i == maxFriends {
				fmt.Fprintf(tw, "... %d more\n", len(v.Friends)-maxFriends)
				break
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\n", f.Name, f.Status, rank(f.Rank))
		}
	}
	for _, n := range v.Notifications {
		fmt.Fprintf(tw, "\n! %s", n.Message)
	}
	if len(v.Notifications) > 0 {
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

func position(p *domain.Position) string {
	if p == nil {
		return "-"
	}
	return strings.ToLower(string(*p))
}

func rank(r domain.Rank) string {
	if r.Tier == nil || *r.Tier == "" {
		return "unranked"
	}
	if r.Division == nil || *r.Division == "NA" {
		return *r.Tier
	}
	return *r.Tier + " " + *r.Division
}

func seconds(v float64) string {
	return (time.Duration(v) * time.Second).String()
}
