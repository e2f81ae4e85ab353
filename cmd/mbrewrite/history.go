package mbrewrite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/viant/mbrewrite/shared"
)

type HistoryCmd struct {
	List  HistoryListCmd  `command:"list" description:"List recent rewrites, most recent first"`
	Clear HistoryClearCmd `command:"clear" description:"Remove all history entries"`
}

type HistoryListCmd struct {
	Limit int  `short:"n" long:"limit" description:"max entries to show (0=all)" default:"10"`
	Full  bool `long:"full" description:"print rewritten texts"`
}

func (c *HistoryListCmd) Execute(_ []string) error {
	sess, err := openSession(context.Background())
	if err != nil {
		return err
	}
	defer sess.Close()
	entries := sess.History()
	if len(entries) == 0 {
		fmt.Fprintln(stdout, "No history.")
		return nil
	}
	if c.Limit > 0 && len(entries) > c.Limit {
		entries = entries[:c.Limit]
	}
	for _, entry := range entries {
		var labels []string
		for _, result := range entry.Results {
			labels = append(labels, result.PersonaLabel)
		}
		fmt.Fprintf(stdout, "%s  %s  [%s]\n", entry.Timestamp.Local().Format(time.DateTime), shared.RuneTruncate(entry.OriginalMessage, 60), strings.Join(labels, ", "))
		if c.Full {
			printEntry(entry)
		}
	}
	return nil
}

type HistoryClearCmd struct{}

func (c *HistoryClearCmd) Execute(_ []string) error {
	ctx := context.Background()
	sess, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer sess.Close()
	if err := sess.ClearHistory(ctx); err != nil {
		return err
	}
	fmt.Fprintln(stdout, "History cleared.")
	return nil
}
