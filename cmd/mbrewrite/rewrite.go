package mbrewrite

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/viant/mbrewrite/genai/history"
	"github.com/viant/mbrewrite/genai/persona"
	"github.com/viant/mbrewrite/shared"
)

// RewriteCmd rewrites a message once or interactively.
type RewriteCmd struct {
	Types       []string `short:"m" long:"meyers-briggs" description:"Myers-Briggs type, case-insensitive (repeatable)"`
	Customs     []string `short:"p" long:"persona" description:"ad-hoc custom persona description (repeatable)"`
	Interactive bool     `short:"i" long:"interactive" description:"keep reading messages from stdin until EOF"`
}

func (c *RewriteCmd) Execute(args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	sess, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer sess.Close()

	personas, err := c.personas(sess)
	if err != nil {
		return err
	}
	message := strings.TrimSpace(strings.Join(args, " "))
	if message != "" {
		if err := c.submit(ctx, sess, message, personas); err != nil {
			return err
		}
	}
	if c.Interactive || message == "" {
		err = c.interactive(ctx, sess, personas)
	}
	c.printUsage(sess)
	return err
}

// personas resolves -m and -p flags, falling back to the persisted selection.
func (c *RewriteCmd) personas(sess *session) ([]*persona.Persona, error) {
	if len(c.Types) == 0 && len(c.Customs) == 0 {
		selected := sess.Selected()
		if len(selected) == 0 {
			return nil, fmt.Errorf("no personas selected: use -m/-p or 'persona select'")
		}
		return selected, nil
	}
	var ret []*persona.Persona
	for _, mbType := range c.Types {
		p, ok := sess.Catalog().Lookup(mbType)
		if !ok || !p.IsBuiltin {
			fmt.Fprintf(stderr, "Warning: Invalid Myers-Briggs type '%s'. Skipping.\n", mbType)
			continue
		}
		ret = append(ret, p)
	}
	for i, description := range c.Customs {
		p := persona.New(fmt.Sprintf("Custom %d", i+1), description)
		if p.Description == "" {
			fmt.Fprintf(stderr, "Warning: empty custom persona #%d. Skipping.\n", i+1)
			continue
		}
		ret = append(ret, p)
	}
	if len(ret) == 0 {
		return nil, fmt.Errorf("no valid personas specified")
	}
	return ret, nil
}

func (c *RewriteCmd) submit(ctx context.Context, sess *session, message string, personas []*persona.Persona) error {
	entry, err := sess.Submit(ctx, message, personas)
	var persistenceErr *shared.PersistenceError
	if err != nil && !(errors.As(err, &persistenceErr) && entry != nil) {
		return err
	}
	printEntry(entry)
	if err != nil {
		fmt.Fprintf(stderr, "warning: %v\n", err)
	}
	return nil
}

func (c *RewriteCmd) interactive(ctx context.Context, sess *session, personas []*persona.Persona) error {
	fmt.Fprintln(stdout, strings.Repeat("=", rule))
	fmt.Fprintln(stdout, "Interactive mode. Enter messages to rewrite (Ctrl+D to exit).")
	fmt.Fprintln(stdout, strings.Repeat("=", rule))
	scanner := bufio.NewScanner(stdin)
	for {
		fmt.Fprint(stdout, "Message: ")
		if !scanner.Scan() {
			fmt.Fprintln(stdout, "\nExiting interactive mode.")
			return scanner.Err()
		}
		message := strings.TrimSpace(scanner.Text())
		if message == "" {
			continue
		}
		if err := c.submit(ctx, sess, message, personas); err != nil {
			if ctx.Err() != nil {
				return err
			}
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
	}
}

func (c *RewriteCmd) printUsage(sess *session) {
	if !globalOptions().Usage {
		return
	}
	prompt, completion, total := sess.usage.Totals()
	fmt.Fprintf(stdout, "tokens: prompt=%d completion=%d total=%d\n", prompt, completion, total)
}

func printEntry(entry *history.Entry) {
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, strings.Repeat("=", rule))
	fmt.Fprintf(stdout, "Original message: %s\n", entry.OriginalMessage)
	fmt.Fprintln(stdout, strings.Repeat("=", rule))
	fmt.Fprintln(stdout)
	for _, result := range entry.Results {
		fmt.Fprintf(stdout, "[%s]\n", result.PersonaLabel)
		fmt.Fprintln(stdout, strings.Repeat("-", rule))
		fmt.Fprintln(stdout, result.RewrittenText)
		fmt.Fprintln(stdout)
	}
}
