package console

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"

	log "github.com/go-pkgz/lgr"

	"github.com/umputun/iqcmaker/app/enums"
	"github.com/umputun/iqcmaker/app/history"
	"github.com/umputun/iqcmaker/app/lifecycle"
)

// Manager is the lifecycle manager as seen by the shell, implemented by lifecycle.Manager
type Manager interface {
	Submit(ctx context.Context, raw string) (history.Record, error)
	ClearHistory(ctx context.Context) error
	History() []history.Record
	Total() int64
	Result() (string, bool)
	InFlight() bool
	Subscribe() (events <-chan lifecycle.Event, unsubscribe func())
}

// Shell is the interactive front end. Plain lines are submitted as jobs, lines started with / are commands.
type Shell struct {
	Manager Manager
	Printer *Printer
	In      io.Reader
}

const shellHelp = `type text to make a quote image, or a command:
  /history  show all jobs
  /stats    show counters
  /result   show the last generated image address
  /clear    remove all jobs from history
  /help     show this help
  /quit     exit`

// Run reads input till EOF, /quit or ctx cancellation. Job events are printed as they arrive.
func (s *Shell) Run(ctx context.Context) error {
	events, unsubscribe := s.Manager.Subscribe()
	evDone := make(chan struct{})
	go func() {
		defer close(evDone)
		for evt := range events {
			s.printEvent(evt)
		}
	}()
	defer func() {
		unsubscribe()
		<-evDone
	}()

	lines := make(chan string)
	readErr := make(chan error, 1)
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		scanner := bufio.NewScanner(s.In)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-stop:
				return
			}
		}
		readErr <- scanner.Err()
	}()

	s.Printer.Message("%s", shellHelp)
	confirmClear := false
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-readErr:
			return err
		case line := <-lines:
			if confirmClear {
				confirmClear = false
				answer := strings.ToLower(strings.TrimSpace(line))
				if answer != "y" && answer != "yes" {
					s.Printer.Message("clear canceled")
					continue
				}
				if err := s.Manager.ClearHistory(ctx); err != nil {
					s.Printer.Message("history cleared, but storage update failed: %v", err)
				}
				continue
			}
			quit, askConfirm := s.handle(ctx, line)
			if quit {
				return nil
			}
			confirmClear = askConfirm
		}
	}
}

// handle runs a single input line, returns quit flag and whether the next line is clear confirmation
func (s *Shell) handle(ctx context.Context, line string) (quit, confirm bool) {
	cmd := strings.TrimSpace(line)
	if !strings.HasPrefix(cmd, "/") {
		_, err := s.Manager.Submit(ctx, line)
		switch {
		case errors.Is(err, lifecycle.ErrEmptyText):
		case errors.Is(err, lifecycle.ErrInFlight):
			log.Printf("[DEBUG] submission ignored, job in flight")
		case err != nil:
			s.Printer.Message("can't submit: %v", err)
		}
		return false, false
	}

	switch strings.ToLower(strings.Fields(cmd)[0]) {
	case "/quit", "/exit", "/q":
		return true, false
	case "/history", "/h":
		s.report(s.Printer.History(s.Manager.History()))
	case "/stats", "/s":
		sum := MakeSummary(s.Manager.Total(), s.Manager.History())
		sum.InFlight = s.Manager.InFlight()
		sum.Result, _ = s.Manager.Result()
		s.report(s.Printer.Stats(sum))
	case "/result", "/r":
		if res, ok := s.Manager.Result(); ok {
			s.Printer.Message("%s", res)
			return false, false
		}
		s.Printer.Message("nothing generated yet")
	case "/clear":
		if len(s.Manager.History()) == 0 {
			s.Printer.Message("history is empty")
			return false, false
		}
		s.Printer.Message("clear all history? [y/N]")
		return false, true
	case "/help", "/?":
		s.Printer.Message("%s", shellHelp)
	default:
		s.Printer.Message("unknown command %s, try /help", cmd)
	}
	return false, false
}

func (s *Shell) printEvent(evt lifecycle.Event) {
	switch evt.Type {
	case enums.EventTypeSubmitted:
		s.Printer.Message("processing %q ...", evt.Record.Text)
	case enums.EventTypeSucceeded:
		s.Printer.Message("done %q, total created %d\n%s", evt.Record.Text, evt.Total, evt.Record.Result)
	case enums.EventTypeFailed:
		s.Printer.Message("failed %q", evt.Record.Text)
	case enums.EventTypeCleared:
		s.Printer.Message("history cleared")
	}
}

func (s *Shell) report(err error) {
	if err != nil {
		s.Printer.Message("can't print: %v", err)
	}
}
