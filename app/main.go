package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	log "github.com/go-pkgz/lgr"
	gonotify "github.com/go-pkgz/notify"
	"github.com/joho/godotenv"
	"github.com/umputun/go-flags"
	"golang.org/x/text/language"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/umputun/iqcmaker/app/console"
	"github.com/umputun/iqcmaker/app/enums"
	"github.com/umputun/iqcmaker/app/generator"
	"github.com/umputun/iqcmaker/app/history"
	"github.com/umputun/iqcmaker/app/lifecycle"
	"github.com/umputun/iqcmaker/app/notify"
	"github.com/umputun/iqcmaker/app/stats"
	"github.com/umputun/iqcmaker/app/store"
)

type submitCommand struct {
	Args struct {
		Text []string `positional-arg-name:"text" required:"1" description:"text to render"`
	} `positional-args:"yes" required:"yes"`
}

type clearCommand struct {
	Force bool `short:"f" long:"force" description:"don't ask for confirmation"`
}

var opts struct {
	Endpoint    string        `long:"endpoint" env:"IQC_ENDPOINT" default:"https://api.nexray.web.id/maker/iqc" description:"generation endpoint"`
	Offline     bool          `long:"offline" env:"IQC_OFFLINE" description:"don't call generation endpoint, every job succeeds"`
	Timeout     time.Duration `long:"timeout" env:"IQC_TIMEOUT" default:"0s" description:"generation request timeout, 0 means no timeout"`
	SettleDelay time.Duration `long:"settle-delay" env:"IQC_SETTLE_DELAY" default:"1500ms" description:"pause before generation request, 0 to disable"`
	Locale      string        `long:"locale" env:"IQC_LOCALE" default:"id-ID" description:"locale of job timestamps"`
	Format      string        `short:"o" long:"format" env:"IQC_FORMAT" choice:"text" choice:"json" choice:"yaml" default:"text" description:"output format"`
	Dbg         bool          `long:"dbg" env:"IQC_DEBUG" description:"debug mode"`

	Store struct {
		Type  string `long:"type" env:"TYPE" choice:"sqlite" choice:"file" choice:"redis" choice:"memory" default:"sqlite" description:"history storage type"`
		Path  string `long:"path" env:"PATH" default:"iqcmaker.db" description:"sqlite file or directory of file storage"`
		Redis struct {
			Addr     string        `long:"addr" env:"ADDR" default:"localhost:6379" description:"redis address"`
			Password string        `long:"password" env:"PASSWORD" description:"redis password"`
			DB       int           `long:"db" env:"DB" default:"0" description:"redis database"`
			Prefix   string        `long:"prefix" env:"PREFIX" default:"iqc:" description:"redis key prefix"`
			Attempts int           `long:"ping-attempts" env:"PING_ATTEMPTS" default:"5" description:"connection check attempts"`
			Delay    time.Duration `long:"ping-delay" env:"PING_DELAY" default:"1s" description:"delay between connection checks"`
		} `group:"redis" namespace:"redis" env-namespace:"REDIS"`
	} `group:"store" namespace:"store" env-namespace:"IQC_STORE"`

	Notify struct {
		EnabledError      bool          `long:"enabled-error" env:"ENABLED_ERROR" description:"enable notifications on failed jobs"`
		EnabledCompletion bool          `long:"enabled-complete" env:"ENABLED_COMPLETE" description:"enable notifications on succeeded jobs"`
		SMTPHost          string        `long:"smtp-host" env:"SMTP_HOST" description:"SMTP host"`
		SMTPPort          int           `long:"smtp-port" env:"SMTP_PORT" description:"SMTP port"`
		SMTPUsername      string        `long:"smtp-username" env:"SMTP_USERNAME" description:"SMTP user name"`
		SMTPPassword      string        `long:"smtp-password" env:"SMTP_PASSWORD" description:"SMTP password"`
		SMTPTLS           bool          `long:"smtp-tls" env:"SMTP_TLS" description:"enable SMTP TLS"`
		SMTPStartTLS      bool          `long:"smtp-starttls" env:"SMTP_STARTTLS" description:"enable SMTP StartTLS"`
		SMTPTimeOut       time.Duration `long:"smtp-timeout" env:"SMTP_TIMEOUT" default:"10s" description:"SMTP TCP connection timeout"`
		FromEmail         string        `long:"from" env:"FROM" description:"SMTP from email"`
		ToEmails          []string      `long:"to" env:"TO" description:"SMTP to email(s)" env-delim:","`
		Webhooks          []string      `long:"webhook" env:"WEBHOOK" description:"webhook URL(s)" env-delim:","`
		HostName          string        `long:"host" env:"HOSTNAME" description:"host name running iqcmaker"`
	} `group:"notify" namespace:"notify" env-namespace:"IQC_NOTIFY"`

	Log struct {
		Enabled         bool   `long:"enabled" env:"ENABLED" description:"enable logging to file"`
		Filename        string `long:"filename" env:"FILENAME" default:"iqcmaker.log" description:"log file name"`
		MaxSize         int    `long:"max-size" env:"MAX_SIZE" default:"100" description:"max log file size in megabytes"`
		MaxBackups      int    `long:"max-backups" env:"MAX_BACKUPS" default:"7" description:"max number of rotated files"`
		MaxAge          int    `long:"max-age" env:"MAX_AGE" default:"0" description:"max age of rotated files in days"`
		EnabledCompress bool   `long:"enabled-compress" env:"ENABLED_COMPRESS" description:"compress rotated files"`
	} `group:"log" namespace:"log" env-namespace:"IQC_LOG"`

	Submit  submitCommand `command:"submit" description:"submit text and wait for the result"`
	History struct{}      `command:"history" description:"show job history"`
	Stats   struct{}      `command:"stats" description:"show counters"`
	Clear   clearCommand  `command:"clear" description:"remove all jobs from history"`
	Shell   struct{}      `command:"shell" description:"interactive shell, the default command"`
	Schema  struct{}      `command:"schema" description:"print JSON schema of stored history"`
}

var revision = "unknown"

// kvStore is a history backend which has to be closed on exit
type kvStore interface {
	history.KV
	io.Closer
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "can't load .env, %v\n", err)
	}

	p := flags.NewParser(&opts, flags.Default)
	p.SubcommandsOptional = true
	if _, err := p.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(2)
	}
	setupLogs()

	cmd := "shell"
	if p.Active != nil {
		cmd = p.Active.Name
	}
	if cmd == "shell" {
		fmt.Printf("iqcmaker %s\n", revision)
	}

	defer func() {
		if x := recover(); x != nil {
			log.Printf("[WARN] run time panic:\n%v", x)
			panic(x)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	signals(cancel) // handle SIGQUIT and SIGTERM

	if err := run(ctx, cmd, os.Stdin, os.Stdout); err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd string, in io.Reader, out io.Writer) error {
	if cmd == "schema" {
		data, err := json.MarshalIndent(history.Schema(), "", "  ")
		if err != nil {
			return fmt.Errorf("can't marshal schema: %w", err)
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	}

	format, err := enums.ParseOutputFormat(opts.Format)
	if err != nil {
		return err
	}
	tsFormat, err := timeFormat(opts.Locale)
	if err != nil {
		return err
	}

	kv, err := makeStore(ctx)
	if err != nil {
		return fmt.Errorf("can't open storage: %w", err)
	}
	defer func() {
		if e := kv.Close(); e != nil {
			log.Printf("[WARN] can't close storage, %v", e)
		}
	}()

	hs := history.New(kv, history.WithLegacyResult(func(text string) string {
		res, e := generator.BuildURL(opts.Endpoint, text)
		if e != nil {
			return ""
		}
		return res
	}))
	mutating := cmd == "submit" || cmd == "shell" || cmd == "clear"
	if _, _, err = hs.Load(ctx); err != nil {
		if mutating {
			return fmt.Errorf("can't load history: %w", err)
		}
		log.Printf("[WARN] can't load history, showing empty, %v", err)
	}

	settleDelay := opts.SettleDelay
	if settleDelay <= 0 {
		settleDelay = -1
	}
	mgr, err := lifecycle.NewManager(lifecycle.Params{
		Ledger:      hs,
		Counter:     stats.New(hs),
		Generator:   makeGenerator(),
		Endpoint:    opts.Endpoint,
		SettleDelay: settleDelay,
		TimeFormat:  tsFormat,
	})
	if err != nil {
		return fmt.Errorf("can't make job manager: %w", err)
	}
	if cmd == "submit" || cmd == "shell" {
		// read-only commands may run next to a shell with a job in flight
		if _, err = mgr.RecoverOrphaned(ctx); err != nil {
			log.Printf("[WARN] can't recover orphaned jobs, %v", err)
		}
	}

	if notifier := makeNotifier(); notifier != nil {
		events, unsubscribe := mgr.Subscribe()
		done := make(chan struct{})
		go func() {
			defer close(done)
			notifier.Listen(ctx, events)
		}()
		defer func() {
			mgr.Wait()
			unsubscribe()
			<-done
		}()
	}

	printer := &console.Printer{Out: out, Format: format}
	switch cmd {
	case "submit":
		return submit(ctx, mgr, printer, strings.Join(opts.Submit.Args.Text, " "))
	case "history":
		return printer.History(mgr.History())
	case "stats":
		sum := console.MakeSummary(mgr.Total(), mgr.History())
		return printer.Stats(sum)
	case "clear":
		if !opts.Clear.Force && !confirm(in, out, "clear all history? [y/N]") {
			printer.Message("clear canceled")
			return nil
		}
		return mgr.ClearHistory(ctx)
	case "shell":
		shell := console.Shell{Manager: mgr, Printer: printer, In: in}
		err = shell.Run(ctx)
		mgr.Wait()
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// submit sends text and waits for the job to settle
func submit(ctx context.Context, mgr *lifecycle.Manager, printer *console.Printer, text string) error {
	rec, err := mgr.Submit(ctx, text)
	if err != nil {
		return fmt.Errorf("can't submit: %w", err)
	}
	mgr.Wait()
	for _, r := range mgr.History() {
		if r.ID == rec.ID {
			rec = r
			break
		}
	}
	if err := printer.Record(rec); err != nil {
		return err
	}
	if rec.Status != enums.JobStatusSucceeded {
		return fmt.Errorf("job %s %s", rec.ID, rec.Status)
	}
	return nil
}

func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintln(out, question) // nolint
	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes"
}

func makeStore(ctx context.Context) (kvStore, error) {
	st, err := enums.ParseStoreType(opts.Store.Type)
	if err != nil {
		return nil, err
	}
	log.Printf("[DEBUG] storage %s", st)
	switch st {
	case enums.StoreTypeFile:
		return store.NewFile(opts.Store.Path)
	case enums.StoreTypeRedis:
		return store.NewRedis(ctx, store.RedisParams{
			Addr:         opts.Store.Redis.Addr,
			Password:     opts.Store.Redis.Password,
			DB:           opts.Store.Redis.DB,
			Prefix:       opts.Store.Redis.Prefix,
			PingAttempts: opts.Store.Redis.Attempts,
			PingDelay:    opts.Store.Redis.Delay,
		})
	case enums.StoreTypeMemory:
		return store.NewMemory(), nil
	default:
		return store.NewSQLite(opts.Store.Path)
	}
}

func makeGenerator() lifecycle.Generator {
	if opts.Offline {
		return generator.Offline{}
	}
	return generator.NewClient(generator.ClientParams{Timeout: opts.Timeout, UserAgent: "iqcmaker/" + revision})
}

// timeFormat returns layout of job timestamps for locale, Indonesian clock uses dots
func timeFormat(locale string) (string, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return "", fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	if base, _ := tag.Base(); base.String() == "id" {
		return "15.04.05", nil
	}
	return "15:04:05", nil
}

func makeNotifier() *notify.Service {
	if !opts.Notify.EnabledError && !opts.Notify.EnabledCompletion {
		return nil
	}

	if opts.Notify.FromEmail == "" {
		opts.Notify.FromEmail = "iqcmaker@" + makeHostName()
	}

	return notify.NewService(
		notify.Params{
			EnabledError:      opts.Notify.EnabledError,
			EnabledCompletion: opts.Notify.EnabledCompletion,
			HostName:          makeHostName(),
		},
		notify.SendersParams{
			SMTPParams: gonotify.SMTPParams{
				Host:     opts.Notify.SMTPHost,
				Port:     opts.Notify.SMTPPort,
				TLS:      opts.Notify.SMTPTLS,
				StartTLS: opts.Notify.SMTPStartTLS,
				Username: opts.Notify.SMTPUsername,
				Password: opts.Notify.SMTPPassword,
				TimeOut:  opts.Notify.SMTPTimeOut,
			},
			FromEmail:   opts.Notify.FromEmail,
			ToEmails:    opts.Notify.ToEmails,
			WebhookURLs: opts.Notify.Webhooks,
		},
	)
}

func makeHostName() string {
	if opts.Notify.HostName != "" {
		return opts.Notify.HostName
	}
	host, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return host
}

// setupLogs configures lgr, returns the writer logs go to
func setupLogs() io.Writer {
	var out io.Writer = os.Stderr
	if opts.Log.Enabled && opts.Log.Filename != "" {
		out = &lumberjack.Logger{
			Filename:   opts.Log.Filename,
			MaxSize:    opts.Log.MaxSize,
			MaxBackups: opts.Log.MaxBackups,
			MaxAge:     opts.Log.MaxAge,
			Compress:   opts.Log.EnabledCompress,
		}
	}

	logOpts := []log.Option{log.Msec, log.LevelBraces, log.Out(out), log.Err(out)}
	if opts.Dbg {
		logOpts = []log.Option{log.Debug, log.Msec, log.LevelBraces, log.CallerFunc, log.CallerPkg, log.CallerFile,
			log.Out(out), log.Err(out)}
	}
	log.Setup(logOpts...)
	return out
}

func signals(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	go func() {
		stacktrace := make([]byte, 8192)
		for sig := range sigChan {
			if sig == syscall.SIGQUIT { // catch SIGQUIT and print stack traces
				length := runtime.Stack(stacktrace, true)
				fmt.Println(string(stacktrace[:length]))
				continue
			}
			cancel() // terminate on SIGTERM and SIGINT
		}
	}()
	signal.Notify(sigChan, syscall.SIGQUIT, syscall.SIGTERM, syscall.SIGINT)
}
