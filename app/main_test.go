package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/umputun/iqcmaker/app/enums"
	"github.com/umputun/iqcmaker/app/generator"
	"github.com/umputun/iqcmaker/app/history"
	"github.com/umputun/iqcmaker/app/store"
)

func prepOpts(t *testing.T) {
	t.Helper()
	opts.Endpoint = generator.DefaultEndpoint
	opts.Offline = true
	opts.SettleDelay = 0
	opts.Locale = "id-ID"
	opts.Format = "text"
	opts.Store.Type = "sqlite"
	opts.Store.Path = filepath.Join(t.TempDir(), "iqcmaker.db")
	opts.Notify.EnabledError, opts.Notify.EnabledCompletion = false, false
	opts.Clear.Force = false
}

func Test_makeHostName(t *testing.T) {
	opts.Notify.HostName = "test"
	assert.Equal(t, "test", makeHostName())

	opts.Notify.HostName = ""
	exp, err := os.Hostname()
	require.NoError(t, err)
	assert.Equal(t, exp, makeHostName())
}

func Test_makeNotifier(t *testing.T) {
	opts.Notify.EnabledCompletion, opts.Notify.EnabledError = false, false
	opts.Notify.FromEmail = ""
	opts.Notify.ToEmails = []string{"test@example.com"}
	assert.Nil(t, makeNotifier())

	opts.Notify.EnabledCompletion = true
	notif := makeNotifier()
	require.NotNil(t, notif)
	assert.Equal(t, "iqcmaker@"+makeHostName(), opts.Notify.FromEmail,
		"side effect of creating notifier with empty From "+
			"is setting the From based on hostname")

	opts.Notify.ToEmails = nil
	assert.Nil(t, makeNotifier(), "no destinations")
	opts.Notify.EnabledCompletion = false
}

func Test_setupLogsWithLogsDisabled(t *testing.T) {
	opts.Log.Enabled = false
	assert.Equal(t, os.Stderr, setupLogs())
}

func Test_setupLogsToFile(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "")
	require.NoError(t, err)
	defer os.Remove(tmpfile.Name())

	opts.Log.Enabled = true
	opts.Log.Filename = tmpfile.Name()
	opts.Log.MaxSize = 100
	opts.Log.MaxBackups = 7
	opts.Log.MaxAge = 0
	opts.Log.EnabledCompress = false
	defer func() {
		opts.Log.Enabled = false
		setupLogs()
	}()

	out := setupLogs()
	assert.IsType(t, &lumberjack.Logger{}, out)

	logger := out.(*lumberjack.Logger)
	assert.Equal(t, tmpfile.Name(), logger.Filename)
	assert.Equal(t, 100, logger.MaxSize)
	assert.Equal(t, 7, logger.MaxBackups)
	assert.Equal(t, 0, logger.MaxAge)
	assert.False(t, logger.Compress)
}

func Test_timeFormat(t *testing.T) {
	tests := []struct{ locale, want string }{
		{"id-ID", "15.04.05"},
		{"id", "15.04.05"},
		{"en-US", "15:04:05"},
		{"ru", "15:04:05"},
	}
	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			res, err := timeFormat(tt.locale)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res)
		})
	}

	_, err := timeFormat("not a locale!")
	assert.Error(t, err)
}

func Test_confirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true}, {"YES\n", true}, {" y \n", true},
		{"n\n", false}, {"\n", false}, {"", false}, {"maybe\n", false},
	}
	for _, tt := range tests {
		out := bytes.Buffer{}
		assert.Equal(t, tt.want, confirm(strings.NewReader(tt.input), &out, "sure?"), "input %q", tt.input)
		assert.Equal(t, "sure?\n", out.String())
	}
}

func Test_runSchema(t *testing.T) {
	prepOpts(t)
	out := bytes.Buffer{}
	require.NoError(t, run(context.Background(), "schema", strings.NewReader(""), &out))
	var schema map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &schema))
	assert.Equal(t, "array", schema["type"])
}

func Test_runSubmitHistoryStatsClear(t *testing.T) {
	prepOpts(t)
	ctx := context.Background()

	opts.Submit.Args.Text = []string{"Hidup", "itu", "singkat"}
	out := bytes.Buffer{}
	require.NoError(t, run(ctx, "submit", strings.NewReader(""), &out))
	assert.Contains(t, out.String(), "succeeded  \"Hidup itu singkat\"  "+generator.DefaultEndpoint+"?text=Hidup%20itu%20singkat")

	// history is persisted between runs
	opts.Format = "json"
	out.Reset()
	require.NoError(t, run(ctx, "history", strings.NewReader(""), &out))
	var recs []history.Record
	require.NoError(t, json.Unmarshal(out.Bytes(), &recs))
	require.Len(t, recs, 1)
	assert.Equal(t, "Hidup itu singkat", recs[0].Text)
	assert.Contains(t, recs[0].Timestamp, ".", "id-ID clock uses dots")

	out.Reset()
	require.NoError(t, run(ctx, "stats", strings.NewReader(""), &out))
	assert.JSONEq(t, `{"total":1,"records":1,"pending":0,"succeeded":1,"failed":0,"in_flight":false}`, out.String())

	// clear canceled
	opts.Format = "text"
	out.Reset()
	require.NoError(t, run(ctx, "clear", strings.NewReader("n\n"), &out))
	assert.Contains(t, out.String(), "clear canceled")

	out.Reset()
	require.NoError(t, run(ctx, "clear", strings.NewReader("y\n"), &out))
	out.Reset()
	require.NoError(t, run(ctx, "history", strings.NewReader(""), &out))
	assert.Equal(t, "history is empty\n", out.String())

	// counter survives clear
	out.Reset()
	require.NoError(t, run(ctx, "stats", strings.NewReader(""), &out))
	assert.Contains(t, out.String(), "total created: 1")
}

func Test_runSubmitFailed(t *testing.T) {
	prepOpts(t)
	opts.Offline = false
	opts.Endpoint = "http://127.0.0.1:1/maker/iqc"
	opts.Store.Type = "memory"
	opts.Submit.Args.Text = []string{"oops"}

	out := bytes.Buffer{}
	err := run(context.Background(), "submit", strings.NewReader(""), &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed")
	assert.Contains(t, out.String(), "failed     \"oops\"")
}

func Test_runShell(t *testing.T) {
	prepOpts(t)
	opts.Store.Type = "file"
	opts.Store.Path = filepath.Join(t.TempDir(), "data")

	out := bytes.Buffer{}
	require.NoError(t, run(context.Background(), "shell", strings.NewReader("first\n"), &out))

	opts.Format = "json"
	out.Reset()
	require.NoError(t, run(context.Background(), "history", strings.NewReader(""), &out))
	var recs []history.Record
	require.NoError(t, json.Unmarshal(out.Bytes(), &recs))
	require.Len(t, recs, 1)
	assert.Equal(t, "first", recs[0].Text)
	assert.True(t, recs[0].Terminal(), "shell waits for in-flight job on exit")
}

func Test_runReadOnlyKeepsInFlightJob(t *testing.T) {
	prepOpts(t)
	ctx := context.Background()
	opts.Store.Type = "file"
	opts.Store.Path = filepath.Join(t.TempDir(), "data")

	// job started by another shell, still pending on disk
	kv, err := store.NewFile(opts.Store.Path)
	require.NoError(t, err)
	hs := history.New(kv)
	_, _, err = hs.Load(ctx)
	require.NoError(t, err)
	require.NoError(t, hs.Append(ctx, history.Record{ID: "other", Text: "busy", Status: enums.JobStatusPending,
		Timestamp: "17/10/2026 10.00.00"}))

	pendingOnDisk := func() enums.JobStatus {
		_, _, e := hs.Load(ctx)
		require.NoError(t, e)
		rec, ok := hs.Get("other")
		require.True(t, ok)
		return rec.Status
	}

	for _, cmd := range []string{"history", "stats"} {
		require.NoError(t, run(ctx, cmd, strings.NewReader(""), &bytes.Buffer{}), cmd)
		assert.Equal(t, enums.JobStatusPending, pendingOnDisk(), "%s doesn't touch in-flight job", cmd)
	}

	opts.Submit.Args.Text = []string{"next"}
	require.NoError(t, run(ctx, "submit", strings.NewReader(""), &bytes.Buffer{}))
	assert.Equal(t, enums.JobStatusFailed, pendingOnDisk(), "submit recovers orphaned job")
}

func Test_runFailedLoad(t *testing.T) {
	prepOpts(t)
	ctx := context.Background()
	opts.Store.Type = "file"
	opts.Store.Path = filepath.Join(t.TempDir(), "data")
	// history key is a directory, reading it fails
	require.NoError(t, os.MkdirAll(filepath.Join(opts.Store.Path, history.HistoryKey), 0o700))

	opts.Submit.Args.Text = []string{"lost"}
	err := run(ctx, "submit", strings.NewReader(""), &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "can't load history")

	opts.Clear.Force = true
	require.Error(t, run(ctx, "clear", strings.NewReader(""), &bytes.Buffer{}))

	out := bytes.Buffer{}
	require.NoError(t, run(ctx, "history", strings.NewReader(""), &out), "read-only command shows empty history")
	assert.Equal(t, "history is empty\n", out.String())

	info, err := os.Stat(filepath.Join(opts.Store.Path, history.HistoryKey))
	require.NoError(t, err)
	assert.True(t, info.IsDir(), "stored value left alone")
	_, err = os.Stat(filepath.Join(opts.Store.Path, history.TotalKey))
	assert.True(t, os.IsNotExist(err), "counter not written")
}

func Test_runBadOptions(t *testing.T) {
	prepOpts(t)
	opts.Locale = "not a locale!"
	assert.Error(t, run(context.Background(), "history", strings.NewReader(""), &bytes.Buffer{}))

	prepOpts(t)
	opts.Store.Type = "nope"
	assert.Error(t, run(context.Background(), "history", strings.NewReader(""), &bytes.Buffer{}))

	prepOpts(t)
	opts.Endpoint = "not-url"
	assert.Error(t, run(context.Background(), "history", strings.NewReader(""), &bytes.Buffer{}))

	prepOpts(t)
	assert.Error(t, run(context.Background(), "unknown", strings.NewReader(""), &bytes.Buffer{}))
}
