package agent

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/go-rod/rod/lib/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapKey(t *testing.T) {
	tests := []struct {
		key     string
		want    input.Key
		wantErr bool
	}{
		{key: "Enter", want: input.Enter},
		{key: "Escape", want: input.Escape},
		{key: "Backspace", want: input.Backspace},
		{key: "ArrowLeft", want: input.ArrowLeft},
		{key: "a", want: input.Key('a')},
		{key: "7", want: input.Key('7')},
		{key: "NotAKey", wantErr: true},
		{key: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("key %q", tt.key), func(t *testing.T) {
			got, err := mapKey(tt.key)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveScreenshotPath(t *testing.T) {
	tests := []struct {
		name string
		dir  string
		path string
		want string
	}{
		{
			name: "relative path joins screenshot dir",
			dir:  ".ptype-e2e/screenshots",
			path: "main-menu.png",
			want: filepath.Join(".ptype-e2e/screenshots", "main-menu.png"),
		},
		{
			name: "absolute path wins",
			dir:  ".ptype-e2e/screenshots",
			path: "/tmp/out.png",
			want: "/tmp/out.png",
		},
		{
			name: "empty dir keeps path",
			dir:  "",
			path: "main-menu.png",
			want: "main-menu.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveScreenshotPath(tt.dir, tt.path))
		})
	}
}

func TestConsoleMessage_IsError(t *testing.T) {
	assert.True(t, ConsoleMessage{Level: "error", Text: "boom"}.IsError())
	assert.False(t, ConsoleMessage{Level: "log", Text: "fine"}.IsError())
	assert.False(t, ConsoleMessage{Level: "warning", Text: "meh"}.IsError())
}

func TestConsoleLog_FiltersErrors(t *testing.T) {
	log := newConsoleLog(defaultConsoleCap)
	log.add(ConsoleMessage{Level: "log", Text: "game started"})
	log.add(ConsoleMessage{Level: "error", Text: "Uncaught TypeError"})
	log.add(ConsoleMessage{Level: "warning", Text: "slow frame"})

	all := log.messages(false)
	require.Len(t, all, 3)

	errs := log.messages(true)
	require.Len(t, errs, 1)
	assert.Equal(t, "Uncaught TypeError", errs[0].Text)
}

func TestConsoleLog_BoundedBuffer(t *testing.T) {
	log := newConsoleLog(3)
	for i := 0; i < 5; i++ {
		log.add(ConsoleMessage{Level: "log", Text: fmt.Sprintf("msg %d", i)})
	}

	msgs := log.messages(false)
	require.Len(t, msgs, 3)
	// Oldest entries are dropped first.
	assert.Equal(t, "msg 2", msgs[0].Text)
	assert.Equal(t, "msg 4", msgs[2].Text)
}

func TestConsoleLog_Reset(t *testing.T) {
	log := newConsoleLog(defaultConsoleCap)
	log.add(ConsoleMessage{Level: "error", Text: "stale"})
	log.reset()
	assert.Empty(t, log.messages(false))
}

func TestOptions_Defaults(t *testing.T) {
	var opts Options
	assert.Equal(t, 1280, opts.viewportWidth())
	assert.Equal(t, 800, opts.viewportHeight())
	assert.Positive(t, opts.navigationTimeout())
	assert.Positive(t, opts.typeDelay())

	opts = Options{ViewportWidth: 1920, ViewportHeight: 1080}
	assert.Equal(t, 1920, opts.viewportWidth())
	assert.Equal(t, 1080, opts.viewportHeight())
}
