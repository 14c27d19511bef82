package tray

import (
	"testing"
	"time"

	"github.com/petems/triplespace/internal/app"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestEmojiForOutcome(t *testing.T) {
	tests := []struct {
		outcome app.Outcome
		want    string
	}{
		{app.OutcomeNone, "🟢"},
		{app.OutcomeTranslated, "🟢"},
		{app.OutcomeEmptyInput, "🟢"},
		{app.OutcomeWorking, "🟡"},
		{app.OutcomePaused, "⏸"},
		{app.OutcomeWriteBackFailed, "🟠"},
		{app.OutcomeTranslateFailed, "🔴"},
		{app.OutcomeCaptureFailed, "🔴"},
	}

	for _, tt := range tests {
		t.Run(tt.outcome.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, emojiForOutcome(tt.outcome))
		})
	}
}

func TestStatusLine(t *testing.T) {
	at := time.Date(2025, 3, 1, 9, 5, 7, 0, time.Local)

	assert.Equal(t, "Ready", statusLine(app.Status{}))
	assert.Equal(t, "Translated", statusLine(app.Status{Message: "Translated"}))
	assert.Equal(t, "Translated (09:05:07)", statusLine(app.Status{Message: "Translated", At: at}))
}

// SetStatus before the menu exists only records the status
func TestSetStatusBeforeReady(t *testing.T) {
	u := New(nil, "dev", "none", zerolog.Nop(), nil)
	s := app.Status{Outcome: app.OutcomeWorking, Message: "Translating to English…"}

	u.SetStatus(s)

	assert.Equal(t, s, u.current)
	assert.False(t, u.ready)
}

func TestOpenCommand(t *testing.T) {
	name, args := openCommand("/tmp/x.log")
	assert.NotEmpty(t, name)
	assert.Equal(t, []string{"/tmp/x.log"}, args)
}
