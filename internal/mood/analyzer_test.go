package mood

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snorelax/snorelax-be/internal/db"
	"github.com/snorelax/snorelax-be/internal/history"
)

type stubHistory struct {
	turns []history.Turn
	err   error
}

func (s *stubHistory) FindTurnsByUser(ctx context.Context, userID string) ([]history.Turn, error) {
	return s.turns, s.err
}

func (s *stubHistory) AppendTurn(ctx context.Context, turn *history.Turn) error {
	return nil
}

type stubMoods struct {
	moods []db.Mood
	err   error
}

func (s *stubMoods) GetRecentMoods(ctx context.Context, userID string, limit int) ([]db.Mood, error) {
	return s.moods, s.err
}

type stubGen struct {
	reply string
	err   error
	calls int
}

func (s *stubGen) Generate(ctx context.Context, prompt string) (string, error) {
	s.calls++
	return s.reply, s.err
}

func TestGuideFromProvider(t *testing.T) {
	gen := &stubGen{
		reply: `Sure! {"summary":"You seem stressed.","urgent":false,"recommendations":[{"title":"Box breathing","type":"breathing","durationMinutes":5,"intensity":"low","steps":["breathe in","breathe out"]}]}`,
	}
	a := NewAnalyzer(&stubHistory{}, &stubMoods{}, gen)

	guide := a.Guide(context.Background(), "user-1")

	assert.Equal(t, "You seem stressed.", guide.Summary)
	require.Len(t, guide.Recommendations, 1)
	assert.Equal(t, "breathing", guide.Recommendations[0].Type)
}

func TestGuideFallsBackToLocal(t *testing.T) {
	gen := &stubGen{err: errors.New("provider down")}
	hist := &stubHistory{turns: []history.Turn{
		{TranslatedMessage: "I am so stressed about everything"},
	}}
	a := NewAnalyzer(hist, &stubMoods{}, gen)

	guide := a.Guide(context.Background(), "user-1")

	require.NotEmpty(t, guide.Recommendations)
	assert.Equal(t, "breathing", guide.Recommendations[0].Type)
}

func TestGuideWithoutGenerator(t *testing.T) {
	moods := &stubMoods{moods: []db.Mood{
		{Mood: "tired", CreatedAt: time.Now()},
	}}
	a := NewAnalyzer(&stubHistory{}, moods, nil)

	guide := a.Guide(context.Background(), "user-1")

	require.NotEmpty(t, guide.Recommendations)
	assert.Equal(t, "lifestyle", guide.Recommendations[0].Type)
}

func TestGuideCached(t *testing.T) {
	gen := &stubGen{reply: `{"summary":"cached","urgent":false,"recommendations":[]}`}
	a := NewAnalyzer(&stubHistory{}, &stubMoods{}, gen)

	a.Guide(context.Background(), "user-1")
	a.Guide(context.Background(), "user-1")

	assert.Equal(t, 1, gen.calls, "second call should hit the cache")
}

func TestAnalyzeRefreshesCache(t *testing.T) {
	gen := &stubGen{reply: `{"summary":"first","urgent":false,"recommendations":[]}`}
	a := NewAnalyzer(&stubHistory{}, &stubMoods{}, gen)

	require.NoError(t, a.Analyze(context.Background(), "user-1"))

	gen.reply = `{"summary":"second","urgent":false,"recommendations":[]}`
	require.NoError(t, a.Analyze(context.Background(), "user-1"))

	guide := a.Guide(context.Background(), "user-1")
	assert.Equal(t, "second", guide.Summary)
	assert.Equal(t, 2, gen.calls)
}

func TestParseGuide(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    string
		wantErr bool
	}{
		{
			name: "bare JSON",
			text: `{"summary":"ok","urgent":false,"recommendations":[]}`,
			want: "ok",
		},
		{
			name: "JSON after chatter",
			text: `Here is your guide: {"summary":"ok","urgent":true,"recommendations":[]}`,
			want: "ok",
		},
		{
			name:    "no JSON at all",
			text:    "I cannot help with that.",
			wantErr: true,
		},
		{
			name:    "truncated JSON",
			text:    `{"summary":"ok","urgent":`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			guide, err := parseGuide(tt.text)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, guide.Summary)
		})
	}
}

func TestLocalGuideUrgent(t *testing.T) {
	guide := localGuide(compactInput{
		History: []compactTurn{{UserMessage: "I feel hopeless lately"}},
	})

	assert.True(t, guide.Urgent)
	assert.True(t, strings.Contains(guide.Summary, "support"), "urgent summary should point at support")
	assert.NotEmpty(t, guide.Recommendations)
}
