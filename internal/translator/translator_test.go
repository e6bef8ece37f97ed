package translator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeBackend struct {
	detectCode   string
	detectErr    error
	translated   string
	translateErr error
	calls        int
}

func (f *fakeBackend) Detect(ctx context.Context, text string) (string, error) {
	return f.detectCode, f.detectErr
}

func (f *fakeBackend) Translate(ctx context.Context, text, source, target string) (string, error) {
	f.calls++
	if f.translateErr != nil {
		return "", f.translateErr
	}
	return f.translated, nil
}

func TestDetectFallsBackToEnglish(t *testing.T) {
	tests := []struct {
		name    string
		backend *fakeBackend
		want    string
	}{
		{"backend error", &fakeBackend{detectErr: errors.New("down")}, "en"},
		{"empty result", &fakeBackend{detectCode: ""}, "en"},
		{"normal detection", &fakeBackend{detectCode: "es"}, "es"},
		{"uppercase normalized", &fakeBackend{detectCode: " FR "}, "fr"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := New(tt.backend)
			assert.Equal(t, tt.want, tr.Detect(context.Background(), "hola"))
		})
	}
}

func TestTranslatePassThroughOnFailure(t *testing.T) {
	backend := &fakeBackend{translateErr: errors.New("unavailable")}
	tr := New(backend)

	got := tr.Translate(context.Background(), "bonjour", "fr", "en")
	assert.Equal(t, "bonjour", got)
}

func TestTranslateSameLanguageSkipsBackend(t *testing.T) {
	backend := &fakeBackend{translated: "should not be used"}
	tr := New(backend)

	got := tr.Translate(context.Background(), "hello", "en", "en")
	assert.Equal(t, "hello", got)
	assert.Zero(t, backend.calls)
}

func TestTranslateRoundTripWithFailingBackend(t *testing.T) {
	// A failing translator must be idempotent under a round trip.
	backend := &fakeBackend{translateErr: errors.New("unavailable")}
	tr := New(backend)

	ctx := context.Background()
	there := tr.Translate(ctx, "good night", "en", "es")
	back := tr.Translate(ctx, there, "es", "en")
	assert.Equal(t, "good night", back)
}

func TestTranslateBlankResultPassesThrough(t *testing.T) {
	backend := &fakeBackend{translated: "   "}
	tr := New(backend)

	got := tr.Translate(context.Background(), "hello", "en", "es")
	assert.Equal(t, "hello", got)
}
