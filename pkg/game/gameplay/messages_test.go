package gameplay

import (
	"testing"

	"github.com/leonelquinteros/gotext"

	"cavedelve/pkg/game/floors"
)

func TestMessages_Translated(t *testing.T) {
	gotext.Configure("../../../locales", "en_GB", "default")

	s := startRun(t, testConfig(), &memStore{})
	msgs := s.Messages()
	if want := "You enter " + floors.Name(1) + "."; msgs[len(msgs)-1] != want {
		t.Errorf("last message = %q, want %q", msgs[len(msgs)-1], want)
	}

	if _, err := s.OnPlayerDied(); err != nil {
		t.Fatal(err)
	}
	msgs = s.Messages()
	if want := "You died (1 of 3). Everything you carried is lost."; msgs[len(msgs)-1] != want {
		t.Errorf("last message = %q, want %q", msgs[len(msgs)-1], want)
	}
}
