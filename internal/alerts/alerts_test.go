package alerts

import "testing"

func TestNopNotifier(t *testing.T) {
	var n Notifier = Nop{}
	n.Notify("dropped on the floor")
}

func TestNewShoutrrrNotifier(t *testing.T) {
	t.Run("RejectsInvalidURL", func(t *testing.T) {
		if _, err := NewShoutrrrNotifier([]string{"not-a-service-url"}, nil); err == nil {
			t.Error("expected error for an invalid service URL")
		}
	})
}
