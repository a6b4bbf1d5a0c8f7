package typewriter

import "testing"

func TestControllerBroadcastsInSubscriptionOrder(t *testing.T) {
	c := NewController()
	var got []string
	c.Subscribe(func(s Signal) { got = append(got, "a:"+s.String()) })
	c.Subscribe(func(s Signal) { got = append(got, "b:"+s.String()) })
	c.Freeze()
	c.Resume()
	want := []string{"a:freeze", "b:freeze", "a:resume", "b:resume"}
	if len(got) != len(want) {
		t.Fatalf("want %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("want %v, got %v", want, got)
		}
	}
}

func TestControllerWithoutSubscribersIsInert(t *testing.T) {
	c := NewController()
	c.Start()
	c.Freeze()
	c.Resume()
	var zero Controller
	zero.Start()
	if zero.Subscribers() != 0 {
		t.Fatalf("zero controller should have no subscribers")
	}
}

func TestControllerUnsubscribe(t *testing.T) {
	c := NewController()
	n := 0
	cancel := c.Subscribe(func(Signal) { n++ })
	c.Start()
	cancel()
	cancel()
	c.Start()
	if n != 1 {
		t.Fatalf("expected 1 delivery, got %d", n)
	}
	if c.Subscribers() != 0 {
		t.Fatalf("expected no subscribers")
	}
}

func TestControllerCloseWithLiveSubscribers(t *testing.T) {
	c := NewController()
	n := 0
	cancel := c.Subscribe(func(Signal) { n++ })
	c.Close()
	c.Start()
	cancel()
	if n != 0 {
		t.Fatalf("closed controller must not deliver, got %d", n)
	}
	c.Subscribe(func(Signal) { n++ })()
	c.Resume()
	if n != 0 {
		t.Fatalf("closed controller must not accept subscribers")
	}
}

func TestControllerListenerMayIssueCommands(t *testing.T) {
	c := NewController()
	var got []Signal
	c.Subscribe(func(s Signal) {
		got = append(got, s)
		if s == SignalStart {
			c.Freeze()
		}
	})
	c.Start()
	if len(got) != 2 || got[1] != SignalFreeze {
		t.Fatalf("expected start then freeze, got %v", got)
	}
}
