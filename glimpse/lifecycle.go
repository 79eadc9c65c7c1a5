package glimpse

import "golang.org/x/mobile/event/lifecycle"

// CommandsForLifecycle translates a mobile lifecycle transition into the
// commands it implies. A transition may cross several stages at once, the
// commands are ordered the way the host would have delivered them one by one.
func CommandsForLifecycle(ev lifecycle.Event, win Window) []Event {
	var events []Event

	// going up: the window arrives before focus
	if ev.Crosses(lifecycle.StageVisible) == lifecycle.CrossOn {
		events = append(events, Event{Command: CommandInitWindow, Window: win})
	}

	if ev.Crosses(lifecycle.StageFocused) == lifecycle.CrossOn {
		events = append(events, Event{Command: CommandResume})
	}

	// going down: focus is lost before the window goes away
	if ev.Crosses(lifecycle.StageFocused) == lifecycle.CrossOff {
		events = append(events, Event{Command: CommandPause})
	}

	if ev.Crosses(lifecycle.StageVisible) == lifecycle.CrossOff {
		events = append(events, Event{Command: CommandTermWindow, Window: win})
	}

	if ev.Crosses(lifecycle.StageAlive) == lifecycle.CrossOff {
		events = append(events, Event{Command: CommandDestroy})
	}

	return events
}
