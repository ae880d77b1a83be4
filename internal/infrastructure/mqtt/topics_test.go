package mqtt

import "testing"

func TestTopics(t *testing.T) {
	topics := Topics{}

	tests := []struct {
		name string
		got  string
		want string
	}{
		{
			name: "system status",
			got:  topics.SystemStatus(),
			want: "wardgate/system/status",
		},
		{
			name: "terminal status",
			got:  topics.TerminalStatus("door-001"),
			want: "wardgate/terminal/door-001/status",
		},
		{
			name: "card event",
			got:  topics.TerminalEvent("door-001", EventCard),
			want: "wardgate/terminal/door-001/event/card",
		},
		{
			name: "key event",
			got:  topics.TerminalEvent("door-001", EventKey),
			want: "wardgate/terminal/door-001/event/key",
		},
		{
			name: "display command",
			got:  topics.TerminalCommand("door-001", CommandDisplay),
			want: "wardgate/terminal/door-001/command/display",
		},
		{
			name: "indicator command",
			got:  topics.TerminalCommand("door-001", CommandIndicator),
			want: "wardgate/terminal/door-001/command/indicator",
		},
		{
			name: "tone command",
			got:  topics.TerminalCommand("door-001", CommandTone),
			want: "wardgate/terminal/door-001/command/tone",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("topic = %q, want %q", tt.got, tt.want)
			}
		})
	}
}
