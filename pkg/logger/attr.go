package logger

import "log/slog"

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Machine records the state machine name under the key "machine".
func Machine(name string) slog.Attr {
	return slog.String("machine", name)
}

// From records the state a transition leaves under the key "from".
func From(state any) slog.Attr {
	return slog.Any("from", state)
}

// To records the state a transition enters under the key "to".
func To(state any) slog.Attr {
	return slog.Any("to", state)
}

// Signal records a diagnostic notification name under the key "signal".
func Signal(name string) slog.Attr {
	return slog.String("signal", name)
}

// SubscriptionID records a subscription identifier under the key "subscription_id".
// If id is empty, it returns an empty Attr.
func SubscriptionID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("subscription_id", id)
}

// Queued records a task queue length under the key "queued".
func Queued(n int) slog.Attr {
	return slog.Int("queued", n)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}
