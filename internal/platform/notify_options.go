package platform

import "time"

// Options configures how a notification is displayed.
type Options struct {
	// App is the application name shown by the notification center.
	App string
	// IconPath, when set, is an image file shown alongside the message
	// where the platform supports it.
	IconPath string
	// Timeout is how long the message stays up; zero lets the server decide.
	Timeout time.Duration
}

func (o Options) app() string {
	if o.App == "" {
		return "IconCanvas"
	}
	return o.App
}
