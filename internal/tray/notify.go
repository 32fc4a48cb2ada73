package tray

import "github.com/iconify-tray/iconify/internal/logging"

// Notify shows a desktop notification on behalf of app.
func Notify(app, title, body string) error {
	if err := notifyOS(app, title, body); err != nil {
		log.Warn("notification failed", logging.KeyError, err)
		return err
	}
	return nil
}
