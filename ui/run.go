package ui

import (
	"fyne.io/fyne/v2/app"
	"go.uber.org/zap"

	"github.com/devlink/desktop/assets"
	"github.com/devlink/desktop/internal/auth"
)

const appID = "io.devlink.desktop"

// Run opens the DevLink window and blocks until the application exits.
func Run(service auth.Service, logger *zap.Logger) {
	myApp := app.NewWithID(appID)

	icon := assets.GetAppIconResource()
	if icon == nil {
		logger.Warn("failed to load icon from embedded resources")
	} else {
		myApp.SetIcon(icon)
	}

	win := NewAppWindow(myApp, service, logger, icon)
	win.Win.Show()

	myApp.Run()
	logger.Info("application has exited")
}
