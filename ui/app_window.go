package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/devlink/desktop/internal/auth"
)

// AppWindowUI is the single DevLink window. Its router switches between the
// login and signup pages and shows a welcome view after a successful login.
type AppWindowUI struct {
	App    fyne.App
	Win    fyne.Window
	Router *Router

	service auth.Service
	logger  *zap.Logger

	// pendingNotice is shown once, on the next mount of the login page.
	pendingNotice string
}

// NewAppWindow creates the window and mounts the login page.
func NewAppWindow(a fyne.App, service auth.Service, logger *zap.Logger, icon fyne.Resource) *AppWindowUI {
	if logger == nil {
		logger = zap.NewNop()
	}

	ui := &AppWindowUI{
		App:     a,
		service: service,
		logger:  logger,
	}
	ui.Win = a.NewWindow("DevLink")
	ui.Win.Resize(fyne.NewSize(360, 320))
	ui.Win.CenterOnScreen()
	if icon != nil {
		ui.Win.SetIcon(icon)
	}

	ui.Router = NewRouter(ui.Win)
	ui.Router.Handle(RouteLogin, func() fyne.CanvasObject {
		notice := ui.pendingNotice
		ui.pendingNotice = ""
		return NewLoginPage(ui.Win, ui.service, ui.logger, ui.Router, notice, ui.onLoggedIn).Content()
	})
	ui.Router.Handle(RouteSignup, func() fyne.CanvasObject {
		return NewSignupPage(ui.Win, ui.service, ui.logger, ui.Router, ui.onRegistered).Content()
	})

	// Both routes are registered above, so this cannot fail.
	_ = ui.Router.Navigate(RouteLogin)

	return ui
}

// onRegistered sends the user back to the login page with the server's message.
func (ui *AppWindowUI) onRegistered(result auth.Result) {
	notice := result.Message()
	if notice == "" {
		notice = "Registration successful. Please log in."
	}
	ui.logger.Info("registration succeeded")
	ui.pendingNotice = notice
	_ = ui.Router.Navigate(RouteLogin)
}

func (ui *AppWindowUI) onLoggedIn(result auth.Result) {
	ui.logger.Info("login succeeded")
	ui.Router.Mount(ui.welcomeView(result))
}

func (ui *AppWindowUI) welcomeView(result auth.Result) fyne.CanvasObject {
	headline := result.Message()
	if headline == "" {
		headline = "Login successful"
	}

	lines := []fyne.CanvasObject{
		widget.NewLabelWithStyle(headline, fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
	}
	if user, ok := result.User(); ok {
		lines = append(lines, widget.NewLabelWithStyle(
			fmt.Sprintf("Signed in as %s <%s>", user.Username, user.Email),
			fyne.TextAlignCenter, fyne.TextStyle{},
		))
	}
	lines = append(lines, widget.NewButton("Back to login", func() {
		_ = ui.Router.Navigate(RouteLogin)
	}))

	return container.NewCenter(container.NewVBox(lines...))
}
