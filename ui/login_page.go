package ui

import (
	"context"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/devlink/desktop/internal/auth"
)

// LoginPage collects credentials and hands them to the auth service.
type LoginPage struct {
	win       fyne.Window
	service   auth.Service
	logger    *zap.Logger
	onSuccess func(auth.Result)

	emailEntry    *widget.Entry
	passwordEntry *widget.Entry
	loginButton   *widget.Button
	signupButton  *widget.Button
	statusLabel   *widget.Label

	content fyne.CanvasObject
}

// NewLoginPage builds the login page. notice, if not empty, is shown in the
// status line on mount (e.g. after a successful signup).
func NewLoginPage(win fyne.Window, service auth.Service, logger *zap.Logger, router *Router, notice string, onSuccess func(auth.Result)) *LoginPage {
	p := &LoginPage{
		win:       win,
		service:   service,
		logger:    logger,
		onSuccess: onSuccess,
	}

	p.emailEntry = widget.NewEntry()
	p.emailEntry.SetPlaceHolder("Email")

	p.passwordEntry = widget.NewPasswordEntry()
	p.passwordEntry.SetPlaceHolder("Password")
	p.passwordEntry.OnSubmitted = func(string) { p.submit() }

	p.statusLabel = widget.NewLabel(notice)
	p.statusLabel.Wrapping = fyne.TextWrapWord

	p.loginButton = widget.NewButton("Login", p.submit)
	p.loginButton.Importance = widget.HighImportance

	p.signupButton = widget.NewButton("Don't have an account? Sign up", func() {
		if err := router.Navigate(RouteSignup); err != nil {
			logger.Error("navigation failed", zap.Error(err))
		}
	})
	p.signupButton.Importance = widget.LowImportance

	p.content = container.NewVBox(
		widget.NewLabelWithStyle("Welcome back", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		p.emailEntry,
		p.passwordEntry,
		p.loginButton,
		p.statusLabel,
		p.signupButton,
	)

	return p
}

func (p *LoginPage) Content() fyne.CanvasObject {
	return p.content
}

func (p *LoginPage) submit() {
	email := p.emailEntry.Text
	password := p.passwordEntry.Text

	p.statusLabel.SetText("Logging in...")
	p.logger.Debug("submitting login", zap.String("email", email))

	submit(func(ctx context.Context) (auth.Result, error) {
		return p.service.Login(ctx, email, password)
	}, p.done)
}

func (p *LoginPage) done(result auth.Result, err error) {
	if !p.mounted() {
		// The user navigated away while the request was in flight.
		p.logger.Debug("dropping login result for a page no longer shown")
		return
	}

	if err != nil {
		msg := auth.Message(err)
		p.logger.Info("login failed", zap.String("message", msg))
		p.statusLabel.SetText(msg)
		dialog.ShowError(err, p.win)
		return
	}

	p.statusLabel.SetText("Login successful!")
	if p.onSuccess != nil {
		p.onSuccess(result)
	}
}

func (p *LoginPage) mounted() bool {
	return p.win.Content() == p.content
}
