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

// SignupPage collects registration details.
type SignupPage struct {
	win       fyne.Window
	service   auth.Service
	logger    *zap.Logger
	onSuccess func(auth.Result)

	usernameEntry *widget.Entry
	emailEntry    *widget.Entry
	passwordEntry *widget.Entry
	signupButton  *widget.Button
	loginButton   *widget.Button
	statusLabel   *widget.Label

	content fyne.CanvasObject
}

func NewSignupPage(win fyne.Window, service auth.Service, logger *zap.Logger, router *Router, onSuccess func(auth.Result)) *SignupPage {
	p := &SignupPage{
		win:       win,
		service:   service,
		logger:    logger,
		onSuccess: onSuccess,
	}

	p.usernameEntry = widget.NewEntry()
	p.usernameEntry.SetPlaceHolder("Username")

	p.emailEntry = widget.NewEntry()
	p.emailEntry.SetPlaceHolder("Email")

	p.passwordEntry = widget.NewPasswordEntry()
	p.passwordEntry.SetPlaceHolder("Password")
	p.passwordEntry.OnSubmitted = func(string) { p.submit() }

	p.statusLabel = widget.NewLabel("")
	p.statusLabel.Wrapping = fyne.TextWrapWord

	p.signupButton = widget.NewButton("Create account", p.submit)
	p.signupButton.Importance = widget.HighImportance

	p.loginButton = widget.NewButton("Already have an account? Log in", func() {
		if err := router.Navigate(RouteLogin); err != nil {
			logger.Error("navigation failed", zap.Error(err))
		}
	})
	p.loginButton.Importance = widget.LowImportance

	p.content = container.NewVBox(
		widget.NewLabelWithStyle("Create your account", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		p.usernameEntry,
		p.emailEntry,
		p.passwordEntry,
		p.signupButton,
		p.statusLabel,
		p.loginButton,
	)

	return p
}

func (p *SignupPage) Content() fyne.CanvasObject {
	return p.content
}

func (p *SignupPage) submit() {
	username := p.usernameEntry.Text
	email := p.emailEntry.Text
	password := p.passwordEntry.Text

	p.statusLabel.SetText("Creating account...")
	p.logger.Debug("submitting registration", zap.String("email", email), zap.String("username", username))

	submit(func(ctx context.Context) (auth.Result, error) {
		return p.service.Register(ctx, username, email, password)
	}, p.done)
}

func (p *SignupPage) done(result auth.Result, err error) {
	if !p.mounted() {
		// The user navigated away while the request was in flight.
		p.logger.Debug("dropping registration result for a page no longer shown")
		return
	}

	if err != nil {
		msg := auth.Message(err)
		p.logger.Info("registration failed", zap.String("message", msg))
		p.statusLabel.SetText(msg)
		dialog.ShowError(err, p.win)
		return
	}

	p.statusLabel.SetText("Account created!")
	if p.onSuccess != nil {
		p.onSuccess(result)
	}
}

func (p *SignupPage) mounted() bool {
	return p.win.Content() == p.content
}
